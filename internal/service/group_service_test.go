package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-crm/internal/dto"
	"github.com/noah-isme/academy-crm/internal/models"
	appErrors "github.com/noah-isme/academy-crm/pkg/errors"
)

func TestGroupCreateDefaultsActiveAndResyncs(t *testing.T) {
	reads := 0
	academy := &fakeAcademy{groupsFn: func(string) ([]models.Group, error) {
		reads++
		return []models.Group{{ID: 1, Name: "U-12"}}, nil
	}}
	state := loggedInState(t, nil, nil, nil)
	svc := NewGroupService(academy, state, NewSyncService(academy, state, nil, nil, nil), nil, zap.NewNop())

	res, err := svc.Create(context.Background(), dto.CreateGroupRequest{Name: "U-12", Description: "Under twelve"})
	require.NoError(t, err)
	assert.Equal(t, "Group created successfully!", res.Message)
	assert.Equal(t, models.ReconcileResync, res.Reconciliation)
	assert.True(t, res.SessionActive)
	require.Len(t, academy.groups, 1)
	assert.True(t, academy.groups[0].IsActive)
	assert.Equal(t, 1, reads)
	assert.Len(t, svc.List(), 1)
}

func TestGroupCreateResyncUnauthorizedEndsSession(t *testing.T) {
	academy := &fakeAcademy{studentsFn: func(string) ([]models.StudentRecord, error) {
		return nil, &models.APIError{Status: http.StatusUnauthorized}
	}}
	state := loggedInState(t, nil, nil, nil)
	svc := NewGroupService(academy, state, NewSyncService(academy, state, nil, nil, nil), nil, nil)

	inactive := false
	res, err := svc.Create(context.Background(), dto.CreateGroupRequest{Name: "U-8", IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, res.SessionActive)
	assert.False(t, academy.groups[0].IsActive)
	assert.Empty(t, state.Token())
}

func TestGroupCreateFailure(t *testing.T) {
	academy := &fakeAcademy{writeErr: &models.APIError{Status: http.StatusBadRequest, Detail: "Group name already exists", Decoded: true}}
	state := loggedInState(t, nil, nil, nil)
	svc := NewGroupService(academy, state, NewSyncService(academy, state, nil, nil, nil), nil, nil)

	_, err := svc.Create(context.Background(), dto.CreateGroupRequest{Name: "U-12"})
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Failed to add group: Group name already exists", appErr.Message)

	_, err = svc.Create(context.Background(), dto.CreateGroupRequest{})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestGroupListAndDetail(t *testing.T) {
	state := loggedInState(t,
		[]models.Group{{ID: 1, Name: "U-10"}, {ID: 2, Name: "U-14"}},
		[]models.Student{{ID: 1, GroupID: int64Ptr(1)}, {ID: 2, GroupID: int64Ptr(1)}, {ID: 3}},
		nil)
	svc := NewGroupService(&fakeAcademy{}, state, nil, nil, nil)

	views := svc.List()
	require.Len(t, views, 2)
	assert.Equal(t, 2, views[0].MemberCount)
	assert.Equal(t, 0, views[1].MemberCount)

	detail, err := svc.Get(1)
	require.NoError(t, err)
	assert.Len(t, detail.Members, 2)

	detail, err = svc.Get(2)
	require.NoError(t, err)
	assert.NotNil(t, detail.Members)
	assert.Empty(t, detail.Members)

	_, err = svc.Get(3)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}
