package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academy-crm/internal/dto"
	"github.com/noah-isme/academy-crm/internal/models"
	appErrors "github.com/noah-isme/academy-crm/pkg/errors"
)

func TestStaffCreatePassesFieldsThrough(t *testing.T) {
	academy := &fakeAcademy{personsFn: func(string) ([]models.ResponsiblePerson, error) {
		return []models.ResponsiblePerson{{ID: 1, FirstName: "Dilshod", LastName: "Rahimov", Position: "Coach"}}, nil
	}}
	state := loggedInState(t, nil, nil, nil)
	svc := NewStaffService(academy, state, NewSyncService(academy, state, nil, nil, nil), nil, nil)

	res, err := svc.Create(context.Background(), dto.CreateStaffRequest{FirstName: "Dilshod", LastName: "Rahimov", Position: "Coach"})
	require.NoError(t, err)
	assert.Equal(t, "Staff member added successfully!", res.Message)
	assert.Equal(t, models.ResponsiblePersonPayload{FirstName: "Dilshod", LastName: "Rahimov", Position: "Coach", IsActive: true}, academy.persons[0])
	assert.Len(t, svc.List(dto.StaffFilter{}), 1)
}

func TestStaffCreateFailureFallback(t *testing.T) {
	academy := &fakeAcademy{writeErr: &models.APIError{Status: 500}}
	state := loggedInState(t, nil, nil, nil)
	svc := NewStaffService(academy, state, NewSyncService(academy, state, nil, nil, nil), nil, nil)

	_, err := svc.Create(context.Background(), dto.CreateStaffRequest{FirstName: "A", LastName: "B", Position: "Coach"})
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Failed to add staff: Unknown error", appErr.Message)
}

func TestStaffListSearch(t *testing.T) {
	state := loggedInState(t, nil, nil, []models.ResponsiblePerson{
		{ID: 1, FirstName: "Dilshod", LastName: "Rahimov", Position: "Head Coach"},
		{ID: 2, FirstName: "Malika", LastName: "Usmonova", Position: "Accountant"},
	})
	svc := NewStaffService(&fakeAcademy{}, state, nil, nil, nil)

	assert.Len(t, svc.List(dto.StaffFilter{Search: "coach"}), 1)
	assert.Len(t, svc.List(dto.StaffFilter{Search: "malika usm"}), 1)
	assert.Empty(t, svc.List(dto.StaffFilter{Search: "driver"}))
}
