package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academy-crm/internal/dto"
	"github.com/noah-isme/academy-crm/internal/models"
	appErrors "github.com/noah-isme/academy-crm/pkg/errors"
)

func TestContractCreateNumericNumberAndDefaultDates(t *testing.T) {
	academy := &fakeAcademy{}
	state := loggedInState(t, nil, nil, nil)
	svc := NewContractService(academy, state, nil, nil, nil)
	svc.now = func() time.Time { return fixedNow }

	res, err := svc.Create(context.Background(), dto.CreateContractRequest{StudentID: 1, ContractNumber: "42", ResponsiblePersonID: 2})
	require.NoError(t, err)
	assert.Equal(t, "Contract created successfully!", res.Message)

	require.Len(t, academy.contracts, 1)
	payload := academy.contracts[0]
	assert.Equal(t, float64(42), payload.ContractNumber)
	assert.Equal(t, "2024-10-19", payload.ContractDate)
	assert.Equal(t, "2025-10-19", payload.ExpiryDate)
	assert.True(t, payload.IsActive)

	stored := state.Snapshot().Contracts[0]
	assert.Equal(t, "42", stored.ContractNumber)
	assert.Equal(t, "c_local_1729333800000", stored.ID)
}

func TestContractCreateRejectsNonNumericNumber(t *testing.T) {
	for _, number := range []string{"A-17", "NaN", "Inf", "-Infinity"} {
		t.Run(number, func(t *testing.T) {
			academy := &fakeAcademy{}
			svc := NewContractService(academy, loggedInState(t, nil, nil, nil), nil, nil, nil)

			_, err := svc.Create(context.Background(), dto.CreateContractRequest{StudentID: 1, ContractNumber: number, ResponsiblePersonID: 2})
			var appErr *appErrors.Error
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
			assert.Equal(t, http.StatusBadRequest, appErr.Status)
			assert.Equal(t, "Contract number must be numeric", appErr.Message)
			assert.Empty(t, academy.contracts)
		})
	}
}

func TestContractCreateFailureMessage(t *testing.T) {
	academy := &fakeAcademy{writeErr: &models.APIError{Status: 400, Decoded: true, Detail: "Duplicate contract number"}}
	state := loggedInState(t, nil, nil, nil)
	svc := NewContractService(academy, state, nil, nil, nil)

	_, err := svc.Create(context.Background(), dto.CreateContractRequest{StudentID: 1, ContractNumber: "7", ResponsiblePersonID: 2})
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Failed to create contract: Duplicate contract number", appErr.Message)
	assert.Empty(t, state.Snapshot().Contracts)
}

func TestContractListSortedWithNames(t *testing.T) {
	state := loggedInState(t, nil,
		[]models.Student{{ID: 1, Name: "Aziz"}},
		[]models.ResponsiblePerson{{ID: 5, FirstName: "Dilshod", LastName: "Rahimov"}})
	state.PrependContract(models.Contract{ID: "a", StudentID: 1, ResponsiblePersonID: 5, ContractDate: "2024-01-10"})
	state.PrependContract(models.Contract{ID: "b", StudentID: 9, ResponsiblePersonID: 6, ContractDate: "2024-03-01"})
	state.PrependContract(models.Contract{ID: "c", StudentID: 1, ResponsiblePersonID: 5, ContractDate: "2023-12-31"})
	svc := NewContractService(&fakeAcademy{}, state, nil, nil, nil)

	views := svc.List()
	require.Len(t, views, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{views[0].ID, views[1].ID, views[2].ID})
	assert.Equal(t, "Unknown Student", views[0].StudentName)
	assert.Equal(t, "Unknown Person", views[0].ResponsiblePersonName)
	assert.Equal(t, "Aziz", views[1].StudentName)
	assert.Equal(t, "Dilshod Rahimov", views[1].ResponsiblePersonName)
}
