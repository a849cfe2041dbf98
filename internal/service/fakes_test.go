package service

import (
	"context"
	"sync"

	"github.com/noah-isme/academy-crm/internal/models"
)

// fakeAcademy stands in for the academy API client. Unset funcs succeed with empty results.
type fakeAcademy struct {
	mu sync.Mutex

	loginFn    func(username, password string) (*models.TokenResponse, error)
	groupsFn   func(token string) ([]models.Group, error)
	studentsFn func(token string) ([]models.StudentRecord, error)
	personsFn  func(token string) ([]models.ResponsiblePerson, error)
	writeErr   error

	studentReads int
	students     []models.StudentPayload
	groups       []models.GroupPayload
	persons      []models.ResponsiblePersonPayload
	payments     []models.PaymentPayload
	contracts    []models.ContractPayload
}

func (f *fakeAcademy) Login(_ context.Context, username, password string) (*models.TokenResponse, error) {
	if f.loginFn == nil {
		return &models.TokenResponse{AccessToken: "tok"}, nil
	}
	return f.loginFn(username, password)
}

func (f *fakeAcademy) ListGroups(_ context.Context, token string) ([]models.Group, error) {
	if f.groupsFn == nil {
		return []models.Group{}, nil
	}
	return f.groupsFn(token)
}

func (f *fakeAcademy) ListStudents(_ context.Context, token string) ([]models.StudentRecord, error) {
	f.mu.Lock()
	f.studentReads++
	f.mu.Unlock()
	if f.studentsFn == nil {
		return []models.StudentRecord{}, nil
	}
	return f.studentsFn(token)
}

func (f *fakeAcademy) ListResponsiblePersons(_ context.Context, token string) ([]models.ResponsiblePerson, error) {
	if f.personsFn == nil {
		return []models.ResponsiblePerson{}, nil
	}
	return f.personsFn(token)
}

func (f *fakeAcademy) CreateStudent(_ context.Context, _ string, payload models.StudentPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.students = append(f.students, payload)
	return nil
}

func (f *fakeAcademy) CreateGroup(_ context.Context, _ string, payload models.GroupPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.groups = append(f.groups, payload)
	return nil
}

func (f *fakeAcademy) CreateResponsiblePerson(_ context.Context, _ string, payload models.ResponsiblePersonPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.persons = append(f.persons, payload)
	return nil
}

func (f *fakeAcademy) CreatePayment(_ context.Context, _ string, payload models.PaymentPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.payments = append(f.payments, payload)
	return nil
}

func (f *fakeAcademy) CreateContract(_ context.Context, _ string, payload models.ContractPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.contracts = append(f.contracts, payload)
	return nil
}

type memTokens struct {
	mu      sync.Mutex
	token   string
	saveErr error
}

func (m *memTokens) Load(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memTokens) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.token = token
	return nil
}

func (m *memTokens) Delete(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

func (m *memTokens) current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}
