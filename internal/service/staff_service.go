package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-crm/internal/dto"
	"github.com/noah-isme/academy-crm/internal/models"
	"github.com/noah-isme/academy-crm/internal/repository"
)

type staffWriter interface {
	CreateResponsiblePerson(ctx context.Context, token string, payload models.ResponsiblePersonPayload) error
}

// StaffService lists responsible persons and adds new ones.
type StaffService struct {
	client    staffWriter
	state     *repository.StateRepository
	sync      synchronizer
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStaffService constructs a StaffService.
func NewStaffService(client staffWriter, state *repository.StateRepository, sync synchronizer, validate *validator.Validate, logger *zap.Logger) *StaffService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &StaffService{client: client, state: state, sync: sync, validator: validate, logger: logger}
}

// List returns staff whose full name or position contains the search text.
func (s *StaffService) List(filter dto.StaffFilter) []models.ResponsiblePerson {
	persons := s.state.Snapshot().Persons
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	if search == "" {
		return persons
	}
	out := make([]models.ResponsiblePerson, 0, len(persons))
	for _, p := range persons {
		if strings.Contains(strings.ToLower(p.FullName()), search) || strings.Contains(strings.ToLower(p.Position), search) {
			out = append(out, p)
		}
	}
	return out
}

// Create posts a new staff member and re-runs the full sync.
func (s *StaffService) Create(ctx context.Context, req dto.CreateStaffRequest) (*dto.MutationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "first name, last name and position are required")
	}
	token, err := requireToken(s.state)
	if err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	payload := models.ResponsiblePersonPayload{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Position:  req.Position,
		IsActive:  boolOrDefault(req.IsActive, true),
	}
	if err := s.client.CreateResponsiblePerson(ctx, token, payload); err != nil {
		s.logger.Warn("create staff failed", zap.Error(err))
		return nil, mutationError("add staff", err)
	}
	return resyncResult(ctx, s.sync, s.state, token, s.logger, models.EntityStaff, "Staff member added successfully!"), nil
}
