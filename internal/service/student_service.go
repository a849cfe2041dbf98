package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-crm/internal/dto"
	"github.com/noah-isme/academy-crm/internal/models"
	"github.com/noah-isme/academy-crm/internal/repository"
	appErrors "github.com/noah-isme/academy-crm/pkg/errors"
)

const unknownGroupName = "Unknown"

type studentWriter interface {
	CreateStudent(ctx context.Context, token string, payload models.StudentPayload) error
}

type studentRefresher interface {
	RefreshStudents(ctx context.Context) error
}

// StudentService lists students and dispatches student mutations.
type StudentService struct {
	client    studentWriter
	state     *repository.StateRepository
	refresher studentRefresher
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(client studentWriter, state *repository.StateRepository, refresher studentRefresher, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &StudentService{client: client, state: state, refresher: refresher, metrics: metrics, validator: validate, logger: logger}
}

// List returns students with their group names, filtered by name and status.
func (s *StudentService) List(filter dto.StudentFilter) []dto.StudentView {
	snap := s.state.Snapshot()
	names := groupNames(snap.Groups)
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	views := make([]dto.StudentView, 0, len(snap.Students))
	for _, st := range snap.Students {
		if search != "" && !strings.Contains(strings.ToLower(st.Name), search) {
			continue
		}
		if filter.Status != "" && st.Status != filter.Status {
			continue
		}
		views = append(views, dto.StudentView{Student: st, GroupName: groupName(names, st.GroupID)})
	}
	return views
}

// Create posts a new student and then re-reads the student list.
func (s *StudentService) Create(ctx context.Context, req dto.CreateStudentRequest) (*dto.MutationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "name, date of birth and status are required")
	}
	year, ok := parseBirthYear(req.DOB)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid Date of Birth")
	}
	token, err := requireToken(s.state)
	if err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	payload := models.StudentPayload{
		Year:     year,
		FullName: req.Name,
		GroupID:  req.GroupID,
		IsActive: req.Status == models.StudentStatusActive,
	}
	if err := s.client.CreateStudent(ctx, token, payload); err != nil {
		s.logger.Warn("create student failed", zap.Error(err))
		return nil, mutationError("add student", err)
	}

	if err := s.refresher.RefreshStudents(ctx); err != nil {
		s.logger.Warn("student created but list refresh failed", zap.Error(err))
	}
	return &dto.MutationResult{
		Message:        "Student added successfully!",
		Entity:         models.EntityStudents,
		Reconciliation: models.ReconcileRefetch,
		SessionActive:  s.state.Token() == token,
	}, nil
}

// AssignToGroup moves a student into a group in the gateway cache only; the academy API
// has no endpoint for it yet, so the change is lost on the next sync.
func (s *StudentService) AssignToGroup(_ context.Context, groupID int64, req dto.AssignStudentRequest) (*dto.MutationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "student is required")
	}
	if _, err := requireToken(s.state); err != nil {
		return nil, err
	}
	updated, ok := s.state.UpdateStudentGroup(req.StudentID, groupID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	s.logger.Info("API call needed to persist group assignment",
		zap.Int64("student_id", req.StudentID),
		zap.Int64("group_id", groupID))
	s.metrics.RecordLocalRecords(models.EntityStudents, 1)
	return &dto.MutationResult{
		Message:        "Student assigned to group.",
		Entity:         models.EntityStudents,
		Reconciliation: models.ReconcileLocalUpdate,
		SessionActive:  true,
		Record:         updated,
	}, nil
}

func groupNames(groups []models.Group) map[int64]string {
	names := make(map[int64]string, len(groups))
	for _, g := range groups {
		names[g.ID] = g.Name
	}
	return names
}

func groupName(names map[int64]string, id *int64) string {
	if id == nil {
		return unknownGroupName
	}
	if name, ok := names[*id]; ok {
		return name
	}
	return unknownGroupName
}
