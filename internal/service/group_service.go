package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-crm/internal/dto"
	"github.com/noah-isme/academy-crm/internal/models"
	"github.com/noah-isme/academy-crm/internal/repository"
	appErrors "github.com/noah-isme/academy-crm/pkg/errors"
)

type groupWriter interface {
	CreateGroup(ctx context.Context, token string, payload models.GroupPayload) error
}

// GroupService lists training groups and creates new ones.
type GroupService struct {
	client    groupWriter
	state     *repository.StateRepository
	sync      synchronizer
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGroupService constructs a GroupService.
func NewGroupService(client groupWriter, state *repository.StateRepository, sync synchronizer, validate *validator.Validate, logger *zap.Logger) *GroupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &GroupService{client: client, state: state, sync: sync, validator: validate, logger: logger}
}

// List returns every group with its current member count.
func (s *GroupService) List() []dto.GroupView {
	snap := s.state.Snapshot()
	counts := make(map[int64]int, len(snap.Groups))
	for _, st := range snap.Students {
		if st.GroupID != nil {
			counts[*st.GroupID]++
		}
	}
	views := make([]dto.GroupView, 0, len(snap.Groups))
	for _, g := range snap.Groups {
		views = append(views, dto.GroupView{Group: g, MemberCount: counts[g.ID]})
	}
	return views
}

// Get returns one group and its members.
func (s *GroupService) Get(id int64) (*dto.GroupDetail, error) {
	snap := s.state.Snapshot()
	for _, g := range snap.Groups {
		if g.ID != id {
			continue
		}
		members := make([]models.Student, 0)
		for _, st := range snap.Students {
			if st.GroupID != nil && *st.GroupID == id {
				members = append(members, st)
			}
		}
		return &dto.GroupDetail{Group: g, Members: members}, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "group not found")
}

// Create posts a new group and re-runs the full sync.
func (s *GroupService) Create(ctx context.Context, req dto.CreateGroupRequest) (*dto.MutationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "group name is required")
	}
	token, err := requireToken(s.state)
	if err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	payload := models.GroupPayload{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    boolOrDefault(req.IsActive, true),
	}
	if err := s.client.CreateGroup(ctx, token, payload); err != nil {
		s.logger.Warn("create group failed", zap.Error(err))
		return nil, mutationError("add group", err)
	}
	return resyncResult(ctx, s.sync, s.state, token, s.logger, models.EntityGroups, "Group created successfully!"), nil
}

// resyncResult runs the follow-up cycle for a successful write. A failed cycle has already
// ended the session; the write itself still succeeded.
func resyncResult(ctx context.Context, sync synchronizer, state *repository.StateRepository, token string, logger *zap.Logger, entity models.Entity, message string) *dto.MutationResult {
	if err := sync.Sync(ctx); err != nil {
		logger.Warn("resync after write failed", zap.String("entity", string(entity)), zap.Error(err))
	}
	return &dto.MutationResult{
		Message:        message,
		Entity:         entity,
		Reconciliation: models.ReconcileResync,
		SessionActive:  state.Token() == token,
	}
}
