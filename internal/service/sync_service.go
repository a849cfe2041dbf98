package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/academy-crm/internal/models"
	"github.com/noah-isme/academy-crm/internal/repository"
	appErrors "github.com/noah-isme/academy-crm/pkg/errors"
)

type academyReader interface {
	ListGroups(ctx context.Context, token string) ([]models.Group, error)
	ListStudents(ctx context.Context, token string) ([]models.StudentRecord, error)
	ListResponsiblePersons(ctx context.Context, token string) ([]models.ResponsiblePerson, error)
}

type sessionTerminator interface {
	ForceLogout(ctx context.Context, token, reason string) bool
}

// SyncService loads groups, students and staff for the active session.
type SyncService struct {
	reader     academyReader
	state      *repository.StateRepository
	terminator sessionTerminator
	metrics    *MetricsService
	logger     *zap.Logger
	now        func() time.Time
}

// NewSyncService constructs a SyncService.
func NewSyncService(reader academyReader, state *repository.StateRepository, terminator sessionTerminator, metrics *MetricsService, logger *zap.Logger) *SyncService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncService{reader: reader, state: state, terminator: terminator, metrics: metrics, logger: logger, now: time.Now}
}

// Sync runs one full read cycle. The three reads run in parallel and are always joined;
// any 401 ends the session, any other failure is logged and also ends the session, and
// nothing is committed unless all three succeed.
func (s *SyncService) Sync(ctx context.Context) error {
	token := s.state.Token()
	if token == "" {
		return appErrors.Clone(appErrors.ErrSessionRequired, "")
	}
	ctx = context.WithoutCancel(ctx)
	done := s.state.BeginSync()
	defer done()
	start := s.now()

	var (
		groups  []models.Group
		records []models.StudentRecord
		persons []models.ResponsiblePerson
		errs    [3]error
		g       errgroup.Group
	)
	g.Go(func() error {
		groups, errs[0] = s.reader.ListGroups(ctx, token)
		return nil
	})
	g.Go(func() error {
		records, errs[1] = s.reader.ListStudents(ctx, token)
		return nil
	})
	g.Go(func() error {
		persons, errs[2] = s.reader.ListResponsiblePersons(ctx, token)
		return nil
	})
	_ = g.Wait()

	if err := firstUnauthorized(errs[:]); err != nil {
		s.terminate(ctx, token, LogoutReasonUnauthorized, SyncOutcomeUnauthorized, start)
		return appErrors.Wrap(err, appErrors.ErrSessionExpired.Code, appErrors.ErrSessionExpired.Status, appErrors.ErrSessionExpired.Message)
	}
	if err := errors.Join(errs[:]...); err != nil {
		s.logger.Error("failed to load academy data", zap.Error(err))
		s.terminate(ctx, token, LogoutReasonSyncFailed, SyncOutcomeFailed, start)
		return appErrors.Upstream(err, upstreamStatus(errs[:]), "Failed to load academy data")
	}

	students, err := NormalizeStudents(records)
	if err != nil {
		s.logger.Error("failed to normalise students", zap.Error(err))
		s.terminate(ctx, token, LogoutReasonSyncFailed, SyncOutcomeFailed, start)
		return appErrors.Upstream(err, 0, "Failed to load academy data")
	}

	if !s.state.CommitSync(token, groups, students, persons, s.now().UTC()) {
		s.logger.Info("discarding sync result for a session that has ended")
		s.metrics.ObserveSync(SyncOutcomeStale, s.now().Sub(start))
		return nil
	}
	s.metrics.ObserveSync(SyncOutcomeSuccess, s.now().Sub(start))
	s.logger.Debug("academy data synced",
		zap.Int("groups", len(groups)),
		zap.Int("students", len(students)),
		zap.Int("staff", len(persons)))
	return nil
}

// RefreshStudents re-reads only the student list. Failures are logged and returned but
// never end the session.
func (s *SyncService) RefreshStudents(ctx context.Context) error {
	token := s.state.Token()
	if token == "" {
		return appErrors.Clone(appErrors.ErrSessionRequired, "")
	}
	ctx = context.WithoutCancel(ctx)
	records, err := s.reader.ListStudents(ctx, token)
	if err != nil {
		s.logger.Warn("failed to refresh students", zap.Error(err))
		return err
	}
	students, err := NormalizeStudents(records)
	if err != nil {
		s.logger.Warn("failed to normalise refreshed students", zap.Error(err))
		return err
	}
	s.state.ReplaceStudents(token, students)
	return nil
}

func (s *SyncService) terminate(ctx context.Context, token, reason, outcome string, start time.Time) {
	if s.terminator != nil {
		s.terminator.ForceLogout(ctx, token, reason)
	} else {
		s.state.ClearIfToken(token)
	}
	s.metrics.ObserveSync(outcome, s.now().Sub(start))
}

func firstUnauthorized(errs []error) error {
	for _, err := range errs {
		var apiErr *models.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			return err
		}
	}
	return nil
}

func upstreamStatus(errs []error) int {
	for _, err := range errs {
		var apiErr *models.APIError
		if errors.As(err, &apiErr) {
			return apiErr.Status
		}
	}
	return 0
}
