package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-crm/internal/dto"
	"github.com/noah-isme/academy-crm/internal/models"
	"github.com/noah-isme/academy-crm/internal/repository"
	appErrors "github.com/noah-isme/academy-crm/pkg/errors"
)

const (
	loginFailedMessage  = "Login failed. Please check your credentials."
	unknownLoginMessage = "An unknown error occurred."
)

// Reasons recorded when the gateway ends a session itself.
const (
	LogoutReasonUnauthorized = "unauthorized"
	LogoutReasonSyncFailed   = "sync_failed"
)

type academyAuthenticator interface {
	Login(ctx context.Context, username, password string) (*models.TokenResponse, error)
}

type tokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}

type synchronizer interface {
	Sync(ctx context.Context) error
}

// SessionService owns the single operator session: login, logout and restoring the
// persisted token at start-up.
type SessionService struct {
	client    academyAuthenticator
	tokens    tokenStore
	state     *repository.StateRepository
	syncer    synchronizer
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger

	// serialises token store writes with state transitions
	mu sync.Mutex
}

// NewSessionService constructs a SessionService. The synchronizer is attached afterwards
// with UseSynchronizer because it needs the session to end sessions it cannot sync.
func NewSessionService(client academyAuthenticator, tokens tokenStore, state *repository.StateRepository, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SessionService{client: client, tokens: tokens, state: state, metrics: metrics, validator: validate, logger: logger}
}

// UseSynchronizer attaches the cycle run after every session start.
func (s *SessionService) UseSynchronizer(syncer synchronizer) {
	s.syncer = syncer
}

// Login exchanges credentials for a token, persists it and runs the initial sync.
// A sync failure ends the new session again and is returned as the login error.
func (s *SessionService) Login(ctx context.Context, req dto.LoginRequest) (*models.SessionInfo, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "email and password are required")
	}
	ctx = context.WithoutCancel(ctx)

	res, err := s.client.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, loginError(err)
	}
	if res.AccessToken == "" {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, unknownLoginMessage)
	}

	if err := s.start(ctx, res.AccessToken); err != nil {
		return nil, err
	}
	s.logger.Info("operator logged in", zap.String("subject", sessionClaims(res.AccessToken).subject))

	if err := s.runSync(ctx); err != nil {
		return nil, err
	}
	info := s.Info()
	return &info, nil
}

// Logout drops the persisted token and every collection that depends on it.
func (s *SessionService) Logout(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.tokens.Delete(ctx); err != nil {
		s.logger.Warn("failed to remove persisted token", zap.Error(err))
	}
	s.state.Clear()
	s.logger.Info("operator logged out")
	return nil
}

// ForceLogout ends the session only if token is still the active one, so a late failure
// from a replaced session cannot end its successor.
func (s *SessionService) ForceLogout(ctx context.Context, token, reason string) bool {
	ctx = context.WithoutCancel(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.ClearIfToken(token) {
		return false
	}
	if err := s.tokens.Delete(ctx); err != nil {
		s.logger.Warn("failed to remove persisted token", zap.Error(err))
	}
	s.metrics.RecordForcedLogout(reason)
	s.logger.Warn("session ended by gateway", zap.String("reason", reason))
	return true
}

// Restore reads the persisted token once and, when present, re-establishes the session.
func (s *SessionService) Restore(ctx context.Context, syncNow bool) error {
	token, err := s.tokens.Load(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read persisted token")
	}
	if token == "" {
		return nil
	}
	s.mu.Lock()
	s.state.SetToken(token)
	s.mu.Unlock()
	s.logger.Info("restored persisted session", zap.String("subject", sessionClaims(token).subject))
	if !syncNow {
		return nil
	}
	return s.runSync(ctx)
}

// Info describes the current session.
func (s *SessionService) Info() models.SessionInfo {
	token := s.state.Token()
	info := models.SessionInfo{Authenticated: token != "", Loading: s.state.Loading()}
	if token == "" {
		return info
	}
	claims := sessionClaims(token)
	info.Subject = claims.subject
	info.ExpiresAt = claims.expiresAt
	if last := s.state.LastSynced(); !last.IsZero() {
		info.LastSyncedAt = &last
	}
	return info
}

func (s *SessionService) start(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.tokens.Save(ctx, token); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist session token")
	}
	s.state.SetToken(token)
	return nil
}

func (s *SessionService) runSync(ctx context.Context) error {
	if s.syncer == nil {
		return nil
	}
	return s.syncer.Sync(ctx)
}

func loginError(err error) error {
	var apiErr *models.APIError
	if !errors.As(err, &apiErr) {
		return appErrors.Wrap(err, appErrors.ErrInvalidCredentials.Code, appErrors.ErrInvalidCredentials.Status, err.Error())
	}
	message := apiErr.Detail
	switch {
	case !apiErr.Decoded:
		message = loginFailedMessage
	case message == "":
		message = unknownLoginMessage
	}
	appErr := appErrors.Wrap(err, appErrors.ErrInvalidCredentials.Code, appErrors.ErrInvalidCredentials.Status, message)
	appErr.UpstreamStatus = apiErr.Status
	return appErr
}

type tokenClaims struct {
	subject   string
	expiresAt *time.Time
}

// sessionClaims reads the token without verifying it; the academy API is the only verifier.
// Opaque tokens yield empty claims.
func sessionClaims(token string) tokenClaims {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return tokenClaims{}
	}
	var out tokenClaims
	if sub, err := parsed.Claims.GetSubject(); err == nil {
		out.subject = sub
	}
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		ts := exp.Time.UTC()
		out.expiresAt = &ts
	}
	return out
}
