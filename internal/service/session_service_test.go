package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-crm/internal/dto"
	"github.com/noah-isme/academy-crm/internal/models"
	"github.com/noah-isme/academy-crm/internal/repository"
	appErrors "github.com/noah-isme/academy-crm/pkg/errors"
)

type sessionStack struct {
	session *SessionService
	sync    *SyncService
	state   *repository.StateRepository
	tokens  *memTokens
	metrics *MetricsService
}

func newSessionStack(academy *fakeAcademy) sessionStack {
	state := repository.NewStateRepository(models.SeedPayments())
	tokens := &memTokens{}
	metrics := NewMetricsService()
	session := NewSessionService(academy, tokens, state, metrics, nil, zap.NewNop())
	syncSvc := NewSyncService(academy, state, session, metrics, zap.NewNop())
	session.UseSynchronizer(syncSvc)
	return sessionStack{session: session, sync: syncSvc, state: state, tokens: tokens, metrics: metrics}
}

func TestLoginStoresTokenAndSyncs(t *testing.T) {
	academy := &fakeAcademy{
		loginFn: func(username, password string) (*models.TokenResponse, error) {
			assert.Equal(t, "admin@academy.uz", username)
			assert.Equal(t, "pw", password)
			return &models.TokenResponse{AccessToken: "tok-1"}, nil
		},
		groupsFn: func(token string) ([]models.Group, error) {
			assert.Equal(t, "tok-1", token)
			return []models.Group{{ID: 1, Name: "U-10"}}, nil
		},
		studentsFn: func(string) ([]models.StudentRecord, error) {
			return []models.StudentRecord{{ID: 1, FullName: "A B", Year: 2014, IsActive: true, CreatedAt: "2024-01-01T00:00:00Z"}}, nil
		},
	}
	stack := newSessionStack(academy)

	info, err := stack.session.Login(context.Background(), dto.LoginRequest{Email: "admin@academy.uz", Password: "pw"})
	require.NoError(t, err)
	assert.True(t, info.Authenticated)
	assert.NotNil(t, info.LastSyncedAt)
	assert.Equal(t, "tok-1", stack.tokens.current())
	snap := stack.state.Snapshot()
	assert.Len(t, snap.Groups, 1)
	assert.Len(t, snap.Students, 1)
	assert.Empty(t, snap.Persons)
}

func TestLoginErrorMessages(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		message string
	}{
		{name: "server detail", err: &models.APIError{Status: 401, Detail: "Incorrect email or password", Decoded: true}, message: "Incorrect email or password"},
		{name: "non json body", err: &models.APIError{Status: 500}, message: "Login failed. Please check your credentials."},
		{name: "empty detail", err: &models.APIError{Status: 400, Decoded: true}, message: "An unknown error occurred."},
		{name: "transport", err: errors.New("connection refused"), message: "connection refused"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stack := newSessionStack(&fakeAcademy{loginFn: func(string, string) (*models.TokenResponse, error) { return nil, tc.err }})
			_, err := stack.session.Login(context.Background(), dto.LoginRequest{Email: "a", Password: "b"})
			var appErr *appErrors.Error
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
			assert.Equal(t, http.StatusUnauthorized, appErr.Status)
			assert.Equal(t, tc.message, appErr.Message)
			assert.Empty(t, stack.state.Token())
			assert.Empty(t, stack.tokens.current())
		})
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	stack := newSessionStack(&fakeAcademy{})
	_, err := stack.session.Login(context.Background(), dto.LoginRequest{Email: "a"})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestLoginThenUnauthorizedReadEndsSession(t *testing.T) {
	academy := &fakeAcademy{
		loginFn: func(string, string) (*models.TokenResponse, error) {
			return &models.TokenResponse{AccessToken: "tok-1"}, nil
		},
		personsFn: func(string) ([]models.ResponsiblePerson, error) {
			return nil, &models.APIError{Status: http.StatusUnauthorized, Detail: "Not authenticated", Decoded: true}
		},
		groupsFn: func(string) ([]models.Group, error) { return []models.Group{{ID: 1}}, nil },
	}
	stack := newSessionStack(academy)

	_, err := stack.session.Login(context.Background(), dto.LoginRequest{Email: "a", Password: "b"})
	assert.True(t, errors.Is(err, appErrors.ErrSessionExpired))
	assert.Empty(t, stack.state.Token())
	assert.Empty(t, stack.tokens.current())
	snap := stack.state.Snapshot()
	assert.Empty(t, snap.Groups)
	assert.Empty(t, snap.Students)
	assert.Empty(t, snap.Persons)
	assert.False(t, stack.session.Info().Authenticated)
}

func TestLogoutKeepsPayments(t *testing.T) {
	stack := newSessionStack(&fakeAcademy{})
	_, err := stack.session.Login(context.Background(), dto.LoginRequest{Email: "a", Password: "b"})
	require.NoError(t, err)
	stack.state.PrependContract(models.Contract{ID: "c_local_1"})

	require.NoError(t, stack.session.Logout(context.Background()))
	snap := stack.state.Snapshot()
	assert.Empty(t, stack.state.Token())
	assert.Empty(t, stack.tokens.current())
	assert.Empty(t, snap.Contracts)
	assert.Len(t, snap.Payments, len(models.SeedPayments()))
}

func TestForceLogoutIgnoresReplacedToken(t *testing.T) {
	stack := newSessionStack(&fakeAcademy{})
	stack.state.SetToken("new")
	stack.tokens.token = "new"

	assert.False(t, stack.session.ForceLogout(context.Background(), "old", LogoutReasonUnauthorized))
	assert.Equal(t, "new", stack.state.Token())
	assert.Equal(t, "new", stack.tokens.current())

	assert.True(t, stack.session.ForceLogout(context.Background(), "new", LogoutReasonUnauthorized))
	assert.Empty(t, stack.tokens.current())
}

func TestRestoreUsesPersistedToken(t *testing.T) {
	var seen string
	academy := &fakeAcademy{groupsFn: func(token string) ([]models.Group, error) {
		seen = token
		return nil, nil
	}}
	stack := newSessionStack(academy)
	stack.tokens.token = "persisted"

	require.NoError(t, stack.session.Restore(context.Background(), true))
	assert.Equal(t, "persisted", stack.state.Token())
	assert.Equal(t, "persisted", seen)
}

func TestRestoreWithoutTokenStaysLoggedOut(t *testing.T) {
	academy := &fakeAcademy{}
	stack := newSessionStack(academy)
	require.NoError(t, stack.session.Restore(context.Background(), true))
	assert.False(t, stack.session.Info().Authenticated)
	assert.Equal(t, 0, academy.studentReads)
}

func TestInfoReadsUnverifiedClaims(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin@academy.uz",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("not-our-secret"))
	require.NoError(t, err)

	stack := newSessionStack(&fakeAcademy{})
	stack.state.SetToken(token)
	info := stack.session.Info()
	assert.True(t, info.Authenticated)
	assert.Equal(t, "admin@academy.uz", info.Subject)
	require.NotNil(t, info.ExpiresAt)
	assert.True(t, exp.Equal(*info.ExpiresAt))

	stack.state.SetToken("opaque-token")
	info = stack.session.Info()
	assert.True(t, info.Authenticated)
	assert.Empty(t, info.Subject)
	assert.Nil(t, info.ExpiresAt)
}
