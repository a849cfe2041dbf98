package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/academy-crm/internal/models"
	"github.com/noah-isme/academy-crm/pkg/middleware/requestid"
)

const (
	pathLogin              = "/auth/login"
	pathGroups             = "/students/groups"
	pathStudents           = "/students/list"
	pathResponsiblePersons = "/students/responsible-persons"
	pathCreateStudent      = "/students/"
	pathPayments           = "/students/payments"
	pathContracts          = "/students/contracts"

	maxErrorBody = 64 << 10
)

// UpstreamObserver receives one observation per academy API call.
type UpstreamObserver interface {
	ObserveUpstream(method, path string, status int, duration time.Duration)
}

// AcademyRepository talks to the remote academy API. It holds no session state;
// callers pass the bearer token on every call.
type AcademyRepository struct {
	baseURL  string
	client   *http.Client
	observer UpstreamObserver
	logger   *zap.Logger
}

// NewAcademyRepository constructs the client. A nil http.Client gets one without a timeout.
func NewAcademyRepository(baseURL string, client *http.Client, observer UpstreamObserver, logger *zap.Logger) *AcademyRepository {
	if client == nil {
		client = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AcademyRepository{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   client,
		observer: observer,
		logger:   logger,
	}
}

// Login exchanges credentials for an access token using the OAuth2 password form.
func (r *AcademyRepository) Login(ctx context.Context, username, password string) (*models.TokenResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var out models.TokenResponse
	err := r.do(ctx, http.MethodPost, pathLogin, "", "application/x-www-form-urlencoded;charset=UTF-8", strings.NewReader(form.Encode()), &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListGroups fetches all training groups.
func (r *AcademyRepository) ListGroups(ctx context.Context, token string) ([]models.Group, error) {
	var out models.GroupList
	if err := r.getJSON(ctx, token, pathGroups, &out); err != nil {
		return nil, err
	}
	if out.Groups == nil {
		return []models.Group{}, nil
	}
	return out.Groups, nil
}

// ListStudents fetches raw student records.
func (r *AcademyRepository) ListStudents(ctx context.Context, token string) ([]models.StudentRecord, error) {
	var out models.StudentList
	if err := r.getJSON(ctx, token, pathStudents, &out); err != nil {
		return nil, err
	}
	if out.Students == nil {
		return nil, fmt.Errorf("GET %s: response has no students field", pathStudents)
	}
	return *out.Students, nil
}

// ListResponsiblePersons fetches staff members.
func (r *AcademyRepository) ListResponsiblePersons(ctx context.Context, token string) ([]models.ResponsiblePerson, error) {
	var out models.PersonList
	if err := r.getJSON(ctx, token, pathResponsiblePersons, &out); err != nil {
		return nil, err
	}
	if out.Persons == nil {
		return []models.ResponsiblePerson{}, nil
	}
	return out.Persons, nil
}

// CreateStudent posts a new student.
func (r *AcademyRepository) CreateStudent(ctx context.Context, token string, payload models.StudentPayload) error {
	return r.postJSON(ctx, token, pathCreateStudent, payload)
}

// CreateGroup posts a new training group.
func (r *AcademyRepository) CreateGroup(ctx context.Context, token string, payload models.GroupPayload) error {
	return r.postJSON(ctx, token, pathGroups, payload)
}

// CreateResponsiblePerson posts a new staff member.
func (r *AcademyRepository) CreateResponsiblePerson(ctx context.Context, token string, payload models.ResponsiblePersonPayload) error {
	return r.postJSON(ctx, token, pathResponsiblePersons, payload)
}

// CreatePayment posts a payment.
func (r *AcademyRepository) CreatePayment(ctx context.Context, token string, payload models.PaymentPayload) error {
	return r.postJSON(ctx, token, pathPayments, payload)
}

// CreateContract posts a contract.
func (r *AcademyRepository) CreateContract(ctx context.Context, token string, payload models.ContractPayload) error {
	return r.postJSON(ctx, token, pathContracts, payload)
}

func (r *AcademyRepository) getJSON(ctx context.Context, token, path string, dest interface{}) error {
	return r.do(ctx, http.MethodGet, path, token, "", nil, dest)
}

func (r *AcademyRepository) postJSON(ctx context.Context, token, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", path, err)
	}
	return r.do(ctx, http.MethodPost, path, token, "application/json", bytes.NewReader(body), nil)
}

func (r *AcademyRepository) do(ctx context.Context, method, path, token, contentType string, body io.Reader, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.HeaderKey, id)
	}

	start := time.Now()
	resp, err := r.client.Do(req)
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	if r.observer != nil {
		r.observer.ObserveUpstream(method, path, status, time.Since(start))
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeAPIError(method, path, resp)
		r.logger.Debug("academy api returned error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", apiErr.Detail))
		return apiErr
	}

	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// decodeAPIError reads a FastAPI-style {"detail": ...} body. Detail may be a string,
// a list of validation entries carrying "msg", or any other JSON value.
func decodeAPIError(method, path string, resp *http.Response) *models.APIError {
	apiErr := &models.APIError{Method: method, Path: path, Status: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apiErr
	}
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return apiErr
	}
	apiErr.Decoded = true
	apiErr.Detail = detailText(envelope.Detail)
	return apiErr
}

func detailText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}

	var entries []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &entries); err == nil {
		msgs := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.Msg != "" {
				msgs = append(msgs, e.Msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}

	return string(raw)
}
