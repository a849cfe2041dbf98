package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/noah-isme/academy-crm/internal/models"
	"github.com/noah-isme/academy-crm/internal/repository"
	appErrors "github.com/noah-isme/academy-crm/pkg/errors"
)

const unknownErrorDetail = "Unknown error"

// mutationError turns a failed academy API write into the user-facing "Failed to <action>: <detail>".
func mutationError(action string, err error) error {
	var apiErr *models.APIError
	if errors.As(err, &apiErr) {
		detail := apiErr.Detail
		if detail == "" {
			detail = unknownErrorDetail
		}
		return appErrors.Upstream(err, apiErr.Status, fmt.Sprintf("Failed to %s: %s", action, detail))
	}
	return appErrors.Upstream(err, 0, fmt.Sprintf("Failed to %s: %s", action, err.Error()))
}

func validationError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

func requireToken(state *repository.StateRepository) (string, error) {
	token := state.Token()
	if token == "" {
		return "", appErrors.Clone(appErrors.ErrSessionRequired, "")
	}
	return token, nil
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func syntheticID(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%d", prefix, now.UnixMilli())
}
