package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-crm/internal/dto"
	"github.com/noah-isme/academy-crm/internal/models"
	appErrors "github.com/noah-isme/academy-crm/pkg/errors"
	"github.com/noah-isme/academy-crm/pkg/response"
)

type sessionService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*models.SessionInfo, error)
	Logout(ctx context.Context) error
	Info() models.SessionInfo
}

// SessionHandler exposes login, logout and the session view.
type SessionHandler struct {
	service sessionService
}

// NewSessionHandler constructs the handler.
func NewSessionHandler(service sessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

// Login godoc
// @Summary Log the operator in
// @Description Forwards credentials to the academy API, stores the token and loads groups, students and staff
// @Tags Session
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param payload body dto.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *SessionHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}
	info, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, info, nil)
}

// Logout godoc
// @Summary Log the operator out
// @Tags Session
// @Success 204
// @Router /auth/logout [post]
func (h *SessionHandler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Current godoc
// @Summary Current session
// @Tags Session
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /session [get]
func (h *SessionHandler) Current(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Info(), nil)
}
