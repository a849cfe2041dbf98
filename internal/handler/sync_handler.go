package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-crm/internal/models"
	"github.com/noah-isme/academy-crm/pkg/response"
)

type syncService interface {
	Sync(ctx context.Context) error
}

type sessionViewer interface {
	Info() models.SessionInfo
}

// SyncHandler lets the operator reload server-sourced data on demand.
type SyncHandler struct {
	service syncService
	session sessionViewer
}

// NewSyncHandler constructs the handler.
func NewSyncHandler(service syncService, session sessionViewer) *SyncHandler {
	return &SyncHandler{service: service, session: session}
}

// Sync godoc
// @Summary Reload groups, students and staff
// @Description A 401 from any read ends the session
// @Tags Sync
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /sync [post]
func (h *SyncHandler) Sync(c *gin.Context) {
	if err := h.service.Sync(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.session.Info(), nil)
}

// Sources godoc
// @Summary Source of truth per entity
// @Tags Sync
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /sources [get]
func (h *SyncHandler) Sources(c *gin.Context) {
	response.JSON(c, http.StatusOK, models.EntitySources(), nil)
}
