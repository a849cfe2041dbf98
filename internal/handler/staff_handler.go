package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-crm/internal/dto"
	"github.com/noah-isme/academy-crm/internal/models"
	appErrors "github.com/noah-isme/academy-crm/pkg/errors"
	"github.com/noah-isme/academy-crm/pkg/response"
)

type staffService interface {
	List(filter dto.StaffFilter) []models.ResponsiblePerson
	Create(ctx context.Context, req dto.CreateStaffRequest) (*dto.MutationResult, error)
}

// StaffHandler serves responsible persons.
type StaffHandler struct {
	service staffService
}

// NewStaffHandler constructs the handler.
func NewStaffHandler(service staffService) *StaffHandler {
	return &StaffHandler{service: service}
}

// List godoc
// @Summary List staff
// @Tags Staff
// @Produce json
// @Param search query string false "Name or position contains"
// @Success 200 {object} response.Envelope
// @Router /staff [get]
func (h *StaffHandler) List(c *gin.Context) {
	staff := h.service.List(dto.StaffFilter{Search: strings.TrimSpace(c.Query("search"))})
	response.JSON(c, http.StatusOK, staff, map[string]interface{}{"total": len(staff)})
}

// Create godoc
// @Summary Add a staff member
// @Tags Staff
// @Accept json
// @Produce json
// @Param payload body dto.CreateStaffRequest true "Staff member"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /staff [post]
func (h *StaffHandler) Create(c *gin.Context) {
	var req dto.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid staff payload"))
		return
	}
	res, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusCreated, res.Message, res)
}
