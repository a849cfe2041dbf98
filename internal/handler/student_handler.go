package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-crm/internal/dto"
	"github.com/noah-isme/academy-crm/internal/models"
	"github.com/noah-isme/academy-crm/internal/service"
	appErrors "github.com/noah-isme/academy-crm/pkg/errors"
	"github.com/noah-isme/academy-crm/pkg/response"
)

type studentService interface {
	List(filter dto.StudentFilter) []dto.StudentView
	Create(ctx context.Context, req dto.CreateStudentRequest) (*dto.MutationResult, error)
}

type studentExporter interface {
	Students(format string, filter dto.StudentFilter) (*service.ExportFile, error)
}

// StudentHandler serves the students view and form.
type StudentHandler struct {
	service  studentService
	exporter studentExporter
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(service studentService, exporter studentExporter) *StudentHandler {
	return &StudentHandler{service: service, exporter: exporter}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Param search query string false "Name contains"
// @Param status query string false "Active or Inactive"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	filter, err := studentFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	students := h.service.List(filter)
	response.JSON(c, http.StatusOK, students, map[string]interface{}{"total": len(students)})
}

// Create godoc
// @Summary Add a student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body dto.CreateStudentRequest true "Student"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid student payload"))
		return
	}
	res, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusCreated, res.Message, res)
}

// Export godoc
// @Summary Export students
// @Tags Students
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Router /students/export [get]
func (h *StudentHandler) Export(c *gin.Context) {
	filter, err := studentFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exporter.Students(c.Query("format"), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

func studentFilter(c *gin.Context) (dto.StudentFilter, error) {
	filter := dto.StudentFilter{Search: strings.TrimSpace(c.Query("search"))}
	switch status := models.StudentStatus(strings.TrimSpace(c.Query("status"))); status {
	case "":
	case models.StudentStatusActive, models.StudentStatusInactive:
		filter.Status = status
	default:
		return filter, appErrors.Clone(appErrors.ErrValidation, "status must be Active or Inactive")
	}
	return filter, nil
}
