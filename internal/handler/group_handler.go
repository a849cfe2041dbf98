package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-crm/internal/dto"
	appErrors "github.com/noah-isme/academy-crm/pkg/errors"
	"github.com/noah-isme/academy-crm/pkg/response"
)

type groupService interface {
	List() []dto.GroupView
	Get(id int64) (*dto.GroupDetail, error)
	Create(ctx context.Context, req dto.CreateGroupRequest) (*dto.MutationResult, error)
}

type groupAssigner interface {
	AssignToGroup(ctx context.Context, groupID int64, req dto.AssignStudentRequest) (*dto.MutationResult, error)
}

// GroupHandler serves training groups.
type GroupHandler struct {
	service  groupService
	assigner groupAssigner
}

// NewGroupHandler constructs the handler.
func NewGroupHandler(service groupService, assigner groupAssigner) *GroupHandler {
	return &GroupHandler{service: service, assigner: assigner}
}

// List godoc
// @Summary List groups with member counts
// @Tags Groups
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /groups [get]
func (h *GroupHandler) List(c *gin.Context) {
	groups := h.service.List()
	response.JSON(c, http.StatusOK, groups, map[string]interface{}{"total": len(groups)})
}

// Get godoc
// @Summary Group details
// @Tags Groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /groups/{id} [get]
func (h *GroupHandler) Get(c *gin.Context) {
	id, err := groupID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	detail, err := h.service.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Create godoc
// @Summary Create a group
// @Tags Groups
// @Accept json
// @Produce json
// @Param payload body dto.CreateGroupRequest true "Group"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /groups [post]
func (h *GroupHandler) Create(c *gin.Context) {
	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid group payload"))
		return
	}
	res, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusCreated, res.Message, res)
}

// AssignStudent godoc
// @Summary Assign a student to a group
// @Description Updates the gateway cache only; the academy API has no endpoint for this yet
// @Tags Groups
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param payload body dto.AssignStudentRequest true "Student"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /groups/{id}/students [post]
func (h *GroupHandler) AssignStudent(c *gin.Context) {
	id, err := groupID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.AssignStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}
	res, err := h.assigner.AssignToGroup(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, res.Message, res)
}

func groupID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, "group id must be a number")
	}
	return id, nil
}
