package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-crm/internal/dto"
	appErrors "github.com/noah-isme/academy-crm/pkg/errors"
	"github.com/noah-isme/academy-crm/pkg/response"
)

type contractService interface {
	List() []dto.ContractView
	Create(ctx context.Context, req dto.CreateContractRequest) (*dto.MutationResult, error)
}

// ContractHandler serves student contracts.
type ContractHandler struct {
	service contractService
}

// NewContractHandler constructs the handler.
func NewContractHandler(service contractService) *ContractHandler {
	return &ContractHandler{service: service}
}

// List godoc
// @Summary List contracts, latest contract date first
// @Tags Contracts
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /contracts [get]
func (h *ContractHandler) List(c *gin.Context) {
	contracts := h.service.List()
	response.JSON(c, http.StatusOK, contracts, map[string]interface{}{"total": len(contracts)})
}

// Create godoc
// @Summary Create a contract
// @Tags Contracts
// @Accept json
// @Produce json
// @Param payload body dto.CreateContractRequest true "Contract"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /contracts [post]
func (h *ContractHandler) Create(c *gin.Context) {
	var req dto.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid contract payload"))
		return
	}
	res, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusCreated, res.Message, res)
}
