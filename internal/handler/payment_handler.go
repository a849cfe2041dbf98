package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-crm/internal/dto"
	"github.com/noah-isme/academy-crm/internal/service"
	appErrors "github.com/noah-isme/academy-crm/pkg/errors"
	"github.com/noah-isme/academy-crm/pkg/response"
)

type paymentService interface {
	List() []dto.PaymentView
	Record(ctx context.Context, req dto.RecordPaymentRequest) (*dto.MutationResult, error)
	GenerateInvoices(ctx context.Context) (*dto.MutationResult, error)
}

type paymentExporter interface {
	Payments(format string) (*service.ExportFile, error)
}

// PaymentHandler serves the payment ledger.
type PaymentHandler struct {
	service  paymentService
	exporter paymentExporter
}

// NewPaymentHandler constructs the handler.
func NewPaymentHandler(service paymentService, exporter paymentExporter) *PaymentHandler {
	return &PaymentHandler{service: service, exporter: exporter}
}

// List godoc
// @Summary List payments, newest first
// @Tags Payments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	payments := h.service.List()
	response.JSON(c, http.StatusOK, payments, map[string]interface{}{"total": len(payments)})
}

// Record godoc
// @Summary Record a payment
// @Tags Payments
// @Accept json
// @Produce json
// @Param payload body dto.RecordPaymentRequest true "Payment"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /payments [post]
func (h *PaymentHandler) Record(c *gin.Context) {
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payment payload"))
		return
	}
	res, err := h.service.Record(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusCreated, res.Message, res)
}

// GenerateInvoices godoc
// @Summary Generate this month's invoices
// @Description Adds a Due payment for every active student not yet billed this month. Cache only.
// @Tags Payments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /payments/invoices [post]
func (h *PaymentHandler) GenerateInvoices(c *gin.Context) {
	res, err := h.service.GenerateInvoices(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, res.Message, res)
}

// Export godoc
// @Summary Export payments
// @Tags Payments
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Router /payments/export [get]
func (h *PaymentHandler) Export(c *gin.Context) {
	file, err := h.exporter.Payments(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
