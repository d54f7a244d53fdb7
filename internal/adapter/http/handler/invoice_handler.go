package handler

import (
	"stablegate/internal/adapter/http/dto"
	"stablegate/internal/adapter/http/middleware"
	"stablegate/internal/core/ports"
	"stablegate/pkg/apperror"
	"stablegate/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvoiceHandler handles merchant-facing invoice and payment intent
// endpoints (spec.md §5).
type InvoiceHandler struct {
	invoiceSvc ports.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceSvc ports.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceSvc: invoiceSvc}
}

// CreateInvoice handles POST /api/v1/invoices.
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	merchantID, ok := c.Get(middleware.CtxMerchantID)
	if !ok {
		response.Error(c, apperror.ErrMerchantNotFound())
		return
	}

	idempotencyKey := c.GetHeader(middleware.HeaderIdempotencyKey)
	if idempotencyKey == "" {
		response.Error(c, apperror.ErrIdempotencyKeyMissing())
		return
	}

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	portReq, err := req.ToPortRequest(merchantID.(string), idempotencyKey)
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	invoice, err := h.invoiceSvc.CreateInvoice(c.Request.Context(), portReq)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToInvoiceResponse(invoice))
}

// GetInvoice handles GET /api/v1/invoices/:id.
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid invoice id"))
		return
	}

	invoice, err := h.invoiceSvc.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToInvoiceResponse(invoice))
}

// GetInvoiceStatus handles GET /api/v1/invoices/:id/status — a
// lightweight poll target for merchants that don't want the full
// invoice payload on every check.
func (h *InvoiceHandler) GetInvoiceStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid invoice id"))
		return
	}

	invoice, err := h.invoiceSvc.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToInvoiceStatusResponse(invoice))
}

// CancelInvoice handles POST /api/v1/invoices/:id/cancel.
func (h *InvoiceHandler) CancelInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid invoice id"))
		return
	}

	invoice, err := h.invoiceSvc.CancelInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToInvoiceResponse(invoice))
}

// CreateIntent handles POST /api/v1/invoices/:id/intents.
func (h *InvoiceHandler) CreateIntent(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid invoice id"))
		return
	}

	var req dto.CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	intent, err := h.invoiceSvc.CreateIntent(c.Request.Context(), ports.CreateIntentRequest{
		InvoiceID: invoiceID,
		Token:     req.Token,
		Chain:     req.Chain,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToIntentResponse(intent))
}

// ListTransfers handles GET /api/v1/invoices/:id/transfers.
func (h *InvoiceHandler) ListTransfers(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid invoice id"))
		return
	}

	transfers, err := h.invoiceSvc.ListTransfers(c.Request.Context(), invoiceID)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := make([]dto.TransferResponse, 0, len(transfers))
	for _, t := range transfers {
		resp = append(resp, dto.ToTransferResponse(t))
	}

	response.OK(c, resp)
}
