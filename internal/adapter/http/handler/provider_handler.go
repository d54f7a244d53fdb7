package handler

import (
	"stablegate/internal/adapter/http/dto"
	"stablegate/internal/core/ports"
	"stablegate/pkg/apperror"
	"stablegate/pkg/response"

	"github.com/gin-gonic/gin"
)

// ProviderHandler ingests normalized transfer events pushed by the
// upstream blockchain provider's webhook (spec.md §4.2).
type ProviderHandler struct {
	ingressSvc ports.IngressService
}

// NewProviderHandler creates a new ProviderHandler.
func NewProviderHandler(ingressSvc ports.IngressService) *ProviderHandler {
	return &ProviderHandler{ingressSvc: ingressSvc}
}

// IngestTransfer handles POST /api/v1/provider/transfers.
func (h *ProviderHandler) IngestTransfer(c *gin.Context) {
	var req dto.ProviderTransferEvent
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	event, err := req.ToTransferEvent()
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.ingressSvc.IngestTransferEvent(c.Request.Context(), event); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"accepted": true})
}
