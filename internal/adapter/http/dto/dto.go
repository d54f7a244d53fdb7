package dto

import (
	"time"

	"github.com/google/uuid"

	"stablegate/internal/core/domain"
	"stablegate/internal/core/ports"
	"stablegate/internal/money"
)

// PaymentOptionDTO is one (token, chain) pair a buyer may pay with.
type PaymentOptionDTO struct {
	Token string `json:"token" binding:"required"`
	Chain string `json:"chain" binding:"required"`
}

// CreateInvoiceRequest is the request body for POST /api/invoices
// (spec.md §6).
type CreateInvoiceRequest struct {
	MerchantOrderID string             `json:"merchantOrderId" binding:"required,max=200"`
	FiatAmountCents int64              `json:"fiatAmountCents" binding:"required,gt=0"`
	Currency        string             `json:"currency" binding:"required,len=3"`
	AllowedOptions  []PaymentOptionDTO `json:"allowedOptions" binding:"required,min=1,dive"`
	CallbackURL     string             `json:"callbackUrl" binding:"required,url"`
	ExpiresInSec    int64              `json:"expiresInSec,omitempty" binding:"omitempty,gt=0"`
}

// ToPortRequest converts the validated DTO into the service-layer
// request, binding it to the authenticated merchant and the
// Idempotency-Key header (spec.md §6 "every mutating call carries an
// Idempotency-Key header").
func (r CreateInvoiceRequest) ToPortRequest(merchantID string, idempotencyKey string) (ports.CreateInvoiceRequest, error) {
	mID, err := uuid.Parse(merchantID)
	if err != nil {
		return ports.CreateInvoiceRequest{}, err
	}
	options := make([]domain.PaymentOption, 0, len(r.AllowedOptions))
	for _, o := range r.AllowedOptions {
		options = append(options, domain.PaymentOption{Token: o.Token, Chain: o.Chain})
	}
	return ports.CreateInvoiceRequest{
		MerchantID:      mID,
		MerchantOrderID: r.MerchantOrderID,
		FiatAmountCents: money.FromInt64(r.FiatAmountCents),
		Currency:        r.Currency,
		AllowedOptions:  options,
		CallbackURL:     r.CallbackURL,
		ExpiresInSec:    r.ExpiresInSec,
		IdempotencyKey:  idempotencyKey,
	}, nil
}

// CreateIntentRequest is the request body for POST
// /api/invoices/{id}/intents (spec.md §6).
type CreateIntentRequest struct {
	Token string `json:"token" binding:"required"`
	Chain string `json:"chain" binding:"required"`
}

// InvoiceResponse is the response body for invoice endpoints.
type InvoiceResponse struct {
	ID              string             `json:"id"`
	MerchantOrderID string             `json:"merchantOrderId"`
	FiatAmountCents string             `json:"fiatAmountCents"`
	Currency        string             `json:"currency"`
	AllowedOptions  []PaymentOptionDTO `json:"allowedOptions"`
	Status          string             `json:"status"`
	ExpiresAt       string             `json:"expiresAt"`
	CreatedAt       string             `json:"createdAt"`
	UpdatedAt       string             `json:"updatedAt"`
}

// ToInvoiceResponse converts a domain.Invoice to its wire shape.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	options := make([]PaymentOptionDTO, 0, len(inv.AllowedOptions))
	for _, o := range inv.AllowedOptions {
		options = append(options, PaymentOptionDTO{Token: o.Token, Chain: o.Chain})
	}
	return InvoiceResponse{
		ID:              inv.ID.String(),
		MerchantOrderID: inv.MerchantOrderID,
		FiatAmountCents: inv.FiatAmountCents.String(),
		Currency:        inv.Currency,
		AllowedOptions:  options,
		Status:          string(inv.Status),
		ExpiresAt:       inv.ExpiresAt.Format(time.RFC3339),
		CreatedAt:       inv.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       inv.UpdatedAt.Format(time.RFC3339),
	}
}

// InvoiceStatusResponse is the lightweight body for the merchant
// status-poll endpoint — just enough to drive a client polling loop,
// without the full invoice payload (spec.md §6 "lightweight status
// poll").
type InvoiceStatusResponse struct {
	InvoiceID string `json:"invoiceId"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updatedAt"`
}

// ToInvoiceStatusResponse converts a domain.Invoice to the status-poll
// wire shape.
func ToInvoiceStatusResponse(inv *domain.Invoice) InvoiceStatusResponse {
	return InvoiceStatusResponse{
		InvoiceID: inv.ID.String(),
		Status:    string(inv.Status),
		UpdatedAt: inv.UpdatedAt.Format(time.RFC3339),
	}
}

// IntentResponse is the response body for intent endpoints.
type IntentResponse struct {
	ID             string `json:"id"`
	InvoiceID      string `json:"invoiceId"`
	Token          string `json:"token"`
	Chain          string `json:"chain"`
	DepositAddress string `json:"depositAddress"`
	TargetAtomic   string `json:"targetAtomic"`
	CreditedAtomic string `json:"creditedAtomic"`
	Status         string `json:"status"`
	CreatedAt      string `json:"createdAt"`
}

// ToIntentResponse converts a domain.PaymentIntent to its wire shape.
func ToIntentResponse(intent *domain.PaymentIntent) IntentResponse {
	return IntentResponse{
		ID:             intent.ID.String(),
		InvoiceID:      intent.InvoiceID.String(),
		Token:          intent.Token,
		Chain:          intent.Chain,
		DepositAddress: intent.DepositAddress,
		TargetAtomic:   intent.TargetAtomic.String(),
		CreditedAtomic: intent.CreditedAtomic.String(),
		Status:         string(intent.Status),
		CreatedAt:      intent.CreatedAt.Format(time.RFC3339),
	}
}

// TransferResponse is the response body for the transfers-listing
// endpoint.
type TransferResponse struct {
	ID            string `json:"id"`
	Chain         string `json:"chain"`
	TxHash        string `json:"txHash"`
	LogIndex      int    `json:"logIndex"`
	TokenContract string `json:"tokenContract"`
	ToAddress     string `json:"toAddress"`
	AtomicAmount  string `json:"atomicAmount"`
	BlockNumber   int64  `json:"blockNumber"`
	FirstSeenAt   string `json:"firstSeenAt"`
}

// ToTransferResponse converts a domain.Transfer to its wire shape.
func ToTransferResponse(t domain.Transfer) TransferResponse {
	return TransferResponse{
		ID:            t.ID.String(),
		Chain:         t.Chain,
		TxHash:        t.TxHash,
		LogIndex:      t.LogIndex,
		TokenContract: t.TokenContract,
		ToAddress:     t.ToAddress,
		AtomicAmount:  t.AtomicAmount.String(),
		BlockNumber:   t.BlockNumber,
		FirstSeenAt:   t.FirstSeenAt.Format(time.RFC3339),
	}
}

// ProviderTransferEvent is the request body for the provider webhook
// ingress endpoint (spec.md §4.2 "Contract").
type ProviderTransferEvent struct {
	Chain           string `json:"chain" binding:"required"`
	TxHash          string `json:"txHash" binding:"required"`
	LogIndex        int    `json:"logIndex"`
	Token           string `json:"token" binding:"required"`
	To              string `json:"to" binding:"required"`
	Amount          string `json:"amount" binding:"required"`
	BlockNumber     int64  `json:"blockNumber" binding:"required"`
	ProviderEventID string `json:"providerEventId" binding:"required"`
}

// ToTransferEvent converts the wire payload into the normalized
// domain event the ingress service consumes.
func (e ProviderTransferEvent) ToTransferEvent() (domain.TransferEvent, error) {
	amount, err := money.FromString(e.Amount)
	if err != nil {
		return domain.TransferEvent{}, err
	}
	return domain.TransferEvent{
		Chain:           e.Chain,
		TxHash:          e.TxHash,
		LogIndex:        e.LogIndex,
		Token:           e.Token,
		To:              e.To,
		Amount:          amount,
		BlockNumber:     e.BlockNumber,
		ProviderEventID: e.ProviderEventID,
	}, nil
}
