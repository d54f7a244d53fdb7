package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Invoice lifecycle (INV) ----

func ErrInvoiceNotFound() *AppError {
	return New("INV_001", "invoice not found", http.StatusNotFound)
}

func ErrDuplicateMerchantOrderID() *AppError {
	return New("INV_002", "merchant_order_id already used for a different invoice", http.StatusConflict)
}

func ErrInvoiceNotCancellable() *AppError {
	return New("INV_003", "invoice is not in a cancellable state", http.StatusConflict)
}

func ErrInvalidFiatAmount() *AppError {
	return New("INV_004", "fiat amount must be a positive integer number of cents", http.StatusBadRequest)
}

// ---- Payment method / intent (MTH) ----

func ErrPaymentOptionNotAllowed() *AppError {
	return New("MTH_001", "token/chain combination is not an allowed payment option for this invoice", http.StatusBadRequest)
}

func ErrIntentNotFound() *AppError {
	return New("MTH_002", "payment intent not found", http.StatusNotFound)
}

func ErrInvoiceNotAcceptingIntents() *AppError {
	return New("MTH_003", "invoice is no longer accepting new payment intents", http.StatusConflict)
}

// ---- Idempotency & validation (IDM) ----

func ErrIdempotencyKeyMissing() *AppError {
	return New("IDM_001", "Idempotency-Key header is required", http.StatusBadRequest)
}

func ErrIdempotencyKeyConflict() *AppError {
	return New("IDM_002", "Idempotency-Key reused with a different request body", http.StatusConflict)
}

func Validation(message string) *AppError {
	return New("IDM_003", message, http.StatusBadRequest)
}

// ---- Merchant / auth (AUTH) ----

func ErrMerchantNotFound() *AppError {
	return New("AUTH_001", "unknown merchant", http.StatusUnauthorized)
}

func ErrMerchantInactive() *AppError {
	return New("AUTH_002", "merchant account is inactive", http.StatusForbidden)
}

func ErrInvalidWebhookSecret() *AppError {
	return New("AUTH_003", "invalid provider webhook secret", http.StatusUnauthorized)
}

// ---- Rate limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "rate limit exceeded", http.StatusTooManyRequests)
}

// ---- Dispatcher (DSP) ----

func ErrDeliveryPermanentlyFailed(err error) *AppError {
	return Wrap("DSP_001", "merchant callback endpoint rejected the delivery", http.StatusBadGateway, err)
}

// ---- System & infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "internal database error", http.StatusInternalServerError, err)
}

func ErrLockTimeout(err error) *AppError {
	return Wrap("SYS_002", "lock acquisition timeout", http.StatusServiceUnavailable, err)
}

func ErrEncryptionFailure(err error) *AppError {
	return Wrap("SYS_003", "encryption service failure", http.StatusInternalServerError, err)
}

func ErrBlockchainUnavailable(err error) *AppError {
	return Wrap("SYS_005", "blockchain reader unavailable", http.StatusServiceUnavailable, err)
}

// ErrInvariantViolation marks an event that must be quarantined rather
// than retried in place (spec.md §7 "Invariant violation").
func ErrInvariantViolation(err error) *AppError {
	return Wrap("SYS_004", "invariant violation, event quarantined", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "internal server error", http.StatusInternalServerError, err)
}
