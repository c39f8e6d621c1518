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

// ---- Transaction State Machine (TXN) ----

func ErrInvalidTransition(from, to string) *AppError {
	return New("TXN_001", fmt.Sprintf("Invalid status transition %s -> %s", from, to), http.StatusBadRequest)
}

func ErrPaymentReferenceRequired() *AppError {
	return New("TXN_002", "A payment reference is required to mark a transaction paid", http.StatusBadRequest)
}

func ErrAlreadyAccepted() *AppError {
	return New("TXN_003", "Transaction has already been accepted by a buyer", http.StatusConflict)
}

func ErrNotFound(entity string) *AppError {
	return New("TXN_404", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// Validation returns a generic bad-input error.
func Validation(message string) *AppError {
	return New("TXN_002", message, http.StatusBadRequest)
}

// ---- Authorization (AUTH) ----

func ErrForbidden(action string) *AppError {
	return New("AUTH_001", fmt.Sprintf("Not allowed to %s", action), http.StatusForbidden)
}

func ErrBuyerEmailMismatch() *AppError {
	return New("AUTH_002", "Email does not match the invited buyer", http.StatusForbidden)
}

// ---- Ledger (LED) ----
// Balance errors indicate a lost update or race, not a user mistake. They
// abort the triggering operation without mutating state.

func ErrInsufficientPendingBalance() *AppError {
	return New("LED_001", "Pending balance is lower than the requested amount", http.StatusInternalServerError)
}

func ErrInsufficientAvailableBalance() *AppError {
	return New("LED_002", "Available balance is lower than the requested amount", http.StatusInternalServerError)
}

// ---- Gateway (GW) ----

func ErrGateway(err error) *AppError {
	return Wrap("GW_001", "Payment gateway request failed", http.StatusBadGateway, err)
}

func ErrPayoutDetailsMissing() *AppError {
	return New("GW_002", "Seller has no payout bank details configured", http.StatusUnprocessableEntity)
}

// ---- Webhook Security (SEC) ----

func ErrInvalidSignature() *AppError {
	return New("SEC_001", "Invalid webhook signature", http.StatusUnauthorized)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
