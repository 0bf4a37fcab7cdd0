// Package errors provides custom error types for the XRPVault API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Wallet errors.
var (
	ErrWalletNotFound      = &AppError{Code: "WALLET_NOT_FOUND", Message: "Wallet not found", StatusCode: http.StatusNotFound}
	ErrWalletExists        = &AppError{Code: "WALLET_EXISTS", Message: "A wallet with this XRP address is already imported", StatusCode: http.StatusConflict}
	ErrInvalidSeedPhrase   = &AppError{Code: "INVALID_SEED_PHRASE", Message: "Invalid recovery phrase", StatusCode: http.StatusBadRequest}
	ErrInvalidXRPAddress   = &AppError{Code: "INVALID_XRP_ADDRESS", Message: "Invalid XRP address format", StatusCode: http.StatusBadRequest}
	ErrMissingXRPAddress   = &AppError{Code: "MISSING_XRP_ADDRESS", Message: "An XRP address is required", StatusCode: http.StatusBadRequest}
)

// Trade errors.
var (
	ErrBelowMinimum        = &AppError{Code: "BELOW_MINIMUM", Message: "Amount is below the minimum purchase threshold", StatusCode: http.StatusBadRequest}
	ErrUnknownToken        = &AppError{Code: "UNKNOWN_TOKEN", Message: "Unsupported source token", StatusCode: http.StatusBadRequest}
	ErrKYCRequired         = &AppError{Code: "KYC_REQUIRED", Message: "Identity verification must be approved before trading", StatusCode: http.StatusForbidden}
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
)

// KYC errors.
var (
	ErrKYCNotFound         = &AppError{Code: "KYC_NOT_FOUND", Message: "No verification record found", StatusCode: http.StatusNotFound}
	ErrKYCAlreadySubmitted = &AppError{Code: "KYC_ALREADY_SUBMITTED", Message: "Verification has already been submitted", StatusCode: http.StatusConflict}
	ErrKYCNotPending       = &AppError{Code: "KYC_NOT_PENDING", Message: "Verification is not awaiting review", StatusCode: http.StatusConflict}
	ErrKYCNotRejected      = &AppError{Code: "KYC_NOT_REJECTED", Message: "Only a rejected verification can be restarted", StatusCode: http.StatusConflict}
	ErrKYCIncomplete       = &AppError{Code: "KYC_INCOMPLETE", Message: "All verification steps must be completed before submitting", StatusCode: http.StatusBadRequest}
)

// Telegram errors.
var (
	ErrTelegramDisabled = &AppError{Code: "TELEGRAM_DISABLED", Message: "Telegram notifications are not configured", StatusCode: http.StatusServiceUnavailable}
	ErrInvalidCallback  = &AppError{Code: "INVALID_CALLBACK", Message: "Invalid callback data", StatusCode: http.StatusBadRequest}
)
