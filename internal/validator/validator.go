// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("kyc_document_type", validateKYCDocumentType)
		_ = v.RegisterValidation("chain_family", validateChainFamily)
		_ = v.RegisterValidation("xrp_address", validateXRPAddress)
	}
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "buy", "swap", "send", "receive":
		return true
	}
	return false
}

func validateKYCDocumentType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "passport", "drivers_license", "national_id":
		return true
	}
	return false
}

func validateChainFamily(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "xrpl", "evm", "solana", "tron", "bitcoin":
		return true
	}
	return false
}

// validateXRPAddress mirrors the destination-address check used by the swap
// path: classic addresses start with 'r' and are 25-35 characters long.
func validateXRPAddress(fl validator.FieldLevel) bool {
	addr := fl.Field().String()
	return strings.HasPrefix(addr, "r") && len(addr) >= 25 && len(addr) <= 35
}
