package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "xrpvault/internal/errors"
	"xrpvault/internal/models"
	"xrpvault/internal/services"
)

// KYCHandler handles identity verification requests
type KYCHandler struct {
	kycService services.KYCServicer
}

// NewKYCHandler creates a new KYCHandler
func NewKYCHandler(kycService services.KYCServicer) *KYCHandler {
	return &KYCHandler{kycService: kycService}
}

// KYCPersonalInfoRequest represents the first verification step payload
type KYCPersonalInfoRequest struct {
	FirstName   string `json:"first_name" binding:"required,max=100"`
	LastName    string `json:"last_name" binding:"required,max=100"`
	DateOfBirth string `json:"date_of_birth" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"max=32"`
}

// KYCAddressRequest represents the second verification step payload
type KYCAddressRequest struct {
	AddressLine1 string `json:"address_line1" binding:"required,max=255"`
	AddressLine2 string `json:"address_line2" binding:"max=255"`
	City         string `json:"city" binding:"required,max=100"`
	State        string `json:"state" binding:"max=100"`
	PostalCode   string `json:"postal_code" binding:"max=20"`
	Country      string `json:"country" binding:"required,max=100"`
}

// KYCDocumentsRequest represents the third verification step payload
type KYCDocumentsRequest struct {
	DocumentType     string `json:"document_type" binding:"required,kyc_document_type"`
	DocumentFrontURL string `json:"document_front_url" binding:"required,url"`
	DocumentBackURL  string `json:"document_back_url" binding:"omitempty,url"`
	SelfieURL        string `json:"selfie_url" binding:"required,url"`
}

// Get returns the user's verification status
// @Summary     Get verification status
// @Description Get the user's identity verification record, creating one on first access
// @Tags        kyc
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.KYCVerification "Verification record"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /kyc [get]
func (h *KYCHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	kyc, err := h.kycService.GetOrCreate(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, kyc)
}

// SavePersonalInfo records the first verification step
// @Summary     Save personal info
// @Description Record the personal information step of the verification flow
// @Tags        kyc
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body KYCPersonalInfoRequest true "Personal info"
// @Success     200 {object} models.KYCVerification "Updated record"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Already submitted"
// @Router      /kyc/personal-info [put]
func (h *KYCHandler) SavePersonalInfo(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req KYCPersonalInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	kyc, err := h.kycService.SavePersonalInfo(userID, services.KYCPersonalInfo{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, kyc)
}

// SaveAddress records the second verification step
// @Summary     Save address
// @Description Record the residential address step of the verification flow
// @Tags        kyc
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body KYCAddressRequest true "Address"
// @Success     200 {object} models.KYCVerification "Updated record"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Already submitted"
// @Router      /kyc/address [put]
func (h *KYCHandler) SaveAddress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req KYCAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	kyc, err := h.kycService.SaveAddress(userID, services.KYCAddress{
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, kyc)
}

// SaveDocuments records the third verification step
// @Summary     Save documents
// @Description Record the identity document step of the verification flow
// @Tags        kyc
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body KYCDocumentsRequest true "Documents"
// @Success     200 {object} models.KYCVerification "Updated record"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Already submitted"
// @Router      /kyc/documents [put]
func (h *KYCHandler) SaveDocuments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req KYCDocumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	kyc, err := h.kycService.SaveDocuments(userID, services.KYCDocuments{
		DocumentType:     models.KYCDocumentType(req.DocumentType),
		DocumentFrontURL: req.DocumentFrontURL,
		DocumentBackURL:  req.DocumentBackURL,
		SelfieURL:        req.SelfieURL,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, kyc)
}

// Submit submits the completed verification for review
// @Summary     Submit verification
// @Description Submit the completed verification flow for manual review
// @Tags        kyc
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.KYCVerification "Pending record"
// @Failure     400 {object} ErrorResponse "Flow incomplete"
// @Failure     409 {object} ErrorResponse "Already submitted"
// @Router      /kyc/submit [post]
func (h *KYCHandler) Submit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	kyc, err := h.kycService.Submit(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, kyc)
}

// Retry restarts a rejected verification
// @Summary     Retry verification
// @Description Return a rejected verification to the start of the flow
// @Tags        kyc
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.KYCVerification "Reset record"
// @Failure     409 {object} ErrorResponse "Verification not rejected"
// @Router      /kyc/retry [post]
func (h *KYCHandler) Retry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	kyc, err := h.kycService.Retry(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, kyc)
}
