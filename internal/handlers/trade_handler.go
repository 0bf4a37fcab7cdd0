package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "xrpvault/internal/errors"
	"xrpvault/internal/services"
)

// TradeHandler handles swap and fiat purchase requests
type TradeHandler struct {
	transactionService services.TransactionServicer
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(transactionService services.TransactionServicer) *TradeHandler {
	return &TradeHandler{transactionService: transactionService}
}

// SwapQuoteRequest represents the swap quote request payload
type SwapQuoteRequest struct {
	SourceToken  string  `json:"source_token" binding:"required"`
	SourceAmount float64 `json:"source_amount" binding:"required,gt=0"`
}

// SwapExecuteRequest represents the swap execution request payload
type SwapExecuteRequest struct {
	WalletID     string  `json:"wallet_id" binding:"required,uuid"`
	SourceChain  string  `json:"source_chain" binding:"required,chain_family"`
	SourceToken  string  `json:"source_token" binding:"required"`
	SourceAmount float64 `json:"source_amount" binding:"required,gt=0"`
}

// BuyQuoteRequest represents the fiat purchase quote request payload
type BuyQuoteRequest struct {
	FiatCurrency string  `json:"fiat_currency" binding:"omitempty,len=3"`
	FiatAmount   float64 `json:"fiat_amount" binding:"required,gt=0"`
}

// BuyExecuteRequest represents the fiat purchase execution request payload
type BuyExecuteRequest struct {
	WalletID          string  `json:"wallet_id" binding:"required,uuid"`
	FiatCurrency      string  `json:"fiat_currency" binding:"omitempty,len=3"`
	FiatAmount        float64 `json:"fiat_amount" binding:"required,gt=0"`
	ExternalReference string  `json:"external_reference" binding:"max=255"`
}

// SwapQuote prices a swap without executing it
// @Summary     Quote a swap
// @Description Get the XRP amount, fees, and bonus for a source-asset swap
// @Tags        trade
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SwapQuoteRequest true "Swap parameters"
// @Success     200 {object} quote.SwapQuote "Quote breakdown"
// @Failure     400 {object} ErrorResponse "Unknown token or invalid amount"
// @Router      /swap/quote [post]
func (h *TradeHandler) SwapQuote(c *gin.Context) {
	var req SwapQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	q, err := h.transactionService.QuoteSwap(req.SourceToken, req.SourceAmount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, q)
}

// SwapExecute executes a swap into XRP
// @Summary     Execute a swap
// @Description Swap a source asset into XRP for one of the user's wallets
// @Tags        trade
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SwapExecuteRequest true "Swap parameters"
// @Success     201 {object} models.Transaction "Completed swap transaction"
// @Failure     400 {object} ErrorResponse "Below minimum or invalid input"
// @Failure     403 {object} ErrorResponse "KYC not approved"
// @Failure     404 {object} ErrorResponse "Wallet not found"
// @Router      /swap/execute [post]
func (h *TradeHandler) SwapExecute(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SwapExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.ExecuteSwap(c.Request.Context(), userID, services.SwapRequest{
		WalletID:     req.WalletID,
		SourceChain:  req.SourceChain,
		SourceToken:  req.SourceToken,
		SourceAmount: req.SourceAmount,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

// BuyQuote prices a fiat purchase without executing it
// @Summary     Quote a fiat purchase
// @Description Get the XRP amount, fees, and bonus for a fiat purchase
// @Tags        trade
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body BuyQuoteRequest true "Purchase parameters"
// @Success     200 {object} quote.FiatQuote "Quote breakdown"
// @Failure     400 {object} ErrorResponse "Invalid amount"
// @Router      /buy/quote [post]
func (h *TradeHandler) BuyQuote(c *gin.Context) {
	var req BuyQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	q, err := h.transactionService.QuoteFiat(req.FiatCurrency, req.FiatAmount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, q)
}

// BuyExecute records a fiat purchase of XRP
// @Summary     Execute a fiat purchase
// @Description Record a pending fiat purchase of XRP for one of the user's wallets
// @Tags        trade
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body BuyExecuteRequest true "Purchase parameters"
// @Success     201 {object} models.Transaction "Pending purchase transaction"
// @Failure     400 {object} ErrorResponse "Below minimum or invalid input"
// @Failure     403 {object} ErrorResponse "KYC not approved"
// @Failure     404 {object} ErrorResponse "Wallet not found"
// @Router      /buy/execute [post]
func (h *TradeHandler) BuyExecute(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BuyExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.ExecuteFiatPurchase(c.Request.Context(), userID, services.FiatPurchaseRequest{
		WalletID:          req.WalletID,
		FiatCurrency:      req.FiatCurrency,
		FiatAmount:        req.FiatAmount,
		ExternalReference: req.ExternalReference,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, transaction)
}
