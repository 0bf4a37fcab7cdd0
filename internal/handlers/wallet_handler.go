package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "xrpvault/internal/errors"
	"xrpvault/internal/services"
)

// WalletHandler handles wallet-related requests
type WalletHandler struct {
	walletService services.WalletServicer
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(walletService services.WalletServicer) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// GenerateWalletRequest represents the wallet generation request payload
type GenerateWalletRequest struct {
	Name string `json:"name" binding:"max=100"`
}

// ImportWalletRequest represents the wallet import request payload
type ImportWalletRequest struct {
	Name       string `json:"name" binding:"max=100"`
	SeedPhrase string `json:"seed_phrase" binding:"required"`
}

// Generate creates a wallet from a fresh seed phrase
// @Summary     Generate a wallet
// @Description Create a wallet with a newly generated recovery phrase. The phrase is returned once and never stored.
// @Tags        wallets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body GenerateWalletRequest true "Wallet name"
// @Success     201 {object} services.GeneratedWallet "Created wallet and its recovery phrase"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /wallets/generate [post]
func (h *WalletHandler) Generate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req GenerateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	generated, err := h.walletService.GenerateWallet(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, generated)
}

// Import creates a wallet from an existing seed phrase
// @Summary     Import a wallet
// @Description Import a wallet from a 12 or 24 word recovery phrase
// @Tags        wallets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ImportWalletRequest true "Wallet name and recovery phrase"
// @Success     201 {object} models.Wallet "Imported wallet"
// @Failure     400 {object} ErrorResponse "Invalid recovery phrase"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Wallet already imported"
// @Router      /wallets/import [post]
func (h *WalletHandler) Import(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ImportWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	wallet, err := h.walletService.ImportWallet(c.Request.Context(), userID, req.Name, req.SeedPhrase)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, wallet)
}

// List returns the user's wallets
// @Summary     List wallets
// @Description Get all wallets belonging to the authenticated user
// @Tags        wallets
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Wallet "Wallets"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /wallets [get]
func (h *WalletHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	wallets, err := h.walletService.GetUserWallets(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"wallets": wallets})
}

// Get returns a single wallet
// @Summary     Get a wallet
// @Description Get one of the user's wallets by ID
// @Tags        wallets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Wallet ID"
// @Success     200 {object} models.Wallet "Wallet"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wallet not found"
// @Router      /wallets/{id} [get]
func (h *WalletHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	wallet, err := h.walletService.GetWalletByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, wallet)
}

// Delete removes a wallet
// @Summary     Delete a wallet
// @Description Delete one of the user's wallets by ID
// @Tags        wallets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Wallet ID"
// @Success     204 "Wallet deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wallet not found"
// @Router      /wallets/{id} [delete]
func (h *WalletHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.walletService.DeleteWallet(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
