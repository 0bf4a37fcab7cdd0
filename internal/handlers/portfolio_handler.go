package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"xrpvault/internal/portfolio"
	"xrpvault/internal/pricing"
	"xrpvault/internal/services"
)

// PortfolioHandler handles portfolio aggregation requests
type PortfolioHandler struct {
	walletService services.WalletServicer
	aggregator    *portfolio.Aggregator
	prices        *pricing.Service
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(walletService services.WalletServicer, aggregator *portfolio.Aggregator, prices *pricing.Service) *PortfolioHandler {
	return &PortfolioHandler{walletService: walletService, aggregator: aggregator, prices: prices}
}

// Get returns the user's aggregated portfolio
// @Summary     Get portfolio
// @Description Aggregate live balances and USD values across all of the user's wallets
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} portfolio.Result "Aggregated portfolio"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /portfolio [get]
func (h *PortfolioHandler) Get(c *gin.Context) {
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

	result, err := h.aggregator.Aggregate(c.Request.Context(), wallets)
	if err != nil {
		// Return the retained result rather than an empty portfolio.
		c.JSON(http.StatusOK, gin.H{"portfolio": result, "stale": true})
		return
	}

	snapshot := h.prices.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"portfolio": result,
		"prices_at": snapshot.Timestamp,
		"stale":     snapshot.Fallback,
	})
}
