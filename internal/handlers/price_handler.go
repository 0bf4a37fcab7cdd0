package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"xrpvault/internal/pricing"
)

// PriceHandler serves the current price snapshot
type PriceHandler struct {
	prices *pricing.Service
}

// NewPriceHandler creates a new PriceHandler
func NewPriceHandler(prices *pricing.Service) *PriceHandler {
	return &PriceHandler{prices: prices}
}

// Get returns current token prices
// @Summary     Get prices
// @Description Get the current USD price snapshot for all supported tokens
// @Tags        prices
// @Produce     json
// @Success     200 {object} pricing.Snapshot "Price snapshot"
// @Router      /prices [get]
func (h *PriceHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.prices.Snapshot())
}
