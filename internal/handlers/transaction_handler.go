package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "xrpvault/internal/errors"
	"xrpvault/internal/events"
	"xrpvault/internal/models"
	"xrpvault/internal/pagination"
	"xrpvault/internal/services"
)

// TransactionHandler handles transaction history requests
type TransactionHandler struct {
	transactionService services.TransactionServicer
	hub                *events.Hub
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService services.TransactionServicer, hub *events.Hub) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, hub: hub}
}

// listTransactionsQuery represents the transaction list query parameters
type listTransactionsQuery struct {
	pagination.PageRequest
	Type   string `form:"type" binding:"omitempty,transaction_type"`
	Status string `form:"status" binding:"omitempty,oneof=pending processing completed failed cancelled"`
	From   string `form:"from" binding:"omitempty"`
	To     string `form:"to" binding:"omitempty"`
}

// List returns the user's transaction history
// @Summary     List transactions
// @Description Get the user's transactions, newest first, with optional type/status/date filters
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       type query string false "Transaction type filter"
// @Param       status query string false "Status filter"
// @Param       from query string false "Start date (RFC 3339)"
// @Param       to query string false "End date (RFC 3339)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Transactions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query listTransactionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.TransactionFilter
	if query.Type != "" {
		t := models.TransactionType(query.Type)
		filter.Type = &t
	}
	if query.Status != "" {
		s := models.TransactionStatus(query.Status)
		filter.Status = &s
	}
	if query.From != "" {
		from, err := time.Parse(time.RFC3339, query.From)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid from date"))
			return
		}
		filter.FromDate = &from
	}
	if query.To != "" {
		to, err := time.Parse(time.RFC3339, query.To)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid to date"))
			return
		}
		filter.ToDate = &to
	}

	response, err := h.transactionService.GetUserTransactions(userID, query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Get returns a single transaction
// @Summary     Get a transaction
// @Description Get one of the user's transactions by ID
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// Stream pushes transaction and verification updates over server-sent events
// @Summary     Stream updates
// @Description Subscribe to the user's transaction and verification events as SSE
// @Tags        transactions
// @Produce     text/event-stream
// @Security    BearerAuth
// @Success     200 {string} string "Event stream"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions/stream [get]
func (h *TransactionHandler) Stream(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	ch, cancel := h.hub.Subscribe(userID)
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(event.Type, event)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
