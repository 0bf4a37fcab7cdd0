package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"xrpvault/internal/logger"
	"xrpvault/internal/services"
)

// defaultRejectionReason is attached when a reviewer rejects without
// supplying one through the bot.
const defaultRejectionReason = "Verification rejected by reviewer"

// TelegramHandler receives Bot API webhook updates for the admin review
// channel.
type TelegramHandler struct {
	kycService services.KYCServicer
	notifier   services.TelegramNotifier
	secret     string
}

// NewTelegramHandler creates a new TelegramHandler. The secret must match
// the secret_token registered with setWebhook.
func NewTelegramHandler(kycService services.KYCServicer, notifier services.TelegramNotifier, secret string) *TelegramHandler {
	return &TelegramHandler{kycService: kycService, notifier: notifier, secret: secret}
}

// telegramUpdate is the subset of the Bot API update we consume.
type telegramUpdate struct {
	UpdateID      int64 `json:"update_id"`
	CallbackQuery *struct {
		ID      string `json:"id"`
		Data    string `json:"data"`
		Message *struct {
			MessageID int64  `json:"message_id"`
			Text      string `json:"text"`
			Chat      struct {
				ID int64 `json:"id"`
			} `json:"chat"`
		} `json:"message"`
	} `json:"callback_query"`
}

// Webhook handles inline button callbacks from the review channel
// @Summary     Telegram webhook
// @Description Receive Bot API updates and apply reviewer decisions
// @Tags        telegram
// @Accept      json
// @Produce     json
// @Success     200 {object} map[string]bool "Acknowledged"
// @Failure     401 {object} ErrorResponse "Bad secret token"
// @Router      /telegram/webhook [post]
func (h *TelegramHandler) Webhook(c *gin.Context) {
	if h.secret == "" || c.GetHeader("X-Telegram-Bot-Api-Secret-Token") != h.secret {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false})
		return
	}

	var update telegramUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		// Telegram retries failed deliveries; acknowledge and drop.
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	if update.CallbackQuery == nil {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	ctx := c.Request.Context()
	cb := update.CallbackQuery
	action, userID, found := strings.Cut(cb.Data, ":")
	if !found || userID == "" {
		h.answer(c, cb.ID, "Unrecognized action")
		return
	}

	var outcome string
	var err error
	switch action {
	case services.CallbackApproveKYC:
		_, err = h.kycService.Approve(ctx, userID)
		outcome = "✅ Approved"
	case services.CallbackRejectKYC:
		_, err = h.kycService.Reject(ctx, userID, defaultRejectionReason)
		outcome = "❌ Rejected"
	default:
		h.answer(c, cb.ID, "Unrecognized action")
		return
	}

	if err != nil {
		logger.Get().Warnw("kyc review action failed",
			"action", action,
			"user_id", userID,
			"error", err,
		)
		h.answer(c, cb.ID, "Action failed: "+err.Error())
		return
	}

	if cb.Message != nil {
		chatID := strconv.FormatInt(cb.Message.Chat.ID, 10)
		text := fmt.Sprintf("%s\n\n%s", cb.Message.Text, outcome)
		if err := h.notifier.EditMessageText(ctx, chatID, cb.Message.MessageID, text); err != nil {
			logger.Get().Warnw("review card update failed", "error", err)
		}
	}

	h.answer(c, cb.ID, outcome)
}

// answer acknowledges the callback and completes the webhook exchange.
func (h *TelegramHandler) answer(c *gin.Context, callbackID, text string) {
	if err := h.notifier.AnswerCallback(c.Request.Context(), callbackID, text); err != nil {
		logger.Get().Warnw("callback acknowledgement failed", "error", err)
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
