package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	apperrors "xrpvault/internal/errors"
	"xrpvault/internal/logger"
	"xrpvault/internal/metrics"
	"xrpvault/internal/models"
)

const telegramAPIBase = "https://api.telegram.org"

// Callback actions embedded in inline keyboard buttons. The payload format
// is "<action>:<userID>".
const (
	CallbackApproveKYC = "kyc_approve"
	CallbackRejectKYC  = "kyc_reject"
)

// inlineKeyboardButton is one button of a Telegram inline keyboard.
type inlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

// telegramService sends admin notifications through the Telegram Bot API.
// When no bot token or chat ID is configured every send is a silent no-op,
// so business flows never depend on Telegram being set up.
type telegramService struct {
	client *resty.Client
	token  string
	chatID string
}

// NewTelegramService creates a new TelegramNotifier. Pass empty token or
// chatID to disable sends.
func NewTelegramService(token, chatID string) TelegramNotifier {
	client := resty.New().
		SetBaseURL(telegramAPIBase).
		SetTimeout(10 * time.Second)
	return &telegramService{client: client, token: token, chatID: chatID}
}

// Enabled reports whether the notifier is configured to send.
func (s *telegramService) Enabled() bool {
	return s.token != "" && s.chatID != ""
}

// call invokes one Bot API method with a JSON body.
func (s *telegramService) call(ctx context.Context, method string, body map[string]interface{}) error {
	if !s.Enabled() {
		return nil
	}

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		Post(fmt.Sprintf("/bot%s/%s", s.token, method))
	if err != nil {
		metrics.TelegramSendTotal.WithLabelValues("failure").Inc()
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if resp.IsError() || !result.OK {
		metrics.TelegramSendTotal.WithLabelValues("failure").Inc()
		logger.Get().Warnw("telegram api call failed",
			"method", method,
			"status", resp.StatusCode(),
			"description", result.Description,
		)
		return apperrors.WithMessage(apperrors.ErrInternalServer, "telegram api call failed")
	}

	metrics.TelegramSendTotal.WithLabelValues("success").Inc()
	return nil
}

// NotifyText sends a plain HTML-formatted message to the admin chat.
func (s *telegramService) NotifyText(ctx context.Context, text string) error {
	return s.call(ctx, "sendMessage", map[string]interface{}{
		"chat_id":    s.chatID,
		"text":       text,
		"parse_mode": "HTML",
	})
}

// NotifyKYCSubmission posts a review card for a submitted verification with
// inline approve and reject buttons. Button callbacks carry the user ID so
// the webhook can resolve the record.
func (s *telegramService) NotifyKYCSubmission(ctx context.Context, user *models.User, kyc *models.KYCVerification) error {
	text := fmt.Sprintf(
		"🪪 <b>KYC submission</b>\n"+
			"Email: %s\n"+
			"Name: %s %s\n"+
			"Date of birth: %s\n"+
			"Country: %s\n"+
			"Document: %s",
		user.Email,
		kyc.FirstName, kyc.LastName,
		kyc.DateOfBirth,
		kyc.Country,
		kyc.DocumentType,
	)

	keyboard := [][]inlineKeyboardButton{{
		{Text: "✅ Approve", CallbackData: fmt.Sprintf("%s:%s", CallbackApproveKYC, user.ID)},
		{Text: "❌ Reject", CallbackData: fmt.Sprintf("%s:%s", CallbackRejectKYC, user.ID)},
	}}

	return s.call(ctx, "sendMessage", map[string]interface{}{
		"chat_id":      s.chatID,
		"text":         text,
		"parse_mode":   "HTML",
		"reply_markup": map[string]interface{}{"inline_keyboard": keyboard},
	})
}

// AnswerCallback acknowledges an inline button press so the client stops
// showing a spinner.
func (s *telegramService) AnswerCallback(ctx context.Context, callbackID, text string) error {
	return s.call(ctx, "answerCallbackQuery", map[string]interface{}{
		"callback_query_id": callbackID,
		"text":              text,
	})
}

// EditMessageText replaces the text of a previously sent message, used to
// stamp review cards with their outcome and drop the buttons.
func (s *telegramService) EditMessageText(ctx context.Context, chatID string, messageID int64, text string) error {
	return s.call(ctx, "editMessageText", map[string]interface{}{
		"chat_id":    chatID,
		"message_id": messageID,
		"text":       text,
		"parse_mode": "HTML",
	})
}
