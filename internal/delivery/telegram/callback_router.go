package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/chassis-price-bot/internal/domain/constants"
	"github.com/yourusername/chassis-price-bot/pkg/logger"
)

// Callback query larini qayta ishlash
func (h *BotHandler) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq == nil || cq.From == nil {
		return
	}

	// Callback ga javob (spinnerni to'xtatish)
	callback := tgbotapi.NewCallback(cq.ID, "")
	if _, err := h.api.Request(callback); err != nil {
		logger.ErrorLogger.Printf("Callback javobida xatolik: %v", err)
	}

	chatID := cq.From.ID
	if cq.Message != nil && cq.Message.Chat != nil {
		chatID = cq.Message.Chat.ID
	}

	if strings.HasPrefix(cq.Data, constants.AddPriceCallbackPrefix) {
		sub := submitterFrom(cq.From)
		logger.InfoLogger.Printf("[callback] user=%d data=%s", sub.ID, cq.Data)
		h.clearInlineButtons(cq)
		h.sendReply(chatID, h.orchestrator.HandleAddPriceAction(ctx, sub, cq.Data))
		return
	}

	logger.InfoLogger.Printf("[callback] unknown data=%q user=%d", cq.Data, cq.From.ID)
}
