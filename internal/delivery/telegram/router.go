package telegram

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/chassis-price-bot/pkg/logger"
)

// Start botni ishga tushirish. Update lar bittadan, kelgan tartibda qayta ishlanadi.
func (h *BotHandler) Start(ctx context.Context) error {
	if h.bot == nil {
		return errors.New("telegram bot is nil")
	}
	go h.cleanupPending(ctx)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *BotHandler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorLogger.Printf("[router] panic update=%d: %v", update.UpdateID, r)
		}
	}()

	if update.CallbackQuery != nil {
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}
	if update.Message == nil {
		return
	}
	h.handleMessage(ctx, update.Message)
}

// handleMessage xabarni qayta ishlash
func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message == nil || message.From == nil || message.Chat == nil {
		return
	}
	sub := submitterFrom(message.From)

	if message.IsCommand() || strings.HasPrefix(strings.TrimSpace(message.Text), "/") {
		h.handleCommand(ctx, message)
		return
	}

	if len(message.Photo) > 0 {
		photo := largestPhoto(message.Photo)
		logger.InfoLogger.Printf("[router] photo user=%d chat=%d caption=%q", sub.ID, message.Chat.ID, truncateForLog(message.Caption, 80))
		h.sendReply(message.Chat.ID, h.orchestrator.HandlePhoto(ctx, sub, message.Caption, photo))
		return
	}

	if strings.TrimSpace(message.Text) != "" {
		h.sendReply(message.Chat.ID, h.orchestrator.HandleText(ctx, sub, message.Text))
	}
}
