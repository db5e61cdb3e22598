package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/chassis-price-bot/pkg/logger"
)

// handleCommand komandalarni qayta ishlash
func (h *BotHandler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	if message == nil || message.From == nil {
		return
	}
	chatID := message.Chat.ID
	sub := submitterFrom(message.From)
	cmd := strings.ToLower(extractCommand(message))
	args := commandArgs(message)
	logger.InfoLogger.Printf("[command] user=%d cmd=%s args=%q", sub.ID, cmd, truncateForLog(args, 80))

	switch cmd {
	case "start", "help":
		h.sendReply(chatID, h.orchestrator.Help())
	case "find":
		h.sendReply(chatID, h.orchestrator.Find(ctx, sub, args))
	case "model":
		h.sendReply(chatID, h.orchestrator.SearchModel(ctx, args))
	case "price":
		h.sendReply(chatID, h.orchestrator.HandlePriceCommand(ctx, sub, strings.Fields(args)))
	case "history":
		h.sendReply(chatID, h.orchestrator.History(ctx, args))
	case "web":
		h.sendReply(chatID, h.orchestrator.Web())
	case "export":
		h.handleExportCommand(ctx, message)
	default:
		h.sendMessage(chatID, "Unknown command. /help for usage.")
	}
}

func extractCommand(msg *tgbotapi.Message) string {
	if msg == nil {
		return ""
	}
	if msg.IsCommand() {
		return msg.Command()
	}
	txt := strings.TrimSpace(msg.Text)
	if !strings.HasPrefix(txt, "/") {
		return ""
	}
	first := strings.Fields(txt)[0]
	first = strings.TrimPrefix(first, "/")
	if first == "" {
		return ""
	}
	parts := strings.SplitN(first, "@", 2)
	return parts[0]
}

// commandArgs komandadan keyingi matn (entity bo'lmasa ham)
func commandArgs(msg *tgbotapi.Message) string {
	if msg == nil {
		return ""
	}
	if msg.IsCommand() {
		return strings.TrimSpace(msg.CommandArguments())
	}
	txt := strings.TrimSpace(msg.Text)
	if idx := strings.IndexAny(txt, " \t\n"); idx >= 0 {
		return strings.TrimSpace(txt[idx:])
	}
	return ""
}
