package telegram

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/chassis-price-bot/internal/usecase"
)

// messenger tgbotapi.BotAPI ning biz ishlatadigan qismi
type messenger interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// BotHandler Telegram bot handler
type BotHandler struct {
	bot          *tgbotapi.BotAPI
	api          messenger
	orchestrator *usecase.Orchestrator
	ledger       usecase.LedgerUseCase

	// pendingTTL 0 bo'lsa tozalash ishlamaydi
	pendingTTL   time.Duration
	botStartedAt time.Time
}

// NewBotHandler yangi bot handler yaratish
func NewBotHandler(
	token string,
	orchestrator *usecase.Orchestrator,
	ledger usecase.LedgerUseCase,
	pendingTTL time.Duration,
) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	return newHandler(bot, bot, orchestrator, ledger, pendingTTL), nil
}

func newHandler(bot *tgbotapi.BotAPI, api messenger, orchestrator *usecase.Orchestrator, ledger usecase.LedgerUseCase, pendingTTL time.Duration) *BotHandler {
	return &BotHandler{
		bot:          bot,
		api:          api,
		orchestrator: orchestrator,
		ledger:       ledger,
		pendingTTL:   pendingTTL,
		botStartedAt: time.Now(),
	}
}

// GetBotUsername returns the bot's username from Telegram API state.
func (h *BotHandler) GetBotUsername() string {
	if h.bot == nil {
		return ""
	}
	return h.bot.Self.UserName
}
