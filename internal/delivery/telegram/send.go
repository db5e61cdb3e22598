package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/chassis-price-bot/internal/domain/constants"
	"github.com/yourusername/chassis-price-bot/internal/usecase"
	"github.com/yourusername/chassis-price-bot/pkg/logger"
)

const telegramTextLimit = 4096

// sendReply orchestrator javobini yuboradi; AddPriceFor bo'lsa tugma oxirgi bo'lakka qo'shiladi
func (h *BotHandler) sendReply(chatID int64, reply usecase.Reply) {
	text := reply.Text
	if strings.TrimSpace(text) == "" {
		logger.ErrorLogger.Printf("⚠️ Bo'sh javob yuborilmoqchi bo'ldi! ChatID: %d", chatID)
		text = "⚠️ Something went wrong. /help for usage."
	}

	chunks := splitIntoChunks(text, telegramTextLimit)
	for i, chunk := range chunks {
		var markup interface{}
		if i == len(chunks)-1 && reply.AddPriceFor != "" {
			if usecase.AddPricePayloadFits(reply.AddPriceFor) {
				markup = addPriceKeyboard(reply.AddPriceFor)
			} else {
				logger.ErrorLogger.Printf("add price button skipped, payload too long chassis=%q", truncateForLog(reply.AddPriceFor, 40))
			}
		}
		if _, err := h.sendText(chatID, chunk, markup); err != nil {
			logger.ErrorLogger.Printf("Xabar yuborishda xatolik: %v", err)
			return
		}
	}
}

// sendMessage oddiy xabar yuborish
func (h *BotHandler) sendMessage(chatID int64, text string) {
	h.sendReply(chatID, usecase.Reply{Text: text})
}

func (h *BotHandler) sendText(chatID int64, text string, replyMarkup interface{}) (tgbotapi.Message, error) {
	if h.api == nil {
		return tgbotapi.Message{}, fmt.Errorf("telegram bot is nil")
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if replyMarkup != nil {
		msg.ReplyMarkup = replyMarkup
	}
	return h.api.Send(msg)
}

func addPriceKeyboard(chassisCode string) tgbotapi.InlineKeyboardMarkup {
	btn := tgbotapi.NewInlineKeyboardButtonData("➕ Add price", constants.AddPriceCallbackPrefix+chassisCode)
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(btn))
}

// splitIntoChunks matnni Telegram limitiga mos bo'lib yuborish uchun bo'ladi
func splitIntoChunks(s string, limit int) []string {
	if limit <= 0 {
		return []string{s}
	}
	var chunks []string
	var current strings.Builder

	for _, r := range s {
		current.WriteRune(r)
		if current.Len() >= limit {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}
