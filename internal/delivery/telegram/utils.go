package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/chassis-price-bot/internal/usecase"
)

func submitterFrom(u *tgbotapi.User) usecase.Submitter {
	if u == nil {
		return usecase.Submitter{}
	}
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		name = u.UserName
	}
	return usecase.Submitter{ID: u.ID, Name: name}
}

// largestPhoto eng katta o'lchamdagi rasmning FileID si
func largestPhoto(sizes []tgbotapi.PhotoSize) string {
	best := -1
	var id string
	for _, p := range sizes {
		if area := p.Width * p.Height; area > best {
			best = area
			id = p.FileID
		}
	}
	return id
}

func truncateForLog(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "…"
}
