package telegram

import (
	"context"
	"time"

	"github.com/yourusername/chassis-price-bot/internal/domain/constants"
	"github.com/yourusername/chassis-price-bot/pkg/logger"
)

// cleanupPending - muddati o'tgan pending narxlarni tozalash
func (h *BotHandler) cleanupPending(ctx context.Context) {
	if h.pendingTTL <= 0 {
		return
	}
	ticker := time.NewTicker(constants.PendingSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := h.orchestrator.ExpirePending(h.pendingTTL); n > 0 {
				logger.InfoLogger.Printf("♻️ %d ta pending narx tozalandi (ttl=%s)", n, h.pendingTTL)
			}
		}
	}
}
