package storage

import (
	"context"
	"sync"

	"github.com/yourusername/chassis-price-bot/internal/domain/entity"
	"github.com/yourusername/chassis-price-bot/internal/domain/repository"
)

type memoryPriceRepository struct {
	mu     sync.RWMutex
	ledger []entity.PriceObservation
}

// NewMemoryPriceRepository in-memory append-only ledger (restartda yo'qoladi)
func NewMemoryPriceRepository() repository.PriceRepository {
	return &memoryPriceRepository{}
}

// Append ledger oxiriga qo'shish
func (m *memoryPriceRepository) Append(ctx context.Context, obs entity.PriceObservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ledger = append(m.ledger, obs)
	return nil
}

// History chassis bo'yicha qo'shilish tartibida
func (m *memoryPriceRepository) History(ctx context.Context, chassisCode string) ([]entity.PriceObservation, error) {
	code := entity.NormalizeChassis(chassisCode)

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []entity.PriceObservation{}
	for _, obs := range m.ledger {
		if obs.ChassisCode == code {
			out = append(out, obs)
		}
	}
	return out, nil
}

// All butun ledger nusxasi
func (m *memoryPriceRepository) All(ctx context.Context) ([]entity.PriceObservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]entity.PriceObservation, len(m.ledger))
	copy(out, m.ledger)
	return out, nil
}
