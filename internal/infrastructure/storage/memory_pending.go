package storage

import (
	"sync"
	"time"

	"github.com/yourusername/chassis-price-bot/internal/domain/entity"
	"github.com/yourusername/chassis-price-bot/internal/domain/repository"
)

type memoryPendingRepository struct {
	mu      sync.Mutex
	states  map[int64]entity.SubmitterState
	entries map[int64]entity.PendingEntry
}

// NewMemoryPendingRepository submitter bo'yicha pending holatlarni saqlaydi
func NewMemoryPendingRepository() repository.PendingRepository {
	return &memoryPendingRepository{
		states:  make(map[int64]entity.SubmitterState),
		entries: make(map[int64]entity.PendingEntry),
	}
}

// apply o'tish jadvalini qo'llaydi. Mutex ushlangan bo'lishi kerak.
func (m *memoryPendingRepository) apply(submitterID int64, ev entity.StateEvent) bool {
	next, ok := m.states[submitterID].Next(ev)
	if !ok {
		return false
	}
	if next == entity.StateIdle {
		delete(m.states, submitterID)
		delete(m.entries, submitterID)
		return true
	}
	m.states[submitterID] = next
	return true
}

// Set oldingi yozuvni almashtiradi (last-write-wins)
func (m *memoryPendingRepository) Set(entry entity.PendingEntry) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.apply(entry.SubmitterID, entity.EventIdentified) {
		m.entries[entry.SubmitterID] = entry
	}
}

// Take o'qiydi va o'chiradi
func (m *memoryPendingRepository) Take(submitterID int64) (entity.PendingEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := m.entries[submitterID]
	if !m.apply(submitterID, entity.EventPriceConfirmed) {
		return entity.PendingEntry{}, false
	}
	return entry, true
}

func (m *memoryPendingRepository) Peek(submitterID int64) bool {
	return m.State(submitterID) == entity.StateAwaitingPrice
}

// State submitter holati; yozuv bo'lmasa Idle
func (m *memoryPendingRepository) State(submitterID int64) entity.SubmitterState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.states[submitterID]
}

// Sweep eski pending yozuvlarni tozalash
func (m *memoryPendingRepository) Sweep(cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, e := range m.entries {
		if e.CreatedAt.Before(cutoff) && m.apply(id, entity.EventExpired) {
			removed++
		}
	}
	return removed
}
