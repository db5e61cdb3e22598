package repository

import (
	"context"
	"time"

	"github.com/yourusername/chassis-price-bot/internal/domain/entity"
)

// CatalogRepository statik mashina katalogi (faqat o'qish uchun)
type CatalogRepository interface {
	// FindByCode exact match, case-insensitive, whitespace-trimmed
	FindByCode(ctx context.Context, code string) (*entity.Vehicle, bool)

	// FindByModel substring qidiruv, katalog tartibi saqlanadi
	FindByModel(ctx context.Context, query string) []entity.Vehicle

	// All returns every vehicle in catalog order.
	All(ctx context.Context) []entity.Vehicle
}

// PriceRepository append-only narx ledgeri
type PriceRepository interface {
	Append(ctx context.Context, obs entity.PriceObservation) error
	History(ctx context.Context, chassisCode string) ([]entity.PriceObservation, error)
	All(ctx context.Context) ([]entity.PriceObservation, error)
}

// PendingRepository per-submitter pending confirmation state
type PendingRepository interface {
	// Set overwrites any existing entry for the submitter.
	Set(entry entity.PendingEntry)
	// Take atomically reads and removes the entry.
	Take(submitterID int64) (entity.PendingEntry, bool)
	Peek(submitterID int64) bool
	State(submitterID int64) entity.SubmitterState
	// Sweep removes entries created before cutoff and returns how many were dropped.
	Sweep(cutoff time.Time) int
}

// PriceNotifier tashqi sinkga (spreadsheet webhook) narxni ko'chiradi
type PriceNotifier interface {
	Notify(ctx context.Context, obs entity.PriceObservation) error
}
