package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/chassis-price-bot/internal/domain/constants"
	"github.com/yourusername/chassis-price-bot/internal/domain/entity"
	"github.com/yourusername/chassis-price-bot/internal/domain/repository"
	"github.com/yourusername/chassis-price-bot/pkg/logger"
)

var (
	ErrInvalidPrice = errors.New("price must be a positive integer")
	ErrEmptyChassis = errors.New("chassis code is empty")
)

// AppendRequest bitta tasdiqlangan narx
type AppendRequest struct {
	Vehicle       entity.Vehicle
	Price         int64
	SubmitterName string
	ObservedDate  time.Time
	// Location bo'sh bo'lsa ledger default qiymati ishlatiladi
	Location string
}

// LedgerUseCase narx tarixi bilan bog'liq business logic
type LedgerUseCase interface {
	Append(ctx context.Context, req AppendRequest) (entity.PriceObservation, error)
	History(ctx context.Context, chassisCode string) ([]entity.PriceObservation, error)
	Trend(ctx context.Context, chassisCode string) (entity.Trend, error)
	All(ctx context.Context) ([]entity.PriceObservation, error)
	// WaitMirrors blocks until in-flight mirror writes finish.
	WaitMirrors()
}

type ledgerUseCase struct {
	priceRepo     repository.PriceRepository
	notifier      repository.PriceNotifier
	location      string
	mirrorTimeout time.Duration
	mirrorWG      sync.WaitGroup
}

// NewLedgerUseCase yangi LedgerUseCase yaratish. notifier nil bo'lishi mumkin.
func NewLedgerUseCase(
	priceRepo repository.PriceRepository,
	notifier repository.PriceNotifier,
	location string,
	mirrorTimeout time.Duration,
) LedgerUseCase {
	if strings.TrimSpace(location) == "" {
		location = constants.DefaultLocation
	}
	if mirrorTimeout <= 0 {
		mirrorTimeout = constants.DefaultMirrorTimeout
	}
	return &ledgerUseCase{
		priceRepo:     priceRepo,
		notifier:      notifier,
		location:      location,
		mirrorTimeout: mirrorTimeout,
	}
}

// Append ledgerga yozadi, keyin mirrorni alohida goroutine da boshlaydi
func (u *ledgerUseCase) Append(ctx context.Context, req AppendRequest) (entity.PriceObservation, error) {
	code := entity.NormalizeChassis(req.Vehicle.ChassisCode)
	if code == "" {
		return entity.PriceObservation{}, ErrEmptyChassis
	}
	if req.Price <= 0 {
		return entity.PriceObservation{}, ErrInvalidPrice
	}
	observed := req.ObservedDate
	if observed.IsZero() {
		observed = time.Now()
	}
	location := strings.TrimSpace(req.Location)
	if location == "" {
		location = u.location
	}

	obs := entity.PriceObservation{
		ID:            uuid.New().String(),
		ChassisCode:   code,
		ModelName:     req.Vehicle.ModelName,
		Color:         req.Vehicle.Color,
		ModelYear:     req.Vehicle.ModelYear,
		Price:         req.Price,
		ObservedDate:  time.Date(observed.Year(), observed.Month(), observed.Day(), 0, 0, 0, 0, observed.Location()),
		Location:      location,
		SubmitterName: strings.TrimSpace(req.SubmitterName),
	}
	if err := u.priceRepo.Append(ctx, obs); err != nil {
		return entity.PriceObservation{}, fmt.Errorf("failed to append observation: %w", err)
	}

	u.mirror(obs)
	return obs, nil
}

// mirror natijasi hech qachon chaqiruvchiga qaytmaydi
func (u *ledgerUseCase) mirror(obs entity.PriceObservation) {
	if u.notifier == nil {
		return
	}
	u.mirrorWG.Add(1)
	go func() {
		defer u.mirrorWG.Done()
		ctx, cancel := context.WithTimeout(context.Background(), u.mirrorTimeout)
		defer cancel()
		if err := u.notifier.Notify(ctx, obs); err != nil {
			logger.ErrorLogger.Printf("price mirror failed chassis=%s id=%s: %v", obs.ChassisCode, obs.ID, err)
		}
	}()
}

func (u *ledgerUseCase) WaitMirrors() {
	u.mirrorWG.Wait()
}

// History chassis tarixi, qo'shilish tartibida
func (u *ledgerUseCase) History(ctx context.Context, chassisCode string) ([]entity.PriceObservation, error) {
	code := entity.NormalizeChassis(chassisCode)
	if code == "" {
		return nil, ErrEmptyChassis
	}
	hist, err := u.priceRepo.History(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	return hist, nil
}

func (u *ledgerUseCase) Trend(ctx context.Context, chassisCode string) (entity.Trend, error) {
	hist, err := u.History(ctx, chassisCode)
	if err != nil {
		return entity.Trend{}, err
	}
	return entity.ComputeTrend(hist), nil
}

func (u *ledgerUseCase) All(ctx context.Context) ([]entity.PriceObservation, error) {
	return u.priceRepo.All(ctx)
}
