package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/yourusername/chassis-price-bot/internal/chassis"
	"github.com/yourusername/chassis-price-bot/internal/domain/constants"
	"github.com/yourusername/chassis-price-bot/internal/domain/entity"
	"github.com/yourusername/chassis-price-bot/internal/domain/repository"
	"github.com/yourusername/chassis-price-bot/pkg/logger"
)

// Submitter narx yuboruvchi foydalanuvchi
type Submitter struct {
	ID   int64
	Name string
}

// Reply transportga qaytariladigan javob. AddPriceFor bo'sh bo'lmasa
// bitta "add price" tugmasi qo'shiladi.
type Reply struct {
	Text        string
	AddPriceFor string
}

// OrchestratorOptions optional settings
type OrchestratorOptions struct {
	WebURL string
	// Now sana manbai (testlar uchun)
	Now func() time.Time
}

// Orchestrator Idle / AwaitingPrice holat mashinasi. Har bir event oxirigacha
// qayta ishlanadi, keyingisi kutadi.
type Orchestrator struct {
	mu      sync.Mutex
	catalog repository.CatalogRepository
	ledger  LedgerUseCase
	pending repository.PendingRepository
	webURL  string
	now     func() time.Time
}

// NewOrchestrator yangi Orchestrator yaratish
func NewOrchestrator(
	catalog repository.CatalogRepository,
	ledger LedgerUseCase,
	pending repository.PendingRepository,
	opts OrchestratorOptions,
) *Orchestrator {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Orchestrator{
		catalog: catalog,
		ledger:  ledger,
		pending: pending,
		webURL:  strings.TrimSpace(opts.WebURL),
		now:     now,
	}
}

// State returns the current interaction state of a submitter.
func (o *Orchestrator) State(submitterID int64) entity.SubmitterState {
	return o.pending.State(submitterID)
}

// HandleText oddiy matn: AwaitingPrice holatida sof raqam narx deb olinadi,
// qolgan hamma narsa chassis qidiruviga tushadi.
func (o *Orchestrator) HandleText(ctx context.Context, sub Submitter, text string) Reply {
	o.mu.Lock()
	defer o.mu.Unlock()

	text = strings.TrimSpace(text)
	awaiting := o.pending.Peek(sub.ID)

	if awaiting && chassis.LooksLikePrice(text) {
		if price, ok := chassis.ParsePrice(text); ok {
			if entry, ok := o.pending.Take(sub.ID); ok {
				logger.InfoLogger.Printf("[orchestrator] user=%d pending price chassis=%s price=%d", sub.ID, entry.Vehicle.ChassisCode, price)
				return o.record(ctx, sub, entry.Vehicle, price)
			}
		}
	}

	code, ok := chassis.Extract(text)
	if !ok {
		if awaiting {
			logger.InfoLogger.Printf("[orchestrator] user=%d rejected text while awaiting price", sub.ID)
			return Reply{Text: invalidPriceMsg}
		}
		return Reply{Text: noChassisText}
	}
	return o.lookup(ctx, sub, code)
}

// HandlePhoto rasm + caption. Katalogdagi chassis va caption ichida narx bo'lsa
// darhol saqlanadi, aks holda pending yoziladi.
func (o *Orchestrator) HandlePhoto(ctx context.Context, sub Submitter, caption, photoRef string) Reply {
	o.mu.Lock()
	defer o.mu.Unlock()

	code, ok := chassis.Extract(caption)
	if !ok {
		logger.InfoLogger.Printf("[orchestrator] user=%d photo without chassis", sub.ID)
		return Reply{Text: noChassisText}
	}

	vehicle, found := o.resolve(ctx, code)
	if found {
		if price, ok := chassis.BundledPrice(caption, code); ok {
			// yangi identifikatsiya eski pending yozuvni bekor qiladi
			if prev, ok := o.pending.Take(sub.ID); ok {
				logger.InfoLogger.Printf("[orchestrator] user=%d dropped pending chassis=%s", sub.ID, prev.Vehicle.ChassisCode)
			}
			logger.InfoLogger.Printf("[orchestrator] user=%d photo with price chassis=%s price=%d", sub.ID, code, price)
			return o.record(ctx, sub, vehicle, price)
		}
	}

	o.pending.Set(entity.PendingEntry{
		SubmitterID: sub.ID,
		Vehicle:     vehicle,
		PhotoRef:    photoRef,
		CreatedAt:   o.now(),
	})
	logger.InfoLogger.Printf("[orchestrator] user=%d awaiting price chassis=%s known=%v", sub.ID, code, found)
	return Reply{Text: vehicleCard(vehicle) + "\n💴 Send the price now (e.g. 150000)."}
}

// HandlePriceCommand /price CHASSIS PRICE. Holat mashinasini chetlab o'tadi.
func (o *Orchestrator) HandlePriceCommand(ctx context.Context, sub Submitter, args []string) Reply {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(args) < 2 {
		return Reply{Text: priceUsageText}
	}
	code := entity.NormalizeChassis(args[0])
	price, ok := chassis.ParsePrice(strings.Join(args[1:], " "))
	if code == "" || !ok {
		return Reply{Text: priceUsageText}
	}
	vehicle, _ := o.resolve(ctx, code)
	logger.InfoLogger.Printf("[orchestrator] user=%d price command chassis=%s price=%d", sub.ID, code, price)
	return o.record(ctx, sub, vehicle, price)
}

// HandleAddPriceAction inline tugma: to'g'ridan-to'g'ri AwaitingPrice holatiga o'tadi.
func (o *Orchestrator) HandleAddPriceAction(ctx context.Context, sub Submitter, payload string) Reply {
	o.mu.Lock()
	defer o.mu.Unlock()

	code := entity.NormalizeChassis(strings.TrimPrefix(payload, constants.AddPriceCallbackPrefix))
	if code == "" || !strings.HasPrefix(payload, constants.AddPriceCallbackPrefix) {
		return Reply{Text: "⚠️ Unknown action."}
	}
	vehicle, _ := o.resolve(ctx, code)
	o.pending.Set(entity.PendingEntry{
		SubmitterID: sub.ID,
		Vehicle:     vehicle,
		CreatedAt:   o.now(),
	})
	logger.InfoLogger.Printf("[orchestrator] user=%d add price action chassis=%s", sub.ID, code)
	return Reply{Text: fmt.Sprintf("💴 Send the price for %s (e.g. 150000).", code)}
}

// Find /find CHASSIS
func (o *Orchestrator) Find(ctx context.Context, sub Submitter, query string) Reply {
	o.mu.Lock()
	defer o.mu.Unlock()

	query = strings.TrimSpace(query)
	if query == "" {
		return Reply{Text: "❗ Usage: /find CHASSIS (e.g. /find NT32-504837)"}
	}
	code, ok := chassis.Extract(query)
	if !ok {
		logger.InfoLogger.Printf("[orchestrator] user=%d find without chassis", sub.ID)
		return Reply{Text: noChassisText}
	}
	return o.lookup(ctx, sub, code)
}

// SearchModel /model QUERY
func (o *Orchestrator) SearchModel(ctx context.Context, query string) Reply {
	o.mu.Lock()
	defer o.mu.Unlock()

	query = strings.TrimSpace(query)
	if query == "" {
		return Reply{Text: "❗ Usage: /model NAME (e.g. /model xtrail)"}
	}
	return Reply{Text: modelListText(query, o.catalog.FindByModel(ctx, query))}
}

// History /history CHASSIS
func (o *Orchestrator) History(ctx context.Context, query string) Reply {
	o.mu.Lock()
	defer o.mu.Unlock()

	code, ok := chassis.Extract(query)
	if !ok {
		code = entity.NormalizeChassis(query)
	}
	if code == "" {
		return Reply{Text: "❗ Usage: /history CHASSIS (e.g. /history NT32-504837)"}
	}
	tr, err := o.ledger.Trend(ctx, code)
	if err != nil {
		logger.ErrorLogger.Printf("[orchestrator] history chassis=%s: %v", code, err)
		return Reply{Text: "⚠️ Could not load the history."}
	}
	return Reply{Text: historyText(code, tr)}
}

// Web /web
func (o *Orchestrator) Web() Reply {
	if o.webURL == "" {
		return Reply{Text: "🌐 No spreadsheet link is configured."}
	}
	return Reply{Text: "🌐 Price sheet: " + o.webURL}
}

// Help /start va /help
func (o *Orchestrator) Help() Reply {
	return Reply{Text: usageText}
}

// ExpirePending drops pending entries older than ttl.
func (o *Orchestrator) ExpirePending(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.pending.Sweep(o.now().Add(-ttl))
}

// resolve katalogda bo'lmasa UNKNOWN sentinel qaytaradi
func (o *Orchestrator) resolve(ctx context.Context, code string) (entity.Vehicle, bool) {
	if v, ok := o.catalog.FindByCode(ctx, code); ok {
		return *v, true
	}
	return entity.UnknownVehicle(code), false
}

// lookup matn bo'yicha topilgan chassis: holat o'zgarmaydi, faqat tugma taklif qilinadi
func (o *Orchestrator) lookup(ctx context.Context, sub Submitter, code string) Reply {
	vehicle, found := o.resolve(ctx, code)
	logger.InfoLogger.Printf("[orchestrator] user=%d lookup chassis=%s found=%v", sub.ID, code, found)
	reply := Reply{Text: vehicleCard(vehicle)}
	if !found {
		reply.Text = fmt.Sprintf("❌ %s not found in the catalog.\nYou can still record a price for it.", vehicle.ChassisCode)
	}
	if AddPricePayloadFits(vehicle.ChassisCode) {
		reply.AddPriceFor = vehicle.ChassisCode
	}
	return reply
}

// AddPricePayloadFits reports whether the add-price payload for code stays within
// Telegram's callback_data limit.
func AddPricePayloadFits(code string) bool {
	return code != "" && len(constants.AddPriceCallbackPrefix)+len(code) <= constants.MaxCallbackDataBytes
}

func (o *Orchestrator) record(ctx context.Context, sub Submitter, vehicle entity.Vehicle, price int64) Reply {
	obs, err := o.ledger.Append(ctx, AppendRequest{
		Vehicle:       vehicle,
		Price:         price,
		SubmitterName: sub.Name,
		ObservedDate:  o.now(),
	})
	if err != nil {
		logger.ErrorLogger.Printf("[orchestrator] user=%d append failed chassis=%s: %v", sub.ID, vehicle.ChassisCode, err)
		return Reply{Text: saveFailedText}
	}
	tr, err := o.ledger.Trend(ctx, obs.ChassisCode)
	if err != nil {
		tr = entity.ComputeTrend([]entity.PriceObservation{obs})
	}
	return Reply{Text: savedText(obs, tr)}
}
