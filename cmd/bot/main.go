package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/chassis-price-bot/config"
	"github.com/yourusername/chassis-price-bot/internal/delivery/telegram"
	"github.com/yourusername/chassis-price-bot/internal/domain/entity"
	"github.com/yourusername/chassis-price-bot/internal/domain/repository"
	"github.com/yourusername/chassis-price-bot/internal/infrastructure/parser"
	"github.com/yourusername/chassis-price-bot/internal/infrastructure/storage"
	"github.com/yourusername/chassis-price-bot/internal/infrastructure/webhook"
	"github.com/yourusername/chassis-price-bot/internal/usecase"
	"github.com/yourusername/chassis-price-bot/pkg/logger"
)

func main() {
	initDefaultTimezone()

	// Konfiguratsiyani yuklash
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Konfiguratsiya yuklanmadi: %v", err)
	}

	// Logger ni ishga tushirish
	logger.Init(cfg.LogLevel)
	defer logger.Sync()
	logger.InfoLogger.Println("🚀 Ilova ishga tushmoqda...")

	logger.L().Info("config loaded",
		zap.String("location", cfg.Location),
		zap.Bool("sheet_mirror", cfg.SheetWebhookURL != ""),
		zap.Bool("postgres", cfg.PostgresDSN != ""),
		zap.Duration("pending_ttl", cfg.PendingTTL),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if cfg.AllowEmptySecrets && isEmptyOrDisabled(cfg.TelegramToken) {
		logger.InfoLogger.Println("Secretlar yetishmayapti (TELEGRAM_BOT_TOKEN). Bot vaqtincha ishga tushmaydi.")
		<-sigChan
		return
	}

	// 1. Katalog
	vehicles, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("❌ Katalog yuklanmadi: %v", err)
	}
	logger.InfoLogger.Printf("✅ Katalog tayyor: %d ta mashina", len(vehicles))

	// 2. Repositories
	catalogRepo := storage.NewMemoryCatalogRepository(vehicles)
	priceRepo := storage.NewPriceRepository(cfg.PostgresDSN)
	pendingRepo := storage.NewMemoryPendingRepository()
	logger.InfoLogger.Println("✅ Repositories tayyor")

	// 3. Sheet mirror (ixtiyoriy)
	var notifier repository.PriceNotifier
	if n := webhook.NewSheetNotifier(cfg.SheetWebhookURL, cfg.SheetWebhookKey, cfg.SheetWebhookTimeout); n != nil {
		notifier = n
		logger.InfoLogger.Println("✅ Sheet mirror yoqildi")
	}

	// 4. Use cases
	ledger := usecase.NewLedgerUseCase(priceRepo, notifier, cfg.Location, cfg.SheetWebhookTimeout)
	orchestrator := usecase.NewOrchestrator(catalogRepo, ledger, pendingRepo, usecase.OrchestratorOptions{
		WebURL: cfg.SheetWebURL,
	})
	logger.InfoLogger.Println("✅ Use cases tayyor")

	// 5. Telegram bot handler
	botHandler, err := telegram.NewBotHandler(cfg.TelegramToken, orchestrator, ledger, cfg.PendingTTL)
	if err != nil {
		log.Fatalf("❌ Bot handler yaratilmadi: %v", err)
	}
	logger.InfoLogger.Printf("✅ Telegram bot tayyor: @%s", botHandler.GetBotUsername())

	// Context yaratish
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Botni alohida goroutine da ishga tushirish
	botDone := make(chan struct{})
	go func() {
		defer close(botDone)
		if err := botHandler.Start(ctx); err != nil && err != context.Canceled {
			logger.ErrorLogger.Printf("❌ Bot xatosi: %v", err)
		}
	}()

	logger.InfoLogger.Println("🤖 Bot ishlayapti. To'xtatish uchun Ctrl+C ni bosing.")

	// Signal kutish
	<-sigChan
	logger.InfoLogger.Println("⏳ To'xtatish signali qabul qilindi...")

	// Graceful shutdown
	cancel()
	// Start qaytgandan keyin yangi mirror boshlanmaydi
	<-botDone
	ledger.WaitMirrors()
	logger.InfoLogger.Println("✅ Bot to'xtatildi.")
}

func loadCatalog(path string) ([]entity.Vehicle, error) {
	p := parser.NewCatalogParser()
	if strings.TrimSpace(path) == "" {
		logger.InfoLogger.Println("CATALOG_PATH bo'sh, ichki katalog ishlatiladi")
		return p.Default()
	}
	return p.ParseFile(path)
}

func initDefaultTimezone() {
	const tzName = "Asia/Yangon"
	if loc, err := time.LoadLocation(tzName); err == nil {
		time.Local = loc
		return
	}
	time.Local = time.FixedZone(tzName, 6*60*60+30*60)
}

func isEmptyOrDisabled(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return true
	}
	return strings.EqualFold(value, "disabled")
}
