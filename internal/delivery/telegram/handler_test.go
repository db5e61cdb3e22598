package telegram

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/chassis-price-bot/internal/domain/entity"
	"github.com/yourusername/chassis-price-bot/internal/infrastructure/storage"
	"github.com/yourusername/chassis-price-bot/internal/usecase"
)

type fakeMessenger struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
}

func (f *fakeMessenger) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func (f *fakeMessenger) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeMessenger) lastText(t *testing.T) tgbotapi.MessageConfig {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.sent) - 1; i >= 0; i-- {
		if msg, ok := f.sent[i].(tgbotapi.MessageConfig); ok {
			return msg
		}
	}
	t.Fatal("xabar yuborilmadi")
	return tgbotapi.MessageConfig{}
}

type testBot struct {
	handler *BotHandler
	api     *fakeMessenger
	ledger  usecase.LedgerUseCase
	orch    *usecase.Orchestrator
}

func newTestBot(t *testing.T) *testBot {
	t.Helper()
	catalog := storage.NewMemoryCatalogRepository([]entity.Vehicle{
		{ChassisCode: "NT32-504837", ModelName: "NISSAN X-TRAIL", Color: "WHITE", ModelYear: 2017},
	})
	ledger := usecase.NewLedgerUseCase(storage.NewMemoryPriceRepository(), nil, "", 0)
	orch := usecase.NewOrchestrator(catalog, ledger, storage.NewMemoryPendingRepository(), usecase.OrchestratorOptions{})
	api := &fakeMessenger{}
	return &testBot{
		handler: newHandler(nil, api, orch, ledger, 0),
		api:     api,
		ledger:  ledger,
		orch:    orch,
	}
}

var testUser = &tgbotapi.User{ID: 42, FirstName: "Aung", LastName: "Min"}

func textMessage(text string) *tgbotapi.Message {
	return &tgbotapi.Message{MessageID: 1, From: testUser, Chat: &tgbotapi.Chat{ID: 42, Type: "private"}, Text: text}
}

func commandMessage(text string) *tgbotapi.Message {
	msg := textMessage(text)
	cmdLen := len(strings.Fields(text)[0])
	msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: cmdLen}}
	return msg
}

func callbackData(t *testing.T, markup interface{}) string {
	t.Helper()
	kb, ok := markup.(tgbotapi.InlineKeyboardMarkup)
	if !ok {
		t.Fatalf("inline keyboard kutilgan edi, %T keldi", markup)
	}
	if len(kb.InlineKeyboard) != 1 || len(kb.InlineKeyboard[0]) != 1 || kb.InlineKeyboard[0][0].CallbackData == nil {
		t.Fatalf("bitta tugma kutilgan edi: %+v", kb)
	}
	return *kb.InlineKeyboard[0][0].CallbackData
}

func TestTextLookupAttachesAddPriceButton(t *testing.T) {
	tb := newTestBot(t)
	tb.handler.handleMessage(context.Background(), textMessage("nt32-504837 narxi?"))

	msg := tb.api.lastText(t)
	if !strings.Contains(msg.Text, "NISSAN X-TRAIL") {
		t.Fatalf("vehicle card yo'q: %q", msg.Text)
	}
	if got := callbackData(t, msg.ReplyMarkup); got != "addprice|NT32-504837" {
		t.Fatalf("callback data = %q", got)
	}
}

func TestPhotoThenPriceMessage(t *testing.T) {
	tb := newTestBot(t)
	ctx := context.Background()

	photo := textMessage("")
	photo.Caption = "NT32-504837"
	photo.Photo = []tgbotapi.PhotoSize{
		{FileID: "small", Width: 90, Height: 67},
		{FileID: "big", Width: 1280, Height: 960},
	}
	tb.handler.handleMessage(ctx, photo)
	if tb.orch.State(testUser.ID) != entity.StateAwaitingPrice {
		t.Fatal("rasmdan keyin AwaitingPrice kutilgan edi")
	}

	tb.handler.handleMessage(ctx, textMessage("150,000"))
	hist, err := tb.ledger.History(ctx, "NT32-504837")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 1 || hist[0].Price != 150000 || hist[0].SubmitterName != "Aung Min" {
		t.Fatalf("unexpected history: %+v", hist)
	}
	if !strings.Contains(tb.api.lastText(t).Text, "Price saved") {
		t.Fatalf("saved reply kutilgan edi: %q", tb.api.lastText(t).Text)
	}
}

func TestPriceCommandRoutesArguments(t *testing.T) {
	tb := newTestBot(t)
	ctx := context.Background()

	tb.handler.handleMessage(ctx, commandMessage("/price ZZZ99-000000 99000"))
	hist, err := tb.ledger.History(ctx, "ZZZ99-000000")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 1 || hist[0].ModelName != entity.UnknownModelName || hist[0].ModelYear != 0 {
		t.Fatalf("unexpected history: %+v", hist)
	}
}

func TestAddPriceCallback(t *testing.T) {
	tb := newTestBot(t)
	cq := &tgbotapi.CallbackQuery{
		ID:      "cb-1",
		From:    testUser,
		Message: &tgbotapi.Message{MessageID: 7, Chat: &tgbotapi.Chat{ID: 42}},
		Data:    "addprice|NT32-504837",
	}
	tb.handler.handleUpdate(context.Background(), tgbotapi.Update{CallbackQuery: cq})

	if tb.orch.State(testUser.ID) != entity.StateAwaitingPrice {
		t.Fatal("callbackdan keyin AwaitingPrice kutilgan edi")
	}
	// answer + tugmalarni tozalash
	if len(tb.api.requests) != 2 {
		t.Fatalf("2 ta request kutilgan edi, %d keldi", len(tb.api.requests))
	}
	if _, ok := tb.api.requests[1].(tgbotapi.EditMessageReplyMarkupConfig); !ok {
		t.Fatalf("edit markup kutilgan edi: %T", tb.api.requests[1])
	}
}

func TestUnknownCommand(t *testing.T) {
	tb := newTestBot(t)
	tb.handler.handleMessage(context.Background(), commandMessage("/clear"))
	if !strings.Contains(tb.api.lastText(t).Text, "Unknown command") {
		t.Fatalf("unexpected reply: %q", tb.api.lastText(t).Text)
	}
}

func TestExportSendsWorkbook(t *testing.T) {
	tb := newTestBot(t)
	ctx := context.Background()

	tb.handler.handleMessage(ctx, commandMessage("/export"))
	if !strings.Contains(tb.api.lastText(t).Text, "empty") {
		t.Fatalf("bo'sh ledger xabari kutilgan edi")
	}

	tb.handler.handleMessage(ctx, commandMessage("/price NT32-504837 150000"))
	tb.handler.handleMessage(ctx, commandMessage("/export"))
	last := tb.api.sent[len(tb.api.sent)-1]
	if _, ok := last.(tgbotapi.DocumentConfig); !ok {
		t.Fatalf("document kutilgan edi: %T", last)
	}
}

func TestBuildLedgerXLSX(t *testing.T) {
	rows := []entity.PriceObservation{
		{ChassisCode: "NT32-504837", ModelName: "NISSAN X-TRAIL", Color: "WHITE", ModelYear: 2017, Price: 150000, Location: "Japan Auction", SubmitterName: "Aung"},
		{ChassisCode: "ZZZ99-000000", ModelName: "UNKNOWN", Color: "-", Price: 99000, Location: "Japan Auction"},
	}
	data, err := buildLedgerXLSX(rows)
	if err != nil {
		t.Fatalf("buildLedgerXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	got, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("3 qator kutilgan edi, %d keldi", len(got))
	}
	if got[0][0] != "Chassis" || got[1][0] != "NT32-504837" || got[1][4] != "150000" || got[2][1] != "UNKNOWN" {
		t.Fatalf("unexpected rows: %v", got)
	}
}

func TestExtractCommand(t *testing.T) {
	cases := map[string]string{
		"/price@chassis_bot NT32-504837 1": "price",
		"/history":                         "history",
		"hello":                            "",
		"/":                                "",
	}
	for in, want := range cases {
		if got := extractCommand(textMessage(in)); got != want {
			t.Errorf("extractCommand(%q) = %q, want %q", in, got, want)
		}
	}
	if got := commandArgs(textMessage("/find  NT32-504837 ")); got != "NT32-504837" {
		t.Errorf("commandArgs = %q", got)
	}
}

func TestSplitIntoChunks(t *testing.T) {
	text := strings.Repeat("a", 10)
	chunks := splitIntoChunks(text, 4)
	if len(chunks) != 3 || chunks[2] != "aa" {
		t.Fatalf("unexpected chunks: %q", chunks)
	}
	if got := splitIntoChunks("abc", 0); len(got) != 1 {
		t.Fatalf("limit 0 should return input: %q", got)
	}
}

func TestLongReplyKeepsButtonOnLastChunk(t *testing.T) {
	tb := newTestBot(t)
	tb.handler.sendReply(42, usecase.Reply{Text: strings.Repeat("x", telegramTextLimit+10), AddPriceFor: "NT32-504837"})

	if len(tb.api.sent) != 2 {
		t.Fatalf("2 bo'lak kutilgan edi, %d keldi", len(tb.api.sent))
	}
	first := tb.api.sent[0].(tgbotapi.MessageConfig)
	if first.ReplyMarkup != nil {
		t.Fatal("birinchi bo'lakda tugma bo'lmasligi kerak")
	}
	second := tb.api.sent[1].(tgbotapi.MessageConfig)
	if callbackData(t, second.ReplyMarkup) != "addprice|NT32-504837" {
		t.Fatal("oxirgi bo'lakda tugma kutilgan edi")
	}
}

func TestSubmitterAndPhotoHelpers(t *testing.T) {
	if got := submitterFrom(&tgbotapi.User{ID: 1, UserName: "kyaw"}); got.Name != "kyaw" {
		t.Errorf("username fallback = %q", got.Name)
	}
	if got := submitterFrom(testUser); got.Name != "Aung Min" || got.ID != 42 {
		t.Errorf("submitter = %+v", got)
	}
	if got := largestPhoto(nil); got != "" {
		t.Errorf("largestPhoto(nil) = %q", got)
	}
}

func TestOverlongButtonPayloadIsDropped(t *testing.T) {
	tb := newTestBot(t)
	tb.handler.sendReply(42, usecase.Reply{Text: "card", AddPriceFor: strings.Repeat("X", 80)})

	msg := tb.api.lastText(t)
	if msg.ReplyMarkup != nil {
		t.Fatalf("64 baytdan uzun payload uchun tugma bo'lmasligi kerak: %+v", msg.ReplyMarkup)
	}
	if msg.Text != "card" {
		t.Fatalf("xabar baribir yuborilishi kerak: %q", msg.Text)
	}
}

func TestFindCommandFreeText(t *testing.T) {
	tb := newTestBot(t)
	tb.handler.handleMessage(context.Background(), commandMessage("/find where is my car"))

	msg := tb.api.lastText(t)
	if !strings.Contains(msg.Text, "No chassis code") || msg.ReplyMarkup != nil {
		t.Fatalf("guidance kutilgan edi, tugmasiz: %q %+v", msg.Text, msg.ReplyMarkup)
	}
}
