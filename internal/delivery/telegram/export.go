package telegram

import (
	"bytes"
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/chassis-price-bot/internal/domain/entity"
	"github.com/yourusername/chassis-price-bot/pkg/logger"
)

// handleExportCommand butun ledgerni .xlsx qilib yuboradi
func (h *BotHandler) handleExportCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	rows, err := h.ledger.All(ctx)
	if err != nil {
		logger.ErrorLogger.Printf("ledger export load error: %v", err)
		h.sendMessage(chatID, "⚠️ Could not load the ledger.")
		return
	}
	if len(rows) == 0 {
		h.sendMessage(chatID, "📭 The ledger is empty.")
		return
	}

	xlsxBytes, err := buildLedgerXLSX(rows)
	if err != nil {
		logger.ErrorLogger.Printf("ledger export xlsx error: %v", err)
		h.sendMessage(chatID, "❌ Could not build the Excel file.")
		return
	}

	filename := fmt.Sprintf("prices_%s.xlsx", time.Now().Format("20060102_150405"))
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: filename, Bytes: xlsxBytes})
	doc.Caption = fmt.Sprintf("📊 Price ledger\nTotal: %d", len(rows))
	if _, err := h.api.Send(doc); err != nil {
		logger.ErrorLogger.Printf("ledger export send error: %v", err)
		h.sendMessage(chatID, "❌ Could not send the Excel file.")
	}
}

func buildLedgerXLSX(rows []entity.PriceObservation) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, h := range ledgerExportHeaders() {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		rowIdx := i + 2
		for c, v := range ledgerExportRowValues(row) {
			cell, err := excelize.CoordinatesToCellName(c+1, rowIdx)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ledgerExportHeaders() []string {
	return []string{"Chassis", "Model", "Color", "Year", "Price", "Date", "Location", "Submitter"}
}

func ledgerExportRowValues(row entity.PriceObservation) []interface{} {
	return []interface{}{
		row.ChassisCode,
		row.ModelName,
		row.Color,
		row.ModelYear,
		row.Price,
		row.DateString(),
		row.Location,
		row.SubmitterName,
	}
}
