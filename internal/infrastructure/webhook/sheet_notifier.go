// Package webhook mirrors price observations to an external spreadsheet endpoint.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yourusername/chassis-price-bot/internal/domain/constants"
	"github.com/yourusername/chassis-price-bot/internal/domain/entity"
)

// SheetNotifier har bir narx yozuvini JSON qilib webhookga POST qiladi
type SheetNotifier struct {
	url    string
	apiKey string
	client *http.Client
}

type sheetPayload struct {
	ID            string `json:"id"`
	ChassisCode   string `json:"chassis_code"`
	ModelName     string `json:"model_name"`
	Color         string `json:"color"`
	ModelYear     int    `json:"model_year"`
	Price         int64  `json:"price"`
	ObservedDate  string `json:"observed_date"`
	Location      string `json:"location"`
	SubmitterName string `json:"submitter_name"`
}

// NewSheetNotifier url bo'sh bo'lsa nil qaytaradi (mirror o'chirilgan)
func NewSheetNotifier(url, apiKey string, timeout time.Duration) *SheetNotifier {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = constants.DefaultMirrorTimeout
	}
	return &SheetNotifier{
		url:    url,
		apiKey: strings.TrimSpace(apiKey),
		client: &http.Client{Timeout: timeout},
	}
}

// Notify sends one observation. Any non-2xx status is an error.
func (n *SheetNotifier) Notify(ctx context.Context, obs entity.PriceObservation) error {
	b, err := json.Marshal(sheetPayload{
		ID:            obs.ID,
		ChassisCode:   obs.ChassisCode,
		ModelName:     obs.ModelName,
		Color:         obs.Color,
		ModelYear:     obs.ModelYear,
		Price:         obs.Price,
		ObservedDate:  obs.DateString(),
		Location:      obs.Location,
		SubmitterName: obs.SubmitterName,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if n.apiKey != "" {
		req.Header.Set("X-API-Key", n.apiKey)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = resp.Status
		}
		return fmt.Errorf("status=%d: %s", resp.StatusCode, msg)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
	return nil
}
