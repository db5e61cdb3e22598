package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yourusername/chassis-price-bot/internal/domain/constants"
	"github.com/yourusername/chassis-price-bot/internal/domain/entity"
)

func sampleObservation() entity.PriceObservation {
	return entity.PriceObservation{
		ID:            "obs-1",
		ChassisCode:   "NT32-504837",
		ModelName:     "NISSAN X-TRAIL",
		Color:         "WHITE",
		ModelYear:     2017,
		Price:         150000,
		ObservedDate:  time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC),
		Location:      "Japan Auction",
		SubmitterName: "aung",
	}
}

func TestNewSheetNotifier_EmptyURLDisables(t *testing.T) {
	if n := NewSheetNotifier("  ", "key", time.Second); n != nil {
		t.Fatalf("expected nil notifier for empty URL")
	}
}

func TestNotify_PostsJSON(t *testing.T) {
	var got sheetPayload
	var apiKey, contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("X-API-Key")
		contentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewSheetNotifier(srv.URL, "secret", time.Second)
	if err := n.Notify(context.Background(), sampleObservation()); err != nil {
		t.Fatalf("Notify error: %v", err)
	}
	if apiKey != "secret" || contentType != "application/json" {
		t.Fatalf("unexpected headers key=%q ct=%q", apiKey, contentType)
	}
	if got.ChassisCode != "NT32-504837" || got.Price != 150000 || got.ObservedDate != "2026-10-14" || got.SubmitterName != "aung" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestNotify_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "sheet locked", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := NewSheetNotifier(srv.URL, "", time.Second).Notify(context.Background(), sampleObservation())
	if err == nil || !strings.Contains(err.Error(), "status=503") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestNotify_TimeoutIsError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	n := NewSheetNotifier(srv.URL, "", 50*time.Millisecond)
	start := time.Now()
	if err := n.Notify(context.Background(), sampleObservation()); err == nil {
		t.Fatalf("expected timeout error")
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("timeout not enforced")
	}
}

func TestNewSheetNotifier_DefaultTimeout(t *testing.T) {
	n := NewSheetNotifier("https://script.example/exec", "", 0)
	if n == nil {
		t.Fatal("expected notifier")
	}
	if n.client.Timeout != constants.DefaultMirrorTimeout {
		t.Fatalf("timeout = %v, want %v", n.client.Timeout, constants.DefaultMirrorTimeout)
	}
}
