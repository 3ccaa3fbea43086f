package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/napolitain/ascension/internal/config"
	"github.com/napolitain/ascension/internal/game"
	"github.com/napolitain/ascension/internal/models"
)

func testConfig() config.Config {
	return config.Config{
		Locale:       "en-US",
		TickInterval: 100 * time.Millisecond,
		StreamEvery:  10,
		Narration:    config.Narration{Timeout: time.Second},
	}
}

func TestNewAppServesState(t *testing.T) {
	a, err := newApp(testConfig(), log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}

	ts := httptest.NewServer(a.server.Handler())
	defer ts.Close()

	res, err := http.Get(ts.URL + "/api/state")
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", res.StatusCode)
	}
	var snap game.Snapshot
	if err := json.NewDecoder(res.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Era != models.Stone {
		t.Errorf("Expected stone era, got %s", snap.Era)
	}
	if snap.EraName != "Primitivism" {
		t.Errorf("Expected Primitivism, got %s", snap.EraName)
	}
}

func TestNewAppTicksSession(t *testing.T) {
	a, err := newApp(testConfig(), log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}

	for range 10 {
		a.scheduler.Step()
	}
	if got := a.scheduler.Ticks(); got != 10 {
		t.Errorf("Expected 10 ticks, got %d", got)
	}
	if got := a.session.Snapshot().Ticks; got != 10 {
		t.Errorf("Expected session at tick 10, got %d", got)
	}
}

func TestNewAppRejectsMissingCatalog(t *testing.T) {
	cfg := testConfig()
	cfg.CatalogPath = "does/not/exist.yaml"
	if _, err := newApp(cfg, log.New(io.Discard, "", 0)); err == nil {
		t.Error("Expected error for missing catalog")
	}
}
