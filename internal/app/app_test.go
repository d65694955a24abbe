package app

import (
	"testing"

	"github.com/stefanautomateed/sportsdata/internal/config"
	"github.com/stefanautomateed/sportsdata/internal/platform/logging"
)

func TestNewWiresServices(t *testing.T) {
	t.Setenv("APISPORTS_KEY", "")
	t.Setenv("ODDS_API_KEY", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	a, err := New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("wire app: %v", err)
	}
	if a.DataLayer == nil || a.Verification == nil {
		t.Fatal("services not wired")
	}

	// Without provider credentials every sport registers but none reports
	// available.
	if got := a.DataLayer.AvailableSports(); len(got) != 0 {
		t.Fatalf("expected no available sports without credentials, got %v", got)
	}
}
