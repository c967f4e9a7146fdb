package dashboard

import (
	"context"
	"errors"
	"testing"

	core "github.com/goliatone/go-risk-dashboard/components/dashboard"
)

func TestFacadeRendersParsedState(t *testing.T) {
	svc, err := Bootstrap(BootstrapOptions{BasePath: "/risk"})
	if err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	state, err := ParseState("persona=portfolio-manager&market_drop=30")
	if err != nil {
		t.Fatalf("ParseState returned error: %v", err)
	}
	page, err := svc.Render(context.Background(), state)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if page.State.Persona != core.PersonaPortfolioManager || page.State.MarketDrop != 30 {
		t.Fatalf("unexpected state %+v", page.State)
	}
}

func TestFacadeParseStateErrors(t *testing.T) {
	if _, err := ParseState("market_drop=%zz"); !errors.Is(err, core.ErrInvalidViewState) {
		t.Fatalf("expected ErrInvalidViewState for bad escape, got %v", err)
	}
	if _, err := ParseState("market_drop=lots"); !errors.Is(err, core.ErrInvalidViewState) {
		t.Fatalf("expected ErrInvalidViewState for non-integer, got %v", err)
	}
}

func TestFacadeNewService(t *testing.T) {
	if _, err := NewService(Options{}); err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
}
