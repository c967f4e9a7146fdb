package queries

import (
	"context"
	"testing"

	dashboard "github.com/goliatone/go-risk-dashboard/components/dashboard"
)

type stubPageService struct {
	calls int
	last  dashboard.ViewState
}

func (s *stubPageService) Render(_ context.Context, state dashboard.ViewState) (dashboard.Page, error) {
	s.calls++
	s.last = state
	return dashboard.Page{State: state}, nil
}

func TestPersonaViewQuery(t *testing.T) {
	service := &stubPageService{}
	query := NewPersonaViewQuery(service)
	page, err := query.Query(context.Background(), dashboard.ViewState{Persona: dashboard.PersonaPortfolioManager})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if service.calls != 1 {
		t.Fatalf("expected 1 call, got %d", service.calls)
	}
	if page.State.Persona != dashboard.PersonaPortfolioManager {
		t.Fatalf("unexpected persona %s", page.State.Persona)
	}
}

func TestPersonaHeaderQuery(t *testing.T) {
	svc, err := dashboard.NewService(dashboard.Options{BasePath: "/risk"})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	header, err := NewPersonaHeaderQuery(svc).Query(context.Background(), dashboard.ViewState{Persona: dashboard.PersonaEngineeringLead})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if header.Current.ID != dashboard.PersonaEngineeringLead {
		t.Fatalf("unexpected current persona %s", header.Current.ID)
	}
	if len(header.Options) != len(dashboard.Personas()) {
		t.Fatalf("expected %d options, got %d", len(dashboard.Personas()), len(header.Options))
	}
	for _, opt := range header.Options {
		if opt.Selected != (opt.ID == dashboard.PersonaEngineeringLead) {
			t.Fatalf("option %s has wrong selection", opt.ID)
		}
	}
}

func TestPersonaHeaderQueryRejectsInvalidState(t *testing.T) {
	svc, err := dashboard.NewService(dashboard.Options{})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	_, err = NewPersonaHeaderQuery(svc).Query(context.Background(), dashboard.ViewState{Persona: dashboard.PersonaReportingAnalyst, Portfolio: "unknown"})
	if err == nil {
		t.Fatalf("expected invalid state error")
	}
}
