package commands

import (
	"context"
	"errors"
	"testing"

	dashboard "github.com/goliatone/go-risk-dashboard/components/dashboard"
)

func newService(t *testing.T) *dashboard.Service {
	t.Helper()
	svc, err := dashboard.NewService(dashboard.Options{
		Providers: dashboard.NewRegistry(dashboard.WithChartCache(nil)),
	})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc
}

func TestUploadGuidelinesCommand(t *testing.T) {
	telemetry := &stubTelemetry{}
	cmd := NewUploadGuidelinesCommand(newService(t), telemetry)
	state, err := cmd.Accept(context.Background(), UploadGuidelinesInput{Filename: `C:\docs\Policy.PDF`})
	if err != nil {
		t.Fatalf("Accept returned error: %v", err)
	}
	if state.Persona != dashboard.PersonaComplianceAnalyst || state.Guidelines != "Policy.PDF" {
		t.Fatalf("unexpected redirect state %+v", state)
	}
	if telemetry.last != "dashboard.guidelines.accepted" {
		t.Fatalf("expected accepted event, got %q", telemetry.last)
	}
}

func TestUploadGuidelinesCommandRejectsExtension(t *testing.T) {
	telemetry := &stubTelemetry{}
	cmd := NewUploadGuidelinesCommand(newService(t), telemetry)
	err := cmd.Execute(context.Background(), UploadGuidelinesInput{Filename: "payload.exe"})
	if !errors.Is(err, dashboard.ErrInvalidUpload) {
		t.Fatalf("expected ErrInvalidUpload, got %v", err)
	}
	if telemetry.last != "dashboard.guidelines.rejected" {
		t.Fatalf("expected rejected event, got %q", telemetry.last)
	}
}

func TestUploadGuidelinesCommandRequiresService(t *testing.T) {
	cmd := NewUploadGuidelinesCommand(nil, nil)
	if err := cmd.Execute(context.Background(), UploadGuidelinesInput{Filename: "a.pdf"}); err == nil {
		t.Fatalf("expected error without service")
	}
}

func TestWarmDashboardsCommand(t *testing.T) {
	renderer := &stubRenderer{}
	telemetry := &stubTelemetry{}
	cmd := NewWarmDashboardsCommand(renderer, telemetry)
	if err := cmd.Execute(context.Background(), WarmDashboardsInput{}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if len(renderer.seen) != len(dashboard.Personas()) {
		t.Fatalf("expected %d renders, got %d", len(dashboard.Personas()), len(renderer.seen))
	}
	if telemetry.last != "dashboard.warm" || telemetry.payload["failed"] != len(dashboard.Personas()) {
		t.Fatalf("unexpected telemetry %q %+v", telemetry.last, telemetry.payload)
	}
}

func TestWarmDashboardsCommandStopsOnError(t *testing.T) {
	renderer := &stubRenderer{err: dashboard.ErrInvalidViewState}
	cmd := NewWarmDashboardsCommand(renderer, nil)
	err := cmd.Execute(context.Background(), WarmDashboardsInput{Personas: []dashboard.Persona{dashboard.PersonaEngineeringLead}})
	if !errors.Is(err, dashboard.ErrInvalidViewState) {
		t.Fatalf("expected wrapped view state error, got %v", err)
	}
}

func TestWarmDashboardsCommandWithService(t *testing.T) {
	cmd := NewWarmDashboardsCommand(newService(t), nil)
	if err := cmd.Execute(context.Background(), WarmDashboardsInput{}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
}

type stubRenderer struct {
	seen []dashboard.Persona
	err  error
}

func (s *stubRenderer) Render(_ context.Context, state dashboard.ViewState) (dashboard.Page, error) {
	if s.err != nil {
		return dashboard.Page{}, s.err
	}
	s.seen = append(s.seen, state.Persona)
	return dashboard.Page{Widgets: []dashboard.RenderedWidget{{}, {Error: "boom"}}}, nil
}

type stubTelemetry struct {
	calls   int
	last    string
	payload map[string]any
}

func (s *stubTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	s.calls++
	s.last = event
	s.payload = payload
}
