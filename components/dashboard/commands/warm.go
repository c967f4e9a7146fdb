package commands

import (
	"context"
	"errors"
	"fmt"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-risk-dashboard/components/dashboard"
)

// WarmDashboardsInput selects the personas to pre-render. Empty means all.
type WarmDashboardsInput struct {
	Personas []dashboard.Persona
}

type pageRenderer interface {
	Render(ctx context.Context, state dashboard.ViewState) (dashboard.Page, error)
}

// WarmDashboardsCommand renders persona dashboards once so chart markup is
// cached before the first request.
type WarmDashboardsCommand struct {
	service   pageRenderer
	telemetry dashboard.Telemetry
}

// NewWarmDashboardsCommand wires the command.
func NewWarmDashboardsCommand(service pageRenderer, telemetry dashboard.Telemetry) *WarmDashboardsCommand {
	return &WarmDashboardsCommand{service: service, telemetry: dashboard.TelemetryOrNoop(telemetry)}
}

var _ gocommand.Commander[WarmDashboardsInput] = (*WarmDashboardsCommand)(nil)

// Execute renders each persona with its default controls.
func (c *WarmDashboardsCommand) Execute(ctx context.Context, msg WarmDashboardsInput) error {
	if c.service == nil {
		return errors.New("warm command requires service")
	}
	personas := msg.Personas
	if len(personas) == 0 {
		personas = dashboard.Personas()
	}
	failed := 0
	for _, p := range personas {
		page, err := c.service.Render(ctx, dashboard.ViewState{Persona: p})
		if err != nil {
			return fmt.Errorf("warm %s: %w", p, err)
		}
		for _, w := range page.Widgets {
			if w.Error != "" {
				failed++
			}
		}
	}
	c.telemetry.Record(ctx, dashboard.EventWarm, map[string]any{
		"personas": len(personas),
		"failed":   failed,
	})
	return nil
}
