package dashboard

import (
	"context"
	"fmt"
)

func defaultProviders(chartOpts ...EChartsProviderOption) map[string]Provider {
	return map[string]Provider{
		WidgetActions: fixtureProvider(actionsWidget),
		WidgetEvents:  fixtureProvider(eventsWidget),

		WidgetReportingControls:    fixtureProvider(reportingControlsWidget),
		WidgetReportingKeyMetrics:  fixtureProvider(keyMetricsWidget),
		WidgetReportingPerformance: newFixtureChartProvider(NewEChartsProvider(ChartLine, chartOpts...), performanceChartConfig),
		WidgetReportingVolatility:  newFixtureChartProvider(NewEChartsProvider(ChartArea, chartOpts...), volatilityChartConfig),
		WidgetReportingMetrics:     fixtureProvider(metricsTableWidget),
		WidgetReportingSchedule:    fixtureProvider(scheduledReportsWidget),

		WidgetComplianceSummary:    fixtureProvider(complianceSummaryWidget),
		WidgetComplianceAlert:      fixtureProvider(breachAlertWidget),
		WidgetComplianceGuidelines: fixtureProvider(guidelinesWidget),
		WidgetComplianceRules:      fixtureProvider(rulesTableWidget),

		WidgetPortfolioComparison:  fixtureProvider(comparisonWidget),
		WidgetPortfolioRiskReturn:  newFixtureChartProvider(NewEChartsProvider(ChartScatter, chartOpts...), riskReturnChartConfig),
		WidgetPortfolioStress:      fixtureProvider(stressTestWidget),
		WidgetPortfolioCorrelation: fixtureProvider(correlationWidget),
		WidgetPortfolioSimilar:     fixtureProvider(similarPortfoliosWidget),

		WidgetEngineeringOverview:  fixtureProvider(systemOverviewWidget),
		WidgetEngineeringLatency:   newFixtureChartProvider(NewEChartsProvider(ChartDualLine, chartOpts...), latencyChartConfig),
		WidgetEngineeringEndpoints: fixtureProvider(endpointsWidget),
		WidgetEngineeringResources: fixtureProvider(resourcesWidget),
		WidgetEngineeringDatabase:  fixtureProvider(databaseWidget),
		WidgetEngineeringConfig:    fixtureProvider(configPanelsWidget),
	}
}

type fixtureFunc func(meta WidgetContext, f *Fixtures) (WidgetData, error)

// fixtureProvider guards providers that read the fixture data set.
func fixtureProvider(fn fixtureFunc) Provider {
	return ProviderFunc(func(_ context.Context, meta WidgetContext) (WidgetData, error) {
		if meta.Fixtures == nil {
			return nil, ErrMissingFixtures
		}
		return fn(meta, meta.Fixtures)
	})
}

// FixtureChartProvider composes fixture series into an echarts widget.
type FixtureChartProvider struct {
	renderer *EChartsProvider
	build    func(meta WidgetContext, f *Fixtures) map[string]any
}

func newFixtureChartProvider(renderer *EChartsProvider, build func(WidgetContext, *Fixtures) map[string]any) *FixtureChartProvider {
	return &FixtureChartProvider{renderer: renderer, build: build}
}

// Fetch renders the chart for the current view state.
func (p *FixtureChartProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	if meta.Fixtures == nil {
		return nil, ErrMissingFixtures
	}
	temp := meta
	temp.Instance.Configuration = p.build(meta, meta.Fixtures)
	data, err := p.renderer.Fetch(ctx, temp)
	if err != nil {
		return nil, fmt.Errorf("%s chart: %w", meta.Instance.DefinitionID, err)
	}
	return data, nil
}

func widgetTitle(meta WidgetContext, fallback string) string {
	return stringValue(meta.Instance.Configuration["title"], fallback)
}

func widgetLimit(meta WidgetContext, fallback, available int) int {
	limit := intValue(meta.Instance.Configuration["limit"], fallback)
	if limit <= 0 || limit > available {
		return available
	}
	return limit
}

func actionsWidget(meta WidgetContext, _ *Fixtures) (WidgetData, error) {
	return WidgetData{
		"kind":    KindActions,
		"title":   widgetTitle(meta, "Actions"),
		"actions": InertButtons(stringSliceValue(meta.Instance.Configuration["actions"])),
	}, nil
}

func eventsWidget(meta WidgetContext, f *Fixtures) (WidgetData, error) {
	source := stringValue(meta.Instance.Configuration["source"], "")
	var events []Event
	switch source {
	case "compliance":
		events = f.Compliance.Events
	case "engineering":
		events = f.Engineering.Events
	default:
		return nil, fmt.Errorf("unknown event source %q", source)
	}
	items := make([]ListItem, 0, len(events))
	for _, ev := range events {
		items = append(items, ListItem{
			Title:      ev.Title,
			Subtitle:   ev.Description,
			Meta:       ev.Time,
			Icon:       toneIcon(ev.Tone),
			BadgeClass: ev.Tone.TextClass(),
		})
	}
	return WidgetData{
		"kind":  KindEvents,
		"title": widgetTitle(meta, "Recent Events"),
		"items": items,
	}, nil
}

func toneIcon(t Tone) string {
	switch t {
	case ToneSuccess:
		return "check-circle"
	case ToneWarning:
		return "alert-triangle"
	case ToneDanger:
		return "x-circle"
	default:
		return "info"
	}
}

func portfolioChoices(f *Fixtures, selected string) []ChoiceEntry {
	out := make([]ChoiceEntry, 0, len(f.Portfolios))
	for _, p := range f.Portfolios {
		out = append(out, ChoiceEntry{
			Value:    p.ID,
			Label:    fmt.Sprintf("%s (%s)", p.Name, p.FormattedValue()),
			Selected: p.ID == selected,
		})
	}
	return out
}

// selectedPortfolio resolves id, falling back to the first portfolio.
func selectedPortfolio(f *Fixtures, id string) Portfolio {
	if p, ok := f.Portfolio(id); ok {
		return p
	}
	if len(f.Portfolios) > 0 {
		return f.Portfolios[0]
	}
	return Portfolio{}
}
