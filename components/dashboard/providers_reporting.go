package dashboard

import (
	"fmt"
	"strings"
)

func reportingControlsWidget(meta WidgetContext, f *Fixtures) (WidgetData, error) {
	state := meta.State
	ranges := make([]ChoiceEntry, 0, len(f.Reporting.DateRanges))
	for _, opt := range f.Reporting.DateRanges {
		ranges = append(ranges, ChoiceEntry{Value: opt.Value, Label: opt.Label, Selected: opt.Value == state.DateRange})
	}
	portfolio := selectedPortfolio(f, state.Portfolio)
	return WidgetData{
		"kind":  KindControls,
		"title": widgetTitle(meta, "Report Configuration"),
		"controls": []Control{
			{
				Kind:    ControlSelect,
				Name:    ParamPortfolio,
				Label:   "Portfolio",
				Value:   portfolio.ID,
				Display: portfolio.FormattedValue(),
				Options: portfolioChoices(f, portfolio.ID),
			},
			{
				Kind:    ControlSelect,
				Name:    ParamDateRange,
				Label:   "Date Range",
				Value:   state.DateRange,
				Display: f.DateRangeLabel(state.DateRange),
				Options: ranges,
			},
		},
		"actions": InertButtons(stringSliceValue(meta.Instance.Configuration["actions"])),
	}, nil
}

// metricTarget returns the benchmark label, or "" when there is no non-zero benchmark.
func metricTarget(m RiskMetric) string {
	if m.Benchmark == nil || *m.Benchmark == 0 {
		return ""
	}
	return FormatNumber(*m.Benchmark) + m.Unit
}

func keyMetricsWidget(meta WidgetContext, f *Fixtures) (WidgetData, error) {
	limit := widgetLimit(meta, 4, len(f.RiskMetrics))
	cards := make([]StatCard, 0, limit)
	for _, m := range f.RiskMetrics[:limit] {
		reference := 0.0
		if m.Benchmark != nil {
			reference = *m.Benchmark
		}
		card := StatCard{
			Label:     m.Name,
			Value:     FormatNumber(m.Value) + m.Unit,
			Trend:     TrendOf(m.Value, reference),
			Badge:     strings.ToUpper(string(m.Status)),
			Treatment: m.Status.Treatment(),
		}
		if target := metricTarget(m); target != "" {
			card.Caption = "Target: " + target
		}
		cards = append(cards, card)
	}
	return WidgetData{
		"kind":  KindStatCards,
		"title": widgetTitle(meta, "Key Risk Metrics"),
		"cards": cards,
	}, nil
}

func reportingSubtitle(state ViewState, f *Fixtures) string {
	return fmt.Sprintf("%s, %s", selectedPortfolio(f, state.Portfolio).Name, f.DateRangeLabel(state.DateRange))
}

func performanceChartConfig(meta WidgetContext, f *Fixtures) map[string]any {
	axis := make([]string, 0, len(f.Performance))
	portfolio := make([]float64, 0, len(f.Performance))
	benchmark := make([]float64, 0, len(f.Performance))
	for _, pt := range f.Performance {
		axis = append(axis, pt.Date)
		portfolio = append(portfolio, pt.Portfolio)
		benchmark = append(benchmark, pt.Benchmark)
	}
	return map[string]any{
		"title":    widgetTitle(meta, "Performance vs Benchmark"),
		"subtitle": reportingSubtitle(meta.State, f),
		"x_axis":   axis,
		"series": []map[string]any{
			{"name": "Portfolio", "data": portfolio},
			{"name": "Benchmark", "data": benchmark, "dashed": true},
		},
	}
}

func volatilityChartConfig(meta WidgetContext, f *Fixtures) map[string]any {
	axis := make([]string, 0, len(f.Volatility))
	values := make([]float64, 0, len(f.Volatility))
	for _, pt := range f.Volatility {
		axis = append(axis, pt.Date)
		values = append(values, pt.Volatility)
	}
	return map[string]any{
		"title":    widgetTitle(meta, "Volatility Trend"),
		"subtitle": reportingSubtitle(meta.State, f),
		"x_axis":   axis,
		"y_names":  []string{"Volatility (%)"},
		"series": []map[string]any{
			{"name": "Volatility", "data": values},
		},
	}
}

func metricsTableWidget(meta WidgetContext, f *Fixtures) (WidgetData, error) {
	limit := widgetLimit(meta, 5, len(f.RiskMetrics))
	table := Table{
		Columns: []Column{
			{Key: "metric", Label: "Metric"},
			{Key: "current", Label: "Current", Align: "right"},
			{Key: "target", Label: "Target", Align: "right"},
			{Key: "status", Label: "Status"},
		},
	}
	for _, m := range f.RiskMetrics[:limit] {
		target := metricTarget(m)
		if target == "" {
			target = NotApplicable
		}
		treatment := m.Status.Treatment()
		table.Rows = append(table.Rows, Row{Cells: []Cell{
			{Text: m.Name},
			{Text: FormatNumber(m.Value) + m.Unit},
			{Text: target},
			{Text: strings.ToUpper(string(m.Status)), Badge: treatment.BadgeClass, Icon: treatment.Icon},
		}})
	}
	return WidgetData{
		"kind":  KindTable,
		"title": widgetTitle(meta, "Risk Metrics Summary"),
		"table": table,
	}, nil
}

func scheduledReportsWidget(meta WidgetContext, f *Fixtures) (WidgetData, error) {
	items := make([]ListItem, 0, len(f.Reporting.ScheduledReports))
	for _, r := range f.Reporting.ScheduledReports {
		items = append(items, ListItem{
			Title:      r.Name,
			Subtitle:   r.NextRun,
			Badge:      r.Status,
			BadgeClass: CompliancePass.Treatment().BadgeClass,
			Icon:       "calendar",
		})
	}
	return WidgetData{
		"kind":  KindList,
		"title": widgetTitle(meta, "Scheduled Reports"),
		"items": items,
	}, nil
}
