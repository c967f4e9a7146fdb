package dashboard

import (
	"fmt"
	"strconv"
)

// ComparisonSlot is one side of the portfolio comparison panel.
type ComparisonSlot struct {
	Label     string     `json:"label"`
	Control   Control    `json:"control"`
	Portfolio Portfolio  `json:"portfolio"`
	Value     string     `json:"value"`
	Stats     []StatCard `json:"stats"`
}

func comparisonWidget(meta WidgetContext, f *Fixtures) (WidgetData, error) {
	selections := []struct {
		label, param, id string
	}{
		{"Portfolio A", ParamPortfolioA, meta.State.PortfolioA},
		{"Portfolio B", ParamPortfolioB, meta.State.PortfolioB},
	}
	slots := make([]ComparisonSlot, 0, len(selections))
	for idx, sel := range selections {
		p := selectedPortfolio(f, sel.id)
		var stats ComparisonStats
		if idx < len(f.PortfolioManager.Comparison) {
			stats = f.PortfolioManager.Comparison[idx]
		}
		slots = append(slots, ComparisonSlot{
			Label: sel.label,
			Control: Control{
				Kind:    ControlSelect,
				Name:    sel.param,
				Label:   sel.label,
				Value:   p.ID,
				Options: portfolioChoices(f, p.ID),
			},
			Portfolio: p,
			Value:     p.FormattedValue(),
			Stats: []StatCard{
				{Label: "Return", Value: FormatSignedPercent(stats.Return), ValueClass: ToneSuccess.TextClass()},
				{Label: "Volatility", Value: FormatTablePercent(stats.Volatility)},
				{Label: "Sharpe", Value: FormatFixed(stats.Sharpe, 2)},
			},
		})
	}
	return WidgetData{
		"kind":  KindComparison,
		"title": widgetTitle(meta, "Portfolio Comparison"),
		"slots": slots,
	}, nil
}

func riskReturnChartConfig(meta WidgetContext, f *Fixtures) map[string]any {
	series := make([]map[string]any, 0, len(f.PortfolioManager.RiskReturn))
	for _, pt := range f.PortfolioManager.RiskReturn {
		series = append(series, map[string]any{
			"name": pt.Name,
			"data": []map[string]any{{"name": pt.Name, "x": pt.Risk, "y": pt.Return}},
		})
	}
	axes := f.PortfolioManager.RiskReturnAxes
	return map[string]any{
		"title":   widgetTitle(meta, "Risk-Return Analysis"),
		"x_name":  "Risk (%)",
		"y_names": []string{"Return (%)"},
		"x_range": map[string]any{"min": axes.X.Min, "max": axes.X.Max},
		"y_range": map[string]any{"min": axes.Y.Min, "max": axes.Y.Max},
		"series":  series,
	}
}

func sliderControl(name, label string, s Slider, value int) Control {
	return Control{
		Kind:    ControlSlider,
		Name:    name,
		Label:   label,
		Value:   strconv.Itoa(value),
		Display: s.Format(value),
		Min:     s.Min,
		Max:     s.Max,
		Step:    s.Step,
	}
}

// scenarioLabel interpolates the bound slider value into a scenario label.
func scenarioLabel(sc StressScenario, state ViewState) string {
	switch sc.Slider {
	case ParamMarketDrop:
		return interpolate(sc.Label, state.MarketDrop)
	case ParamRateHike:
		return interpolate(sc.Label, state.RateHike)
	default:
		return sc.Label
	}
}

func stressTestWidget(meta WidgetContext, f *Fixtures) (WidgetData, error) {
	stress := f.PortfolioManager.Stress
	table := Table{
		Columns: []Column{
			{Key: "scenario", Label: "Scenario"},
			{Key: "return", Label: "Return", Align: "right"},
			{Key: "volatility", Label: "Volatility", Align: "right"},
			{Key: "sharpe", Label: "Sharpe", Align: "right"},
			{Key: "drawdown", Label: "Max Drawdown", Align: "right"},
		},
	}
	for _, sc := range stress.Scenarios {
		label := scenarioLabel(sc, meta.State)
		trendIcon := "trending-down"
		if TrendOf(sc.Return, 10) == TrendUp {
			trendIcon = "trending-up"
		}
		table.Rows = append(table.Rows, Row{Cells: []Cell{
			{Text: label, Class: ScenarioTone(label).TextClass()},
			{Text: FormatTablePercent(sc.Return), Icon: trendIcon},
			{Text: FormatTablePercent(sc.Volatility)},
			{Text: FormatFixed(sc.Sharpe, 2)},
			{Text: FormatTablePercent(sc.Drawdown), Class: ToneDanger.TextClass()},
		}})
	}
	return WidgetData{
		"kind":  KindStress,
		"title": widgetTitle(meta, "Stress Testing"),
		"controls": []Control{
			sliderControl(ParamMarketDrop, "Market Drop", stress.MarketDrop, meta.State.MarketDrop),
			sliderControl(ParamRateHike, "Rate Hike", stress.RateHike, meta.State.RateHike),
		},
		"table": table,
	}, nil
}

func correlationWidget(meta WidgetContext, f *Fixtures) (WidgetData, error) {
	table := Table{
		Columns: []Column{
			{Key: "asset", Label: "Asset"},
			{Key: "equity", Label: "Equity", Align: "right"},
			{Key: "bonds", Label: "Bonds", Align: "right"},
			{Key: "reits", Label: "REITs", Align: "right"},
			{Key: "commodities", Label: "Commodities", Align: "right"},
		},
	}
	for _, row := range f.Correlation {
		cells := []Cell{{Text: row.Asset}}
		for idx, v := range row.Coefficients() {
			cells = append(cells, Cell{Text: FormatFixed(v, 2), Class: fmt.Sprintf("text-chart-%d", idx+1)})
		}
		table.Rows = append(table.Rows, Row{Cells: cells})
	}
	return WidgetData{
		"kind":  KindTable,
		"title": widgetTitle(meta, "Asset Correlation Matrix"),
		"table": table,
	}, nil
}

func similarPortfoliosWidget(meta WidgetContext, f *Fixtures) (WidgetData, error) {
	similar := f.PortfolioManager.Similar
	limit := widgetLimit(meta, len(similar), len(similar))
	items := make([]ListItem, 0, limit)
	for _, p := range similar[:limit] {
		items = append(items, ListItem{
			Title:      p.Name,
			Subtitle:   fmt.Sprintf("Returns: %s | Risk: %s", FormatTablePercent(p.Returns), FormatTablePercent(p.Risk)),
			Badge:      FormatTablePercent(p.Similarity) + " Match",
			BadgeClass: "badge-secondary",
		})
	}
	return WidgetData{
		"kind":  KindList,
		"title": widgetTitle(meta, "Similar Portfolios"),
		"items": items,
	}, nil
}
