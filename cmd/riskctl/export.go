package main

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/goliatone/go-risk-dashboard/components/dashboard"
)

type exportCmd struct {
	Dataset  string `arg:"" enum:"portfolios,risk-metrics,compliance-rules,system-metrics" help:"Fixture table to export (portfolios, risk-metrics, compliance-rules, system-metrics)."`
	Fixtures string `type:"path" help:"Fixture YAML (defaults to the embedded data set)."`
}

type portfolioRow struct {
	ID       string `csv:"id"`
	Name     string `csv:"name"`
	Value    string `csv:"value"`
	Currency string `csv:"currency"`
	Display  string `csv:"display"`
}

type riskMetricRow struct {
	Name      string `csv:"name"`
	Value     string `csv:"value"`
	Unit      string `csv:"unit"`
	Benchmark string `csv:"benchmark"`
	Status    string `csv:"status"`
}

type complianceRuleRow struct {
	ID          string `csv:"id"`
	Rule        string `csv:"rule"`
	Current     string `csv:"current"`
	Limit       string `csv:"limit"`
	Utilization string `csv:"utilization"`
	Status      string `csv:"status"`
	Severity    string `csv:"severity"`
}

type systemMetricRow struct {
	Name    string `csv:"name"`
	Display string `csv:"display"`
	Status  string `csv:"status"`
}

func (cmd *exportCmd) Run(out io.Writer) error {
	f, err := dashboard.LoadFixturesFile(cmd.Fixtures)
	if err != nil {
		return fmt.Errorf("riskctl: fixtures: %w", err)
	}
	var rows any
	switch cmd.Dataset {
	case "portfolios":
		list := make([]portfolioRow, 0, len(f.Portfolios))
		for _, p := range f.Portfolios {
			list = append(list, portfolioRow{ID: p.ID, Name: p.Name, Value: p.Value.String(), Currency: p.Currency, Display: p.FormattedValue()})
		}
		rows = &list
	case "risk-metrics":
		list := make([]riskMetricRow, 0, len(f.RiskMetrics))
		for _, m := range f.RiskMetrics {
			row := riskMetricRow{Name: m.Name, Value: dashboard.FormatNumber(m.Value), Unit: m.Unit, Status: string(m.Status)}
			if m.Benchmark != nil {
				row.Benchmark = dashboard.FormatNumber(*m.Benchmark)
			}
			list = append(list, row)
		}
		rows = &list
	case "compliance-rules":
		list := make([]complianceRuleRow, 0, len(f.ComplianceRules))
		for _, r := range f.ComplianceRules {
			utilization := dashboard.NotApplicable
			if pct, ok := r.Utilization(); ok {
				utilization = dashboard.FormatTablePercent(pct)
			}
			list = append(list, complianceRuleRow{
				ID:          r.ID,
				Rule:        r.Rule,
				Current:     dashboard.FormatNumber(r.Current),
				Limit:       dashboard.FormatNumber(r.Limit),
				Utilization: utilization,
				Status:      string(r.Status),
				Severity:    string(r.Severity),
			})
		}
		rows = &list
	case "system-metrics":
		list := make([]systemMetricRow, 0, len(f.SystemMetrics))
		for _, m := range f.SystemMetrics {
			list = append(list, systemMetricRow{Name: m.Name, Display: m.Display(), Status: string(m.Status)})
		}
		rows = &list
	default:
		return fmt.Errorf("riskctl: unknown dataset %q", cmd.Dataset)
	}
	return gocsv.Marshal(rows, out)
}
