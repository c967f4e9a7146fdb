package dashboard

// Widget codes for the built-in risk dashboard widgets.
const (
	WidgetActions = "risk.common.actions"
	WidgetEvents  = "risk.common.events"

	WidgetReportingControls    = "risk.reporting.controls"
	WidgetReportingKeyMetrics  = "risk.reporting.key_metrics"
	WidgetReportingPerformance = "risk.reporting.performance_chart"
	WidgetReportingVolatility  = "risk.reporting.volatility_chart"
	WidgetReportingMetrics     = "risk.reporting.metrics_table"
	WidgetReportingSchedule    = "risk.reporting.scheduled_reports"

	WidgetComplianceSummary    = "risk.compliance.summary"
	WidgetComplianceAlert      = "risk.compliance.breach_alert"
	WidgetComplianceGuidelines = "risk.compliance.guidelines"
	WidgetComplianceRules      = "risk.compliance.rules_table"

	WidgetPortfolioComparison  = "risk.portfolio.comparison"
	WidgetPortfolioRiskReturn  = "risk.portfolio.risk_return_chart"
	WidgetPortfolioStress      = "risk.portfolio.stress_test"
	WidgetPortfolioCorrelation = "risk.portfolio.correlation"
	WidgetPortfolioSimilar     = "risk.portfolio.similar"

	WidgetEngineeringOverview  = "risk.engineering.system_overview"
	WidgetEngineeringLatency   = "risk.engineering.latency_chart"
	WidgetEngineeringEndpoints = "risk.engineering.endpoints"
	WidgetEngineeringResources = "risk.engineering.resources"
	WidgetEngineeringDatabase  = "risk.engineering.database"
	WidgetEngineeringConfig    = "risk.engineering.config"
)

func titleSchema(extra map[string]any) map[string]any {
	props := map[string]any{
		"title": map[string]any{"type": "string", "minLength": 1},
	}
	for k, v := range extra {
		props[k] = v
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
}

func limitSchema(max int) map[string]any {
	return map[string]any{"type": "integer", "minimum": 1, "maximum": max}
}

var defaultWidgetDefinitions = []WidgetDefinition{
	{
		Code:        WidgetActions,
		Name:        "Action Bar",
		Description: "Placeholder action buttons",
		Category:    "actions",
		Schema: titleSchema(map[string]any{
			"actions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    map[string]any{"type": "string", "minLength": 1},
			},
		}),
	},
	{
		Code:        WidgetEvents,
		Name:        "Recent Events",
		Description: "Recent compliance or system events",
		Category:    "activity",
		Schema: func() map[string]any {
			s := titleSchema(map[string]any{
				"source": map[string]any{"type": "string", "enum": []string{"compliance", "engineering"}},
			})
			s["required"] = []string{"source"}
			return s
		}(),
	},
	{
		Code:        WidgetReportingControls,
		Name:        "Report Controls",
		Description: "Portfolio and date range selection with report actions",
		Category:    "controls",
		Schema: titleSchema(map[string]any{
			"actions": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		}),
	},
	{
		Code:        WidgetReportingKeyMetrics,
		Name:        "Key Risk Metrics",
		Description: "Headline risk metric cards",
		Category:    "stats",
		Schema:      titleSchema(map[string]any{"limit": limitSchema(12)}),
	},
	{
		Code:        WidgetReportingPerformance,
		Name:        "Performance vs Benchmark",
		Description: "Indexed portfolio performance against benchmark",
		Category:    "charts",
		Schema:      titleSchema(nil),
	},
	{
		Code:        WidgetReportingVolatility,
		Name:        "Volatility Trend",
		Description: "Monthly realised volatility",
		Category:    "charts",
		Schema:      titleSchema(nil),
	},
	{
		Code:        WidgetReportingMetrics,
		Name:        "Risk Metrics Summary",
		Description: "Risk metrics against targets",
		Category:    "tables",
		Schema:      titleSchema(map[string]any{"limit": limitSchema(12)}),
	},
	{
		Code:        WidgetReportingSchedule,
		Name:        "Scheduled Reports",
		Description: "Recurring committee and regulator reports",
		Category:    "lists",
		Schema:      titleSchema(nil),
	},
	{
		Code:        WidgetComplianceSummary,
		Name:        "Compliance Summary",
		Description: "Violation, warning and compliant rule counts",
		Category:    "stats",
		Schema:      titleSchema(nil),
	},
	{
		Code:        WidgetComplianceAlert,
		Name:        "Breach Alert",
		Description: "Critical alert shown while any rule fails",
		Category:    "status",
		Schema:      titleSchema(nil),
	},
	{
		Code:        WidgetComplianceGuidelines,
		Name:        "Investment Guidelines",
		Description: "Guideline upload and current policy documents",
		Category:    "controls",
		Schema: titleSchema(map[string]any{
			"actions": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		}),
	},
	{
		Code:        WidgetComplianceRules,
		Name:        "Compliance Rules Monitor",
		Description: "Rule utilization against limits",
		Category:    "tables",
		Schema:      titleSchema(nil),
	},
	{
		Code:        WidgetPortfolioComparison,
		Name:        "Portfolio Comparison",
		Description: "Side-by-side portfolio selection",
		Category:    "controls",
		Schema:      titleSchema(nil),
	},
	{
		Code:        WidgetPortfolioRiskReturn,
		Name:        "Risk-Return Analysis",
		Description: "Risk vs return scatter",
		Category:    "charts",
		Schema:      titleSchema(nil),
	},
	{
		Code:        WidgetPortfolioStress,
		Name:        "Stress Testing",
		Description: "Scenario sliders and stressed outcomes",
		Category:    "controls",
		Schema:      titleSchema(nil),
	},
	{
		Code:        WidgetPortfolioCorrelation,
		Name:        "Asset Correlation Matrix",
		Description: "Pairwise asset class correlations",
		Category:    "tables",
		Schema:      titleSchema(nil),
	},
	{
		Code:        WidgetPortfolioSimilar,
		Name:        "Similar Portfolios",
		Description: "Peer portfolios ranked by similarity",
		Category:    "lists",
		Schema:      titleSchema(map[string]any{"limit": limitSchema(20)}),
	},
	{
		Code:        WidgetEngineeringOverview,
		Name:        "System Overview",
		Description: "Platform health cards",
		Category:    "stats",
		Schema:      titleSchema(map[string]any{"limit": limitSchema(12)}),
	},
	{
		Code:        WidgetEngineeringLatency,
		Name:        "API Latency & Errors",
		Description: "Latency and error counts over the day",
		Category:    "charts",
		Schema:      titleSchema(nil),
	},
	{
		Code:        WidgetEngineeringEndpoints,
		Name:        "Endpoint Performance",
		Description: "Latency, traffic and errors per endpoint",
		Category:    "tables",
		Schema:      titleSchema(nil),
	},
	{
		Code:        WidgetEngineeringResources,
		Name:        "System Resources",
		Description: "Resource utilisation",
		Category:    "status",
		Schema:      titleSchema(nil),
	},
	{
		Code:        WidgetEngineeringDatabase,
		Name:        "Database Health",
		Description: "Connection pool and storage statistics",
		Category:    "status",
		Schema:      titleSchema(nil),
	},
	{
		Code:        WidgetEngineeringConfig,
		Name:        "Configuration",
		Description: "Read-only service configuration",
		Category:    "status",
		Schema:      titleSchema(nil),
	},
}

// DefaultWidgetDefinitions exposes the built-in widget definitions.
func DefaultWidgetDefinitions() []WidgetDefinition {
	out := make([]WidgetDefinition, len(defaultWidgetDefinitions))
	copy(out, defaultWidgetDefinitions)
	return out
}
