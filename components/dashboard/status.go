package dashboard

import "strings"

// ComplianceStatus classifies a compliance rule evaluation.
type ComplianceStatus string

const (
	CompliancePass    ComplianceStatus = "pass"
	ComplianceFail    ComplianceStatus = "fail"
	ComplianceWarning ComplianceStatus = "warning"
)

// MetricStatus classifies a risk metric.
type MetricStatus string

const (
	MetricGood    MetricStatus = "good"
	MetricWarning MetricStatus = "warning"
	MetricDanger  MetricStatus = "danger"
)

// HealthStatus classifies system metrics, resources and database stats.
type HealthStatus string

const (
	HealthHealthy HealthStatus = "healthy"
	HealthWarning HealthStatus = "warning"
	HealthError   HealthStatus = "error"
)

// Severity ranks how much a compliance breach matters.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Treatment is the visual vocabulary a status resolves to.
type Treatment struct {
	Icon        string `json:"icon"`
	TextClass   string `json:"text_class"`
	BadgeClass  string `json:"badge_class"`
	BorderClass string `json:"border_class"`
}

var (
	treatmentPositive = Treatment{Icon: "check-circle", TextClass: "text-success", BadgeClass: "status-pass", BorderClass: "border-success"}
	treatmentWarning  = Treatment{Icon: "alert-triangle", TextClass: "text-warning", BadgeClass: "status-warning", BorderClass: "border-warning"}
	treatmentFailure  = Treatment{Icon: "x-circle", TextClass: "text-danger", BadgeClass: "status-fail", BorderClass: "border-danger"}
	treatmentOutage   = Treatment{Icon: "alert-triangle", TextClass: "text-danger", BadgeClass: "status-fail", BorderClass: "border-danger"}
)

// Unrecognised health keeps the healthy icon but drops the success colour.
var treatmentHealthUnknown = Treatment{Icon: "check-circle", TextClass: severityFallbackClass, BadgeClass: "status-pass", BorderClass: "border-success"}

var complianceTreatments = map[ComplianceStatus]Treatment{
	CompliancePass:    treatmentPositive,
	ComplianceWarning: treatmentWarning,
	ComplianceFail:    treatmentFailure,
}

var metricTreatments = map[MetricStatus]Treatment{
	MetricGood:    treatmentPositive,
	MetricWarning: treatmentWarning,
	MetricDanger:  treatmentFailure,
}

var healthTreatments = map[HealthStatus]Treatment{
	HealthHealthy: treatmentPositive,
	HealthWarning: treatmentWarning,
	HealthError:   treatmentOutage,
}

var severityClasses = map[Severity]string{
	SeverityHigh:   "text-danger",
	SeverityMedium: "text-warning",
	SeverityLow:    "text-success",
}

const severityFallbackClass = "text-muted-foreground"

// Treatment resolves the visual treatment. Unknown values render as pass.
func (s ComplianceStatus) Treatment() Treatment {
	if t, ok := complianceTreatments[s.normalize()]; ok {
		return t
	}
	return treatmentPositive
}

// Valid reports whether the status is part of the vocabulary.
func (s ComplianceStatus) Valid() bool {
	_, ok := complianceTreatments[s.normalize()]
	return ok
}

func (s ComplianceStatus) normalize() ComplianceStatus {
	return ComplianceStatus(strings.ToLower(strings.TrimSpace(string(s))))
}

// Treatment resolves the visual treatment. Unknown values render as good.
func (s MetricStatus) Treatment() Treatment {
	if t, ok := metricTreatments[s.normalize()]; ok {
		return t
	}
	return treatmentPositive
}

// Valid reports whether the status is part of the vocabulary.
func (s MetricStatus) Valid() bool {
	_, ok := metricTreatments[s.normalize()]
	return ok
}

func (s MetricStatus) normalize() MetricStatus {
	return MetricStatus(strings.ToLower(strings.TrimSpace(string(s))))
}

// Treatment resolves the visual treatment. Unknown values keep the healthy
// icon with muted text.
func (s HealthStatus) Treatment() Treatment {
	if t, ok := healthTreatments[s.normalize()]; ok {
		return t
	}
	return treatmentHealthUnknown
}

// Valid reports whether the status is part of the vocabulary.
func (s HealthStatus) Valid() bool {
	_, ok := healthTreatments[s.normalize()]
	return ok
}

func (s HealthStatus) normalize() HealthStatus {
	return HealthStatus(strings.ToLower(strings.TrimSpace(string(s))))
}

// TextClass returns the severity colour, muted for unknown severities.
func (s Severity) TextClass() string {
	if class, ok := severityClasses[Severity(strings.ToLower(strings.TrimSpace(string(s))))]; ok {
		return class
	}
	return severityFallbackClass
}

// Valid reports whether the severity is part of the vocabulary.
func (s Severity) Valid() bool {
	_, ok := severityClasses[Severity(strings.ToLower(strings.TrimSpace(string(s))))]
	return ok
}

// Tone is a coarse colour bucket used by thresholds and scenario rows.
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
	ToneNeutral Tone = "neutral"
)

// TextClass maps the tone onto the shared text colour classes.
func (t Tone) TextClass() string {
	switch t {
	case ToneSuccess:
		return "text-success"
	case ToneWarning:
		return "text-warning"
	case ToneDanger:
		return "text-danger"
	default:
		return severityFallbackClass
	}
}

// LatencyTone buckets endpoint latency in milliseconds.
func LatencyTone(ms float64) Tone {
	switch {
	case ms > 200:
		return ToneDanger
	case ms > 150:
		return ToneWarning
	default:
		return ToneSuccess
	}
}

// ErrorCountTone buckets endpoint error counts.
func ErrorCountTone(errors int) Tone {
	switch {
	case errors > 10:
		return ToneDanger
	case errors > 5:
		return ToneWarning
	default:
		return ToneSuccess
	}
}

// ScenarioTone colours a stress scenario row by its label.
func ScenarioTone(scenario string) Tone {
	switch {
	case strings.Contains(scenario, "Base"):
		return ToneSuccess
	case strings.Contains(scenario, "Combined"):
		return ToneDanger
	default:
		return ToneWarning
	}
}

// Trend is the direction indicator shown next to a value.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// TrendOf returns up when value is strictly greater than reference.
func TrendOf(value, reference float64) Trend {
	if value > reference {
		return TrendUp
	}
	return TrendDown
}
