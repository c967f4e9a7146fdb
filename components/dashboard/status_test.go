package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusVocabulariesResolveTreatments(t *testing.T) {
	for _, s := range []ComplianceStatus{CompliancePass, ComplianceWarning, ComplianceFail} {
		tr := s.Treatment()
		if tr.Icon == "" || tr.TextClass == "" || tr.BadgeClass == "" || tr.BorderClass == "" {
			t.Fatalf("compliance status %s has incomplete treatment %#v", s, tr)
		}
	}
	for _, s := range []MetricStatus{MetricGood, MetricWarning, MetricDanger} {
		if tr := s.Treatment(); tr.Icon == "" || tr.TextClass == "" {
			t.Fatalf("metric status %s has incomplete treatment %#v", s, tr)
		}
	}
	for _, s := range []HealthStatus{HealthHealthy, HealthWarning, HealthError} {
		if tr := s.Treatment(); tr.Icon == "" || tr.TextClass == "" {
			t.Fatalf("health status %s has incomplete treatment %#v", s, tr)
		}
	}
}

func TestStatusTreatmentMapping(t *testing.T) {
	assert.Equal(t, "check-circle", CompliancePass.Treatment().Icon)
	assert.Equal(t, "text-warning", ComplianceWarning.Treatment().TextClass)
	assert.Equal(t, "x-circle", ComplianceFail.Treatment().Icon)
	assert.Equal(t, "status-fail", MetricDanger.Treatment().BadgeClass)
	assert.Equal(t, "alert-triangle", HealthError.Treatment().Icon)
	assert.Equal(t, "text-danger", HealthError.Treatment().TextClass)
}

func TestUnknownStatusFallback(t *testing.T) {
	assert.Equal(t, CompliancePass.Treatment(), ComplianceStatus("mystery").Treatment())
	assert.Equal(t, MetricGood.Treatment(), MetricStatus("").Treatment())

	unknown := HealthStatus("degraded").Treatment()
	assert.Equal(t, HealthHealthy.Treatment().Icon, unknown.Icon)
	assert.Equal(t, "text-muted-foreground", unknown.TextClass)
	assert.False(t, ComplianceStatus("mystery").Valid())
	assert.True(t, ComplianceStatus(" FAIL ").normalize().Valid())
}

func TestSeverityTextClass(t *testing.T) {
	assert.Equal(t, "text-danger", SeverityHigh.TextClass())
	assert.Equal(t, "text-warning", SeverityMedium.TextClass())
	assert.Equal(t, "text-success", SeverityLow.TextClass())
	assert.Equal(t, "text-muted-foreground", Severity("critical").TextClass())
}

func TestThresholdTones(t *testing.T) {
	cases := []struct {
		name string
		got  Tone
		want Tone
	}{
		{"latency over 200", LatencyTone(267), ToneDanger},
		{"latency at 200", LatencyTone(200), ToneWarning},
		{"latency over 150", LatencyTone(156), ToneWarning},
		{"latency at 150", LatencyTone(150), ToneSuccess},
		{"errors over 10", ErrorCountTone(15), ToneDanger},
		{"errors at 10", ErrorCountTone(10), ToneWarning},
		{"errors at 5", ErrorCountTone(5), ToneSuccess},
		{"base scenario", ScenarioTone("Base Case"), ToneSuccess},
		{"combined scenario", ScenarioTone("Combined Stress"), ToneDanger},
		{"other scenario", ScenarioTone("Market Drop 15%"), ToneWarning},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.got)
		})
	}
}

func TestTrendOf(t *testing.T) {
	assert.Equal(t, TrendUp, TrendOf(1.8, 1.5))
	assert.Equal(t, TrendDown, TrendOf(1.5, 1.5))
	assert.Equal(t, TrendDown, TrendOf(-2.1, 0))
}
