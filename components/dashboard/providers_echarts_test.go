package dashboard

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEChartsLineProvider(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider(ChartLine, WithChartCache(nil))
	ctx := sampleChartContext(WidgetReportingPerformance, map[string]any{
		"title":    "Line Test",
		"subtitle": "Global Equity Fund, YTD",
		"x_axis":   []string{"Jan", "Feb", "Mar"},
		"series": []map[string]any{
			{"name": "Portfolio", "data": []float64{100, 102.3, 104.1}},
			{"name": "Benchmark", "data": []float64{100, 101.8, 103.2}, "dashed": true},
		},
	})

	data, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	assert.Equal(t, KindChart, data["kind"])
	assert.Equal(t, ChartLine, data["chart_type"])
	assert.Equal(t, "Line Test", data["title"])
	assert.Equal(t, "Global Equity Fund, YTD", data["subtitle"])
	assert.Contains(t, html(data), "echarts")
	assert.Contains(t, html(data), "dashed")
}

func TestEChartsAreaProvider(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider(ChartArea, WithChartCache(nil))
	ctx := sampleChartContext(WidgetReportingVolatility, map[string]any{
		"title":  "Volatility",
		"x_axis": []string{"Jan", "Feb"},
		"series": []map[string]any{{"name": "Volatility", "data": []float64{8.1, 8.4}}},
	})

	data, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	assert.Equal(t, ChartArea, data["chart_type"])
	assert.Contains(t, html(data), "areaStyle")
}

func TestEChartsScatterProviderUsesPairs(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider(ChartScatter, WithChartCache(nil))
	ctx := sampleChartContext(WidgetPortfolioRiskReturn, map[string]any{
		"title":   "Risk-Return",
		"x_name":  "Risk (%)",
		"x_range": map[string]any{"min": 0, "max": 20},
		"y_range": map[string]any{"min": 0, "max": 25},
		"series": []map[string]any{
			{"name": "Global Equity Fund", "data": []map[string]any{{"name": "Global Equity Fund", "x": 8.2, "y": 12.5}}},
		},
	})

	data, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	markup := html(data)
	assert.Equal(t, ChartScatter, data["chart_type"])
	assert.Contains(t, markup, "8.2")
	assert.Contains(t, markup, "12.5")
	assert.Contains(t, markup, "Risk (%)")
}

func TestEChartsDualLineProviderExtendsYAxis(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider(ChartDualLine, WithChartCache(nil))
	ctx := sampleChartContext(WidgetEngineeringLatency, map[string]any{
		"title":   "Latency",
		"x_axis":  []string{"00:00", "04:00"},
		"y_names": []string{"Latency (ms)", "Errors"},
		"series": []map[string]any{
			{"name": "Latency (ms)", "data": []float64{120, 135}, "y_axis": 0},
			{"name": "Errors", "data": []float64{0, 1}, "y_axis": 1},
		},
	})

	data, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	markup := html(data)
	assert.Contains(t, markup, "Latency (ms)")
	assert.Contains(t, markup, `"yAxisIndex":1`)
}

func TestEChartsProviderInvalidType(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider("bubble", WithChartCache(nil))
	ctx := sampleChartContext("risk.widget.bubble", map[string]any{
		"title":  "Unsupported",
		"series": []map[string]any{{"name": "Series", "data": []float64{1}}},
	})

	_, err := provider.Fetch(context.Background(), ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestEChartsProviderRequiresSeries(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider(ChartLine, WithChartCache(nil))
	_, err := provider.Fetch(context.Background(), sampleChartContext(WidgetReportingPerformance, map[string]any{"title": "Empty"}))
	require.Error(t, err)
}

func TestEChartsProviderUsesCache(t *testing.T) {
	t.Parallel()
	cache := &countingCache{}
	provider := NewEChartsProvider(ChartLine, WithChartCache(cache))
	ctx := sampleChartContext(WidgetReportingPerformance, map[string]any{
		"title":  "Cached",
		"series": []map[string]any{{"name": "Series", "data": []float64{1, 2}}},
	})

	_, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	_, err = provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(1), cache.calls.Load())
}

func TestEChartsProviderThemeOverride(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider(ChartLine, WithChartCache(nil), WithChartThemeResolver(func(Persona) string {
		return types.ThemeWalden
	}))
	ctx := sampleChartContext(WidgetReportingPerformance, map[string]any{
		"title":  "Theme Override",
		"series": []map[string]any{{"name": "Series", "data": []float64{5, 6}}},
		"theme":  types.ThemeWonderland,
	})

	data, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	assert.Equal(t, types.ThemeWonderland, data["theme"])
}

func TestEChartsProviderThemeResolverPerPersona(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider(ChartLine, WithChartCache(nil), WithChartThemeResolver(func(p Persona) string {
		if p == PersonaEngineeringLead {
			return types.ThemeWalden
		}
		return ""
	}))
	ctx := sampleChartContext(WidgetReportingPerformance, map[string]any{
		"title":  "Resolver",
		"series": []map[string]any{{"name": "Series", "data": []float64{1}}},
	})

	data, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	assert.Equal(t, types.ThemeWesteros, data["theme"])

	ctx.State.Persona = PersonaEngineeringLead
	data, err = provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	assert.Equal(t, types.ThemeWalden, data["theme"])
}

func TestEChartsProviderStaticTheme(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider(ChartLine, WithChartCache(nil), WithChartTheme(types.ThemeWalden))
	ctx := sampleChartContext(WidgetReportingPerformance, map[string]any{
		"title":  "Explicit Theme",
		"series": []map[string]any{{"name": "Series", "data": []float64{1}}},
	})

	data, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	assert.Equal(t, types.ThemeWalden, data["theme"])
}

func TestEChartsProviderAssetsHost(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider(ChartLine, WithChartCache(nil), WithChartAssetsHost("https://cdn.example.com/echarts"))
	ctx := sampleChartContext(WidgetReportingPerformance, map[string]any{
		"title":  "CDN",
		"series": []map[string]any{{"name": "Series", "data": []float64{1}}},
	})

	data, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	assert.Contains(t, html(data), "https://cdn.example.com/echarts/")
}

func TestFixtureChartProviderBuildsFromFixtures(t *testing.T) {
	t.Parallel()
	f := mustFixtures(t)
	provider := newFixtureChartProvider(NewEChartsProvider(ChartLine, WithChartCache(nil)), performanceChartConfig)
	ctx := sampleChartContext(WidgetReportingPerformance, map[string]any{"title": "Performance vs Benchmark"})
	ctx.Fixtures = f
	ctx.State = ctx.State.Normalize(f)

	data, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	assert.Equal(t, "Performance vs Benchmark", data["title"])
	assert.Contains(t, data["subtitle"], "Global Equity Fund")
	assert.Contains(t, html(data), "Benchmark")

	ctx.Fixtures = nil
	_, err = provider.Fetch(context.Background(), ctx)
	require.ErrorIs(t, err, ErrMissingFixtures)
}

func sampleChartContext(definition string, cfg map[string]any) WidgetContext {
	return WidgetContext{
		Instance: WidgetInstance{
			ID:            definition + "-instance",
			DefinitionID:  definition,
			Configuration: cfg,
		},
		State: DefaultViewState(),
	}
}

func html(data WidgetData) string {
	if data == nil {
		return ""
	}
	if v, ok := data["chart_html"].(string); ok {
		return v
	}
	return ""
}

type countingCache struct {
	calls atomic.Int32
	html  string
}

func (c *countingCache) GetOrRender(_ string, render func() (string, error)) (string, error) {
	if c.html != "" {
		return c.html, nil
	}
	c.calls.Add(1)
	html, err := render()
	if err != nil {
		return "", err
	}
	c.html = html
	return html, nil
}

func BenchmarkEChartsLineChart(b *testing.B) {
	provider := NewEChartsProvider(ChartLine, WithChartCache(nil))
	ctx := sampleChartContext(WidgetReportingPerformance, map[string]any{
		"title":  "Benchmark",
		"x_axis": []string{"Jan", "Feb", "Mar", "Apr"},
		"series": []map[string]any{{"name": "Portfolio", "data": []float64{100, 102, 104, 103}}},
	})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := provider.Fetch(context.Background(), ctx); err != nil {
			b.Fatalf("fetch failed: %v", err)
		}
	}
}
