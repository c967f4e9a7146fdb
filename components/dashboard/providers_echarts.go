package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "340px"

// Supported chart types.
const (
	ChartLine     = "line"
	ChartArea     = "area"
	ChartScatter  = "scatter"
	ChartDualLine = "dual_line"
)

var sharedChartCache = NewChartCache(5 * time.Minute)

type chartRenderContext struct {
	Persona Persona
	Theme   string
}

// ThemeResolver selects a chart theme per persona.
type ThemeResolver func(Persona) string

// EChartsProvider renders server-side chart HTML for the given chart type
// from the series carried in the widget configuration.
type EChartsProvider struct {
	chartType     string
	cache         RenderCache
	theme         string
	themeResolver ThemeResolver
	assetsHost    string
}

// EChartsProviderOption customizes provider behavior.
type EChartsProviderOption func(*EChartsProvider)

// WithChartCache injects a render cache.
func WithChartCache(cache RenderCache) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.cache = cache
	}
}

// WithChartTheme sets a static theme (defaults to Westeros).
func WithChartTheme(theme string) EChartsProviderOption {
	return func(p *EChartsProvider) {
		if theme != "" {
			p.theme = theme
		}
	}
}

// WithChartThemeResolver resolves themes dynamically per persona.
func WithChartThemeResolver(resolver ThemeResolver) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.themeResolver = resolver
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.assetsHost = ensureTrailingSlash(host)
	}
}

// NewEChartsProvider builds a provider for a specific chart type.
func NewEChartsProvider(chartType string, opts ...EChartsProviderOption) *EChartsProvider {
	p := &EChartsProvider{
		chartType:  strings.ToLower(chartType),
		cache:      sharedChartCache,
		theme:      types.ThemeWesteros,
		assetsHost: DefaultEChartsAssetsHost(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Fetch converts widget configuration into go-echarts markup.
func (p *EChartsProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	cfg := meta.Instance.Configuration
	if cfg == nil {
		cfg = map[string]any{}
	}

	spec := chartSpec{
		Title:    stringValue(cfg["title"], "Chart"),
		Subtitle: stringValue(cfg["subtitle"], ""),
		Series:   parseChartSeries(cfg["series"]),
		XAxis:    stringSliceValue(cfg["x_axis"]),
		XName:    stringValue(cfg["x_name"], ""),
		YNames:   stringSliceValue(cfg["y_names"]),
		XRange:   axisRangeValue(cfg["x_range"]),
		YRange:   axisRangeValue(cfg["y_range"]),
	}
	if len(spec.Series) == 0 {
		return nil, fmt.Errorf("chart series is required")
	}
	if len(spec.XAxis) == 0 {
		spec.XAxis = inferredAxisLabels(spec.Series)
	}

	renderCtx := chartRenderContext{
		Persona: meta.State.Persona,
		Theme:   p.resolveTheme(meta.State.Persona),
	}
	if override := strings.TrimSpace(stringValue(cfg["theme"], "")); override != "" {
		renderCtx.Theme = override
	}

	renderFn := func() (string, error) {
		return p.render(spec, renderCtx)
	}

	var (
		html string
		err  error
	)
	if p.cache != nil {
		key := chartKey{
			Instance:  meta.Instance.DefinitionID + ":" + meta.Instance.ID,
			ChartType: p.chartType,
			Persona:   renderCtx.Persona,
			Theme:     renderCtx.Theme,
			Config:    cfg,
		}
		html, err = p.cache.GetOrRender(key.String(), renderFn)
	} else {
		html, err = renderFn()
	}
	if err != nil {
		return nil, err
	}

	return WidgetData{
		"kind":       KindChart,
		"chart_html": html,
		"chart_type": p.chartType,
		"title":      spec.Title,
		"subtitle":   spec.Subtitle,
		"theme":      renderCtx.Theme,
	}, nil
}

type chartSpec struct {
	Title    string
	Subtitle string
	XAxis    []string
	XName    string
	YNames   []string
	XRange   *AxisRange
	YRange   *AxisRange
	Series   []ChartSeries
}

func (p *EChartsProvider) render(spec chartSpec, ctx chartRenderContext) (string, error) {
	switch p.chartType {
	case ChartLine:
		return p.renderLineChart(spec, ctx, false)
	case ChartArea:
		return p.renderLineChart(spec, ctx, true)
	case ChartScatter:
		return p.renderScatterChart(spec, ctx)
	case ChartDualLine:
		return p.renderDualAxisChart(spec, ctx)
	default:
		return "", fmt.Errorf("unsupported chart type: %s", p.chartType)
	}
}

func (p *EChartsProvider) renderLineChart(spec chartSpec, ctx chartRenderContext, area bool) (string, error) {
	line := charts.NewLine()
	global := p.globalChartOptions(spec.Title, spec.Subtitle, ctx)
	if yAxis, ok := spec.yAxis(0); ok {
		global = append(global, charts.WithYAxisOpts(yAxis))
	}
	line.SetGlobalOptions(global...)
	line.SetXAxis(spec.XAxis)
	for _, s := range spec.Series {
		line.AddSeries(s.Name, toLineData(s.Points), seriesOptions(s, area)...)
	}
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return renderChart(line)
}

func (p *EChartsProvider) renderScatterChart(spec chartSpec, ctx chartRenderContext) (string, error) {
	scatter := charts.NewScatter()
	global := p.globalChartOptions(spec.Title, spec.Subtitle, ctx)
	xAxis := opts.XAxis{Type: "value", Name: spec.XName}
	if spec.XRange != nil {
		xAxis.Min = spec.XRange.Min
		xAxis.Max = spec.XRange.Max
	}
	global = append(global, charts.WithXAxisOpts(xAxis))
	if yAxis, ok := spec.yAxis(0); ok {
		yAxis.Type = "value"
		global = append(global, charts.WithYAxisOpts(yAxis))
	}
	scatter.SetGlobalOptions(global...)
	for _, s := range spec.Series {
		scatter.AddSeries(s.Name, toScatterData(s.Points))
	}
	return renderChart(scatter)
}

func (p *EChartsProvider) renderDualAxisChart(spec chartSpec, ctx chartRenderContext) (string, error) {
	line := charts.NewLine()
	global := p.globalChartOptions(spec.Title, spec.Subtitle, ctx)
	primary, _ := spec.yAxis(0)
	global = append(global, charts.WithYAxisOpts(primary))
	line.SetGlobalOptions(global...)
	secondary, _ := spec.yAxis(1)
	secondary.Position = "right"
	line.ExtendYAxis(secondary)
	line.SetXAxis(spec.XAxis)
	for _, s := range spec.Series {
		options := seriesOptions(s, false)
		options = append(options, charts.WithLineChartOpts(opts.LineChart{
			Smooth:     opts.Bool(true),
			YAxisIndex: s.YAxisIndex,
		}))
		line.AddSeries(s.Name, toLineData(s.Points), options...)
	}
	return renderChart(line)
}

func seriesOptions(s ChartSeries, area bool) []charts.SeriesOpts {
	var options []charts.SeriesOpts
	if s.Dashed {
		options = append(options, charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed"}))
	}
	if area || s.Area {
		options = append(options, charts.WithAreaStyleOpts(opts.AreaStyle{}))
	}
	return options
}

func (spec chartSpec) yAxis(idx int) (opts.YAxis, bool) {
	axis := opts.YAxis{}
	set := false
	if idx < len(spec.YNames) && spec.YNames[idx] != "" {
		axis.Name = spec.YNames[idx]
		set = true
	}
	if idx == 0 && spec.YRange != nil {
		axis.Min = spec.YRange.Min
		axis.Max = spec.YRange.Max
		set = true
	}
	return axis, set
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (p *EChartsProvider) globalChartOptions(title, subtitle string, ctx chartRenderContext) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  ctx.Theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if p.assetsHost != "" {
		initOpts.AssetsHost = p.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func (p *EChartsProvider) resolveTheme(persona Persona) string {
	if p.themeResolver != nil {
		if theme := p.themeResolver(persona); theme != "" {
			return theme
		}
	}
	if p.theme != "" {
		return p.theme
	}
	return types.ThemeWesteros
}

func toLineData(points []ChartPoint) []opts.LineData {
	data := make([]opts.LineData, len(points))
	for i, point := range points {
		data[i] = opts.LineData{
			Name:  point.Label,
			Value: point.Value,
		}
	}
	return data
}

func toScatterData(points []ChartPoint) []opts.ScatterData {
	data := make([]opts.ScatterData, len(points))
	for i, point := range points {
		value := []float64{float64(i + 1), point.Value}
		if len(point.Pair) >= 2 {
			value = point.Pair[:2]
		}
		data[i] = opts.ScatterData{
			Name:       point.Label,
			Value:      value,
			SymbolSize: 14,
		}
	}
	return data
}

// ChartSeries represents a set of values plotted for a given legend entry.
type ChartSeries struct {
	Name       string
	Points     []ChartPoint
	Dashed     bool
	Area       bool
	YAxisIndex int
}

// ChartPoint represents an individual value (optionally labeled).
type ChartPoint struct {
	Label string
	Value float64
	Pair  []float64
}

func parseChartSeries(v any) []ChartSeries {
	switch val := v.(type) {
	case []map[string]any:
		out := make([]ChartSeries, 0, len(val))
		for _, item := range val {
			if series := buildSeries(item); len(series.Points) > 0 {
				out = append(out, series)
			}
		}
		return out
	case []any:
		out := make([]ChartSeries, 0, len(val))
		for _, item := range val {
			seriesMap, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if series := buildSeries(seriesMap); len(series.Points) > 0 {
				out = append(out, series)
			}
		}
		return out
	default:
		return nil
	}
}

func buildSeries(m map[string]any) ChartSeries {
	return ChartSeries{
		Name:       stringValue(m["name"], "Series"),
		Points:     parseChartPoints(m["data"]),
		Dashed:     boolValue(m["dashed"]),
		Area:       boolValue(m["area"]),
		YAxisIndex: int(float64Value(m["y_axis"])),
	}
}

func parseChartPoints(v any) []ChartPoint {
	switch value := v.(type) {
	case []any:
		return convertAnyPoints(value)
	case []float64:
		points := make([]ChartPoint, len(value))
		for i, val := range value {
			points[i] = ChartPoint{Value: val}
		}
		return points
	case []int:
		points := make([]ChartPoint, len(value))
		for i, val := range value {
			points[i] = ChartPoint{Value: float64(val)}
		}
		return points
	case []map[string]any:
		points := make([]ChartPoint, 0, len(value))
		for _, item := range value {
			points = append(points, ChartPoint{
				Label: stringValue(item["name"], ""),
				Value: float64Value(item["value"]),
				Pair:  pairFromMap(item),
			})
		}
		return points
	default:
		return nil
	}
}

func convertAnyPoints(items []any) []ChartPoint {
	points := make([]ChartPoint, 0, len(items))
	for _, item := range items {
		switch val := item.(type) {
		case map[string]any:
			points = append(points, ChartPoint{
				Label: stringValue(val["name"], ""),
				Value: float64Value(val["value"]),
				Pair:  pairFromMap(val),
			})
		default:
			points = append(points, ChartPoint{Value: float64Value(val)})
		}
	}
	return points
}

func pairFromMap(m map[string]any) []float64 {
	if _, ok := m["x"]; !ok {
		return nil
	}
	if _, ok := m["y"]; !ok {
		return nil
	}
	return []float64{float64Value(m["x"]), float64Value(m["y"])}
}

func axisRangeValue(v any) *AxisRange {
	switch val := v.(type) {
	case AxisRange:
		return &val
	case *AxisRange:
		return val
	case map[string]any:
		return &AxisRange{Min: float64Value(val["min"]), Max: float64Value(val["max"])}
	default:
		return nil
	}
}

func stringSliceValue(v any) []string {
	switch val := v.(type) {
	case []string:
		return append([]string(nil), val...)
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func stringValue(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func float64Value(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return 0
}

func intValue(v any, fallback int) int {
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	default:
		return fallback
	}
}

func boolValue(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return strings.EqualFold(val, "true")
	case int:
		return val != 0
	case int64:
		return val != 0
	default:
		return false
	}
}

func inferredAxisLabels(series []ChartSeries) []string {
	if len(series) == 0 {
		return nil
	}
	var candidate []string
	max := 0
	for _, s := range series {
		if len(s.Points) > max {
			max = len(s.Points)
			candidate = make([]string, len(s.Points))
			for i, point := range s.Points {
				if point.Label != "" {
					candidate[i] = point.Label
				} else {
					candidate[i] = fmt.Sprintf("Item %d", i+1)
				}
			}
		}
	}
	return candidate
}
