package dashboard

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures/risk.yaml
var embeddedFixtures embed.FS

const embeddedFixturesPath = "fixtures/risk.yaml"

// Product carries the header text shown above every dashboard.
type Product struct {
	Title    string `yaml:"title" json:"title"`
	Subtitle string `yaml:"subtitle" json:"subtitle"`
}

// Portfolio is a named investment portfolio.
type Portfolio struct {
	ID       string          `yaml:"id" json:"id"`
	Name     string          `yaml:"name" json:"name"`
	Value    decimal.Decimal `yaml:"-" json:"value"`
	Currency string          `yaml:"currency" json:"currency"`
}

var portfolioKeys = map[string]struct{}{"id": {}, "name": {}, "value": {}, "currency": {}}

// UnmarshalYAML decodes value as an exact decimal amount. Keys outside the
// portfolio fields are rejected.
func (p *Portfolio) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		ID       string `yaml:"id"`
		Name     string `yaml:"name"`
		Value    string `yaml:"value"`
		Currency string `yaml:"currency"`
	}
	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if _, ok := portfolioKeys[key.Value]; !ok {
				return fmt.Errorf("line %d: field %s not found in portfolio", key.Line, key.Value)
			}
		}
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	value, err := decimal.NewFromString(strings.TrimSpace(raw.Value))
	if err != nil {
		return fmt.Errorf("portfolio %s value %q: %w", raw.ID, raw.Value, err)
	}
	*p = Portfolio{ID: raw.ID, Name: raw.Name, Value: value, Currency: raw.Currency}
	return nil
}

// FormattedValue renders the portfolio value in its currency.
func (p Portfolio) FormattedValue() string {
	return FormatCurrency(p.Value, p.Currency)
}

// RiskMetric is a headline risk statistic. Status is curated, not derived.
type RiskMetric struct {
	Name      string       `yaml:"name" json:"name"`
	Value     float64      `yaml:"value" json:"value"`
	Unit      string       `yaml:"unit" json:"unit"`
	Status    MetricStatus `yaml:"status" json:"status"`
	Benchmark *float64     `yaml:"benchmark,omitempty" json:"benchmark,omitempty"`
}

// ComplianceRule is a monitored investment limit.
type ComplianceRule struct {
	ID       string           `yaml:"id" json:"id"`
	Rule     string           `yaml:"rule" json:"rule"`
	Current  float64          `yaml:"current" json:"current"`
	Limit    float64          `yaml:"limit" json:"limit"`
	Status   ComplianceStatus `yaml:"status" json:"status"`
	Severity Severity         `yaml:"severity" json:"severity"`
}

// Utilization returns current as a percentage of limit.
func (r ComplianceRule) Utilization() (float64, bool) {
	return Utilization(r.Current, r.Limit)
}

// MetricValue holds either a number or preformatted text such as "145ms".
type MetricValue struct {
	Number float64
	Text   string
	IsText bool
}

// NumberValue builds a numeric MetricValue.
func NumberValue(v float64) MetricValue { return MetricValue{Number: v} }

// TextValue builds a preformatted MetricValue.
func TextValue(s string) MetricValue { return MetricValue{Text: s, IsText: true} }

// UnmarshalYAML keeps numeric scalars as numbers and everything else as text.
func (v *MetricValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("metric value must be a scalar, got %s", node.ShortTag())
	}
	switch node.ShortTag() {
	case "!!int", "!!float":
		var n float64
		if err := node.Decode(&n); err != nil {
			return err
		}
		*v = NumberValue(n)
	default:
		*v = TextValue(node.Value)
	}
	return nil
}

// MarshalJSON emits the natural JSON type of the value.
func (v MetricValue) MarshalJSON() ([]byte, error) {
	if v.IsText {
		return json.Marshal(v.Text)
	}
	return json.Marshal(v.Number)
}

func (v MetricValue) String() string {
	if v.IsText {
		return v.Text
	}
	return FormatNumber(v.Number)
}

// SystemMetric is a platform health indicator.
type SystemMetric struct {
	Name   string       `yaml:"name" json:"name"`
	Value  MetricValue  `yaml:"value" json:"value"`
	Status HealthStatus `yaml:"status" json:"status"`
	Unit   string       `yaml:"unit,omitempty" json:"unit,omitempty"`
}

// Display renders the value with its unit, never duplicating the unit.
func (m SystemMetric) Display() string {
	return WithUnit(m.Value.String(), m.Unit)
}

// PerformancePoint is one month of indexed portfolio vs benchmark performance.
type PerformancePoint struct {
	Date      string  `yaml:"date" json:"date"`
	Portfolio float64 `yaml:"portfolio" json:"portfolio"`
	Benchmark float64 `yaml:"benchmark" json:"benchmark"`
}

// VolatilityPoint is one month of realised volatility.
type VolatilityPoint struct {
	Date       string  `yaml:"date" json:"date"`
	Volatility float64 `yaml:"volatility" json:"volatility"`
}

// CorrelationRow is one row of the asset class correlation matrix.
type CorrelationRow struct {
	Asset       string  `yaml:"asset" json:"asset"`
	Equity      float64 `yaml:"equity" json:"equity"`
	Bonds       float64 `yaml:"bonds" json:"bonds"`
	REITs       float64 `yaml:"reits" json:"reits"`
	Commodities float64 `yaml:"commodities" json:"commodities"`
}

// Coefficients returns the row values in column order.
func (r CorrelationRow) Coefficients() []float64 {
	return []float64{r.Equity, r.Bonds, r.REITs, r.Commodities}
}

// Option is a select option.
type Option struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// ScheduledReport is a recurring report entry.
type ScheduledReport struct {
	Name    string `yaml:"name" json:"name"`
	NextRun string `yaml:"next_run" json:"next_run"`
	Status  string `yaml:"status" json:"status"`
}

// ReportingFixtures holds reporting analyst view data.
type ReportingFixtures struct {
	DefaultRange     string            `yaml:"default_range"`
	DateRanges       []Option          `yaml:"date_ranges"`
	ScheduledReports []ScheduledReport `yaml:"scheduled_reports"`
}

// Guideline is a policy document currently in force.
type Guideline struct {
	Name   string `yaml:"name" json:"name"`
	Status string `yaml:"status" json:"status"`
}

// Event is an entry in a recent events feed.
type Event struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Time        string `yaml:"time" json:"time"`
	Tone        Tone   `yaml:"tone" json:"tone"`
}

// ComplianceFixtures holds compliance analyst view data.
type ComplianceFixtures struct {
	AcceptedExtensions []string    `yaml:"accepted_extensions"`
	Guidelines         []Guideline `yaml:"guidelines"`
	Events             []Event     `yaml:"events"`
}

// ComparisonStats are the per-slot figures shown in portfolio comparison.
type ComparisonStats struct {
	Return     float64 `yaml:"return" json:"return"`
	Volatility float64 `yaml:"volatility" json:"volatility"`
	Sharpe     float64 `yaml:"sharpe" json:"sharpe"`
}

// RiskReturnPoint is one scatter point.
type RiskReturnPoint struct {
	Name   string  `yaml:"name" json:"name"`
	Risk   float64 `yaml:"risk" json:"risk"`
	Return float64 `yaml:"return" json:"return"`
}

// AxisRange bounds a chart axis.
type AxisRange struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Slider describes a bounded numeric control. Label uses {n} for the value.
type Slider struct {
	Min     int    `yaml:"min" json:"min"`
	Max     int    `yaml:"max" json:"max"`
	Step    int    `yaml:"step" json:"step"`
	Default int    `yaml:"default" json:"default"`
	Label   string `yaml:"label" json:"label"`
}

// Format interpolates n into the slider label.
func (s Slider) Format(n int) string {
	return interpolate(s.Label, n)
}

// Contains reports whether n is in range and on a step boundary.
func (s Slider) Contains(n int) bool {
	if n < s.Min || n > s.Max {
		return false
	}
	return s.Step <= 0 || (n-s.Min)%s.Step == 0
}

// StressScenario is one stress test row. Numbers are illustrative constants;
// only the label follows the slider.
type StressScenario struct {
	Label      string  `yaml:"label" json:"label"`
	Slider     string  `yaml:"slider,omitempty" json:"slider,omitempty"`
	Return     float64 `yaml:"return" json:"return"`
	Volatility float64 `yaml:"volatility" json:"volatility"`
	Sharpe     float64 `yaml:"sharpe" json:"sharpe"`
	Drawdown   float64 `yaml:"drawdown" json:"drawdown"`
}

// StressFixtures configures the stress testing panel.
type StressFixtures struct {
	MarketDrop Slider           `yaml:"market_drop"`
	RateHike   Slider           `yaml:"rate_hike"`
	Scenarios  []StressScenario `yaml:"scenarios"`
}

// SimilarPortfolio is a peer portfolio match.
type SimilarPortfolio struct {
	Name       string  `yaml:"name" json:"name"`
	Similarity float64 `yaml:"similarity" json:"similarity"`
	Returns    float64 `yaml:"returns" json:"returns"`
	Risk       float64 `yaml:"risk" json:"risk"`
}

// PortfolioManagerFixtures holds portfolio manager view data.
type PortfolioManagerFixtures struct {
	DefaultPortfolioA string            `yaml:"default_portfolio_a"`
	DefaultPortfolioB string            `yaml:"default_portfolio_b"`
	Comparison        []ComparisonStats `yaml:"comparison"`
	RiskReturn        []RiskReturnPoint `yaml:"risk_return"`
	RiskReturnAxes    struct {
		X AxisRange `yaml:"x"`
		Y AxisRange `yaml:"y"`
	} `yaml:"risk_return_axes"`
	Stress  StressFixtures     `yaml:"stress"`
	Similar []SimilarPortfolio `yaml:"similar"`
}

// LatencyPoint is one sample of API latency and errors.
type LatencyPoint struct {
	Time    string  `yaml:"time" json:"time"`
	Latency float64 `yaml:"latency" json:"latency"`
	Errors  float64 `yaml:"errors" json:"errors"`
}

// Endpoint summarises one API endpoint.
type Endpoint struct {
	Path       string  `yaml:"path" json:"path"`
	AvgLatency float64 `yaml:"avg_latency" json:"avg_latency"`
	Calls      int64   `yaml:"calls" json:"calls"`
	Errors     int     `yaml:"errors" json:"errors"`
}

// Resource is a utilisation gauge.
type Resource struct {
	Name   string       `yaml:"name" json:"name"`
	Value  float64      `yaml:"value" json:"value"`
	Max    float64      `yaml:"max" json:"max"`
	Unit   string       `yaml:"unit" json:"unit"`
	Status HealthStatus `yaml:"status" json:"status"`
}

// DatabaseStat is a database health line.
type DatabaseStat struct {
	Name   string       `yaml:"name" json:"name"`
	Value  string       `yaml:"value" json:"value"`
	Status HealthStatus `yaml:"status" json:"status"`
}

// KeyValue is a labelled value.
type KeyValue struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

// ConfigPanel is a read-only configuration summary.
type ConfigPanel struct {
	Title   string     `yaml:"title" json:"title"`
	Entries []KeyValue `yaml:"entries" json:"entries"`
}

// EngineeringFixtures holds engineering lead view data.
type EngineeringFixtures struct {
	APILatency   []LatencyPoint `yaml:"api_latency"`
	Endpoints    []Endpoint     `yaml:"endpoints"`
	Resources    []Resource     `yaml:"resources"`
	Database     []DatabaseStat `yaml:"database"`
	ConfigPanels []ConfigPanel  `yaml:"config_panels"`
	Events       []Event        `yaml:"events"`
}

// Fixtures is the complete static data set behind every dashboard.
// Values are treated as immutable once loaded.
type Fixtures struct {
	Product          Product                  `yaml:"product"`
	Portfolios       []Portfolio              `yaml:"portfolios"`
	RiskMetrics      []RiskMetric             `yaml:"risk_metrics"`
	ComplianceRules  []ComplianceRule         `yaml:"compliance_rules"`
	SystemMetrics    []SystemMetric           `yaml:"system_metrics"`
	Performance      []PerformancePoint       `yaml:"performance"`
	Volatility       []VolatilityPoint        `yaml:"volatility"`
	Correlation      []CorrelationRow         `yaml:"correlation"`
	Reporting        ReportingFixtures        `yaml:"reporting"`
	Compliance       ComplianceFixtures       `yaml:"compliance"`
	PortfolioManager PortfolioManagerFixtures `yaml:"portfolio_manager"`
	Engineering      EngineeringFixtures      `yaml:"engineering"`
	Source           string                   `yaml:"-"`
}

// ComplianceCounts tallies rules per status.
type ComplianceCounts struct {
	Failed   int `json:"failed"`
	Warnings int `json:"warnings"`
	Passed   int `json:"passed"`
}

// Portfolio looks a portfolio up by id.
func (f *Fixtures) Portfolio(id string) (Portfolio, bool) {
	for _, p := range f.Portfolios {
		if p.ID == id {
			return p, true
		}
	}
	return Portfolio{}, false
}

// PortfolioIDs returns portfolio ids in fixture order.
func (f *Fixtures) PortfolioIDs() []string {
	ids := make([]string, 0, len(f.Portfolios))
	for _, p := range f.Portfolios {
		ids = append(ids, p.ID)
	}
	return ids
}

// DateRangeValues returns the accepted date range identifiers.
func (f *Fixtures) DateRangeValues() []string {
	out := make([]string, 0, len(f.Reporting.DateRanges))
	for _, opt := range f.Reporting.DateRanges {
		out = append(out, opt.Value)
	}
	return out
}

// DateRangeLabel resolves a date range id to its label.
func (f *Fixtures) DateRangeLabel(value string) string {
	for _, opt := range f.Reporting.DateRanges {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}

// ComplianceCounts tallies the compliance rules by status. Unknown statuses
// are counted with their fallback, pass.
func (f *Fixtures) ComplianceCounts() ComplianceCounts {
	var counts ComplianceCounts
	for _, rule := range f.ComplianceRules {
		switch rule.Status.normalize() {
		case ComplianceFail:
			counts.Failed++
		case ComplianceWarning:
			counts.Warnings++
		default:
			counts.Passed++
		}
	}
	return counts
}

var (
	defaultFixturesOnce sync.Once
	defaultFixtures     *Fixtures
	defaultFixturesErr  error
)

// DefaultFixtures returns the embedded sample data set, decoded once.
func DefaultFixtures() (*Fixtures, error) {
	defaultFixturesOnce.Do(func() {
		data, err := embeddedFixtures.ReadFile(embeddedFixturesPath)
		if err != nil {
			defaultFixturesErr = fmt.Errorf("dashboard: read embedded fixtures: %w", err)
			return
		}
		defaultFixtures, defaultFixturesErr = DecodeFixtures(bytes.NewReader(data))
		if defaultFixtures != nil {
			defaultFixtures.Source = "embedded:" + embeddedFixturesPath
		}
	})
	return defaultFixtures, defaultFixturesErr
}

// LoadFixturesFile decodes fixtures from disk. An empty path yields the
// embedded data set.
func LoadFixturesFile(path string) (*Fixtures, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultFixtures()
	}
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open fixtures %s: %w", path, err)
	}
	defer f.Close()
	fixtures, err := DecodeFixtures(f)
	if err != nil {
		return nil, fmt.Errorf("dashboard: decode fixtures %s: %w", path, err)
	}
	fixtures.Source = path
	return fixtures, nil
}

// DecodeFixtures reads and validates a fixtures document.
func DecodeFixtures(r io.Reader) (*Fixtures, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var fixtures Fixtures
	if err := decoder.Decode(&fixtures); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: document is empty", ErrInvalidFixtures)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidFixtures, err)
	}
	if err := fixtures.Validate(); err != nil {
		return nil, err
	}
	return &fixtures, nil
}

// Validate checks identifier uniqueness and the control bounds the views rely
// on. Correlation symmetry is a convention of the data and is not checked.
func (f *Fixtures) Validate() error {
	var errs []error
	if len(f.Portfolios) == 0 {
		errs = append(errs, errors.New("at least one portfolio is required"))
	}
	seen := map[string]struct{}{}
	for idx, p := range f.Portfolios {
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("portfolio at index %d is missing id", idx))
			continue
		}
		if _, dup := seen[p.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate portfolio id %s", p.ID))
		}
		seen[p.ID] = struct{}{}
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("portfolio %s is missing name", p.ID))
		}
	}
	seenRules := map[string]struct{}{}
	for idx, rule := range f.ComplianceRules {
		if rule.ID == "" {
			errs = append(errs, fmt.Errorf("compliance rule at index %d is missing id", idx))
			continue
		}
		if _, dup := seenRules[rule.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate compliance rule id %s", rule.ID))
		}
		seenRules[rule.ID] = struct{}{}
	}
	for idx, m := range f.RiskMetrics {
		if m.Name == "" {
			errs = append(errs, fmt.Errorf("risk metric at index %d is missing name", idx))
		}
	}
	pm := f.PortfolioManager
	for _, id := range []string{pm.DefaultPortfolioA, pm.DefaultPortfolioB} {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; !ok {
			errs = append(errs, fmt.Errorf("default comparison portfolio %s is not defined", id))
		}
	}
	sliders := []struct {
		name   string
		slider Slider
	}{
		{"market_drop", pm.Stress.MarketDrop},
		{"rate_hike", pm.Stress.RateHike},
	}
	for _, s := range sliders {
		if s.slider.Min >= s.slider.Max || s.slider.Step <= 0 || !s.slider.Contains(s.slider.Default) {
			errs = append(errs, fmt.Errorf("slider %s has invalid bounds", s.name))
		}
	}
	if f.Reporting.DefaultRange != "" {
		found := false
		for _, opt := range f.Reporting.DateRanges {
			if opt.Value == f.Reporting.DefaultRange {
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, fmt.Errorf("default date range %s is not defined", f.Reporting.DefaultRange))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidFixtures, errors.Join(errs...))
	}
	return nil
}

func interpolate(label string, n int) string {
	return strings.ReplaceAll(label, "{n}", fmt.Sprintf("%d", n))
}
