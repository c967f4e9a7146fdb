package dashboard

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names carrying the view state.
const (
	ParamPersona    = "persona"
	ParamPortfolio  = "portfolio"
	ParamDateRange  = "range"
	ParamPortfolioA = "portfolio_a"
	ParamPortfolioB = "portfolio_b"
	ParamMarketDrop = "market_drop"
	ParamRateHike   = "rate_hike"
	ParamGuidelines = "guidelines"
)

// ViewStateParams lists every query parameter read by ParseViewState.
func ViewStateParams() []string {
	return []string{
		ParamPersona, ParamPortfolio, ParamDateRange, ParamPortfolioA,
		ParamPortfolioB, ParamMarketDrop, ParamRateHike, ParamGuidelines,
	}
}

// ViewState is the UI state of the shell: the selected persona plus every
// control value. It is a value type; handlers derive a new one per request.
type ViewState struct {
	Persona    Persona `json:"persona"`
	Portfolio  string  `json:"portfolio,omitempty"`
	DateRange  string  `json:"range,omitempty"`
	PortfolioA string  `json:"portfolio_a,omitempty"`
	PortfolioB string  `json:"portfolio_b,omitempty"`
	MarketDrop int     `json:"market_drop,omitempty"`
	RateHike   int     `json:"rate_hike,omitempty"`
	Guidelines string  `json:"guidelines,omitempty"`
}

// DefaultViewState selects the first persona with all controls unset.
func DefaultViewState() ViewState {
	return ViewState{Persona: DefaultPersona()}
}

// WithPersona returns a copy of the state with the persona replaced.
func (s ViewState) WithPersona(p Persona) ViewState {
	s.Persona = p
	return s
}

// ParseViewState reads the view state from query values. Slider values must
// be integers; everything else is validated once fixtures are known.
func ParseViewState(values url.Values) (ViewState, error) {
	state := ViewState{
		Persona:    Persona(strings.ToLower(strings.TrimSpace(values.Get(ParamPersona)))),
		Portfolio:  strings.TrimSpace(values.Get(ParamPortfolio)),
		DateRange:  strings.TrimSpace(values.Get(ParamDateRange)),
		PortfolioA: strings.TrimSpace(values.Get(ParamPortfolioA)),
		PortfolioB: strings.TrimSpace(values.Get(ParamPortfolioB)),
		Guidelines: strings.TrimSpace(values.Get(ParamGuidelines)),
	}
	var err error
	if state.MarketDrop, err = intParam(values, ParamMarketDrop); err != nil {
		return ViewState{}, err
	}
	if state.RateHike, err = intParam(values, ParamRateHike); err != nil {
		return ViewState{}, err
	}
	return state, nil
}

func intParam(values url.Values, key string) (int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidViewState, key)
	}
	return n, nil
}

// Query encodes the non-empty parts of the state.
func (s ViewState) Query() url.Values {
	values := url.Values{}
	set := func(key, value string) {
		if value != "" {
			values.Set(key, value)
		}
	}
	set(ParamPersona, string(s.Persona))
	set(ParamPortfolio, s.Portfolio)
	set(ParamDateRange, s.DateRange)
	set(ParamPortfolioA, s.PortfolioA)
	set(ParamPortfolioB, s.PortfolioB)
	if s.MarketDrop != 0 {
		values.Set(ParamMarketDrop, strconv.Itoa(s.MarketDrop))
	}
	if s.RateHike != 0 {
		values.Set(ParamRateHike, strconv.Itoa(s.RateHike))
	}
	set(ParamGuidelines, s.Guidelines)
	return values
}

// Href renders a link to the state under basePath.
func (s ViewState) Href(basePath string) string {
	if basePath == "" {
		basePath = "/"
	}
	q := s.Query().Encode()
	if q == "" {
		return basePath
	}
	return basePath + "?" + q
}

// Normalize fills unset controls from the fixture defaults and resolves an
// unknown persona to the default one.
func (s ViewState) Normalize(f *Fixtures) ViewState {
	if !s.Persona.Known() {
		s.Persona = DefaultPersona()
	}
	if f == nil {
		return s
	}
	if s.Portfolio == "" && len(f.Portfolios) > 0 {
		s.Portfolio = f.Portfolios[0].ID
	}
	if s.DateRange == "" {
		s.DateRange = f.Reporting.DefaultRange
	}
	pm := f.PortfolioManager
	if s.PortfolioA == "" {
		s.PortfolioA = firstNonEmpty(pm.DefaultPortfolioA, s.Portfolio)
	}
	if s.PortfolioB == "" {
		s.PortfolioB = firstNonEmpty(pm.DefaultPortfolioB, s.PortfolioA)
	}
	if s.MarketDrop == 0 {
		s.MarketDrop = pm.Stress.MarketDrop.Default
	}
	if s.RateHike == 0 {
		s.RateHike = pm.Stress.RateHike.Default
	}
	return s
}

// Payload converts the state into the generic form validated by JSON schema.
func (s ViewState) Payload() map[string]any {
	payload := map[string]any{
		ParamPersona:    string(s.Persona),
		ParamPortfolio:  s.Portfolio,
		ParamDateRange:  s.DateRange,
		ParamPortfolioA: s.PortfolioA,
		ParamPortfolioB: s.PortfolioB,
		ParamMarketDrop: s.MarketDrop,
		ParamRateHike:   s.RateHike,
	}
	if s.Guidelines != "" {
		payload[ParamGuidelines] = s.Guidelines
	}
	return payload
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
