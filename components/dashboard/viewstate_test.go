package dashboard

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseViewState(t *testing.T) {
	values := url.Values{}
	values.Set(ParamPersona, " Portfolio-Manager ")
	values.Set(ParamPortfolio, "port-2")
	values.Set(ParamMarketDrop, "30")
	values.Set(ParamGuidelines, "policy.pdf")

	state, err := ParseViewState(values)
	require.NoError(t, err)
	assert.Equal(t, PersonaPortfolioManager, state.Persona)
	assert.Equal(t, "port-2", state.Portfolio)
	assert.Equal(t, 30, state.MarketDrop)
	assert.Zero(t, state.RateHike)
	assert.Equal(t, "policy.pdf", state.Guidelines)
}

func TestParseViewStateRejectsNonIntegerSliders(t *testing.T) {
	_, err := ParseViewState(url.Values{ParamRateHike: {"lots"}})
	require.ErrorIs(t, err, ErrInvalidViewState)
}

func TestViewStateNormalizeFillsDefaults(t *testing.T) {
	f := mustFixtures(t)
	state := ViewState{Persona: "nobody"}.Normalize(f)
	assert.Equal(t, DefaultPersona(), state.Persona)
	assert.Equal(t, "port-1", state.Portfolio)
	assert.Equal(t, "ytd", state.DateRange)
	assert.Equal(t, "port-1", state.PortfolioA)
	assert.Equal(t, "port-2", state.PortfolioB)
	assert.Equal(t, 15, state.MarketDrop)
	assert.Equal(t, 200, state.RateHike)

	kept := ViewState{Persona: PersonaEngineeringLead, MarketDrop: 40}.Normalize(f)
	assert.Equal(t, PersonaEngineeringLead, kept.Persona)
	assert.Equal(t, 40, kept.MarketDrop)
}

func TestViewStateQueryRoundTrip(t *testing.T) {
	state := ViewState{Persona: PersonaComplianceAnalyst, Guidelines: "rules.docx", RateHike: 250}
	parsed, err := ParseViewState(state.Query())
	require.NoError(t, err)
	assert.Equal(t, state, parsed)

	assert.Equal(t, "/risk?persona=compliance-analyst", ViewState{Persona: PersonaComplianceAnalyst}.Href("/risk"))
	assert.Equal(t, "/", ViewState{}.Href(""))
}

func TestWithPersonaReturnsCopy(t *testing.T) {
	original := DefaultViewState()
	next := original.WithPersona(PersonaEngineeringLead)
	assert.Equal(t, PersonaReportingAnalyst, original.Persona)
	assert.Equal(t, PersonaEngineeringLead, next.Persona)
}
