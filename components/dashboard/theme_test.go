package dashboard

import (
	"testing"

	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/stretchr/testify/assert"
)

func TestNewThemeUsesPersonaAccent(t *testing.T) {
	theme := NewTheme(PersonaComplianceAnalyst, "")
	assert.Equal(t, PersonaComplianceAnalyst, theme.Persona)
	assert.Equal(t, types.ThemeWesteros, theme.ChartTheme)
	assert.Equal(t, "var(--chart-2)", theme.CSSVariables()["--persona-accent"])
	assert.Equal(t, "--persona-accent: var(--chart-2); --persona-accent-fg: var(--chart-2-foreground);", theme.CSSVariablesInline())

	assert.Equal(t, types.ThemeWalden, NewTheme(PersonaEngineeringLead, types.ThemeWalden).ChartTheme)
	assert.Equal(t, PersonaReportingAnalyst, NewTheme("ghost", "").Persona)
}

func TestThemeCSSVariablesEmpty(t *testing.T) {
	assert.Nil(t, Theme{}.CSSVariables())
	assert.Empty(t, Theme{}.CSSVariablesInline())
	assert.Equal(t, "--x", normalizeCSSVariable(" x "))
	assert.Equal(t, "--y", normalizeCSSVariable("--y"))
}
