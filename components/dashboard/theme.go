package dashboard

import (
	"sort"
	"strings"

	"github.com/go-echarts/go-echarts/v2/types"
)

// Theme carries the persona accent tokens and the chart theme for a page.
type Theme struct {
	Persona    Persona           `json:"persona"`
	ChartTheme string            `json:"chart_theme"`
	Tokens     map[string]string `json:"tokens,omitempty"`
}

// NewTheme derives the page theme for a persona. An empty chartTheme falls
// back to Westeros.
func NewTheme(p Persona, chartTheme string) Theme {
	info := p.Info()
	if strings.TrimSpace(chartTheme) == "" {
		chartTheme = types.ThemeWesteros
	}
	return Theme{
		Persona:    info.ID,
		ChartTheme: chartTheme,
		Tokens: map[string]string{
			"persona-accent":    "var(--" + info.Accent + ")",
			"persona-accent-fg": "var(--" + info.Accent + "-foreground)",
		},
	}
}

// CSSVariables normalizes token keys into CSS variable names.
func (t Theme) CSSVariables() map[string]string {
	if len(t.Tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(t.Tokens))
	for key, value := range t.Tokens {
		name := normalizeCSSVariable(key)
		if name == "" {
			continue
		}
		vars[name] = value
	}
	return vars
}

// CSSVariablesInline renders the CSS variables as a style attribute value,
// sorted by name.
func (t Theme) CSSVariablesInline() string {
	vars := t.CSSVariables()
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var builder strings.Builder
	for _, key := range keys {
		value := vars[key]
		if value == "" {
			continue
		}
		builder.WriteString(key)
		builder.WriteString(": ")
		builder.WriteString(value)
		builder.WriteString("; ")
	}
	return strings.TrimSpace(builder.String())
}

func normalizeCSSVariable(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "--") {
		return name
	}
	return "--" + name
}
