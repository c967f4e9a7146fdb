package dashboard

import (
	"fmt"
	"strings"

	"github.com/ettle/strcase"
)

// Persona identifies one of the role-specific dashboards.
type Persona string

const (
	PersonaReportingAnalyst  Persona = "reporting-analyst"
	PersonaComplianceAnalyst Persona = "compliance-analyst"
	PersonaPortfolioManager  Persona = "portfolio-manager"
	PersonaEngineeringLead   Persona = "engineering-lead"
)

var personaOrder = []Persona{
	PersonaReportingAnalyst,
	PersonaComplianceAnalyst,
	PersonaPortfolioManager,
	PersonaEngineeringLead,
}

// PersonaInfo is the display metadata shown in the persona picker.
type PersonaInfo struct {
	ID          Persona `json:"id"`
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Accent      string  `json:"accent"`
}

var personaCatalog = map[Persona]PersonaInfo{
	PersonaReportingAnalyst: {
		ID:          PersonaReportingAnalyst,
		Name:        "Wei Jie",
		Role:        "Reporting Analyst",
		Description: "Recurring reports for committees and regulators",
		Icon:        "file-text",
		Accent:      "chart-1",
	},
	PersonaComplianceAnalyst: {
		ID:          PersonaComplianceAnalyst,
		Name:        "Sheryl",
		Role:        "Compliance Analyst",
		Description: "Ensure compliance with MAS regulations and GIC guidelines",
		Icon:        "shield",
		Accent:      "chart-2",
	},
	PersonaPortfolioManager: {
		ID:          PersonaPortfolioManager,
		Name:        "Cheng Yi",
		Role:        "Portfolio Manager",
		Description: "Balance risk vs return, test scenarios",
		Icon:        "trending-up",
		Accent:      "chart-3",
	},
	PersonaEngineeringLead: {
		ID:          PersonaEngineeringLead,
		Name:        "Gio",
		Role:        "Engineering Lead",
		Description: "System reliability and scalability",
		Icon:        "settings",
		Accent:      "chart-4",
	},
}

// Personas returns the fixed picker ordering.
func Personas() []Persona {
	return append([]Persona(nil), personaOrder...)
}

// PersonaCatalog returns display metadata in picker order.
func PersonaCatalog() []PersonaInfo {
	out := make([]PersonaInfo, 0, len(personaOrder))
	for _, id := range personaOrder {
		out = append(out, personaCatalog[id])
	}
	return out
}

// DefaultPersona is the persona selected on first load.
func DefaultPersona() Persona {
	return personaOrder[0]
}

// Known reports whether p belongs to the closed persona set.
func (p Persona) Known() bool {
	_, ok := personaCatalog[p]
	return ok
}

// Info returns display metadata, falling back to the default persona.
func (p Persona) Info() PersonaInfo {
	if info, ok := personaCatalog[p]; ok {
		return info
	}
	return personaCatalog[DefaultPersona()]
}

// ParsePersona accepts persona ids in any casing, e.g. "ComplianceAnalyst"
// or "compliance_analyst".
func ParsePersona(raw string) (Persona, error) {
	p := Persona(strcase.ToKebab(strings.TrimSpace(raw)))
	if !p.Known() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPersona, raw)
	}
	return p, nil
}
