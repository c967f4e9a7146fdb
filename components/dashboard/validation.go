package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ConfigValidator validates widget configuration payloads against their schema.
type ConfigValidator interface {
	Validate(def WidgetDefinition, config map[string]any) error
}

// JSONSchemaValidator compiles widget schemas and validates configuration maps.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// Validate ensures the provided configuration satisfies the widget schema.
func (v *JSONSchemaValidator) Validate(def WidgetDefinition, config map[string]any) error {
	if len(def.Schema) == 0 {
		return nil
	}
	schema, err := v.schemaFor(def)
	if err != nil {
		return err
	}
	var payload map[string]any
	if config == nil {
		payload = map[string]any{}
	} else {
		data, err := json.Marshal(config)
		if err != nil {
			return fmt.Errorf("dashboard: marshal config for %s: %w", def.Code, err)
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("dashboard: normalize config for %s: %w", def.Code, err)
		}
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("dashboard: configuration for %s failed validation: %w", def.Code, err)
	}
	return nil
}

func (v *JSONSchemaValidator) schemaFor(def WidgetDefinition) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[def.Code]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	data, err := json.Marshal(def.Schema)
	if err != nil {
		return nil, fmt.Errorf("dashboard: marshal schema %s: %w", def.Code, err)
	}
	compiler := jsonschema.NewCompiler()
	name := def.Code + ".json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("dashboard: load schema %s: %w", def.Code, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("dashboard: compile schema %s: %w", def.Code, err)
	}
	v.mu.Lock()
	v.compiled[def.Code] = compiled
	v.mu.Unlock()
	return compiled, nil
}

const viewStateSchemaCode = "dashboard.view_state"

// ViewStateValidator checks request controls against the values the loaded
// fixtures allow: known portfolio ids and date ranges, slider bounds and
// steps, and accepted guideline file extensions.
type ViewStateValidator struct {
	def      WidgetDefinition
	schemas  *JSONSchemaValidator
	fixtures *Fixtures
}

// NewViewStateValidator derives the view state schema from fixtures.
func NewViewStateValidator(f *Fixtures) *ViewStateValidator {
	return &ViewStateValidator{
		def: WidgetDefinition{
			Code:   viewStateSchemaCode,
			Name:   "View state",
			Schema: viewStateSchema(f),
		},
		schemas:  NewJSONSchemaValidator(),
		fixtures: f,
	}
}

// Validate returns an error wrapping ErrInvalidViewState when any control
// holds a value outside its allowed set.
func (v *ViewStateValidator) Validate(state ViewState) error {
	if err := v.schemas.Validate(v.def, state.Payload()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidViewState, err)
	}
	stress := v.fixtures.PortfolioManager.Stress
	if !stress.MarketDrop.Contains(state.MarketDrop) {
		return fmt.Errorf("%w: market_drop %d is not a valid step", ErrInvalidViewState, state.MarketDrop)
	}
	if !stress.RateHike.Contains(state.RateHike) {
		return fmt.Errorf("%w: rate_hike %d is not a valid step", ErrInvalidViewState, state.RateHike)
	}
	return nil
}

func viewStateSchema(f *Fixtures) map[string]any {
	personas := make([]string, 0, len(personaOrder))
	for _, p := range personaOrder {
		personas = append(personas, string(p))
	}
	ids := f.PortfolioIDs()
	portfolio := map[string]any{"type": "string", "enum": ids}
	stress := f.PortfolioManager.Stress
	return map[string]any{
		"type":     "object",
		"required": []string{ParamPersona},
		"properties": map[string]any{
			ParamPersona:    map[string]any{"type": "string", "enum": personas},
			ParamPortfolio:  portfolio,
			ParamPortfolioA: portfolio,
			ParamPortfolioB: portfolio,
			ParamDateRange:  map[string]any{"type": "string", "enum": f.DateRangeValues()},
			ParamMarketDrop: sliderSchema(stress.MarketDrop),
			ParamRateHike:   sliderSchema(stress.RateHike),
			ParamGuidelines: map[string]any{
				"type":    "string",
				"pattern": extensionPattern(f.Compliance.AcceptedExtensions),
			},
		},
		"additionalProperties": false,
	}
}

func sliderSchema(s Slider) map[string]any {
	schema := map[string]any{
		"type":    "integer",
		"minimum": s.Min,
		"maximum": s.Max,
	}
	if s.Step > 0 && s.Min%s.Step == 0 {
		schema["multipleOf"] = s.Step
	}
	return schema
}

func extensionPattern(exts []string) string {
	if len(exts) == 0 {
		return ".+"
	}
	quoted := make([]string, 0, len(exts))
	for _, ext := range exts {
		quoted = append(quoted, regexp.QuoteMeta(strings.TrimPrefix(strings.ToLower(ext), ".")))
	}
	return `(?i)\.(` + strings.Join(quoted, "|") + `)$`
}
