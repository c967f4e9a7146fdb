package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSchemaValidatorRejectsInvalidPayload(t *testing.T) {
	validator := NewJSONSchemaValidator()
	def := WidgetDefinition{
		Code: "demo.widget.string_required",
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"name"},
			"properties": map[string]any{
				"name": map[string]any{"type": "string", "minLength": 1},
			},
		},
	}
	if err := validator.Validate(def, map[string]any{"name": "Dashboard"}); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	if err := validator.Validate(def, map[string]any{}); err == nil {
		t.Fatalf("expected validation error for missing name")
	}
}

func TestJSONSchemaValidatorCachesCompiledSchemas(t *testing.T) {
	validator := NewJSONSchemaValidator()
	def := WidgetDefinition{
		Code:   "demo.widget.cache",
		Schema: map[string]any{"type": "object"},
	}
	if err := validator.Validate(def, nil); err != nil {
		t.Fatalf("unexpected error validating config: %v", err)
	}
	if len(validator.compiled) != 1 {
		t.Fatalf("expected schema cache to contain 1 entry, got %d", len(validator.compiled))
	}
	if err := validator.Validate(def, map[string]any{}); err != nil {
		t.Fatalf("unexpected error on cached validation: %v", err)
	}
	if len(validator.compiled) != 1 {
		t.Fatalf("expected schema cache to remain 1 entry, got %d", len(validator.compiled))
	}
}

func TestDefaultWidgetSchemasAcceptEmbeddedLayouts(t *testing.T) {
	manifest, err := DefaultLayoutManifest()
	require.NoError(t, err)
	require.NoError(t, manifest.Check(NewRegistry(), NewJSONSchemaValidator()))
}

func TestDefaultWidgetSchemaRejectsUnknownKeys(t *testing.T) {
	reg := NewRegistry()
	def, ok := reg.Definition(WidgetReportingKeyMetrics)
	require.True(t, ok)
	validator := NewJSONSchemaValidator()
	assert.NoError(t, validator.Validate(def, map[string]any{"title": "Key", "limit": 4}))
	assert.Error(t, validator.Validate(def, map[string]any{"colour": "red"}))
	assert.Error(t, validator.Validate(def, map[string]any{"limit": 0}))
}

func TestViewStateValidator(t *testing.T) {
	f := mustFixtures(t)
	validator := NewViewStateValidator(f)
	valid := DefaultViewState().Normalize(f)
	require.NoError(t, validator.Validate(valid))

	withUpload := valid
	withUpload.Guidelines = "Policy.PDF"
	require.NoError(t, validator.Validate(withUpload))

	cases := map[string]func(ViewState) ViewState{
		"unknown portfolio":   func(s ViewState) ViewState { s.Portfolio = "port-99"; return s },
		"unknown range":       func(s ViewState) ViewState { s.DateRange = "10y"; return s },
		"unknown persona":     func(s ViewState) ViewState { s.Persona = "ceo"; return s },
		"slider above max":    func(s ViewState) ViewState { s.MarketDrop = 55; return s },
		"slider off step":     func(s ViewState) ViewState { s.RateHike = 210; return s },
		"comparison slot":     func(s ViewState) ViewState { s.PortfolioB = "nope"; return s },
		"guideline extension": func(s ViewState) ViewState { s.Guidelines = "malware.exe"; return s },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			err := validator.Validate(mutate(valid))
			require.ErrorIs(t, err, ErrInvalidViewState)
		})
	}
}

func TestExtensionPattern(t *testing.T) {
	assert.Equal(t, `(?i)\.(pdf|doc|docx)$`, extensionPattern([]string{".pdf", ".doc", ".DOCX"}))
	assert.Equal(t, ".+", extensionPattern(nil))
}
