package dashboard

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1

	defaultSpan = 12
)

//go:embed layouts/layouts.yaml
var embeddedLayouts embed.FS

const embeddedLayoutsPath = "layouts/layouts.yaml"

// LayoutManifest models the YAML document that places widgets on each
// persona dashboard.
type LayoutManifest struct {
	Version    string              `json:"version" yaml:"version"`
	Name       string              `json:"name,omitempty" yaml:"name,omitempty"`
	Dashboards []DashboardManifest `json:"dashboards" yaml:"dashboards"`
	Source     string              `json:"-" yaml:"-"`
}

// DashboardManifest is the ordered widget list of one persona.
type DashboardManifest struct {
	Persona Persona          `json:"persona" yaml:"persona"`
	Widgets []ManifestWidget `json:"widgets" yaml:"widgets"`
}

// ManifestWidget places a widget definition with its configuration.
type ManifestWidget struct {
	Code   string         `json:"code" yaml:"code"`
	Span   int            `json:"span,omitempty" yaml:"span,omitempty"`
	Config map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

// DefaultLayoutManifest decodes the embedded persona layouts.
func DefaultLayoutManifest() (*LayoutManifest, error) {
	data, err := embeddedLayouts.ReadFile(embeddedLayoutsPath)
	if err != nil {
		return nil, fmt.Errorf("dashboard: read embedded layouts: %w", err)
	}
	doc, err := DecodeManifest(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	doc.Source = "embedded:" + embeddedLayoutsPath
	return doc, nil
}

// ReadManifest loads a manifest file from disk. An empty path yields the
// embedded layouts.
func ReadManifest(path string) (*LayoutManifest, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultLayoutManifest()
	}
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("dashboard: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader.
func DecodeManifest(r io.Reader) (*LayoutManifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc LayoutManifest
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: manifest is empty", ErrInvalidManifest)
		}
		return nil, fmt.Errorf("%w: parse manifest: %w", ErrInvalidManifest, err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures every persona of the closed set has exactly one dashboard
// and every placement names a widget.
func (doc *LayoutManifest) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("%w: unsupported manifest version %q", ErrInvalidManifest, doc.Version)
	}
	seen := make(map[Persona]struct{}, len(doc.Dashboards))
	for idx, dash := range doc.Dashboards {
		if !dash.Persona.Known() {
			return fmt.Errorf("%w: dashboard at index %d has unknown persona %q", ErrInvalidManifest, idx, dash.Persona)
		}
		if _, exists := seen[dash.Persona]; exists {
			return fmt.Errorf("%w: manifest duplicates persona %s", ErrInvalidManifest, dash.Persona)
		}
		seen[dash.Persona] = struct{}{}
		if len(dash.Widgets) == 0 {
			return fmt.Errorf("%w: dashboard %s has no widgets", ErrInvalidManifest, dash.Persona)
		}
		for wIdx, widget := range dash.Widgets {
			if widget.Code == "" {
				return fmt.Errorf("%w: dashboard %s widget at index %d is missing code", ErrInvalidManifest, dash.Persona, wIdx)
			}
			if widget.Span < 1 || widget.Span > 12 {
				return fmt.Errorf("%w: dashboard %s widget %s span %d outside 1..12", ErrInvalidManifest, dash.Persona, widget.Code, widget.Span)
			}
		}
	}
	for _, p := range personaOrder {
		if _, ok := seen[p]; !ok {
			return fmt.Errorf("%w: manifest is missing persona %s", ErrInvalidManifest, p)
		}
	}
	return nil
}

// Check verifies that every placement refers to a registered widget and that
// its configuration satisfies the widget schema.
func (doc *LayoutManifest) Check(reg ProviderRegistry, validator ConfigValidator) error {
	if validator == nil {
		validator = NewJSONSchemaValidator()
	}
	var errs []error
	for _, dash := range doc.Dashboards {
		for _, widget := range dash.Widgets {
			def, ok := reg.Definition(widget.Code)
			if !ok {
				errs = append(errs, fmt.Errorf("dashboard %s: widget %s is not registered", dash.Persona, widget.Code))
				continue
			}
			if _, ok := reg.Provider(widget.Code); !ok {
				errs = append(errs, fmt.Errorf("dashboard %s: widget %s has no provider", dash.Persona, widget.Code))
			}
			if err := validator.Validate(def, widget.Config); err != nil {
				errs = append(errs, fmt.Errorf("dashboard %s: %w", dash.Persona, err))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidManifest, errors.Join(errs...))
	}
	return nil
}

// Layouts expands the manifest into widget instances per persona.
func (doc *LayoutManifest) Layouts() map[Persona]Layout {
	out := make(map[Persona]Layout, len(doc.Dashboards))
	for _, dash := range doc.Dashboards {
		layout := Layout{Persona: dash.Persona, Widgets: make([]WidgetInstance, 0, len(dash.Widgets))}
		for idx, widget := range dash.Widgets {
			layout.Widgets = append(layout.Widgets, WidgetInstance{
				ID:            fmt.Sprintf("%s-%02d", dash.Persona, idx+1),
				DefinitionID:  widget.Code,
				Persona:       dash.Persona,
				Position:      idx,
				Span:          widget.Span,
				Configuration: cloneConfig(widget.Config),
			})
		}
		out[dash.Persona] = layout
	}
	return out
}

func (doc *LayoutManifest) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
	for i := range doc.Dashboards {
		doc.Dashboards[i].Persona = Persona(strings.ToLower(strings.TrimSpace(string(doc.Dashboards[i].Persona))))
		for j := range doc.Dashboards[i].Widgets {
			if doc.Dashboards[i].Widgets[j].Span == 0 {
				doc.Dashboards[i].Widgets[j].Span = defaultSpan
			}
		}
	}
}

func cloneConfig(cfg map[string]any) map[string]any {
	if cfg == nil {
		return nil
	}
	out := make(map[string]any, len(cfg))
	for k, v := range cfg {
		out[k] = v
	}
	return out
}
