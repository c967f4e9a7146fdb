package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const defaultFetchConcurrency = 4

var (
	// ErrUnknownPersona is returned when a persona id is outside the closed set.
	ErrUnknownPersona = errors.New("dashboard: unknown persona")
	// ErrInvalidViewState marks request controls holding unsupported values.
	ErrInvalidViewState = errors.New("dashboard: invalid view state")
	// ErrInvalidFixtures marks a fixture document that fails to load or validate.
	ErrInvalidFixtures = errors.New("dashboard: invalid fixtures")
	// ErrInvalidManifest marks a layout manifest that fails to load or validate.
	ErrInvalidManifest = errors.New("dashboard: invalid layout manifest")
	// ErrMissingFixtures is returned by providers invoked without fixtures.
	ErrMissingFixtures = errors.New("dashboard: fixtures not configured")
	// ErrInvalidUpload marks a guidelines upload that cannot be accepted.
	ErrInvalidUpload = errors.New("dashboard: invalid guidelines upload")
)

// Options configures the dashboard Service. Collaborators left nil get the
// embedded defaults.
type Options struct {
	Providers       ProviderRegistry
	ConfigValidator ConfigValidator
	Telemetry       Telemetry
	Fixtures        *Fixtures
	Manifest        *LayoutManifest
	BasePath        string
	ChartTheme      string
	// FetchConcurrency bounds parallel provider calls per render.
	FetchConcurrency int
}

// Service resolves persona dashboards from fixtures and the layout manifest.
type Service struct {
	opts   Options
	shell  *Shell
	states *ViewStateValidator
	newID  func() string

	closers []func()
}

// NewService builds a Service with safe defaults. It fails when the embedded
// fixtures or layouts cannot be loaded, or when the manifest references
// widgets the registry does not know.
func NewService(opts Options) (*Service, error) {
	if opts.Providers == nil {
		opts.Providers = NewRegistry(WithChartTheme(opts.ChartTheme))
	}
	if opts.ConfigValidator == nil {
		opts.ConfigValidator = NewJSONSchemaValidator()
	}
	opts.Telemetry = TelemetryOrNoop(opts.Telemetry)
	if opts.BasePath == "" {
		opts.BasePath = "/"
	}
	if opts.FetchConcurrency <= 0 {
		opts.FetchConcurrency = defaultFetchConcurrency
	}
	if opts.Fixtures == nil {
		f, err := DefaultFixtures()
		if err != nil {
			return nil, err
		}
		opts.Fixtures = f
	}
	if opts.Manifest == nil {
		m, err := DefaultLayoutManifest()
		if err != nil {
			return nil, err
		}
		opts.Manifest = m
	}
	if err := opts.Manifest.Check(opts.Providers, opts.ConfigValidator); err != nil {
		return nil, err
	}
	return &Service{
		opts:   opts,
		shell:  NewShell(opts.Fixtures.Product, opts.Manifest, opts.BasePath),
		states: NewViewStateValidator(opts.Fixtures),
		newID:  uuid.NewString,
	}, nil
}

// Close releases resources acquired by Bootstrap, such as a bounded chart
// cache.
func (s *Service) Close() {
	for _, c := range s.closers {
		c()
	}
	s.closers = nil
}

// Shell exposes the persona switcher.
func (s *Service) Shell() *Shell {
	return s.shell
}

// Fixtures exposes the loaded data set.
func (s *Service) Fixtures() *Fixtures {
	return s.opts.Fixtures
}

// BasePath is the mount point used for links.
func (s *Service) BasePath() string {
	return s.opts.BasePath
}

// Normalize fills defaults and validates the request controls.
func (s *Service) Normalize(state ViewState) (ViewState, error) {
	state = state.Normalize(s.opts.Fixtures)
	if err := s.states.Validate(state); err != nil {
		return ViewState{}, err
	}
	return state, nil
}

// Render resolves the persona dashboard for the view state.
func (s *Service) Render(ctx context.Context, state ViewState) (Page, error) {
	requested := state.Persona
	state, err := s.Normalize(state)
	if err != nil {
		s.recordTelemetry(ctx, EventViewInvalid, map[string]any{
			"persona": string(requested),
			"error":   err.Error(),
		})
		return Page{}, err
	}
	layout := s.shell.DashboardFor(state.Persona)
	page := Page{
		RenderID: s.newID(),
		Header:   s.shell.Header(state),
		State:    state,
		Theme:    NewTheme(state.Persona, s.opts.ChartTheme),
		Widgets:  s.renderWidgets(ctx, state, layout.Widgets),
	}
	failed := 0
	for _, w := range page.Widgets {
		if w.Error != "" {
			failed++
		}
	}
	s.recordTelemetry(ctx, EventViewRender, map[string]any{
		"render_id": page.RenderID,
		"persona":   string(state.Persona),
		"requested": string(requested),
		"widgets":   len(page.Widgets),
		"failed":    failed,
	})
	return page, nil
}

// RecordUpload notes an accepted guidelines upload.
func (s *Service) RecordUpload(ctx context.Context, filename string) {
	s.recordTelemetry(ctx, EventGuidelinesUpload, map[string]any{"filename": filename})
}

func (s *Service) renderWidgets(ctx context.Context, state ViewState, widgets []WidgetInstance) []RenderedWidget {
	out := make([]RenderedWidget, len(widgets))
	var g errgroup.Group
	g.SetLimit(s.opts.FetchConcurrency)
	for idx, inst := range widgets {
		g.Go(func() error {
			rendered := RenderedWidget{WidgetInstance: inst}
			if def, ok := s.opts.Providers.Definition(inst.DefinitionID); ok {
				rendered.Name = def.Name
			}
			data, err := s.fetch(ctx, state, inst)
			if err != nil {
				s.recordTelemetry(ctx, EventProviderError, map[string]any{
					"definition_id": inst.DefinitionID,
					"widget_id":     inst.ID,
					"error":         err.Error(),
				})
				rendered.Error = err.Error()
			} else {
				rendered.Data = data
				rendered.Kind = stringValue(data["kind"], "")
			}
			out[idx] = rendered
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (s *Service) fetch(ctx context.Context, state ViewState, inst WidgetInstance) (data WidgetData, err error) {
	provider, ok := s.opts.Providers.Provider(inst.DefinitionID)
	if !ok || provider == nil {
		return nil, fmt.Errorf("no provider registered for %s", inst.DefinitionID)
	}
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("provider %s panicked: %v", inst.DefinitionID, r)
		}
	}()
	return provider.Fetch(ctx, WidgetContext{
		Instance: inst,
		State:    state,
		Fixtures: s.opts.Fixtures,
		BasePath: s.opts.BasePath,
	})
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}
