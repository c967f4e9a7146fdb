package dashboard

import (
	"context"
	"errors"
	"io"
	"sync"
)

const dashboardTemplate = "dashboard"

var errMissingService = errors.New("dashboard: service not configured")

// Renderer executes a named page template with the flattened page data.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

// Controller renders persona dashboards for HTTP transports.
type Controller struct {
	service  *Service
	renderer Renderer

	rendererOnce sync.Once
	rendererErr  error
}

// ControllerOption customizes the controller.
type ControllerOption func(*Controller)

// WithRenderer overrides the embedded template renderer.
func WithRenderer(r Renderer) ControllerOption {
	return func(c *Controller) {
		c.renderer = r
	}
}

// NewController wires the service into a controller.
func NewController(service *Service, opts ...ControllerOption) *Controller {
	c := &Controller{service: service}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Service exposes the underlying service.
func (c *Controller) Service() *Service {
	return c.service
}

// Payload resolves the page for JSON transports.
func (c *Controller) Payload(ctx context.Context, state ViewState) (Page, error) {
	if c.service == nil {
		return Page{}, errMissingService
	}
	return c.service.Render(ctx, state)
}

// RenderTemplate renders the page to out using the dashboard template.
func (c *Controller) RenderTemplate(ctx context.Context, state ViewState, out io.Writer) error {
	page, err := c.Payload(ctx, state)
	if err != nil {
		return err
	}
	renderer, err := c.templateRenderer()
	if err != nil {
		return err
	}
	_, err = renderer.Render(dashboardTemplate, TemplateData(page, c.service.BasePath()), out)
	return err
}

func (c *Controller) templateRenderer() (Renderer, error) {
	c.rendererOnce.Do(func() {
		if c.renderer == nil {
			c.renderer, c.rendererErr = NewTemplateRenderer()
		}
	})
	return c.renderer, c.rendererErr
}

// TemplateData flattens a page into the map consumed by the templates.
func TemplateData(page Page, basePath string) map[string]any {
	return map[string]any{
		"render_id":   page.RenderID,
		"header":      page.Header,
		"state":       page.State,
		"theme":       page.Theme,
		"theme_style": page.Theme.CSSVariablesInline(),
		"widgets":     page.Widgets,
		"base_path":   basePath,
	}
}
