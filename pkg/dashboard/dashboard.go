// Package dashboard is the public entry point for embedding the risk
// dashboard in another application.
package dashboard

import (
	"fmt"
	"net/url"

	core "github.com/goliatone/go-risk-dashboard/components/dashboard"
)

// Service exposes the underlying components/dashboard.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// BootstrapOptions re-export for convenience.
type BootstrapOptions = core.BootstrapOptions

// ViewState re-export for convenience.
type ViewState = core.ViewState

// Page re-export for convenience.
type Page = core.Page

// Persona re-export for convenience.
type Persona = core.Persona

// NewService proxies to the internal constructor.
func NewService(opts Options) (*Service, error) {
	return core.NewService(opts)
}

// Bootstrap proxies to the internal bootstrapper.
func Bootstrap(opts BootstrapOptions) (*Service, error) {
	return core.Bootstrap(opts)
}

// ParseState reads a view state from a raw query string such as
// "persona=portfolio-manager&market_drop=30".
func ParseState(rawQuery string) (ViewState, error) {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return ViewState{}, fmt.Errorf("%w: %w", core.ErrInvalidViewState, err)
	}
	return core.ParseViewState(values)
}
