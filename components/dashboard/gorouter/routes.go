package gorouter

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"strings"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-risk-dashboard/components/dashboard"
	"github.com/goliatone/go-risk-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-risk-dashboard/components/dashboard/httpapi"
)

// Config wires go-router with the risk dashboard controller and commands.
type Config[T any] struct {
	Router     router.Router[T]
	Controller *dashboard.Controller
	Upload     httpapi.UploadAccepter
	BasePath   string
	Routes     RouteConfig
}

// RouteConfig customizes the relative paths used for dashboard endpoints.
type RouteConfig struct {
	HTML   string
	View   string
	Upload string
}

// Register mounts the dashboard routes (HTML page, JSON view, guidelines
// upload) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil || cfg.Controller.Service() == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = cfg.Controller.Service().BasePath()
	}
	upload := cfg.Upload
	if upload == nil {
		upload = commands.NewUploadGuidelinesCommand(cfg.Controller.Service(), nil)
	}

	group := cfg.Router
	if trimmed := strings.TrimRight(base, "/"); trimmed != "" {
		group = cfg.Router.Group(trimmed)
	}

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		state, err := viewState(ctx)
		if err != nil {
			return respondError(ctx, err)
		}
		var buf bytes.Buffer
		if err := cfg.Controller.RenderTemplate(ctx.Context(), state, &buf); err != nil {
			return respondError(ctx, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))

	group.Get(routes.View, router.WrapHandler(func(ctx router.Context) error {
		state, err := viewState(ctx)
		if err != nil {
			return respondError(ctx, err)
		}
		page, err := cfg.Controller.Payload(ctx.Context(), state)
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, page)
	}))

	group.Post(routes.Upload, router.WrapHandler(func(ctx router.Context) error {
		filename, err := dashboard.ExtractUploadFilename(bytes.NewReader(ctx.Body()), ctx.Header("Content-Type"))
		if err != nil {
			return respondError(ctx, err)
		}
		state, err := upload.Accept(ctx.Context(), commands.UploadGuidelinesInput{Filename: filename})
		if err != nil {
			return respondError(ctx, err)
		}
		location := state.Href(base)
		ctx.SetHeader("Location", location)
		return ctx.JSON(http.StatusSeeOther, map[string]string{
			"filename": state.Guidelines,
			"redirect": location,
		})
	}))

	return nil
}

func viewState(ctx router.Context) (dashboard.ViewState, error) {
	values := url.Values{}
	for _, key := range dashboard.ViewStateParams() {
		if v := ctx.Query(key); v != "" {
			values.Set(key, v)
		}
	}
	return dashboard.ParseViewState(values)
}

func respondError(ctx router.Context, err error) error {
	return ctx.JSON(httpapi.StatusFor(err), map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/"
	}
	if routes.View == "" {
		routes.View = "/_view"
	}
	if routes.Upload == "" {
		routes.Upload = dashboard.GuidelinesUploadPath
	}
	return routes
}
