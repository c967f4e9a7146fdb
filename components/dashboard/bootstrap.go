package dashboard

import (
	"fmt"
	"time"
)

// BootstrapOptions describes where the dashboard data comes from and how
// charts are rendered. Empty paths select the embedded documents.
type BootstrapOptions struct {
	FixturesPath      string
	LayoutsPath       string
	BasePath          string
	ChartTheme        string
	EChartsAssetsHost string
	ChartCacheTTL     time.Duration
	// ChartCacheMaxBytes switches to a size-bounded chart cache when positive.
	ChartCacheMaxBytes int64
	Telemetry          Telemetry
}

// Bootstrap loads fixtures and layouts, wires a registry and returns a ready
// service.
func Bootstrap(opts BootstrapOptions) (*Service, error) {
	fixtures, err := LoadFixturesFile(opts.FixturesPath)
	if err != nil {
		return nil, fmt.Errorf("load fixtures: %w", err)
	}
	manifest, err := ReadManifest(opts.LayoutsPath)
	if err != nil {
		return nil, fmt.Errorf("load layouts: %w", err)
	}
	var (
		cache   RenderCache = NewChartCache(opts.ChartCacheTTL)
		closers []func()
	)
	if opts.ChartCacheMaxBytes > 0 {
		bounded, err := NewBoundedChartCache(opts.ChartCacheMaxBytes, opts.ChartCacheTTL)
		if err != nil {
			return nil, err
		}
		cache = bounded
		closers = append(closers, bounded.Close)
	}
	chartOpts := []EChartsProviderOption{
		WithChartTheme(opts.ChartTheme),
		WithChartCache(cache),
	}
	if opts.EChartsAssetsHost != "" {
		chartOpts = append(chartOpts, WithChartAssetsHost(opts.EChartsAssetsHost))
	}
	svc, err := NewService(Options{
		Providers:  NewRegistry(chartOpts...),
		Telemetry:  opts.Telemetry,
		Fixtures:   fixtures,
		Manifest:   manifest,
		BasePath:   opts.BasePath,
		ChartTheme: opts.ChartTheme,
	})
	if err != nil {
		for _, c := range closers {
			c()
		}
		return nil, err
	}
	svc.closers = closers
	return svc, nil
}
