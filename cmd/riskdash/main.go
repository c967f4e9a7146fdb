package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"go.uber.org/zap"

	"github.com/goliatone/go-risk-dashboard/components/dashboard"
	"github.com/goliatone/go-risk-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-risk-dashboard/components/dashboard/gorouter"
	"github.com/goliatone/go-risk-dashboard/internal/config"
	"github.com/goliatone/go-risk-dashboard/internal/logging"
)

var version = "dev"

type cli struct {
	Config  []string         `short:"c" type:"path" help:"TOML config file; repeat to layer files, later files win."`
	Port    int              `short:"p" help:"Override server.port."`
	Host    string           `help:"Override server.host."`
	Version kong.VersionFlag `help:"Print the version and exit."`
}

func main() {
	var app cli
	ctx := kong.Parse(&app,
		kong.Name("riskdash"),
		kong.Description("Persona-based investment risk dashboard server."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(app.Run())
}

func (c *cli) Run() error {
	cfg, err := config.LoadFromFiles(c.Config...)
	if err != nil {
		return err
	}
	config.ApplyFlagOverrides(cfg, c.Port, c.Host)
	if issues := cfg.Validate(); len(issues) > 0 {
		return fmt.Errorf("invalid configuration:\n  %s", strings.Join(issues, "\n  "))
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ttl, _ := cfg.Dashboard.CacheTTL()
	telemetry := logging.NewTelemetry(logger)
	service, err := dashboard.Bootstrap(dashboard.BootstrapOptions{
		FixturesPath:       cfg.Dashboard.FixturesPath,
		LayoutsPath:        cfg.Dashboard.LayoutsPath,
		BasePath:           cfg.Dashboard.BasePath,
		ChartTheme:         cfg.Dashboard.ChartTheme,
		EChartsAssetsHost:  cfg.Dashboard.EChartsAssetsHost,
		ChartCacheTTL:      ttl,
		ChartCacheMaxBytes: cfg.Dashboard.ChartCacheMaxBytes,
		Telemetry:          telemetry,
	})
	if err != nil {
		return err
	}
	defer service.Close()

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if ttl > 0 {
		warm := commands.NewWarmDashboardsCommand(service, telemetry)
		if err := warm.Execute(runCtx, commands.WarmDashboardsInput{}); err != nil {
			logger.Warn("chart cache warmup failed", zap.Error(err))
		}
	}

	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:     server.Router(),
		Controller: dashboard.NewController(service),
		Upload:     commands.NewUploadGuidelinesCommand(service, telemetry),
	}); err != nil {
		return err
	}

	addr := cfg.Server.Address()
	errCh := make(chan error, 1)
	go func() {
		logger.Info("risk dashboard listening",
			zap.String("addr", addr),
			zap.String("base_path", service.BasePath()),
			zap.String("version", version),
		)
		errCh <- server.Serve(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	case <-runCtx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
