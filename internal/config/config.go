package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"
)

// Config represents the risk dashboard configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Dashboard DashboardConfig `toml:"dashboard"`
	Logging   LoggingConfig   `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port" env:"RISKDASH_SERVER_PORT"`
	Host string `toml:"host" env:"RISKDASH_SERVER_HOST"`
}

// DashboardConfig controls where dashboard data comes from and how charts
// render. Empty paths use the embedded fixtures and layouts.
type DashboardConfig struct {
	BasePath           string `toml:"base_path" env:"RISKDASH_BASE_PATH"`
	ChartTheme         string `toml:"chart_theme" env:"RISKDASH_CHART_THEME"`
	EChartsAssetsHost  string `toml:"echarts_assets_host" env:"RISKDASH_ECHARTS_CDN"`
	ChartCacheTTL      string `toml:"chart_cache_ttl" env:"RISKDASH_CHART_CACHE_TTL"`
	ChartCacheMaxBytes int64  `toml:"chart_cache_max_bytes" env:"RISKDASH_CHART_CACHE_MAX_BYTES"`
	FixturesPath       string `toml:"fixtures_path" env:"RISKDASH_FIXTURES_PATH"`
	LayoutsPath        string `toml:"layouts_path" env:"RISKDASH_LAYOUTS_PATH"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `toml:"level" env:"RISKDASH_LOG_LEVEL"`
	Format string `toml:"format" env:"RISKDASH_LOG_FORMAT"`
}

// Address is the host:port the server listens on.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CacheTTL parses chart_cache_ttl. Zero disables the chart cache.
func (c DashboardConfig) CacheTTL() (time.Duration, error) {
	if strings.TrimSpace(c.ChartCacheTTL) == "" {
		return 0, nil
	}
	return time.ParseDuration(c.ChartCacheTTL)
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env. Environment variables are the
// RISKDASH_* names in the env struct tags.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to apply RISKDASH_* environment: %w", err)
	}
	return config, nil
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

var chartThemes = []string{
	types.ThemeChalk, types.ThemeEssos, types.ThemeInfographic, types.ThemeMacarons,
	types.ThemePurplePassion, types.ThemeRoma, types.ThemeRomantic, types.ThemeShine,
	types.ThemeVintage, types.ThemeWalden, types.ThemeWesteros, types.ThemeWonderland,
}

// Validate returns every problem found in the configuration.
func (c *Config) Validate() []string {
	var issues []string
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port %d is outside 1..65535", c.Server.Port))
	}
	if !strings.HasPrefix(c.Dashboard.BasePath, "/") {
		issues = append(issues, fmt.Sprintf("dashboard.base_path %q must start with /", c.Dashboard.BasePath))
	}
	if c.Dashboard.ChartTheme != "" && !knownTheme(c.Dashboard.ChartTheme) {
		issues = append(issues, fmt.Sprintf("dashboard.chart_theme %q is not a go-echarts theme", c.Dashboard.ChartTheme))
	}
	if ttl, err := c.Dashboard.CacheTTL(); err != nil {
		issues = append(issues, fmt.Sprintf("dashboard.chart_cache_ttl: %v", err))
	} else if ttl < 0 {
		issues = append(issues, "dashboard.chart_cache_ttl must not be negative")
	}
	if c.Dashboard.ChartCacheMaxBytes < 0 {
		issues = append(issues, "dashboard.chart_cache_max_bytes must not be negative")
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		issues = append(issues, fmt.Sprintf("logging.level %q is not a valid level", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		issues = append(issues, fmt.Sprintf("logging.format %q must be json or text", c.Logging.Format))
	}
	return issues
}

func knownTheme(theme string) bool {
	for _, t := range chartThemes {
		if t == theme {
			return true
		}
	}
	return false
}
