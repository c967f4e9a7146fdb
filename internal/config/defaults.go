package config

import "github.com/go-echarts/go-echarts/v2/types"

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Dashboard: DashboardConfig{
			BasePath:      "/",
			ChartTheme:    types.ThemeWesteros,
			ChartCacheTTL: "5m",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
