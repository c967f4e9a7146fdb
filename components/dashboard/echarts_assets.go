package dashboard

import (
	"os"
	"strings"
)

// envEChartsCDN overrides the default assets host (e.g., to point at a self-hosted bucket).
const envEChartsCDN = "RISKDASH_ECHARTS_CDN"

// DefaultEChartsAssetsHost returns the assets host from RISKDASH_ECHARTS_CDN,
// or "" to keep the go-echarts default host.
func DefaultEChartsAssetsHost() string {
	if host := strings.TrimSpace(os.Getenv(envEChartsCDN)); host != "" {
		return ensureTrailingSlash(host)
	}
	return ""
}

func ensureTrailingSlash(value string) string {
	if value == "" {
		return ""
	}
	if strings.HasSuffix(value, "/") {
		return value
	}
	return value + "/"
}
