package logging

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-risk-dashboard/internal/config"
)

// New builds a zap logger from the logging config. Format "json" selects the
// production encoder, anything else the development console encoder.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	var zc zap.Config
	if strings.EqualFold(cfg.Format, "json") {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build(zap.AddStacktrace(zap.ErrorLevel))
}

// Telemetry records dashboard events as structured log entries.
type Telemetry struct {
	logger *zap.Logger
}

// NewTelemetry wraps logger. A nil logger discards events.
func NewTelemetry(logger *zap.Logger) *Telemetry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Telemetry{logger: logger.Named("telemetry")}
}

// Record logs event with payload fields in key order. Error events are
// logged at warn level.
func (t *Telemetry) Record(_ context.Context, event string, payload map[string]any) {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fields := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, zap.Any(k, payload[k]))
	}
	if isFailure(event, payload) {
		t.logger.Warn(event, fields...)
		return
	}
	t.logger.Info(event, fields...)
}

func isFailure(event string, payload map[string]any) bool {
	if _, ok := payload["error"]; ok {
		return true
	}
	for _, suffix := range []string{".provider_error", ".invalid", ".rejected"} {
		if strings.HasSuffix(event, suffix) {
			return true
		}
	}
	return false
}
