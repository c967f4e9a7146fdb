package dashboard

import "context"

// Events emitted by the dashboard and its commands.
const (
	EventViewRender         = "dashboard.view.render"
	EventViewInvalid        = "dashboard.view.invalid"
	EventProviderError      = "dashboard.widget.provider_error"
	EventGuidelinesUpload   = "dashboard.guidelines.upload"
	EventGuidelinesAccepted = "dashboard.guidelines.accepted"
	EventGuidelinesRejected = "dashboard.guidelines.rejected"
	EventWarm               = "dashboard.warm"
)

// Telemetry receives dashboard events. Payload values are plain JSON-able
// data; implementations must not retain the map.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

// TelemetryFunc adapts a function into Telemetry.
type TelemetryFunc func(ctx context.Context, event string, payload map[string]any)

// Record calls f.
func (f TelemetryFunc) Record(ctx context.Context, event string, payload map[string]any) {
	f(ctx, event, payload)
}

// TelemetryOrNoop returns t, or a sink that drops events when t is nil.
func TelemetryOrNoop(t Telemetry) Telemetry {
	if t == nil {
		return TelemetryFunc(func(context.Context, string, map[string]any) {})
	}
	return t
}
