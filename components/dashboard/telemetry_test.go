package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTelemetryFuncReceivesEvents(t *testing.T) {
	var got []string
	sink := TelemetryFunc(func(_ context.Context, event string, payload map[string]any) {
		got = append(got, event+":"+payload["persona"].(string))
	})
	TelemetryOrNoop(sink).Record(context.Background(), EventViewRender, map[string]any{"persona": "compliance-analyst"})
	assert.Equal(t, []string{"dashboard.view.render:compliance-analyst"}, got)
}

func TestTelemetryOrNoopDropsEvents(t *testing.T) {
	assert.NotPanics(t, func() {
		TelemetryOrNoop(nil).Record(context.Background(), EventWarm, nil)
	})
}
