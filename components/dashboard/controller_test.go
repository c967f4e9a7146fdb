package dashboard

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	name string
	data any
}

func (s *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	s.name = name
	s.data = data
	for _, w := range out {
		_, _ = io.WriteString(w, "rendered:"+name)
	}
	return "rendered:" + name, nil
}

func TestControllerPayload(t *testing.T) {
	controller := NewController(newTestService(t, Options{}))
	page, err := controller.Payload(context.Background(), ViewState{Persona: PersonaEngineeringLead})
	require.NoError(t, err)
	assert.Equal(t, PersonaEngineeringLead, page.State.Persona)
}

func TestControllerWithoutService(t *testing.T) {
	controller := NewController(nil)
	_, err := controller.Payload(context.Background(), DefaultViewState())
	require.Error(t, err)
}

func TestControllerRenderTemplateUsesRenderer(t *testing.T) {
	renderer := &stubRenderer{}
	controller := NewController(newTestService(t, Options{BasePath: "/risk"}), WithRenderer(renderer))
	var buf bytes.Buffer
	require.NoError(t, controller.RenderTemplate(context.Background(), ViewState{Persona: PersonaComplianceAnalyst}, &buf))
	assert.Equal(t, "rendered:dashboard", buf.String())
	data, ok := renderer.data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/risk", data["base_path"])
	assert.Equal(t, "render-1", data["render_id"])
	assert.Contains(t, data["theme_style"], "--persona-accent")
}

func TestControllerRenderTemplateEmbedded(t *testing.T) {
	controller := NewController(newTestService(t, Options{BasePath: "/risk"}))
	var buf bytes.Buffer
	require.NoError(t, controller.RenderTemplate(context.Background(), ViewState{Persona: PersonaComplianceAnalyst, Guidelines: "policy.pdf"}, &buf))
	html := buf.String()
	assert.Contains(t, html, "GIC Risk Analytics")
	assert.Contains(t, html, "1 policy violation(s) require immediate attention.")
	assert.Contains(t, html, "policy.pdf")
	assert.Contains(t, html, `action="/risk/guidelines"`)
}

func TestControllerRenderTemplateConcurrentFirstUse(t *testing.T) {
	controller := NewController(newTestService(t, Options{BasePath: "/risk"}))

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	outputs := make([]string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			var buf bytes.Buffer
			errs[idx] = controller.RenderTemplate(context.Background(), DefaultViewState(), &buf)
			outputs[idx] = buf.String()
		}(i)
	}
	wg.Wait()

	first, err := controller.templateRenderer()
	require.NoError(t, err)
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Contains(t, outputs[i], "GIC Risk Analytics")
	}
	again, err := controller.templateRenderer()
	require.NoError(t, err)
	assert.Same(t, first, again)
}
