package dashboard

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrapWithEmbeddedDocuments(t *testing.T) {
	svc, err := Bootstrap(BootstrapOptions{BasePath: "/risk", ChartTheme: types.ThemeWalden, ChartCacheTTL: time.Minute})
	require.NoError(t, err)
	assert.Equal(t, "/risk", svc.BasePath())

	page, err := svc.Render(context.Background(), ViewState{Persona: PersonaReportingAnalyst})
	require.NoError(t, err)
	assert.Equal(t, types.ThemeWalden, page.Theme.ChartTheme)
	for _, w := range page.Widgets {
		if w.Kind == KindChart {
			assert.Equal(t, types.ThemeWalden, w.Data["theme"])
		}
	}
}

func TestBootstrapReportsBadPaths(t *testing.T) {
	_, err := Bootstrap(BootstrapOptions{FixturesPath: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load fixtures")

	bad := filepath.Join(t.TempDir(), "layouts.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("version: \"9\"\n"), 0o600))
	_, err = Bootstrap(BootstrapOptions{LayoutsPath: bad})
	require.ErrorIs(t, err, ErrInvalidManifest)
}

func TestBootstrapWithBoundedChartCache(t *testing.T) {
	svc, err := Bootstrap(BootstrapOptions{ChartCacheTTL: time.Minute, ChartCacheMaxBytes: 4 << 20})
	require.NoError(t, err)
	defer svc.Close()

	first, err := svc.Render(context.Background(), ViewState{Persona: PersonaEngineeringLead})
	require.NoError(t, err)
	second, err := svc.Render(context.Background(), ViewState{Persona: PersonaEngineeringLead})
	require.NoError(t, err)
	for i, w := range first.Widgets {
		if w.Kind == KindChart {
			assert.Equal(t, w.Data["chart_html"], second.Widgets[i].Data["chart_html"])
		}
	}
	assert.NotEqual(t, first.RenderID, second.RenderID)
}
