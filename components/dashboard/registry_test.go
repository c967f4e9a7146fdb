package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryDefaultsHaveProviders(t *testing.T) {
	reg := NewRegistry(WithChartCache(nil))
	defs := reg.Definitions()
	require.NotEmpty(t, defs)
	for i := 1; i < len(defs); i++ {
		assert.Less(t, defs[i-1].Code, defs[i].Code)
	}
	for _, def := range defs {
		_, ok := reg.Provider(def.Code)
		assert.True(t, ok, "provider missing for %s", def.Code)
	}
}

func TestRegistryHookAddsWidget(t *testing.T) {
	const code = "risk.widget.hooked"
	RegisterWidgetHook(func(reg *Registry) error {
		if err := reg.RegisterDefinition(WidgetDefinition{Code: code, Name: "Hooked"}); err != nil {
			return err
		}
		return reg.RegisterProvider(code, ProviderFunc(func(context.Context, WidgetContext) (WidgetData, error) {
			return WidgetData{"kind": "hooked"}, nil
		}))
	})

	reg := NewRegistry(WithChartCache(nil))
	def, ok := reg.Definition(code)
	require.True(t, ok)
	assert.Equal(t, "Hooked", def.Name)

	provider, ok := reg.Provider(code)
	require.True(t, ok)
	data, err := provider.Fetch(context.Background(), WidgetContext{})
	require.NoError(t, err)
	assert.Equal(t, "hooked", data["kind"])
}

func TestRegistryRejectsInvalidRegistrations(t *testing.T) {
	reg := NewRegistry(WithChartCache(nil))
	require.Error(t, reg.RegisterDefinition(WidgetDefinition{}))
	require.Error(t, reg.RegisterProvider("", ProviderFunc(nil)))
	require.Error(t, reg.RegisterProvider(WidgetReportingPerformance, nil))
	require.Error(t, reg.RegisterProvider("risk.widget.unknown", ProviderFunc(func(context.Context, WidgetContext) (WidgetData, error) {
		return nil, nil
	})))
}
