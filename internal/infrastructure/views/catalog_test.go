package views

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialblock.io/explorer/internal/core/plugin"
	"socialblock.io/explorer/internal/core/ports"
)

// TestCatalog_StockViews_ResolveEveryDefaultPlugin tests that each stock descriptor has a body
func TestCatalog_StockViews_ResolveEveryDefaultPlugin(t *testing.T) {
	catalog := NewCatalog().WithSeed(42)

	for _, d := range plugin.DefaultDescriptors() {
		t.Run(d.ID, func(t *testing.T) {
			view, ok := catalog.Resolve(d.ID)
			require.True(t, ok, "Stock plugin should resolve")
			assert.Equal(t, d.ID, view.ID())
			assert.Equal(t, d.Name, view.Title())
			assert.NotEmpty(t, view.Render(80, 20))
		})
	}
}

// TestCatalog_Unknown_DoesNotResolve tests the unresolved path
func TestCatalog_Unknown_DoesNotResolve(t *testing.T) {
	view, ok := NewCatalog().Resolve("whale-tracker-pro")
	assert.False(t, ok)
	assert.Nil(t, view)
}

// TestCatalog_WithSeed_IsDeterministic tests reproducible mock data
func TestCatalog_WithSeed_IsDeterministic(t *testing.T) {
	a, _ := NewCatalog().WithSeed(7).Resolve(plugin.IDValidatorTracker)
	b, _ := NewCatalog().WithSeed(7).Resolve(plugin.IDValidatorTracker)
	assert.Equal(t, a.Render(0, 0), b.Render(0, 0))
}

// TestCatalog_Register_OverridesFactory tests custom registrations
func TestCatalog_Register_OverridesFactory(t *testing.T) {
	catalog := NewEmptyCatalog()
	catalog.Register("custom", func(*rand.Rand) ports.PluginView {
		return &tableView{id: "custom", title: "Custom", header: "H"}
	})

	assert.Equal(t, []string{"custom"}, catalog.IDs())
	view, ok := catalog.Resolve("custom")
	require.True(t, ok)
	assert.Contains(t, view.Render(10, 5), "No data")
}

// TestTableView_Render_ClipsToBox tests width/height clipping
func TestTableView_Render_ClipsToBox(t *testing.T) {
	v := &tableView{
		header: "HEADER",
		rows:   []string{"a very long row that will be clipped", "second", "third"},
	}

	out := v.Render(10, 2)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "a very ...", lines[1])

	assert.Equal(t, "ab", clip("abcdef", 2))
	assert.Equal(t, "abc", clip("abc", 0))
}
