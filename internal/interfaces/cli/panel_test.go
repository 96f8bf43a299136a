package cli

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialblock.io/explorer/internal/application/services"
	"socialblock.io/explorer/internal/core/panel"
	"socialblock.io/explorer/internal/core/plugin"
	"socialblock.io/explorer/internal/core/ports"
	"socialblock.io/explorer/internal/core/testfixtures"
	"socialblock.io/explorer/internal/infrastructure/notify"
	"socialblock.io/explorer/internal/infrastructure/views"
)

// newTestPanel builds a visible panel over the stock registry and catalog
func newTestPanel(t *testing.T) panelModel {
	t.Helper()

	bus := notify.NewBus()
	recorder := notify.NewRecorder(10)
	unsubscribe, err := bus.Subscribe(recorder.Record)
	require.NoError(t, err)
	t.Cleanup(unsubscribe)

	service := services.NewPluginSystemService(
		plugin.DefaultRegistry(),
		views.NewCatalog().WithSeed(1),
		bus,
		zerolog.Nop(),
	)
	service.ToggleVisibility()

	return newPanelModel(service, recorder, "blocks")
}

// press feeds a sequence of keys through Update
func press(t *testing.T, m panelModel, keys ...string) panelModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		var ok bool
		m, ok = next.(panelModel)
		require.True(t, ok, "Update should return a panelModel")
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func visibleIDs(m panelModel) []string {
	return testfixtures.IDs(m.service.Snapshot().Visible)
}

// TestPanelModel_View_ShowsListAndContext tests the expanded rendering
func TestPanelModel_View_ShowsListAndContext(t *testing.T) {
	m := newTestPanel(t)

	view := m.View()
	assert.Contains(t, view, "3/4 enabled")
	assert.Contains(t, view, "AI Watch Logs")
	assert.Contains(t, view, "Validator Tracker")
	assert.Contains(t, view, "Context: blocks")
	assert.NotContains(t, view, "shown", "Unfiltered list should not report a count")
}

// TestPanelModel_SpaceTogglesSelected tests enabling from the list
func TestPanelModel_SpaceTogglesSelected(t *testing.T) {
	m := newTestPanel(t)

	m = press(t, m, "j", " ")
	assert.False(t, m.service.Snapshot().Registry.IsEnabled(plugin.IDZkIDRegistry))
	assert.Contains(t, m.View(), "zkID Registry disabled")

	m = press(t, m, " ")
	assert.True(t, m.service.Snapshot().Registry.IsEnabled(plugin.IDZkIDRegistry))
}

// TestPanelModel_EnterOpensAndEscCloses tests mounting a plugin
func TestPanelModel_EnterOpensAndEscCloses(t *testing.T) {
	m := newTestPanel(t)

	m = press(t, m, "enter")
	snap := m.service.Snapshot()
	assert.Equal(t, panel.ModePluginOpen, snap.Mode())
	assert.Equal(t, plugin.IDAIWatchLogs, snap.State.ActivePluginID)
	assert.Contains(t, m.View(), "AI Watch Logs opened")

	m = press(t, m, "esc")
	assert.Equal(t, panel.ModeExpanded, m.service.Snapshot().Mode())
}

// TestPanelModel_OpenDisabled_ShowsToast tests the unavailable path
func TestPanelModel_OpenDisabled_ShowsToast(t *testing.T) {
	m := newTestPanel(t)

	m = press(t, m, "j", "j", "enter")
	assert.Equal(t, panel.ModeExpanded, m.service.Snapshot().Mode())
	assert.Contains(t, m.View(), "Airdrop Claim Map is disabled")
}

// TestPanelModel_SearchFiltersList tests the search input
func TestPanelModel_SearchFiltersList(t *testing.T) {
	m := newTestPanel(t)

	m = press(t, m, "/", "z", "k")
	assert.True(t, m.searching)
	assert.Equal(t, []string{plugin.IDZkIDRegistry}, visibleIDs(m))

	m = press(t, m, "enter")
	assert.False(t, m.searching)
	assert.Equal(t, "zk", m.service.Snapshot().Criteria.Query)

	m = press(t, m, "/", "esc")
	assert.Empty(t, m.service.Snapshot().Criteria.Query)
	assert.Len(t, visibleIDs(m), 4)
}

// TestPanelModel_TabCyclesCategory tests the category tabs
func TestPanelModel_TabCyclesCategory(t *testing.T) {
	m := newTestPanel(t)

	m = press(t, m, "tab")
	assert.Equal(t, "monitoring", m.service.Snapshot().Criteria.Category)
	assert.Equal(t, []string{plugin.IDAIWatchLogs, plugin.IDValidatorTracker}, visibleIDs(m))
	assert.Contains(t, m.View(), "| 2 shown")

	m = press(t, m, "tab", "tab", "tab", "tab")
	assert.Equal(t, "all", m.service.Snapshot().Criteria.Category)
	assert.NotContains(t, m.View(), "shown")
}

// TestPanelModel_MoveKeys_Reorder tests keyboard reordering
func TestPanelModel_MoveKeys_Reorder(t *testing.T) {
	m := newTestPanel(t)

	m = press(t, m, "J")
	assert.Equal(t,
		[]string{plugin.IDZkIDRegistry, plugin.IDAIWatchLogs, plugin.IDAirdropClaimMap, plugin.IDValidatorTracker},
		visibleIDs(m))
	assert.Equal(t, 1, m.selectedRow, "Cursor should follow the moved plugin")
	assert.Contains(t, m.View(), "Plugin order updated")

	m = press(t, m, "end")
	assert.Equal(t, plugin.IDAIWatchLogs, visibleIDs(m)[3])
	assert.Equal(t, 3, m.selectedRow)

	m = press(t, m, "home")
	assert.Equal(t, plugin.IDAIWatchLogs, visibleIDs(m)[0])
	assert.Equal(t, 0, m.selectedRow)

	m = press(t, m, "K")
	assert.Equal(t, plugin.IDAIWatchLogs, visibleIDs(m)[0], "Top item cannot move up")
}

// TestPanelModel_MinimizeAndRailOpen tests the rail
func TestPanelModel_MinimizeAndRailOpen(t *testing.T) {
	m := newTestPanel(t)

	m = press(t, m, "m")
	assert.Equal(t, panel.ModeMinimized, m.service.Snapshot().Mode())
	view := m.View()
	assert.Contains(t, view, "1 AI Watch Logs")
	assert.Contains(t, view, "3 Validator Tracker")
	assert.NotContains(t, view, "Airdrop Claim Map", "Rail lists enabled plugins only")

	m = press(t, m, "2")
	snap := m.service.Snapshot()
	assert.Equal(t, panel.ModePluginOpen, snap.Mode())
	assert.Equal(t, plugin.IDZkIDRegistry, snap.State.ActivePluginID)
}

// TestPanelModel_HideAndShow tests the visibility toggle
func TestPanelModel_HideAndShow(t *testing.T) {
	m := newTestPanel(t)

	m = press(t, m, "enter", "v")
	snap := m.service.Snapshot()
	assert.Equal(t, panel.ModeHidden, snap.Mode())
	assert.Empty(t, snap.State.ActivePluginID)
	assert.Contains(t, m.View(), "Plugin panel hidden")

	m = press(t, m, "v")
	assert.Equal(t, panel.ModeExpanded, m.service.Snapshot().Mode())
}

// TestPanelModel_QuitKeys tests quitting
func TestPanelModel_QuitKeys(t *testing.T) {
	m := newTestPanel(t)

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

// TestPanelModel_Toast_Expires tests toast lifetime
func TestPanelModel_Toast_Expires(t *testing.T) {
	m := newTestPanel(t)
	m = press(t, m, "c")
	assert.Contains(t, m.View(), "Opening settings for AI Watch Logs")

	m.now = func() time.Time { return time.Now().Add(2 * toastDuration) }
	assert.NotContains(t, m.View(), "Opening settings for AI Watch Logs")
}

// TestPanelModel_WindowResize tests size tracking
func TestPanelModel_WindowResize(t *testing.T) {
	m := newTestPanel(t)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(panelModel)
	assert.Equal(t, 120, m.windowWidth)
	assert.Equal(t, 40, m.windowHeight)
}

var _ ports.Notifier = (*notify.Bus)(nil)
