package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"socialblock.io/explorer/internal/application/services"
	"socialblock.io/explorer/internal/core/filtering"
	"socialblock.io/explorer/internal/core/panel"
	"socialblock.io/explorer/internal/core/plugin"
	"socialblock.io/explorer/internal/infrastructure/notify"
)

// toastDuration is how long the latest notification stays on screen
const toastDuration = 3 * time.Second

// PanelFlags holds command-line flags for the panel command
type PanelFlags struct {
	ContextTab string
	Category   string
	Query      string
}

// NewPanelCommand creates the panel command
func NewPanelCommand(app *CLIContainer) *cobra.Command {
	flags := &PanelFlags{}

	cmd := &cobra.Command{
		Use:   "panel",
		Short: "Interactive plugin panel",
		Long: `Launch the plugin panel in the terminal.

The panel lists the registered plugins by category. Plugins can be enabled,
reordered and opened one at a time; the panel can be minimized to a rail of
enabled plugins or hidden entirely.

Examples:
  sbx panel                           # All plugins
  sbx panel --category monitoring     # Start on the Monitoring tab
  sbx panel --query zk --context txs  # Pre-filled search, explorer tab "txs"`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationInteractive: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPanel(app, flags)
		},
	}

	cmd.Flags().StringVar(&flags.ContextTab, "context", "", "Explorer tab shown as context (default from config)")
	cmd.Flags().StringVar(&flags.Category, "category", filtering.CategoryAll, "Initial category tab")
	cmd.Flags().StringVar(&flags.Query, "query", "", "Initial search text")

	return cmd
}

// runPanel starts the terminal panel
func runPanel(app *CLIContainer, flags *PanelFlags) error {
	if _, err := app.PluginService.SetFilter(flags.Category, flags.Query); err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}

	contextTab := flags.ContextTab
	if contextTab == "" {
		contextTab = app.Config.ContextTab
	}

	if app.PluginService.Snapshot().Mode() == panel.ModeHidden {
		app.PluginService.ToggleVisibility()
	}

	model := newPanelModel(app.PluginService, app.Notifications, contextTab)
	program := tea.NewProgram(model, tea.WithAltScreen())

	app.Logger.Info().Str("context_tab", contextTab).Msg("Panel started")
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("panel failed: %w", err)
	}
	return nil
}

// panelModel holds the state for the Bubble Tea panel. Plugin and host state
// live in the service; the model only tracks cursor and input focus.
type panelModel struct {
	service       *services.PluginSystemService
	notifications *notify.Recorder
	contextTab    string

	selectedRow  int
	searching    bool
	search       textinput.Model
	windowWidth  int
	windowHeight int
	now          func() time.Time
}

// newPanelModel creates a new panel model
func newPanelModel(service *services.PluginSystemService, notifications *notify.Recorder, contextTab string) panelModel {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search plugins"
	search.CharLimit = 64
	search.SetValue(service.Snapshot().Criteria.Query)

	return panelModel{
		service:       service,
		notifications: notifications,
		contextTab:    contextTab,
		search:        search,
		windowWidth:   80,
		windowHeight:  24,
		now:           time.Now,
	}
}

// toastExpiredMsg asks for a redraw once a toast has timed out
type toastExpiredMsg struct{}

func toastCmd() tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{}
	})
}

// Init implements the Bubble Tea init method
func (m panelModel) Init() tea.Cmd {
	return nil
}

// Update implements the Bubble Tea update method
func (m panelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		return m, nil

	case toastExpiredMsg:
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.searching {
			return m.updateSearch(msg)
		}

		snap := m.service.Snapshot()
		switch snap.Mode() {
		case panel.ModeHidden:
			return m.updateHidden(msg)
		case panel.ModeMinimized:
			return m.updateMinimized(msg, snap)
		case panel.ModePluginOpen:
			return m.updatePluginOpen(msg, snap)
		default:
			return m.updateExpanded(msg, snap)
		}
	}

	return m, nil
}

func (m panelModel) updateHidden(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "v":
		m.service.ToggleVisibility()
	}
	return m, nil
}

func (m panelModel) updateMinimized(msg tea.KeyMsg, snap services.Snapshot) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q":
		return m, tea.Quit
	case "v":
		m.service.ToggleVisibility()
	case "m":
		m.service.SetMinimized(false)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		rail := snap.Registry.Enabled()
		slot := int(key[0] - '1')
		if slot < len(rail) {
			_, _ = m.service.OpenPlugin(rail[slot].ID)
			return m, toastCmd()
		}
	}
	return m, nil
}

func (m panelModel) updatePluginOpen(msg tea.KeyMsg, snap services.Snapshot) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.service.ClosePlugin()
		return m, toastCmd()
	case "v":
		m.service.ToggleVisibility()
	case "m":
		m.service.SetMinimized(true)
	case "c":
		_ = m.service.Configure(snap.State.ActivePluginID)
		return m, toastCmd()
	}
	return m, nil
}

func (m panelModel) updateExpanded(msg tea.KeyMsg, snap services.Snapshot) (tea.Model, tea.Cmd) {
	visible := snap.Visible
	selected, hasSelection := m.selection(visible)

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "v":
		m.service.ToggleVisibility()

	case "m":
		m.service.SetMinimized(true)

	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}

	case "down", "j":
		if m.selectedRow < len(visible)-1 {
			m.selectedRow++
		}

	case "tab":
		m.service.CycleCategory()
		m.selectedRow = 0

	case "/":
		m.searching = true
		return m, m.search.Focus()

	case " ":
		if hasSelection {
			_, _ = m.service.Toggle(selected.ID)
			return m, toastCmd()
		}

	case "enter":
		if hasSelection {
			_, _ = m.service.OpenPlugin(selected.ID)
			return m, toastCmd()
		}

	case "c":
		if hasSelection {
			_ = m.service.Configure(selected.ID)
			return m, toastCmd()
		}

	case "shift+up", "K":
		if hasSelection && m.selectedRow > 0 {
			if err := m.service.Reorder(m.selectedRow, m.selectedRow-1); err == nil {
				m.selectedRow--
			}
			return m, toastCmd()
		}

	case "shift+down", "J":
		if hasSelection && m.selectedRow < len(visible)-1 {
			if err := m.service.Reorder(m.selectedRow, m.selectedRow+1); err == nil {
				m.selectedRow++
			}
			return m, toastCmd()
		}

	case "home", "end":
		if hasSelection {
			delta := -snap.Registry.Len()
			if msg.String() == "end" {
				delta = snap.Registry.Len()
			}
			if err := m.service.Move(selected.ID, delta); err == nil {
				m.selectedRow = indexOf(m.service.Snapshot().Visible, selected.ID)
			}
			return m, toastCmd()
		}
	}

	return m, nil
}

func (m panelModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.SetValue("")
		m.applyQuery()
		m.searching = false
		m.search.Blur()
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyQuery()
	return m, cmd
}

// applyQuery pushes the search text into the service filter
func (m *panelModel) applyQuery() {
	criteria := m.service.Snapshot().Criteria
	if _, err := m.service.SetFilter(criteria.Category, m.search.Value()); err == nil {
		m.selectedRow = 0
	}
}

// selection returns the highlighted descriptor, clamping the cursor
func (m *panelModel) selection(visible []plugin.Descriptor) (plugin.Descriptor, bool) {
	if len(visible) == 0 {
		m.selectedRow = 0
		return plugin.Descriptor{}, false
	}
	if m.selectedRow >= len(visible) {
		m.selectedRow = len(visible) - 1
	}
	return visible[m.selectedRow], true
}

func indexOf(descs []plugin.Descriptor, id string) int {
	for i, d := range descs {
		if d.ID == id {
			return i
		}
	}
	return 0
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dividerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("240"))
	activeTab     = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("86"))
	enabledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	toastStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// View implements the Bubble Tea view method
func (m panelModel) View() string {
	snap := m.service.Snapshot()

	var body string
	switch snap.Mode() {
	case panel.ModeHidden:
		body = mutedStyle.Render("Plugin panel hidden. [v] Show plugins")
	case panel.ModeMinimized:
		body = m.renderRail(snap)
	case panel.ModePluginOpen:
		body = m.renderOpenPlugin(snap)
	default:
		body = m.renderList(snap)
	}

	sections := []string{m.renderHeader(snap), body}
	if toast := m.renderToast(); toast != "" {
		sections = append(sections, toast)
	}
	sections = append(sections, m.renderFooter(snap))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title line with registry stats
func (m panelModel) renderHeader(snap services.Snapshot) string {
	title := titleStyle.Render("◆ Plugins")
	info := fmt.Sprintf("%d/%d enabled | %s", snap.Stats.Enabled, snap.Stats.Total, snap.Mode())
	if !snap.Criteria.IsUnfiltered() {
		info += fmt.Sprintf(" | %d shown", len(snap.Visible))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Left, title, "  ", mutedStyle.Render(info)),
		m.divider(),
	)
}

func (m panelModel) renderTabs(criteria filtering.Criteria) string {
	tabs := make([]string, 0, len(filtering.CategoryTabs()))
	for _, tab := range filtering.CategoryTabs() {
		label := "All"
		if tab != filtering.CategoryAll {
			label = plugin.Category(tab).Label()
		}
		if tab == criteria.Category {
			tabs = append(tabs, activeTab.Render(label))
		} else {
			tabs = append(tabs, mutedStyle.Render(label))
		}
	}
	return strings.Join(tabs, "  ")
}

// renderList renders the expanded plugin list
func (m panelModel) renderList(snap services.Snapshot) string {
	lines := []string{m.renderTabs(snap.Criteria)}
	if m.searching || snap.Criteria.Query != "" {
		lines = append(lines, m.search.View())
	}
	lines = append(lines, "")

	if len(snap.Visible) == 0 {
		lines = append(lines, mutedStyle.Render("  No plugins match the current filter."))
		return strings.Join(lines, "\n")
	}

	for i, d := range snap.Visible {
		status := disabledStyle.Render("[ ]")
		if d.Enabled {
			status = enabledStyle.Render("[x]")
		}
		row := fmt.Sprintf("%s %-22s %-11s %-7s %s",
			status,
			truncateString(d.DisplayName(), 22),
			d.Category.Label(),
			fmt.Sprintf("%s/%s", d.Type, d.Size),
			mutedStyle.Render(truncateString(d.Description, m.windowWidth-50)),
		)
		if i == m.selectedRow {
			row = selectedStyle.Render("> " + row)
		} else {
			row = "  " + row
		}
		lines = append(lines, row)
	}
	return strings.Join(lines, "\n")
}

// renderRail renders the minimized rail of enabled plugins
func (m panelModel) renderRail(snap services.Snapshot) string {
	rail := snap.Registry.Enabled()
	if len(rail) == 0 {
		return mutedStyle.Render("No enabled plugins. [m] Expand")
	}

	lines := make([]string, 0, len(rail))
	for i, d := range rail {
		if i >= 9 {
			break
		}
		lines = append(lines, fmt.Sprintf("%d %s", i+1, d.DisplayName()))
	}
	return strings.Join(lines, "\n")
}

// renderOpenPlugin renders the mounted plugin view
func (m panelModel) renderOpenPlugin(snap services.Snapshot) string {
	if snap.ActiveView == nil {
		return mutedStyle.Render("Loading plugin...")
	}
	title := titleStyle.Render(snap.ActiveView.Title())
	height := m.windowHeight - 8
	if height < 1 {
		height = 1
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		snap.ActiveView.Render(m.windowWidth-2, height),
	)
}

// renderToast shows the latest notification while it is fresh
func (m panelModel) renderToast() string {
	if m.notifications == nil {
		return ""
	}
	n, ok := m.notifications.Latest()
	if !ok || m.now().Sub(n.At) > toastDuration {
		return ""
	}
	return toastStyle.Render("» " + n.Message)
}

// renderFooter renders the context line and the control instructions
func (m panelModel) renderFooter(snap services.Snapshot) string {
	var controls string
	switch {
	case m.searching:
		controls = "Search: type to filter | [Enter] Keep | [Esc] Clear"
	case snap.Mode() == panel.ModeHidden:
		controls = "Controls: [v] Show | [q] Quit"
	case snap.Mode() == panel.ModeMinimized:
		controls = "Controls: [1-9] Open | [m] Expand | [v] Hide | [q] Quit"
	case snap.Mode() == panel.ModePluginOpen:
		controls = "Controls: [Esc] Back | [c] Settings | [m] Minimize | [v] Hide | [q] Quit"
	default:
		controls = "Controls: [↑↓] Navigate | [Space] Enable | [Enter] Open | [K/J] Move | [Tab] Category | [/] Search | [m] Minimize | [q] Quit"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.divider(),
		mutedStyle.Render("Context: "+m.contextTab),
		mutedStyle.Render(controls),
	)
}

func (m panelModel) divider() string {
	width := m.windowWidth
	if width <= 0 {
		width = 80
	}
	return dividerStyle.Render(strings.Repeat("─", width))
}

// truncateString truncates a string to the specified length
func truncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
