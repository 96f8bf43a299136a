// Package views holds the stock plugin bodies and the catalog that resolves
// a plugin id to one of them. The bodies render locally generated mock data;
// there is no chain backend behind them.
package views

import (
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"socialblock.io/explorer/internal/core/plugin"
	"socialblock.io/explorer/internal/core/ports"
)

// Factory builds a fresh view each time a plugin is opened
type Factory func(rng *rand.Rand) ports.PluginView

// Catalog is the id -> view lookup table consumed by the panel host
type Catalog struct {
	mu        sync.RWMutex
	factories map[string]Factory
	seed      func() int64
}

// NewCatalog creates a catalog with the stock views registered
func NewCatalog() *Catalog {
	c := NewEmptyCatalog()
	c.Register(plugin.IDAIWatchLogs, newAIWatchLogs)
	c.Register(plugin.IDZkIDRegistry, newZkIDRegistry)
	c.Register(plugin.IDAirdropClaimMap, newAirdropClaimMap)
	c.Register(plugin.IDValidatorTracker, newValidatorTracker)
	return c
}

// NewEmptyCatalog creates a catalog with nothing registered
func NewEmptyCatalog() *Catalog {
	return &Catalog{
		factories: make(map[string]Factory),
		seed:      func() int64 { return time.Now().UnixNano() },
	}
}

// WithSeed makes generated mock data deterministic
func (c *Catalog) WithSeed(seed int64) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seed = func() int64 { return seed }
	return c
}

// Register adds or replaces the factory for id
func (c *Catalog) Register(id string, factory Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.factories[id] = factory
}

// Resolve implements ports.ViewResolver
func (c *Catalog) Resolve(id string) (ports.PluginView, bool) {
	c.mu.RLock()
	factory, ok := c.factories[id]
	seed := c.seed
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	return factory(rand.New(rand.NewSource(seed()))), true
}

// IDs returns the registered ids, sorted
func (c *Catalog) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, 0, len(c.factories))
	for id := range c.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// tableView renders a header line plus rows, clipped to the given box
type tableView struct {
	id     string
	title  string
	header string
	rows   []string
}

func (v *tableView) ID() string    { return v.id }
func (v *tableView) Title() string { return v.title }

// Render implements ports.PluginView
func (v *tableView) Render(width, height int) string {
	lines := make([]string, 0, len(v.rows)+1)
	lines = append(lines, headerStyle.Render(clip(v.header, width)))
	for _, row := range v.rows {
		lines = append(lines, clip(row, width))
	}
	if len(v.rows) == 0 {
		lines = append(lines, mutedStyle.Render("No data"))
	}
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// clip truncates s to width runes; width <= 0 disables clipping
func clip(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
