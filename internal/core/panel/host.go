package panel

import (
	"fmt"

	"socialblock.io/explorer/internal/core/plugin"
	"socialblock.io/explorer/internal/core/ports"
)

// Mode is the host's derived view state
type Mode string

const (
	ModeHidden     Mode = "hidden"
	ModeExpanded   Mode = "expanded"
	ModeMinimized  Mode = "minimized"
	ModePluginOpen Mode = "plugin_open"
)

// String implements the Stringer interface
func (m Mode) String() string {
	return string(m)
}

// State is the panel host's own state, independent of descriptors.
// The zero value is the initial Hidden state.
type State struct {
	Visible        bool   `json:"visible"`
	Minimized      bool   `json:"minimized"`
	ActivePluginID string `json:"active_plugin_id,omitempty"`
}

// Mode derives the host mode from the state flags
func (s State) Mode() Mode {
	switch {
	case !s.Visible:
		return ModeHidden
	case s.ActivePluginID != "":
		return ModePluginOpen
	case s.Minimized:
		return ModeMinimized
	default:
		return ModeExpanded
	}
}

// HasActivePlugin reports whether a plugin is mounted
func (s State) HasActivePlugin() bool {
	return s.ActivePluginID != ""
}

// ToggleVisibility switches Hidden <-> Expanded. Both directions clear the
// active plugin and the minimized flag.
func (s State) ToggleVisibility() State {
	if s.Visible {
		return State{}
	}
	return State{Visible: true}
}

// SetMinimized switches between Expanded and Minimized. It has no effect
// while hidden; minimizing closes any open plugin.
func (s State) SetMinimized(minimized bool) State {
	if !s.Visible {
		return s
	}
	if minimized {
		return State{Visible: true, Minimized: true}
	}
	s.Minimized = false
	return s
}

// ClosePlugin returns from PluginOpen to Expanded; no-op otherwise
func (s State) ClosePlugin() State {
	if s.Mode() != ModePluginOpen {
		return s
	}
	return State{Visible: true}
}

// Validate checks the single-active invariant against a registry
func (s State) Validate(reg plugin.Registry) error {
	if s.ActivePluginID == "" {
		return nil
	}
	if !s.Visible {
		return fmt.Errorf("active plugin %s while panel hidden", s.ActivePluginID)
	}
	if !reg.IsEnabled(s.ActivePluginID) {
		return fmt.Errorf("active plugin %s is not an enabled descriptor", s.ActivePluginID)
	}
	return nil
}

// OpenPlugin mounts id in the host. The descriptor must exist, be enabled and
// resolve to a view; otherwise ErrPluginUnavailable is returned with the state
// unchanged. Opening from the minimized rail expands the host.
func OpenPlugin(reg plugin.Registry, resolver ports.ViewResolver, s State, id string) (State, ports.PluginView, error) {
	if !s.Visible {
		return s, nil, plugin.ErrPanelHidden
	}
	d, ok := reg.Find(id)
	if !ok {
		return s, nil, fmt.Errorf("%w: %w", plugin.ErrPluginUnavailable, plugin.ErrUnknown(id))
	}
	if !d.Enabled {
		return s, nil, plugin.ErrUnavailable(id, "disabled")
	}
	view, ok := resolver.Resolve(id)
	if !ok || view == nil {
		return s, nil, plugin.ErrUnavailable(id, "no view registered")
	}
	return State{Visible: true, ActivePluginID: id}, view, nil
}

// Toggle flips the enabled flag of id. Disabling the active plugin clears
// ActivePluginID in the same transition. It returns the new enabled value.
func Toggle(reg plugin.Registry, s State, id string) (plugin.Registry, State, bool, error) {
	d, ok := reg.Find(id)
	if !ok {
		return reg, s, false, plugin.ErrUnknown(id)
	}
	enabled := !d.Enabled
	next, err := reg.WithEnabled(id, enabled)
	if err != nil {
		return reg, s, d.Enabled, err
	}
	if !enabled && s.ActivePluginID == id {
		s = s.ClosePlugin()
	}
	return next, s, enabled, nil
}

// Configure looks up id for a settings request. It never changes state.
func Configure(reg plugin.Registry, id string) (plugin.Descriptor, error) {
	d, ok := reg.Find(id)
	if !ok {
		return plugin.Descriptor{}, plugin.ErrUnknown(id)
	}
	return d, nil
}
