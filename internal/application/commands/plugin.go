package commands

import (
	"fmt"
	"strings"

	"socialblock.io/explorer/internal/core/filtering"
)

// Command types handled by the plugin system service
const (
	TypeTogglePlugin     = "toggle_plugin"
	TypeReorderPlugins   = "reorder_plugins"
	TypeOpenPlugin       = "open_plugin"
	TypeClosePlugin      = "close_plugin"
	TypeFilterPlugins    = "filter_plugins"
	TypeToggleVisibility = "toggle_visibility"
	TypeSetMinimized     = "set_minimized"
	TypeConfigurePlugin  = "configure_plugin"
)

// ToggleCommand flips the enabled flag of one plugin
type ToggleCommand struct {
	BaseCommand
	PluginID string `json:"plugin_id"`
}

// NewToggleCommand creates a new toggle command
func NewToggleCommand(pluginID string) *ToggleCommand {
	return &ToggleCommand{
		BaseCommand: NewBaseCommand(TypeTogglePlugin),
		PluginID:    pluginID,
	}
}

// Validate validates the toggle command
func (c *ToggleCommand) Validate() error {
	if err := c.BaseCommand.Validate(); err != nil {
		return err
	}
	return requirePluginID(c.PluginID)
}

// ReorderCommand moves a plugin between two indices of the visible list
type ReorderCommand struct {
	BaseCommand
	From int `json:"from"`
	To   int `json:"to"`
}

// NewReorderCommand creates a new reorder command
func NewReorderCommand(from, to int) *ReorderCommand {
	return &ReorderCommand{
		BaseCommand: NewBaseCommand(TypeReorderPlugins),
		From:        from,
		To:          to,
	}
}

// Validate validates the reorder command. Upper bounds depend on the
// visible list and are checked when the command runs.
func (c *ReorderCommand) Validate() error {
	if err := c.BaseCommand.Validate(); err != nil {
		return err
	}
	if c.From < 0 || c.To < 0 {
		return NewValidationError(fmt.Sprintf("indices must be non-negative, got %d -> %d", c.From, c.To))
	}
	return nil
}

// OpenPluginCommand mounts a plugin in the panel host
type OpenPluginCommand struct {
	BaseCommand
	PluginID string `json:"plugin_id"`
}

// NewOpenPluginCommand creates a new open command
func NewOpenPluginCommand(pluginID string) *OpenPluginCommand {
	return &OpenPluginCommand{
		BaseCommand: NewBaseCommand(TypeOpenPlugin),
		PluginID:    pluginID,
	}
}

// Validate validates the open command
func (c *OpenPluginCommand) Validate() error {
	if err := c.BaseCommand.Validate(); err != nil {
		return err
	}
	return requirePluginID(c.PluginID)
}

// ClosePluginCommand returns the host to the expanded list
type ClosePluginCommand struct {
	BaseCommand
}

// NewClosePluginCommand creates a new close command
func NewClosePluginCommand() *ClosePluginCommand {
	return &ClosePluginCommand{BaseCommand: NewBaseCommand(TypeClosePlugin)}
}

// FilterCommand replaces the active category and search query
type FilterCommand struct {
	BaseCommand
	Category string `json:"category"`
	Query    string `json:"query"`
}

// NewFilterCommand creates a new filter command
func NewFilterCommand(category, query string) *FilterCommand {
	return &FilterCommand{
		BaseCommand: NewBaseCommand(TypeFilterPlugins),
		Category:    category,
		Query:       query,
	}
}

// Validate validates the filter command
func (c *FilterCommand) Validate() error {
	if err := c.BaseCommand.Validate(); err != nil {
		return err
	}
	if _, err := filtering.ParseCriteria(c.Category, c.Query); err != nil {
		return NewValidationError(err.Error())
	}
	return nil
}

// Criteria returns the parsed filter criteria
func (c *FilterCommand) Criteria() filtering.Criteria {
	criteria, err := filtering.ParseCriteria(c.Category, c.Query)
	if err != nil {
		return filtering.DefaultCriteria()
	}
	return criteria
}

// ToggleVisibilityCommand shows or hides the panel host
type ToggleVisibilityCommand struct {
	BaseCommand
}

// NewToggleVisibilityCommand creates a new visibility command
func NewToggleVisibilityCommand() *ToggleVisibilityCommand {
	return &ToggleVisibilityCommand{BaseCommand: NewBaseCommand(TypeToggleVisibility)}
}

// SetMinimizedCommand collapses the host to its rail or expands it back
type SetMinimizedCommand struct {
	BaseCommand
	Minimized bool `json:"minimized"`
}

// NewSetMinimizedCommand creates a new minimize command
func NewSetMinimizedCommand(minimized bool) *SetMinimizedCommand {
	return &SetMinimizedCommand{
		BaseCommand: NewBaseCommand(TypeSetMinimized),
		Minimized:   minimized,
	}
}

// ConfigureCommand requests the settings of one plugin
type ConfigureCommand struct {
	BaseCommand
	PluginID string `json:"plugin_id"`
}

// NewConfigureCommand creates a new configure command
func NewConfigureCommand(pluginID string) *ConfigureCommand {
	return &ConfigureCommand{
		BaseCommand: NewBaseCommand(TypeConfigurePlugin),
		PluginID:    pluginID,
	}
}

// Validate validates the configure command
func (c *ConfigureCommand) Validate() error {
	if err := c.BaseCommand.Validate(); err != nil {
		return err
	}
	return requirePluginID(c.PluginID)
}

func requirePluginID(id string) error {
	if strings.TrimSpace(id) == "" {
		return NewValidationError("plugin ID is required")
	}
	return nil
}
