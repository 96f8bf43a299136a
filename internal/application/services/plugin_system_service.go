package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"socialblock.io/explorer/internal/application/commands"
	"socialblock.io/explorer/internal/core/filtering"
	"socialblock.io/explorer/internal/core/ordering"
	"socialblock.io/explorer/internal/core/panel"
	"socialblock.io/explorer/internal/core/plugin"
	"socialblock.io/explorer/internal/core/ports"
)

// Snapshot is a consistent read of everything the shell renders
type Snapshot struct {
	Registry   plugin.Registry
	State      panel.State
	Criteria   filtering.Criteria
	Visible    []plugin.Descriptor
	Stats      plugin.Stats
	ActiveView ports.PluginView
}

// Mode returns the host mode of the snapshot
func (s Snapshot) Mode() panel.Mode {
	return s.State.Mode()
}

// ActiveDescriptor returns the descriptor of the mounted plugin, if any
func (s Snapshot) ActiveDescriptor() (plugin.Descriptor, bool) {
	if !s.State.HasActivePlugin() {
		return plugin.Descriptor{}, false
	}
	return s.Registry.Find(s.State.ActivePluginID)
}

// PluginSystemService owns the registry and the panel host state. Every
// public method is one atomic transition computed with the core reducers.
type PluginSystemService struct {
	mu       sync.RWMutex
	registry plugin.Registry
	state    panel.State
	criteria filtering.Criteria
	view     ports.PluginView

	resolver ports.ViewResolver
	notifier ports.Notifier
	logger   zerolog.Logger
}

// NewPluginSystemService creates a new plugin system service. A nil notifier
// discards notifications.
func NewPluginSystemService(
	registry plugin.Registry,
	resolver ports.ViewResolver,
	notifier ports.Notifier,
	logger zerolog.Logger,
) *PluginSystemService {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	return &PluginSystemService{
		registry: registry,
		criteria: filtering.DefaultCriteria(),
		resolver: resolver,
		notifier: notifier,
		logger:   logger,
	}
}

// Snapshot returns the current state
func (s *PluginSystemService) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Registry:   s.registry,
		State:      s.state,
		Criteria:   s.criteria,
		Visible:    filtering.Visible(s.registry, s.criteria),
		Stats:      s.registry.Stats(),
		ActiveView: s.view,
	}
}

// ToggleVisibility shows or hides the host
func (s *PluginSystemService) ToggleVisibility() panel.State {
	s.mu.Lock()
	s.state = s.state.ToggleVisibility()
	s.view = nil
	state := s.state
	s.mu.Unlock()

	s.logger.Debug().Str("mode", state.Mode().String()).Msg("Panel visibility toggled")
	return state
}

// SetMinimized collapses the host to its rail or expands it back
func (s *PluginSystemService) SetMinimized(minimized bool) panel.State {
	s.mu.Lock()
	s.state = s.state.SetMinimized(minimized)
	if !s.state.HasActivePlugin() {
		s.view = nil
	}
	state := s.state
	s.mu.Unlock()

	s.logger.Debug().Str("mode", state.Mode().String()).Msg("Panel minimized state changed")
	return state
}

// OpenPlugin mounts id in the host
func (s *PluginSystemService) OpenPlugin(id string) (ports.PluginView, error) {
	s.mu.Lock()
	reg := s.registry
	state, view, err := panel.OpenPlugin(reg, s.resolver, s.state, id)
	if err == nil {
		s.state = state
		s.view = view
	}
	s.mu.Unlock()

	d, _ := reg.Find(id)
	if err != nil {
		if d.Enabled && errors.Is(err, plugin.ErrPluginUnavailable) {
			return nil, s.fail(err, ports.NotificationUnavailable, id,
				fmt.Sprintf("%s is not implemented yet", d.DisplayName()))
		}
		return nil, s.fail(err, ports.NotificationUnavailable, id, failureMessage(d, id, err))
	}

	s.emit(ports.NotificationOpened, id, fmt.Sprintf("%s opened", d.DisplayName()))
	return view, nil
}

// ClosePlugin unmounts the active plugin, if any
func (s *PluginSystemService) ClosePlugin() panel.State {
	s.mu.Lock()
	closed := s.state.ActivePluginID
	s.state = s.state.ClosePlugin()
	s.view = nil
	state := s.state
	reg := s.registry
	s.mu.Unlock()

	if closed != "" {
		d, _ := reg.Find(closed)
		s.emit(ports.NotificationClosed, closed, fmt.Sprintf("%s closed", d.DisplayName()))
	}
	return state
}

// Toggle flips the enabled flag of id and returns the new value. Disabling
// the open plugin closes it.
func (s *PluginSystemService) Toggle(id string) (bool, error) {
	s.mu.Lock()
	reg, state, enabled, err := panel.Toggle(s.registry, s.state, id)
	if err == nil {
		s.registry = reg
		s.state = state
		if !state.HasActivePlugin() {
			s.view = nil
		}
	}
	s.mu.Unlock()

	if err != nil {
		return false, s.fail(err, ports.NotificationError, id, failureMessage(plugin.Descriptor{}, id, err))
	}

	d, _ := reg.Find(id)
	if enabled {
		s.emit(ports.NotificationEnabled, id, fmt.Sprintf("%s enabled", d.DisplayName()))
	} else {
		s.emit(ports.NotificationDisabled, id, fmt.Sprintf("%s disabled", d.DisplayName()))
	}
	return enabled, nil
}

// Reorder moves the plugin at index from of the visible list to index to
func (s *PluginSystemService) Reorder(from, to int) error {
	s.mu.Lock()
	reg, err := ordering.Reorder(s.registry, s.criteria, from, to)
	if err == nil {
		s.registry = reg
	}
	s.mu.Unlock()

	if err != nil {
		return s.fail(err, ports.NotificationError, "", failureMessage(plugin.Descriptor{}, "", err))
	}
	if from != to {
		s.emit(ports.NotificationReordered, "", "Plugin order updated")
	}
	return nil
}

// Move shifts id by delta slots in the full order, clamped to the ends
func (s *PluginSystemService) Move(id string, delta int) error {
	s.mu.Lock()
	before := s.registry.IndexOf(id)
	reg, err := ordering.Move(s.registry, id, delta)
	if err == nil {
		s.registry = reg
	}
	s.mu.Unlock()

	if err != nil {
		return s.fail(err, ports.NotificationError, id, failureMessage(plugin.Descriptor{}, id, err))
	}
	if reg.IndexOf(id) != before {
		s.emit(ports.NotificationReordered, id, "Plugin order updated")
	}
	return nil
}

// SetFilter replaces the active category and search text
func (s *PluginSystemService) SetFilter(category, query string) (filtering.Criteria, error) {
	criteria, err := filtering.ParseCriteria(category, query)
	if err != nil {
		return filtering.Criteria{}, s.fail(err, ports.NotificationError, "", err.Error())
	}

	s.mu.Lock()
	s.criteria = criteria
	s.mu.Unlock()

	s.logger.Debug().
		Str("category", criteria.Category).
		Str("query", criteria.Query).
		Msg("Plugin filter changed")
	return criteria, nil
}

// CycleCategory advances the category tab and keeps the search text
func (s *PluginSystemService) CycleCategory() filtering.Criteria {
	s.mu.Lock()
	s.criteria.Category = filtering.NextCategory(s.criteria.Category)
	criteria := s.criteria
	s.mu.Unlock()
	return criteria
}

// Configure requests the settings of id. The host only announces the request.
func (s *PluginSystemService) Configure(id string) error {
	s.mu.RLock()
	d, err := panel.Configure(s.registry, id)
	s.mu.RUnlock()

	if err != nil {
		return s.fail(err, ports.NotificationError, id, failureMessage(d, id, err))
	}
	s.emit(ports.NotificationSettings, id, fmt.Sprintf("Opening settings for %s", d.DisplayName()))
	return nil
}

// Execute dispatches cmd to the matching operation
func (s *PluginSystemService) Execute(ctx context.Context, cmd commands.Command) *commands.CommandResult {
	start := time.Now()
	result := s.execute(ctx, cmd)
	result.ExecutionTime = time.Since(start)
	if cmd != nil {
		result.SetMetadata("command_id", cmd.GetID())
		result.SetMetadata("command_type", cmd.GetType())
	}
	return result
}

func (s *PluginSystemService) execute(ctx context.Context, cmd commands.Command) *commands.CommandResult {
	if cmd == nil {
		return rejected("No command given", errors.New("command is nil"))
	}
	if err := ctx.Err(); err != nil {
		return rejected("Command cancelled", err)
	}
	if err := cmd.Validate(); err != nil {
		return rejected("Command validation failed", err)
	}

	switch c := cmd.(type) {
	case *commands.ToggleCommand:
		enabled, err := s.Toggle(c.PluginID)
		if err != nil {
			return errorResult(err)
		}
		return commands.NewSuccessResult(fmt.Sprintf("Plugin %s toggled", c.PluginID), enabled)

	case *commands.ReorderCommand:
		if err := s.Reorder(c.From, c.To); err != nil {
			return errorResult(err)
		}
		return commands.NewSuccessResult("Plugin order updated", s.Snapshot().Registry.Descriptors())

	case *commands.OpenPluginCommand:
		view, err := s.OpenPlugin(c.PluginID)
		if err != nil {
			return errorResult(err)
		}
		return commands.NewSuccessResult(fmt.Sprintf("Plugin %s opened", c.PluginID), view.Title())

	case *commands.ClosePluginCommand:
		return commands.NewSuccessResult("Plugin closed", s.ClosePlugin())

	case *commands.FilterCommand:
		criteria, err := s.SetFilter(c.Category, c.Query)
		if err != nil {
			return errorResult(err)
		}
		return commands.NewSuccessResult("Filter applied", criteria)

	case *commands.ToggleVisibilityCommand:
		return commands.NewSuccessResult("Panel visibility toggled", s.ToggleVisibility())

	case *commands.SetMinimizedCommand:
		return commands.NewSuccessResult("Panel minimized state changed", s.SetMinimized(c.Minimized))

	case *commands.ConfigureCommand:
		if err := s.Configure(c.PluginID); err != nil {
			return errorResult(err)
		}
		return commands.NewSuccessResult(fmt.Sprintf("Settings requested for %s", c.PluginID), nil)

	default:
		err := commands.CommandError{
			Code:    commands.ErrCodeUnsupported,
			Message: fmt.Sprintf("unsupported command type %q", cmd.GetType()),
		}
		result := commands.NewErrorResult("Command not supported", []string{err.Error()})
		result.SetMetadata("error_code", err.Code)
		return result
	}
}

// fail logs err at warn level, notifies the user and returns err
func (s *PluginSystemService) fail(err error, kind ports.NotificationKind, pluginID, message string) error {
	s.logger.Warn().
		Err(err).
		Str("plugin_id", pluginID).
		Msg("Plugin action rejected")
	s.emit(kind, pluginID, message)
	return err
}

func (s *PluginSystemService) emit(kind ports.NotificationKind, pluginID, message string) {
	s.notifier.Notify(ports.Notification{
		Kind:     kind,
		PluginID: pluginID,
		Message:  message,
	})
}

func failureMessage(d plugin.Descriptor, id string, err error) string {
	switch {
	case errors.Is(err, plugin.ErrPanelHidden):
		return "Show the plugin panel first"
	case errors.Is(err, plugin.ErrUnknownPluginID):
		return fmt.Sprintf("Unknown plugin %s", id)
	case errors.Is(err, plugin.ErrPluginUnavailable) && d.ID != "":
		return fmt.Sprintf("%s is disabled", d.DisplayName())
	case errors.Is(err, plugin.ErrInvalidIndex):
		return "Plugin order unchanged"
	default:
		return err.Error()
	}
}

func errorResult(err error) *commands.CommandResult {
	code := commands.ErrCodeValidation
	switch {
	case errors.Is(err, plugin.ErrUnknownPluginID):
		code = commands.ErrCodeNotFound
	case errors.Is(err, plugin.ErrPluginUnavailable), errors.Is(err, plugin.ErrPanelHidden):
		code = commands.ErrCodeUnavailable
	}
	result := commands.NewErrorResult("Command failed", nil)
	result.AddError(err.Error())
	result.SetMetadata("error_code", code)
	return result
}

// rejected reports a command that never reached dispatch
func rejected(message string, err error) *commands.CommandResult {
	result := commands.NewErrorResult(message, nil)
	result.AddError(err.Error())
	result.SetMetadata("error_code", commands.ErrCodeValidation)
	return result
}
