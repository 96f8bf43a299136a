package di

import (
	"errors"
	"fmt"
	"sync"

	"socialblock.io/explorer/internal/application/services"
	"socialblock.io/explorer/internal/core/plugin"
	"socialblock.io/explorer/internal/core/ports"
	configinfra "socialblock.io/explorer/internal/infrastructure/config"
	"socialblock.io/explorer/internal/infrastructure/notify"
	"socialblock.io/explorer/internal/infrastructure/views"
	"socialblock.io/explorer/internal/interfaces/cli"
	"socialblock.io/explorer/internal/logging"
)

// Container holds all application dependencies
type Container struct {
	// Configuration
	Config *configinfra.Config

	// Core state
	Registry      plugin.Registry
	PluginService *services.PluginSystemService

	// Infrastructure
	Catalog       *views.Catalog
	Bus           *notify.Bus
	Notifications *notify.Recorder

	// CLI
	CLIContainer *cli.CLIContainer

	// Logger
	Logger *logging.Logger

	shutdownOnce  sync.Once
	unsubscribers []func()
}

// NewContainer creates and configures the dependency injection container
func NewContainer(cfg *configinfra.Config) (*Container, error) {
	if cfg == nil {
		cfg = configinfra.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	container := &Container{Config: cfg}
	if err := container.initializeComponents(); err != nil {
		_ = container.Shutdown()
		return nil, fmt.Errorf("failed to initialize components: %w", err)
	}

	return container, nil
}

// initializeComponents initializes all components with proper dependencies
func (c *Container) initializeComponents() error {
	// 1. Logging
	logCfg := logging.DefaultConfig()
	logCfg.Level = c.Config.LogLevel
	logCfg.File = c.Config.LogFile
	logCfg.Console = c.Config.LogConsole
	logger, err := logging.New(logCfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	c.Logger = logger

	// 2. Registry seed
	registry, err := configinfra.LoadRegistry(c.Config.RegistryFile)
	if err != nil {
		return err
	}
	c.Registry = registry

	// 3. View catalog
	c.Catalog = views.NewCatalog()
	if c.Config.MockSeed != 0 {
		c.Catalog.WithSeed(c.Config.MockSeed)
	}

	// 4. Notifications: the recorder feeds the panel toast, the log handler
	// keeps an audit trail
	c.Bus = notify.NewBus()
	c.Notifications = notify.NewRecorder(c.Config.NotificationHistory)
	for _, handler := range []func(ports.Notification){
		c.Notifications.Record,
		notify.LogHandler(c.Logger.Component("notifications")),
	} {
		unsubscribe, err := c.Bus.Subscribe(handler)
		if err != nil {
			return fmt.Errorf("failed to subscribe notification handler: %w", err)
		}
		c.unsubscribers = append(c.unsubscribers, unsubscribe)
	}

	// 5. Application service
	c.PluginService = services.NewPluginSystemService(
		c.Registry,
		c.Catalog,
		c.Bus,
		c.Logger.Component("plugin_system"),
	)

	// 6. CLI
	c.CLIContainer = &cli.CLIContainer{
		Config:        c.Config,
		PluginService: c.PluginService,
		Notifications: c.Notifications,
		Logger:        c.Logger.Component("cli"),
		Shutdown:      c.Shutdown,
	}

	stats := registry.Stats()
	log := c.Logger.Zerolog()
	log.Info().
		Int("plugins", stats.Total).
		Int("enabled", stats.Enabled).
		Str("registry_file", c.Config.RegistryFile).
		Msg("Container initialized")
	return nil
}

// GetCLIContainer returns the CLI container for command execution
func (c *Container) GetCLIContainer() *cli.CLIContainer {
	return c.CLIContainer
}

// Shutdown releases subscriptions and closes the log file. It is safe to
// call more than once.
func (c *Container) Shutdown() error {
	var err error
	c.shutdownOnce.Do(func() {
		for _, unsubscribe := range c.unsubscribers {
			unsubscribe()
		}
		c.unsubscribers = nil

		if c.Logger != nil {
			log := c.Logger.Zerolog()
			log.Info().Msg("Application shutdown complete")
			err = c.Logger.Close()
		}
	})
	return err
}

// HealthCheck verifies that every component is wired
func (c *Container) HealthCheck() error {
	var errs []error
	if c.PluginService == nil {
		errs = append(errs, errors.New("plugin service not initialized"))
	}
	if c.Bus == nil || !c.Bus.HasSubscribers() {
		errs = append(errs, errors.New("notification bus has no subscribers"))
	}
	if c.Catalog == nil {
		errs = append(errs, errors.New("view catalog not initialized"))
	} else {
		registered := make(map[string]bool)
		for _, id := range c.Catalog.IDs() {
			registered[id] = true
		}
		for _, d := range c.Registry.Descriptors() {
			if !registered[d.ID] {
				log := c.Logger.Zerolog()
				log.Warn().Str("plugin_id", d.ID).Msg("No view registered for plugin")
			}
		}
	}
	return errors.Join(errs...)
}

// Build loads configuration through loader and builds the container
func Build(loader *configinfra.Loader) (*Container, error) {
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	container, err := NewContainer(cfg)
	if err != nil {
		return nil, err
	}
	if err := container.HealthCheck(); err != nil {
		_ = container.Shutdown()
		return nil, fmt.Errorf("health check failed: %w", err)
	}
	return container, nil
}
