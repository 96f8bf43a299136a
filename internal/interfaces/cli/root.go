package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"socialblock.io/explorer/internal/application/services"
	configinfra "socialblock.io/explorer/internal/infrastructure/config"
	"socialblock.io/explorer/internal/infrastructure/notify"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// CLIContainer holds all the dependencies for CLI commands
type CLIContainer struct {
	Config        *configinfra.Config
	PluginService *services.PluginSystemService
	Notifications *notify.Recorder
	Logger        zerolog.Logger
	Shutdown      func() error
}

// Bootstrap builds the CLI dependencies once global flags are parsed
type Bootstrap func(loader *configinfra.Loader) (*CLIContainer, error)

// annotationInteractive marks commands that take over the terminal
const annotationInteractive = "interactive"

// NewRootCommand creates the sbx root command. The container is filled in by
// bootstrap before any subcommand runs.
func NewRootCommand(bootstrap Bootstrap) *cobra.Command {
	rootCmd, _ := newRootCommand(bootstrap)
	return rootCmd
}

func newRootCommand(bootstrap Bootstrap) (*cobra.Command, *CLIContainer) {
	app := &CLIContainer{}

	var rootCmd = &cobra.Command{
		Use:   "sbx",
		Short: "SocialBlock explorer - plugin panel for the block explorer",
		Long: `sbx hosts the explorer's pluggable side panel in the terminal.

Plugins are small dashboards (watch logs, identity registries, airdrop maps,
validator trackers) that can be enabled, reordered, filtered by category and
opened one at a time next to the explorer's current context tab.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loader, err := newLoaderFromFlags(cmd)
			if err != nil {
				return fmt.Errorf("failed to apply configuration overrides: %w", err)
			}

			built, err := bootstrap(loader)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			*app = *built
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app.Shutdown == nil {
				return nil
			}
			return app.Shutdown()
		},
	}

	rootCmd.SetVersionTemplate(versionTemplate())

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "Config file path (default is $HOME/.sbx/config.yaml)")
	rootCmd.PersistentFlags().String("registry", "", "Plugin registry manifest (YAML)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(NewPanelCommand(app))
	rootCmd.AddCommand(NewPluginsCommand(app))
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd, app
}

// newLoaderFromFlags binds the global flags onto a config loader
func newLoaderFromFlags(cmd *cobra.Command) (*configinfra.Loader, error) {
	configPath, _ := cmd.Flags().GetString("config")
	loader := configinfra.NewLoader(configPath)

	// Only explicitly set flags override file and environment values
	if cmd.Flags().Changed("log-level") {
		if err := loader.BindFlag("log_level", cmd.Flags().Lookup("log-level")); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("registry") {
		if err := loader.BindFlag("registry_file", cmd.Flags().Lookup("registry")); err != nil {
			return nil, err
		}
	}
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		loader.Override("log_level", "debug")
	}
	// Console output would draw over the alt-screen
	if cmd.Annotations[annotationInteractive] == "true" {
		loader.Override("log_console", false)
	}
	return loader, nil
}

// NewVersionCommand prints build information
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Version needs no configuration
		PersistentPreRunE:  func(cmd *cobra.Command, args []string) error { return nil },
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "sbx version %s\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
				Version, BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH)
			return err
		},
	}
}

func versionTemplate() string {
	return fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH)
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(bootstrap Bootstrap) {
	rootCmd, app := newRootCommand(bootstrap)

	if err := executeRoot(rootCmd, app); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// executeRoot runs rootCmd. cobra skips PersistentPostRunE when a command
// fails, so app is shut down here on that path.
func executeRoot(rootCmd *cobra.Command, app *CLIContainer) error {
	err := rootCmd.Execute()
	if err != nil && app.Shutdown != nil {
		if shutdownErr := app.Shutdown(); shutdownErr != nil {
			err = errors.Join(err, shutdownErr)
		}
	}
	return err
}
