package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"socialblock.io/explorer/internal/core/filtering"
	"socialblock.io/explorer/internal/core/plugin"
)

// PluginsListFlags holds command-line flags for the plugins list command
type PluginsListFlags struct {
	Category    string
	Query       string
	EnabledOnly bool
	JSON        bool
}

// NewPluginsCommand creates the plugins command
func NewPluginsCommand(app *CLIContainer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "Inspect the plugin registry",
		Long: `Inspect the plugin registry the panel is seeded with.

The registry comes from the built-in defaults or from the manifest given with
--registry (or registry_file in the config file).`,
		Example: `  # List every plugin in panel order
  sbx plugins list

  # List enabled DeFi plugins matching "claim"
  sbx plugins list --category defi --query claim --enabled

  # Show counts per category
  sbx plugins stats`,
	}

	cmd.AddCommand(newPluginsListCommand(app))
	cmd.AddCommand(newPluginsStatsCommand(app))

	return cmd
}

func newPluginsListCommand(app *CLIContainer) *cobra.Command {
	flags := &PluginsListFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List plugins in panel order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := filtering.ParseCriteria(flags.Category, flags.Query)
			if err != nil {
				return fmt.Errorf("invalid filter: %w", err)
			}

			snap := app.PluginService.Snapshot()
			visible := filtering.Visible(snap.Registry, criteria)
			if flags.EnabledOnly {
				visible = enabledOnly(visible)
			}

			if flags.JSON {
				return writeJSON(cmd.OutOrStdout(), visible)
			}
			return writePluginTable(cmd.OutOrStdout(), visible)
		},
	}

	cmd.Flags().StringVar(&flags.Category, "category", filtering.CategoryAll, "Category tab (all, monitoring, identity, defi, governance)")
	cmd.Flags().StringVar(&flags.Query, "query", "", "Case-insensitive search over name and description")
	cmd.Flags().BoolVar(&flags.EnabledOnly, "enabled", false, "Only list enabled plugins")
	cmd.Flags().BoolVar(&flags.JSON, "json", false, "Output JSON")

	return cmd
}

func newPluginsStatsCommand(app *CLIContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show plugin counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeStats(cmd.OutOrStdout(), app.PluginService.Snapshot().Stats)
		},
	}
}

func enabledOnly(descs []plugin.Descriptor) []plugin.Descriptor {
	out := make([]plugin.Descriptor, 0, len(descs))
	for _, d := range descs {
		if d.Enabled {
			out = append(out, d)
		}
	}
	return out
}

func writePluginTable(out io.Writer, descs []plugin.Descriptor) error {
	if len(descs) == 0 {
		_, err := fmt.Fprintln(out, "No plugins match the current filter.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "POS\tID\tNAME\tCATEGORY\tTYPE\tSIZE\tSTATUS")
	fmt.Fprintln(w, "---\t--\t----\t--------\t----\t----\t------")

	for _, d := range descs {
		status := "disabled"
		if d.Enabled {
			status = "enabled"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			d.Position,
			d.ID,
			d.DisplayName(),
			d.Category.Label(),
			d.Type,
			d.Size,
			status,
		)
	}

	return w.Flush()
}

func writeStats(out io.Writer, stats plugin.Stats) error {
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintf(w, "Total\t%d\n", stats.Total)
	fmt.Fprintf(w, "Enabled\t%d\n", stats.Enabled)
	for _, c := range plugin.Categories() {
		fmt.Fprintf(w, "  %s\t%d\n", c.Label(), stats.EnabledByCategory[c])
	}
	return w.Flush()
}

func writeJSON(out io.Writer, v interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
