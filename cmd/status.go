package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"aiswarm/internal/bundle"
	"aiswarm/internal/utils"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the configuration lives and what it holds",
	Long:  "Show the state file, pricing database, backups and a count of every kind of entity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := env.manager.Load()
		if err != nil {
			return err
		}
		overrides, err := env.store.All()
		if err != nil {
			return err
		}
		backups, err := env.manager.Backups()
		if err != nil {
			return err
		}

		cfg := state.Config
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, headerStyle.Render("Configuration"))
		fmt.Fprintf(w, "  State file:  %s\n", env.manager.Path())
		fmt.Fprintf(w, "  Pricing DB:  %s\n", env.settings.PricingDBPath(env.dir))
		fmt.Fprintf(w, "  Backups:     %d\n", len(backups))
		fmt.Fprintf(w, "  Bundle:      version %d (reads %d to %d)\n", bundle.CurrentVersion, bundle.MinSupportedVersion, bundle.CurrentVersion)

		fmt.Fprintln(w, headerStyle.Render("Contents"))
		fmt.Fprintf(w, "  API keys:    %d of %d providers\n", cfg.APIKeyCount(), env.catalog.Len())
		fmt.Fprintf(w, "  Agents:      %d\n", len(cfg.Agents))
		fmt.Fprintf(w, "  Flocks:      %d\n", len(cfg.Flocks))
		fmt.Fprintf(w, "  Swarms:      %d\n", len(cfg.Swarms))
		fmt.Fprintf(w, "  Presets:     %d\n", len(cfg.Parameters))
		fmt.Fprintf(w, "  Prompts:     %d\n", len(cfg.Prompts))
		fmt.Fprintf(w, "  Pricing:     %d overrides\n", len(overrides))

		fmt.Fprintln(w, headerStyle.Render("Auxiliary keys"))
		fmt.Fprintf(w, "  Hugging Face: %s\n", maskOrUnset(state.AuxKeys.HuggingFace))
		fmt.Fprintf(w, "  OpenRouter:   %s\n", maskOrUnset(state.AuxKeys.OpenRouter))
		return nil
	},
}

func maskOrUnset(key string) string {
	if key == "" {
		return dimStyle.Render("not set")
	}
	return utils.MaskAPIKey(key)
}
