package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"aiswarm/config/models"
	"aiswarm/internal/providers"
	"aiswarm/internal/utils"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List providers, agents, flocks, swarms and presets",
	Long:  "List every configured provider and entity, with API keys masked",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := env.manager.Load()
		if err != nil {
			return err
		}
		printConfig(cmd.OutOrStdout(), state.Config, env.catalog)
		return nil
	},
}

func printConfig(w io.Writer, cfg *models.Config, catalog *providers.Catalog) {
	fmt.Fprintln(w, headerStyle.Render("Providers"))
	for _, name := range catalog.Names() {
		ps := cfg.Providers[name]
		key := dimStyle.Render("no key")
		if ps.APIKey != "" {
			key = utils.MaskAPIKey(ps.APIKey)
		}
		source := ps.ModelSource
		if source == providers.ModelSourceManual && len(ps.ManualModels) > 0 {
			source += " [" + strings.Join(ps.ManualModels, ", ") + "]"
		}
		fmt.Fprintf(w, "  %-11s %-14s model: %s, source: %s\n", name, key, ps.DefaultModel, source)
		for _, e := range cfg.Endpoints[name] {
			marker := " "
			if e.IsDefault {
				marker = "*"
			}
			fmt.Fprintf(w, "    %s %s %s\n", marker, e.Name, dimStyle.Render(e.URL))
		}
	}

	if len(cfg.Agents) > 0 {
		fmt.Fprintln(w, headerStyle.Render("\nAgents"))
		for _, a := range cfg.Agents {
			fmt.Fprintf(w, "  %s (%s/%s)\n", a.Name, a.Provider, cfg.EffectiveModel(a, catalog))
		}
	}

	if len(cfg.Flocks) > 0 {
		fmt.Fprintln(w, headerStyle.Render("\nFlocks"))
		for _, f := range cfg.Flocks {
			var names []string
			for _, a := range cfg.FlockAgents(f) {
				names = append(names, a.Name)
			}
			fmt.Fprintf(w, "  %s: %s\n", f.Name, strings.Join(names, ", "))
		}
	}

	if len(cfg.Swarms) > 0 {
		fmt.Fprintln(w, headerStyle.Render("\nSwarms"))
		for _, s := range cfg.Swarms {
			var members []string
			for _, m := range s.Members {
				members = append(members, m.Provider+"/"+m.Model)
			}
			fmt.Fprintf(w, "  %s: %s\n", s.Name, strings.Join(members, ", "))
		}
	}

	if len(cfg.Parameters) > 0 {
		fmt.Fprintln(w, headerStyle.Render("\nParameter presets"))
		for _, p := range cfg.Parameters {
			fmt.Fprintf(w, "  %s\n", p.Name)
		}
	}

	if len(cfg.Prompts) > 0 {
		fmt.Fprintln(w, headerStyle.Render("\nPrompts"))
		for _, p := range cfg.Prompts {
			owner := dimStyle.Render("unowned")
			if a, ok := cfg.Agent(p.AgentID); ok {
				owner = a.Name
			}
			fmt.Fprintf(w, "  %s (%s)\n", p.Name, owner)
		}
	}
}
