package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"aiswarm/config/models"
	"aiswarm/config/validation"
)

func init() {
	swarmAddCmd.Flags().String("members", "", "comma separated provider/model pairs (required)")
	swarmAddCmd.Flags().String("params", "", "comma separated parameter preset names applied to every member")

	swarmCmd.AddCommand(swarmAddCmd)
	swarmCmd.AddCommand(swarmRemoveCmd)
	swarmCmd.AddCommand(swarmShowCmd)
	rootCmd.AddCommand(swarmCmd)
}

var swarmCmd = &cobra.Command{
	Use:   "swarm",
	Short: "Manage swarms (named lists of provider/model pairs)",
}

var swarmAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a swarm",
	Long: `Add a swarm of provider/model pairs. Model names may contain slashes.

  aiswarm swarm add crowd --members openai/gpt-4o,together/meta-llama/Llama-3.3-70B-Instruct-Turbo`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		raw, _ := cmd.Flags().GetString("members")
		params, _ := cmd.Flags().GetString("params")

		if err := validation.NewInputValidator().ValidateName("swarm", name); err != nil {
			return err
		}
		members, err := parseMembers(raw)
		if err != nil {
			return err
		}

		err = env.manager.Update(func(state *models.State) error {
			cfg := state.Config
			if _, exists := cfg.SwarmByName(name); exists {
				return fmt.Errorf("swarm '%s' already exists", name)
			}
			ids, err := resolvePresets(cfg, params)
			if err != nil {
				return err
			}
			cfg.AddSwarm(models.Swarm{Name: name, Members: members, ParametersIDs: ids})
			return nil
		})
		if err != nil {
			return err
		}

		cmd.Println(successStyle.Render(fmt.Sprintf("✓ Added swarm %s with %d members", name, len(members))))
		return nil
	},
}

var swarmRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a swarm",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := env.manager.Update(func(state *models.State) error {
			s, ok := findSwarm(state.Config, args[0])
			if !ok {
				return fmt.Errorf("swarm '%s' does not exist", args[0])
			}
			return state.Config.RemoveSwarm(s.ID)
		})
		if err != nil {
			return err
		}

		cmd.Println(successStyle.Render("✓ Removed swarm " + args[0]))
		return nil
	},
}

var swarmShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a swarm's members and merged parameters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := env.manager.Load()
		if err != nil {
			return err
		}
		cfg := state.Config
		s, ok := findSwarm(cfg, args[0])
		if !ok {
			return fmt.Errorf("swarm '%s' does not exist", args[0])
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, headerStyle.Render(s.Name))
		for _, m := range s.Members {
			fmt.Fprintf(w, "  %s/%s  key: %s\n", m.Provider, m.Model, maskOrUnset(cfg.Providers[m.Provider].APIKey))
		}
		return printParameters(w, cfg.MergeParameters(s.ParametersIDs))
	},
}

// parseMembers reads "provider/model" pairs, splitting each on its first slash
func parseMembers(raw string) ([]models.SwarmMember, error) {
	var members []models.SwarmMember
	iv := validation.NewInputValidator()
	for _, pair := range splitList(raw) {
		provider, model, ok := strings.Cut(pair, "/")
		if !ok || provider == "" {
			return nil, fmt.Errorf("invalid member '%s' (want provider/model)", pair)
		}
		provider = strings.ToUpper(provider)
		if _, err := env.catalog.Get(provider); err != nil {
			return nil, err
		}
		if err := iv.ValidateModelName(model); err != nil {
			return nil, err
		}
		members = append(members, models.SwarmMember{Provider: provider, Model: model})
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("--members is required")
	}
	return members, nil
}

// findSwarm looks a swarm up by name, then by id
func findSwarm(cfg *models.Config, ref string) (models.Swarm, bool) {
	if s, ok := cfg.SwarmByName(ref); ok {
		return s, true
	}
	return cfg.Swarm(ref)
}
