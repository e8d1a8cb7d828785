package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"aiswarm/config/models"
	"aiswarm/config/validation"
)

func init() {
	flockAddCmd.Flags().String("agents", "", "comma separated agent names, in order")
	flockAddCmd.Flags().String("params", "", "comma separated parameter preset names applied to every member")

	flockCmd.AddCommand(flockAddCmd)
	flockCmd.AddCommand(flockRemoveCmd)
	flockCmd.AddCommand(flockShowCmd)
	rootCmd.AddCommand(flockCmd)
}

var flockCmd = &cobra.Command{
	Use:   "flock",
	Short: "Manage flocks (named groups of agents)",
}

var flockAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a flock",
	Long: `Add a flock referring to existing agents.

  aiswarm flock add reviewers --agents writer,critic --params precise`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		agents, _ := cmd.Flags().GetString("agents")
		params, _ := cmd.Flags().GetString("params")

		if err := validation.NewInputValidator().ValidateName("flock", name); err != nil {
			return err
		}

		var added models.Flock
		err := env.manager.Update(func(state *models.State) error {
			cfg := state.Config
			if _, exists := cfg.FlockByName(name); exists {
				return fmt.Errorf("flock '%s' already exists", name)
			}
			flock := models.Flock{Name: name}
			for _, ref := range splitList(agents) {
				a, ok := findAgent(cfg, ref)
				if !ok {
					return fmt.Errorf("agent '%s' does not exist", ref)
				}
				flock.AgentIDs = append(flock.AgentIDs, a.ID)
			}
			ids, err := resolvePresets(cfg, params)
			if err != nil {
				return err
			}
			flock.ParametersIDs = ids
			added = cfg.AddFlock(flock)
			return nil
		})
		if err != nil {
			return err
		}

		cmd.Println(successStyle.Render(fmt.Sprintf("✓ Added flock %s with %d agents", added.Name, len(added.AgentIDs))))
		return nil
	},
}

var flockRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a flock",
	Long:  "Remove a flock by name or id. Its agents are kept.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := env.manager.Update(func(state *models.State) error {
			f, ok := findFlock(state.Config, args[0])
			if !ok {
				return fmt.Errorf("flock '%s' does not exist", args[0])
			}
			return state.Config.RemoveFlock(f.ID)
		})
		if err != nil {
			return err
		}

		cmd.Println(successStyle.Render("✓ Removed flock " + args[0]))
		return nil
	},
}

var flockShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a flock's agents and merged parameters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := env.manager.Load()
		if err != nil {
			return err
		}
		cfg := state.Config
		f, ok := findFlock(cfg, args[0])
		if !ok {
			return fmt.Errorf("flock '%s' does not exist", args[0])
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, headerStyle.Render(f.Name))
		members := cfg.FlockAgents(f)
		for _, a := range members {
			fmt.Fprintf(w, "  %s (%s/%s)\n", a.Name, a.Provider, cfg.EffectiveModel(a, env.catalog))
		}
		if missing := len(f.AgentIDs) - len(members); missing > 0 {
			fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("  %d agents no longer exist", missing)))
		}
		return printParameters(w, cfg.MergeParameters(f.ParametersIDs))
	},
}

// findFlock looks a flock up by name, then by id
func findFlock(cfg *models.Config, ref string) (models.Flock, bool) {
	if f, ok := cfg.FlockByName(ref); ok {
		return f, true
	}
	return cfg.Flock(ref)
}
