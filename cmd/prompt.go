package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"aiswarm/config/models"
	"aiswarm/config/validation"
)

func init() {
	promptAddCmd.Flags().String("agent", "", "owning agent name (required)")
	promptAddCmd.Flags().String("text", "", "prompt text; @MODEL@, @PROVIDER@, @AGENT@, @SWARM@ and @NOW@ are substituted")
	promptRenderCmd.Flags().String("swarm", "", "swarm name substituted for @SWARM@")

	promptCmd.AddCommand(promptAddCmd)
	promptCmd.AddCommand(promptRenderCmd)
	rootCmd.AddCommand(promptCmd)
}

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Manage prompt templates",
}

var promptAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a prompt template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		agentName, _ := cmd.Flags().GetString("agent")
		text, _ := cmd.Flags().GetString("text")
		if err := validation.NewInputValidator().ValidateName("prompt", args[0]); err != nil {
			return err
		}

		err := env.manager.Update(func(state *models.State) error {
			a, ok := findAgent(state.Config, agentName)
			if !ok {
				return fmt.Errorf("agent '%s' does not exist", agentName)
			}
			_, err := state.Config.AddPrompt(models.Prompt{Name: args[0], AgentID: a.ID, PromptText: text})
			return err
		})
		if err != nil {
			return err
		}

		cmd.Println(successStyle.Render("✓ Added prompt " + args[0]))
		return nil
	},
}

var promptRenderCmd = &cobra.Command{
	Use:   "render <name>",
	Short: "Print a prompt with its variables substituted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		swarm, _ := cmd.Flags().GetString("swarm")

		state, err := env.manager.Load()
		if err != nil {
			return err
		}
		cfg := state.Config
		p, ok := cfg.PromptByName(args[0])
		if !ok {
			return fmt.Errorf("prompt '%s' does not exist", args[0])
		}

		vars := models.PromptVars{Swarm: swarm}
		if a, ok := cfg.Agent(p.AgentID); ok {
			vars.Agent = a.Name
			vars.Provider = a.Provider
			vars.Model = cfg.EffectiveModel(a, env.catalog)
		}
		fmt.Fprintln(cmd.OutOrStdout(), models.ExpandPrompt(p.PromptText, vars))
		return nil
	},
}
