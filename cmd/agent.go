package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"aiswarm/config/models"
	"aiswarm/config/validation"
)

func init() {
	agentAddCmd.Flags().StringP("provider", "p", "", "provider name (required)")
	agentAddCmd.Flags().StringP("model", "m", "", "model (default: the provider's default model)")
	agentAddCmd.Flags().String("key", "", "API key (default: the provider's key)")
	agentAddCmd.Flags().String("endpoint", "", "endpoint name (default: the provider's default endpoint)")
	agentAddCmd.Flags().String("params", "", "comma separated parameter preset names, applied in order")

	agentCmd.AddCommand(agentAddCmd)
	agentCmd.AddCommand(agentRemoveCmd)
	agentCmd.AddCommand(agentClearCmd)
	agentCmd.AddCommand(agentShowCmd)
	rootCmd.AddCommand(agentCmd)
}

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Manage agents",
}

var agentAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an agent",
	Long: `Add an agent binding a provider, model and parameter presets under a unique name.

  aiswarm agent add writer -p openai -m gpt-4o --params creative`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		flags := cmd.Flags()
		provider, _ := flags.GetString("provider")
		model, _ := flags.GetString("model")
		key, _ := flags.GetString("key")
		endpointName, _ := flags.GetString("endpoint")
		params, _ := flags.GetString("params")

		if provider == "" {
			return fmt.Errorf("--provider is required")
		}
		iv := validation.NewInputValidator()
		if err := iv.ValidateName("agent", name); err != nil {
			return err
		}
		if model != "" {
			if err := iv.ValidateModelName(model); err != nil {
				return err
			}
		}

		agent := models.Agent{
			Name:     name,
			Provider: strings.ToUpper(provider),
			Model:    model,
			APIKey:   key,
		}

		err := env.manager.Update(func(state *models.State) error {
			cfg := state.Config
			if endpointName != "" {
				id, ok := endpointID(cfg, agent.Provider, endpointName)
				if !ok {
					return fmt.Errorf("endpoint '%s' does not exist for %s", endpointName, agent.Provider)
				}
				agent.EndpointID = id
			}
			ids, err := resolvePresets(cfg, params)
			if err != nil {
				return err
			}
			agent.ParametersIDs = ids

			agent, err = cfg.AddAgent(agent, env.catalog)
			return err
		})
		if err != nil {
			return err
		}

		cmd.Println(successStyle.Render(fmt.Sprintf("✓ Added agent %s (%s)", agent.Name, agent.Provider)))
		return nil
	},
}

var agentRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove an agent",
	Long:  "Remove an agent by name or id. Flocks and prompts referring to it keep the reference.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := env.manager.Update(func(state *models.State) error {
			a, ok := findAgent(state.Config, args[0])
			if !ok {
				return fmt.Errorf("agent '%s' does not exist", args[0])
			}
			return state.Config.RemoveAgent(a.ID)
		})
		if err != nil {
			return err
		}

		cmd.Println(successStyle.Render("✓ Removed agent " + args[0]))
		return nil
	},
}

var agentClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all agents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var n int
		err := env.manager.Update(func(state *models.State) error {
			n = state.Config.ClearAgents()
			return nil
		})
		if err != nil {
			return err
		}

		cmd.Println(successStyle.Render(fmt.Sprintf("✓ Removed %d agents", n)))
		return nil
	},
}

var agentShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show an agent's effective settings",
	Long:  "Show the model, key, endpoint and merged parameters an agent resolves to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := env.manager.Load()
		if err != nil {
			return err
		}
		cfg := state.Config
		a, ok := findAgent(cfg, args[0])
		if !ok {
			return fmt.Errorf("agent '%s' does not exist", args[0])
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, headerStyle.Render(a.Name))
		fmt.Fprintf(w, "  Provider: %s\n", a.Provider)
		fmt.Fprintf(w, "  Model:    %s\n", cfg.EffectiveModel(a, env.catalog))
		fmt.Fprintf(w, "  API key:  %s\n", maskOrUnset(cfg.EffectiveAPIKey(a)))
		fmt.Fprintf(w, "  Endpoint: %s\n", cfg.EffectiveEndpointURL(a, env.catalog))

		return printParameters(w, cfg.AgentParameters(a))
	},
}

// printParameters renders a merged overlay; nil means no preset applies
func printParameters(w io.Writer, merged *models.Overlay) error {
	if merged == nil {
		fmt.Fprintf(w, "  Parameters: %s\n", dimStyle.Render("provider defaults"))
		return nil
	}
	data, err := json.MarshalIndent(merged, "  ", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "  Parameters: %s\n", data)
	return nil
}

// findAgent looks an agent up by name, then by id
func findAgent(cfg *models.Config, ref string) (models.Agent, bool) {
	if a, ok := cfg.AgentByName(ref); ok {
		return a, true
	}
	return cfg.Agent(ref)
}

func endpointID(cfg *models.Config, provider, name string) (string, bool) {
	for _, e := range cfg.Endpoints[provider] {
		if e.Name == name {
			return e.ID, true
		}
	}
	return "", false
}
