package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"aiswarm/config/models"
	"aiswarm/config/validation"
)

func init() {
	providerSetCmd.Flags().String("key", "", "API key")
	providerSetCmd.Flags().String("model-source", "", "where the model list comes from: REMOTE or MANUAL")
	providerSetCmd.Flags().String("models", "", "comma separated manual model list")
	providerSetCmd.Flags().String("default-model", "", "default model for agents without one")
	providerSetCmd.Flags().String("admin-url", "", "key management page")
	providerSetCmd.Flags().String("model-list-url", "", "model list URL override (empty restores the default)")
	providerSetCmd.Flags().String("params", "", "comma separated parameter preset names applied to every agent of this provider")

	providerCmd.AddCommand(providerSetCmd)
	providerCmd.AddCommand(providerResetCmd)
	rootCmd.AddCommand(providerCmd)
}

var providerCmd = &cobra.Command{
	Use:   "provider",
	Short: "Manage provider settings",
}

var providerSetCmd = &cobra.Command{
	Use:   "set <provider>",
	Short: "Change a provider's settings",
	Long: `Change a provider's settings. Only the flags given are changed.

  aiswarm provider set openai --key sk-xxx
  aiswarm provider set groq --model-source MANUAL --models llama-3.3-70b,mixtral --default-model llama-3.3-70b`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.ToUpper(args[0])
		flags := cmd.Flags()

		var presetIDs []string
		if flags.Changed("params") {
			state, err := env.manager.Load()
			if err != nil {
				return err
			}
			raw, _ := flags.GetString("params")
			if presetIDs, err = resolvePresets(state.Config, raw); err != nil {
				return err
			}
		}

		if flags.Changed("model-source") {
			source, _ := flags.GetString("model-source")
			if err := validation.NewValidator().ValidateModelSource(strings.ToUpper(source)); err != nil {
				return err
			}
		}

		err := env.manager.UpdateProvider(name, func(s *models.ProviderSetting) {
			if flags.Changed("key") {
				s.APIKey, _ = flags.GetString("key")
			}
			if flags.Changed("model-source") {
				source, _ := flags.GetString("model-source")
				s.ModelSource = strings.ToUpper(source)
			}
			if flags.Changed("models") {
				raw, _ := flags.GetString("models")
				s.ManualModels = splitList(raw)
			}
			if flags.Changed("default-model") {
				s.DefaultModel, _ = flags.GetString("default-model")
			}
			if flags.Changed("admin-url") {
				s.AdminURL, _ = flags.GetString("admin-url")
			}
			if flags.Changed("model-list-url") {
				s.ModelListURL, _ = flags.GetString("model-list-url")
			}
			if flags.Changed("params") {
				s.ParametersIDs = presetIDs
			}
		})
		if err != nil {
			return err
		}

		cmd.Println(successStyle.Render("✓ Updated " + name))
		return nil
	},
}

var providerResetCmd = &cobra.Command{
	Use:   "reset <provider>",
	Short: "Restore a provider's default settings",
	Long:  "Restore a provider's default settings, clearing its API key and custom endpoints",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.ToUpper(args[0])
		if err := env.manager.ResetProvider(name); err != nil {
			return err
		}
		cmd.Println(successStyle.Render("✓ Reset " + name))
		return nil
	},
}

// splitList splits a comma separated flag value, dropping blanks
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// resolvePresets maps comma separated preset names or ids to ids
func resolvePresets(cfg *models.Config, raw string) ([]string, error) {
	var ids []string
	for _, ref := range splitList(raw) {
		id, ok := presetID(cfg, ref)
		if !ok {
			return nil, fmt.Errorf("parameter preset '%s' does not exist", ref)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func presetID(cfg *models.Config, ref string) (string, bool) {
	if p, ok := cfg.Preset(ref); ok {
		return p.ID, true
	}
	for _, p := range cfg.Parameters {
		if p.Name == ref {
			return p.ID, true
		}
	}
	return "", false
}
