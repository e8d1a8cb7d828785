package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"aiswarm/config/models"
	"aiswarm/config/validation"
)

func init() {
	f := presetAddCmd.Flags()
	f.Float64("temperature", 0, "sampling temperature (0 to 2)")
	f.Int("max-tokens", 0, "maximum completion tokens")
	f.Float64("top-p", 0, "nucleus sampling mass (0 to 1)")
	f.Int("top-k", 0, "top-k sampling")
	f.Float64("frequency-penalty", 0, "frequency penalty (-2 to 2)")
	f.Float64("presence-penalty", 0, "presence penalty (-2 to 2)")
	f.Int("seed", 0, "sampling seed")
	f.String("stop", "", "comma separated stop sequences")
	f.String("system", "", "system prompt")
	f.Bool("json", false, "request JSON responses")
	f.Bool("search", false, "enable web search")
	f.Bool("citations", false, "return citations")
	f.String("recency", "", "search recency filter (e.g. day, week, month)")

	presetCmd.AddCommand(presetAddCmd)
	presetCmd.AddCommand(presetRemoveCmd)
	presetCmd.AddCommand(presetShowCmd)
	rootCmd.AddCommand(presetCmd)
}

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage parameter presets",
}

var presetAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a parameter preset",
	Long: `Add a parameter preset. Only the flags given are part of the preset;
when presets are combined, a later preset only overrides the values it sets.

  aiswarm preset add precise --temperature 0.2 --max-tokens 2048
  aiswarm preset add research --search --citations --recency week`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		iv := validation.NewInputValidator()
		if err := iv.ValidateName("preset", name); err != nil {
			return err
		}
		overlay := overlayFromFlags(cmd.Flags())
		if err := iv.ValidateOverlay(overlay); err != nil {
			return err
		}

		err := env.manager.Update(func(state *models.State) error {
			if _, exists := presetID(state.Config, name); exists {
				return fmt.Errorf("parameter preset '%s' already exists", name)
			}
			state.Config.AddParameters(models.Parameters{Name: name, Overlay: overlay})
			return nil
		})
		if err != nil {
			return err
		}

		cmd.Println(successStyle.Render("✓ Added parameter preset " + name))
		return nil
	},
}

var presetRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a parameter preset",
	Long:  "Remove a parameter preset by name or id. References to it are ignored from then on.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := env.manager.Update(func(state *models.State) error {
			id, ok := presetID(state.Config, args[0])
			if !ok {
				return fmt.Errorf("parameter preset '%s' does not exist", args[0])
			}
			return state.Config.RemoveParameters(id)
		})
		if err != nil {
			return err
		}

		cmd.Println(successStyle.Render("✓ Removed parameter preset " + args[0]))
		return nil
	},
}

var presetShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the values a preset sets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := env.manager.Load()
		if err != nil {
			return err
		}
		id, ok := presetID(state.Config, args[0])
		if !ok {
			return fmt.Errorf("parameter preset '%s' does not exist", args[0])
		}
		p, _ := state.Config.Preset(id)

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, headerStyle.Render(p.Name))
		return printParameters(w, &p.Overlay)
	},
}

// overlayFromFlags sets only the fields whose flags were given
func overlayFromFlags(flags *pflag.FlagSet) models.Overlay {
	var o models.Overlay
	floats := map[string]**float64{
		"temperature":       &o.Temperature,
		"top-p":             &o.TopP,
		"frequency-penalty": &o.FrequencyPenalty,
		"presence-penalty":  &o.PresencePenalty,
	}
	for name, dst := range floats {
		if flags.Changed(name) {
			v, _ := flags.GetFloat64(name)
			*dst = models.Float64(v)
		}
	}
	ints := map[string]**int{
		"max-tokens": &o.MaxTokens,
		"top-k":      &o.TopK,
		"seed":       &o.Seed,
	}
	for name, dst := range ints {
		if flags.Changed(name) {
			v, _ := flags.GetInt(name)
			*dst = models.Int(v)
		}
	}
	if flags.Changed("stop") {
		raw, _ := flags.GetString("stop")
		o.StopSequences = splitList(raw)
	}
	if flags.Changed("system") {
		v, _ := flags.GetString("system")
		o.SystemPrompt = models.String(v)
	}
	if flags.Changed("recency") {
		v, _ := flags.GetString("recency")
		o.SearchRecency = models.String(v)
	}
	o.ResponseFormatJSON, _ = flags.GetBool("json")
	o.SearchEnabled, _ = flags.GetBool("search")
	o.ReturnCitations, _ = flags.GetBool("citations")
	return o
}
