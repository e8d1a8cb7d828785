package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"aiswarm/config/models"
	"aiswarm/config/validation"
	"aiswarm/internal/pricing"
)

func init() {
	pricingSetCmd.Flags().Float64("prompt", 0, "price per prompt token")
	pricingSetCmd.Flags().Float64("completion", 0, "price per completion token")

	pricingCmd.AddCommand(pricingSetCmd)
	pricingCmd.AddCommand(pricingRemoveCmd)
	pricingCmd.AddCommand(pricingShowCmd)
	pricingCmd.AddCommand(pricingListCmd)
	rootCmd.AddCommand(pricingCmd)
}

var pricingCmd = &cobra.Command{
	Use:   "pricing",
	Short: "Manage per-model pricing overrides",
}

var pricingSetCmd = &cobra.Command{
	Use:   "set <provider> <model>",
	Short: "Set the price of a model",
	Long: `Set a pricing override for a provider's model, replacing any existing one.

  aiswarm pricing set openai gpt-4o --prompt 0.0000025 --completion 0.00001`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, model := strings.ToUpper(args[0]), args[1]
		promptPrice, _ := cmd.Flags().GetFloat64("prompt")
		completionPrice, _ := cmd.Flags().GetFloat64("completion")

		if _, err := env.catalog.Get(provider); err != nil {
			return err
		}
		iv := validation.NewInputValidator()
		if err := iv.ValidateModelName(model); err != nil {
			return err
		}
		if err := iv.ValidatePrice("prompt", promptPrice); err != nil {
			return err
		}
		if err := iv.ValidatePrice("completion", completionPrice); err != nil {
			return err
		}

		err := env.store.PutAll([]models.PricingOverride{{
			Provider:        provider,
			Model:           model,
			PromptPrice:     promptPrice,
			CompletionPrice: completionPrice,
		}})
		if err != nil {
			return err
		}

		cmd.Println(successStyle.Render("✓ Set pricing for " + pricing.FormatKey(provider, model)))
		return nil
	},
}

var pricingRemoveCmd = &cobra.Command{
	Use:   "remove <provider> <model>",
	Short: "Remove a pricing override",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, model := strings.ToUpper(args[0]), args[1]
		key := pricing.FormatKey(provider, model)

		_, ok, err := env.store.Get(provider, model)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no pricing override for %s", key)
		}
		if err := env.store.Delete(provider, model); err != nil {
			return err
		}

		cmd.Println(successStyle.Render("✓ Removed pricing for " + key))
		return nil
	},
}

var pricingShowCmd = &cobra.Command{
	Use:   "show <provider> <model>",
	Short: "Show the pricing override of a model",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, model := strings.ToUpper(args[0]), args[1]

		o, ok, err := env.store.Get(provider, model)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no pricing override for %s", pricing.FormatKey(provider, model))
		}
		printPricing(cmd, o)
		return nil
	},
}

var pricingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all pricing overrides",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		overrides, err := env.store.All()
		if err != nil {
			return err
		}
		if len(overrides) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("No pricing overrides"))
			return nil
		}
		for _, o := range overrides {
			printPricing(cmd, o)
		}
		return nil
	},
}

func printPricing(cmd *cobra.Command, o models.PricingOverride) {
	fmt.Fprintf(cmd.OutOrStdout(), "  %-32s prompt: %g, completion: %g\n",
		pricing.FormatKey(o.Provider, o.Model), o.PromptPrice, o.CompletionPrice)
}
