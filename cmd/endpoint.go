package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"aiswarm/config/models"
	"aiswarm/config/validation"
	"aiswarm/internal/utils"
)

func init() {
	endpointAddCmd.Flags().Bool("default", false, "make this the provider's default endpoint")

	endpointCmd.AddCommand(endpointAddCmd)
	endpointCmd.AddCommand(endpointRemoveCmd)
	endpointCmd.AddCommand(endpointDefaultCmd)
	rootCmd.AddCommand(endpointCmd)
}

var endpointCmd = &cobra.Command{
	Use:   "endpoint",
	Short: "Manage a provider's API endpoints",
}

var endpointAddCmd = &cobra.Command{
	Use:   "add <provider> <name> <url>",
	Short: "Add an endpoint",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, name, url := strings.ToUpper(args[0]), args[1], args[2]
		makeDefault, _ := cmd.Flags().GetBool("default")

		if _, err := env.catalog.Get(provider); err != nil {
			return err
		}
		if err := validation.NewInputValidator().ValidateName("endpoint", name); err != nil {
			return err
		}
		endpoint := models.Endpoint{Name: name, URL: url}
		if err := validation.NewValidator().ValidateEndpoint(endpoint); err != nil {
			return err
		}
		endpoint.URL = utils.NormalizeURL(url)

		err := env.manager.Update(func(state *models.State) error {
			cfg := state.Config
			for _, e := range cfg.Endpoints[provider] {
				if e.Name == name {
					return fmt.Errorf("endpoint '%s' already exists for %s", name, provider)
				}
			}
			endpoint.ID = models.NewID()
			cfg.SetEndpoints(provider, append(cfg.Endpoints[provider], endpoint))
			if makeDefault {
				cfg.SetDefaultEndpoint(provider, endpoint.ID)
			}
			return nil
		})
		if err != nil {
			return err
		}

		cmd.Println(successStyle.Render(fmt.Sprintf("✓ Added endpoint %s to %s", name, provider)))
		return nil
	},
}

var endpointRemoveCmd = &cobra.Command{
	Use:   "remove <provider> <name>",
	Short: "Remove an endpoint",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, name := strings.ToUpper(args[0]), args[1]

		err := env.manager.Update(func(state *models.State) error {
			cfg := state.Config
			var kept []models.Endpoint
			for _, e := range cfg.Endpoints[provider] {
				if e.Name != name {
					kept = append(kept, e)
				}
			}
			if len(kept) == len(cfg.Endpoints[provider]) {
				return fmt.Errorf("endpoint '%s' does not exist for %s", name, provider)
			}
			cfg.SetEndpoints(provider, kept)
			return nil
		})
		if err != nil {
			return err
		}

		cmd.Println(successStyle.Render(fmt.Sprintf("✓ Removed endpoint %s from %s", name, provider)))
		return nil
	},
}

var endpointDefaultCmd = &cobra.Command{
	Use:   "default <provider> <name>",
	Short: "Make an endpoint the provider's default",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, name := strings.ToUpper(args[0]), args[1]

		err := env.manager.Update(func(state *models.State) error {
			for _, e := range state.Config.Endpoints[provider] {
				if e.Name == name {
					state.Config.SetDefaultEndpoint(provider, e.ID)
					return nil
				}
			}
			return fmt.Errorf("endpoint '%s' does not exist for %s", name, provider)
		})
		if err != nil {
			return err
		}

		cmd.Println(successStyle.Render(fmt.Sprintf("✓ %s is now the default endpoint of %s", name, provider)))
		return nil
	},
}
