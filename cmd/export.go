package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"aiswarm/config/storage"
)

func init() {
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the configuration as a bundle",
	Long: `Export providers, agents, flocks, swarms, parameter presets, prompts, endpoints,
pricing overrides and auxiliary keys as a single JSON bundle.

The bundle contains API keys in plain text. Without a file argument it is written to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := env.manager.Export(env.service)
		if err != nil {
			return err
		}

		if len(args) == 0 {
			_, err := cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		}

		if err := storage.AtomicWrite(args[0], data, nil); err != nil {
			return fmt.Errorf("failed to write bundle: %w", err)
		}
		cmd.PrintErrln(successStyle.Render("✓ Exported to " + args[0]))
		return nil
	},
}
