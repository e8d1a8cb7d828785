package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"aiswarm/internal/bundle"
)

func init() {
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Import a bundle",
	Long: `Import a bundle produced by export, including bundles from older versions.

Agents, flocks, swarms, presets and prompts are replaced. Providers and endpoints named
in the bundle are overwritten; others are kept. Use - to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}

		summary, err := env.manager.Import(env.service, data)
		if err != nil {
			return describeImportError(err)
		}

		cmd.Println(successStyle.Render("✓ " + summary.String()))
		return nil
	},
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle: %w", err)
	}
	return data, nil
}

// describeImportError turns the abort kinds into user-facing messages
func describeImportError(err error) error {
	var importErr *bundle.ImportError
	if !errors.As(err, &importErr) {
		return err
	}
	switch importErr.Kind {
	case bundle.KindEmptyInput:
		return fmt.Errorf("import failed: the bundle is empty")
	case bundle.KindUnsupportedVersion:
		return fmt.Errorf("import failed: bundle version %d is not supported (this build reads %d to %d)",
			importErr.Version, bundle.MinSupportedVersion, bundle.CurrentVersion)
	default:
		return fmt.Errorf("import failed: %w", err)
	}
}
