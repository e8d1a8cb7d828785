package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore the configuration from its latest backup",
	Long:  "Replace the state file with the most recent backup taken before a write",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		restored, err := env.manager.Restore()
		if err != nil {
			return err
		}
		cmd.Println(successStyle.Render("✓ Restored from " + filepath.Base(restored)))
		return nil
	},
}
