package cmd

import (
	"github.com/spf13/cobra"

	"github.com/finchat-dev/finchat/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize finchat configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to pick the model backend and knowledge directory, then writes a .finchat.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
