package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docfind/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize docfind configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure docfind for your corpus and generates a .docfind.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
