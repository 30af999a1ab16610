/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/happythoughts/apiserver/config"
	"github.com/happythoughts/apiserver/internal/logging"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "apiserver",
	Short: "Happy Thoughts and dogs API server",
	Long: `A REST API for short happy thoughts and a small dog directory,
backed by MongoDB. Usage:

	apiserver server
	apiserver migrate up
	apiserver seed reset
`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(config.LoadConfig().Log)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
