package cmd

import (
	"onuze-cli/feed"
	"onuze-cli/term"
	"onuze-cli/ui"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   `onuze [command] [flags]`,
	Short: "Onuze from the terminal",
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		term.OutputErrorAndExit("Error executing root command: %v", err)
	}
}

// run with no subcommand opens the home feed.
func run(cmd *cobra.Command, args []string) {
	resolveAuthSilent()

	if err := ui.StartBrowseUI(feed.Get()); err != nil {
		term.OutputErrorAndExit("%v", err)
	}
}
