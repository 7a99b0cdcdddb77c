package cmd

import (
	"github.com/spf13/cobra"

	"onuze-cli/feed"
	"onuze-cli/term"
	"onuze-cli/ui"
)

var feedCmd = &cobra.Command{
	Use:     "feed [home|popular|new|all]",
	Aliases: []string{"f"},
	Short:   "Browse a post feed",
	Args:    cobra.MaximumNArgs(1),
	Run:     runFeed,
}

var popularCmd = &cobra.Command{
	Use:   "popular",
	Short: "Browse the popular feed",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		startFeed(feed.FilterPopular)
	},
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Browse the newest posts",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		startFeed(feed.FilterNew)
	},
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Browse all posts by top score",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		startFeed(feed.FilterAll)
	},
}

func init() {
	RootCmd.AddCommand(feedCmd)
	RootCmd.AddCommand(popularCmd)
	RootCmd.AddCommand(newCmd)
	RootCmd.AddCommand(allCmd)
}

func runFeed(cmd *cobra.Command, args []string) {
	filter := feed.Get()
	if len(args) > 0 {
		filter = feed.ParseFilter(args[0])
	}
	startFeed(filter)
}

// startFeed writes the feed signal, then opens the browser UI on it.
func startFeed(filter feed.Filter) {
	resolveAuthSilent()
	feed.Set(filter)

	if err := ui.StartBrowseUI(filter); err != nil {
		term.OutputErrorAndExit("%v", err)
	}
}
