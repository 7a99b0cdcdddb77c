package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"onuze-cli/actions"
	"onuze-cli/auth"
	"onuze-cli/comments"
	"onuze-cli/shared"
	"onuze-cli/term"
)

var upvoteCmd = &cobra.Command{
	Use:     "upvote [post]",
	Aliases: []string{"u"},
	Short:   "Upvote a post, or a comment with --comment",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		vote(cmd, args, shared.VoteUp)
	},
}

var downvoteCmd = &cobra.Command{
	Use:     "downvote [post]",
	Aliases: []string{"d"},
	Short:   "Downvote a post, or a comment with --comment",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		vote(cmd, args, shared.VoteDown)
	},
}

func init() {
	RootCmd.AddCommand(upvoteCmd)
	RootCmd.AddCommand(downvoteCmd)

	upvoteCmd.Flags().String("comment", "", "Comment id to vote on instead of the post")
	downvoteCmd.Flags().String("comment", "", "Comment id to vote on instead of the post")
}

// vote toggles: repeating a vote cancels it.
func vote(cmd *cobra.Command, args []string, dir shared.VoteDirection) {
	auth.MustResolveAuth()

	post := mustGetPost(args[0])
	commentId, _ := cmd.Flags().GetString("comment")

	if commentId != "" {
		tree := loadThread(post.Path, comments.SortNew)
		node := tree.Get(commentId)
		if node == nil {
			term.OutputErrorAndExit("Comment %s not found on this post", commentId)
		}

		term.StartSpinner("")
		apiErr := actions.VoteComment(tree, commentId, dir)
		term.StopSpinner()

		if apiErr != nil {
			term.OutputApiError(apiErr, "Error voting")
		}

		node = tree.Get(commentId)
		fmt.Printf("✅ Comment score is now %d\n", node.Score)
		return
	}

	term.StartSpinner("")
	apiErr := actions.VotePost(post, dir)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiError(apiErr, "Error voting")
	}

	fmt.Printf("✅ %s is now at %d\n", post.Title, post.Score)
}
