package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"onuze-cli/actions"
	"onuze-cli/auth"
	"onuze-cli/comments"
	"onuze-cli/term"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [post]",
	Aliases: []string{"rm"},
	Short:   "Delete one of your posts, or a comment with --comment",
	Args:    cobra.ExactArgs(1),
	Run:     deletePost,
}

func init() {
	RootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().String("comment", "", "Comment id to delete instead of the post")
}

func deletePost(cmd *cobra.Command, args []string) {
	auth.MustResolveAuth()

	post := mustGetPost(args[0])
	commentId, _ := cmd.Flags().GetString("comment")

	if commentId != "" {
		tree := loadThread(post.Path, comments.SortNew)
		node := tree.Get(commentId)
		if node == nil {
			term.OutputErrorAndExit("Comment %s not found on this post", commentId)
		}

		if !actions.CanDeleteComment(node.Comment, post.Community) {
			term.OutputErrorAndExit("You can't delete this comment")
		}

		confirmed, err := term.ConfirmYesNo("Delete this comment?")
		if err != nil {
			term.OutputErrorAndExit("Error reading input: %v", err)
		}
		if !confirmed {
			return
		}

		term.StartSpinner("")
		apiErr := actions.DeleteComment(tree, commentId)
		term.StopSpinner()

		if apiErr != nil {
			term.OutputApiError(apiErr, "Error deleting comment")
		}

		fmt.Println("🗑️  Comment deleted")
		return
	}

	if !actions.CanDeletePost(*post) {
		term.OutputErrorAndExit("You can't delete this post")
	}

	confirmed, err := term.ConfirmYesNo("Delete %q?", post.Title)
	if err != nil {
		term.OutputErrorAndExit("Error reading input: %v", err)
	}
	if !confirmed {
		return
	}

	term.StartSpinner("")
	apiErr := actions.DeletePost(post)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiError(apiErr, "Error deleting post")
	}

	fmt.Println("🗑️  Post deleted")
}
