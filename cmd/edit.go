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

var editCmd = &cobra.Command{
	Use:   "edit [post]",
	Short: "Edit one of your posts, or a comment with --comment",
	Args:  cobra.ExactArgs(1),
	Run:   edit,
}

func init() {
	RootCmd.AddCommand(editCmd)

	editCmd.Flags().String("title", "", "New title")
	editCmd.Flags().String("content", "", "New body")
	editCmd.Flags().String("comment", "", "Comment id to edit instead of the post")
}

func edit(cmd *cobra.Command, args []string) {
	auth.MustResolveAuth()

	post := mustGetPost(args[0])
	commentId, _ := cmd.Flags().GetString("comment")
	content, _ := cmd.Flags().GetString("content")

	if commentId != "" {
		editComment(post, commentId, content)
		return
	}

	if !actions.CanEditPost(*post) {
		term.OutputErrorAndExit("Only the author can edit this post")
	}

	title, _ := cmd.Flags().GetString("title")
	if title == "" && content == "" {
		var err error
		content, err = term.GetUserStringInputWithDefault("Body:", post.Content)
		if err != nil {
			term.OutputErrorAndExit("Error reading body: %v", err)
		}
	}

	req := shared.UpdatePostRequest{}
	if title != "" {
		req.Title = &title
	}
	if content != "" {
		req.Content = &content
	}

	term.StartSpinner("")
	apiErr := actions.EditPost(post, req)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiError(apiErr, "Error editing post")
	}

	fmt.Println("✅ Post updated")
}

func editComment(post *shared.Post, commentId, content string) {
	tree := loadThread(post.Path, comments.SortNew)
	node := tree.Get(commentId)
	if node == nil {
		term.OutputErrorAndExit("Comment %s not found on this post", commentId)
	}

	if !actions.CommentEditAllowed(*post, node.Comment) {
		term.OutputErrorAndExit("This comment can't be edited")
	}

	if content == "" {
		var err error
		content, err = term.GetUserStringInputWithDefault("Comment:", node.Content)
		if err != nil {
			term.OutputErrorAndExit("Error reading comment: %v", err)
		}
	}

	term.StartSpinner("")
	apiErr := actions.EditComment(tree, commentId, content)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiError(apiErr, "Error editing comment")
	}

	fmt.Println("✅ Comment updated")
}
