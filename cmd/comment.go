package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"onuze-cli/actions"
	"onuze-cli/auth"
	"onuze-cli/comments"
	"onuze-cli/term"
)

var commentCmd = &cobra.Command{
	Use:     "comment [post] [content]",
	Aliases: []string{"c"},
	Short:   "Reply to a post or comment",
	Args:    cobra.MinimumNArgs(1),
	Run:     comment,
}

func init() {
	RootCmd.AddCommand(commentCmd)

	commentCmd.Flags().String("parent", "", "Comment id to reply to instead of the post")
}

func comment(cmd *cobra.Command, args []string) {
	auth.MustResolveAuth()

	post := mustGetPost(args[0])

	content := strings.Join(args[1:], " ")
	if content == "" {
		var err error
		content, err = term.GetRequiredUserStringInput("Reply:")
		if err != nil {
			term.OutputErrorAndExit("Error reading reply: %v", err)
		}
	}

	parentId, _ := cmd.Flags().GetString("parent")

	var tree *comments.Tree
	var parent *string
	if parentId == "" {
		tree = comments.ForPost(post.Path, comments.SortNew)
	} else {
		// the parent has to be in the thread before a reply can hang off it
		tree = loadThread(post.Path, comments.SortNew)
		if tree.Get(parentId) == nil {
			term.OutputErrorAndExit("Comment %s not found on this post", parentId)
		}
		parent = &parentId
	}

	term.StartSpinner("")
	apiErr := actions.SubmitReply(tree, post, parent, content)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiError(apiErr, "Error submitting reply")
	}

	fmt.Println("✅ Reply submitted")
}
