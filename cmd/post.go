package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"

	"onuze-cli/comments"
	"onuze-cli/format"
	"onuze-cli/shared"
	"onuze-cli/stream"
	"onuze-cli/term"
	"onuze-cli/ui"
)

const maxThreadPages = 10

var postCmd = &cobra.Command{
	Use:     "post [post]",
	Aliases: []string{"p"},
	Short:   "View a post and its comment thread",
	Args:    cobra.ExactArgs(1),
	Run:     showPost,
}

func init() {
	RootCmd.AddCommand(postCmd)

	postCmd.Flags().String("sort", string(comments.SortNew), "Comment sort: new | old | top | hot | controversial")
	postCmd.Flags().Bool("open", false, "Open the post in the browser instead")
}

func showPost(cmd *cobra.Command, args []string) {
	resolveAuthSilent()

	post := mustGetPost(args[0])

	open, _ := cmd.Flags().GetBool("open")
	if open {
		ui.OpenPostInBrowser(*post)
		return
	}

	sortFlag, _ := cmd.Flags().GetString("sort")
	sort := comments.Sort(sortFlag)

	tree := loadThread(post.Path, sort)

	var b strings.Builder

	b.WriteString(color.New(color.Bold).Sprint(post.Title))
	if post.IsPinned {
		b.WriteString(" 📌")
	}
	if post.IsLocked {
		b.WriteString(" 🔒")
		if post.LockedReason != "" {
			b.WriteString(" " + post.LockedReason)
		}
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf(
		"▲%d · %s · %s · %s\n",
		post.Score,
		post.Community.Name,
		post.User.Username,
		format.Time(post.CreatedAt),
	))

	if post.Content != "" {
		md, err := term.GetMarkdown(post.Content)
		if err != nil {
			md = post.Content
		}
		b.WriteString(md)
	}

	for _, media := range post.MediaDisplay {
		b.WriteString(fmt.Sprintf("[%s] %s\n", media.MediaType, media.MediaUrl))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("💬 %d comments\n", post.CommentCount))
	b.WriteString(renderThread(tree))

	term.PageOutput(b.String())
}

// loadThread fetches the comment stream into the post's thread tree,
// following the cursor up to a page cap.
func loadThread(postPath string, sort comments.Sort) *comments.Tree {
	tree := comments.ForPost(postPath, sort)
	key := stream.PostCommentsKey(postPath, string(sort))

	term.StartSpinner("")
	s := stream.PostComments.Query(key)
	for i := 1; i < maxThreadPages && s.HasMore(); i++ {
		s.FetchNextPage()
	}
	term.StopSpinner()

	if apiErr := s.Err(); apiErr != nil {
		term.OutputApiError(apiErr, "Error loading comments")
	}

	tree.AddPage(s.Items())
	return tree
}

// renderThread renders the comment tree with nesting preserved.
func renderThread(tree *comments.Tree) string {
	root := treeprint.New()
	root.SetValue(".")

	var addReplies func(branch treeprint.Tree, id string)
	addReplies = func(branch treeprint.Tree, id string) {
		for _, replyId := range tree.Replies(id) {
			node := tree.Get(replyId)
			if node == nil {
				continue
			}
			child := branch.AddBranch(renderCommentNode(node))
			addReplies(child, replyId)
		}
	}

	for _, rootId := range tree.Roots() {
		node := tree.Get(rootId)
		if node == nil {
			continue
		}
		branch := root.AddBranch(renderCommentNode(node))
		addReplies(branch, rootId)
	}

	return root.String()
}

func renderCommentNode(node *comments.Node) string {
	content := node.Content
	if node.IsDeleted {
		content = "[deleted]"
	}

	meta := fmt.Sprintf("%s ▲%d · %s · %s",
		color.New(color.Bold).Sprint(node.User.Username),
		node.Score,
		format.Time(node.CreatedAt),
		color.New(term.ColorHiCyan).Sprint(node.Id),
	)

	if vote := node.UserVote; vote == shared.VoteUp {
		meta += " ⬆"
	} else if vote == shared.VoteDown {
		meta += " ⬇"
	}

	return meta + "\n" + content
}
