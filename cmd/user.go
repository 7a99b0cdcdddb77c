package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"onuze-cli/api"
	"onuze-cli/format"
	"onuze-cli/stream"
	"onuze-cli/term"
)

var userCmd = &cobra.Command{
	Use:   "user [username]",
	Short: "View a user profile",
	Args:  cobra.ExactArgs(1),
	Run:   showUser,
}

func init() {
	RootCmd.AddCommand(userCmd)

	userCmd.Flags().Bool("comments", false, "Show the user's recent comments instead of posts")
}

func showUser(cmd *cobra.Command, args []string) {
	resolveAuthSilent()

	username := args[0]

	term.StartSpinner("")
	user, apiErr := api.Client.GetUser(username)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiError(apiErr, "Error loading user")
	}

	fmt.Println(color.New(color.Bold, term.ColorHiCyan).Sprint(user.Username))
	fmt.Printf("%d karma · joined %s\n", user.Karma, format.Time(user.CreatedAt))
	if user.Bio != "" {
		fmt.Println()
		fmt.Println(user.Bio)
	}
	fmt.Println()

	showComments, _ := cmd.Flags().GetBool("comments")

	if showComments {
		term.StartSpinner("")
		s := stream.UserComments.Query(stream.UserCommentsKey(username))
		term.StopSpinner()

		if apiErr := s.Err(); apiErr != nil {
			term.OutputApiError(apiErr, "Error loading comments")
		}

		items := s.Items()
		if len(items) == 0 {
			fmt.Println("🤷‍♂️ No comments yet")
			return
		}

		color.New(color.Bold).Println("Recent comments")
		for _, c := range items {
			fmt.Printf("▲%d · %s\n%s\n\n", c.Score, format.Time(c.CreatedAt), c.Content)
		}
		return
	}

	term.StartSpinner("")
	s := stream.Posts.Query(stream.UserPostsKey(username))
	term.StopSpinner()

	if apiErr := s.Err(); apiErr != nil {
		term.OutputApiError(apiErr, "Error loading posts")
	}

	posts := s.Items()
	if len(posts) == 0 {
		fmt.Println("🤷‍♂️ No posts yet")
		return
	}

	color.New(color.Bold).Println("Recent posts")
	for _, p := range posts {
		fmt.Printf("▲%d · %s · %s · %s\n", p.Score, p.Title, p.Community.Name, format.Time(p.CreatedAt))
	}
}
