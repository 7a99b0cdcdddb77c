package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"onuze-cli/api"
	"onuze-cli/auth"
	"onuze-cli/shared"
	"onuze-cli/stream"
	"onuze-cli/term"
	"onuze-cli/types"
	"onuze-cli/ui"
	"onuze-cli/url"
	"onuze-cli/utils"
)

var submitCmd = &cobra.Command{
	Use:   "submit [community]",
	Short: "Submit a new post to a community",
	Args:  cobra.MaximumNArgs(1),
	Run:   submit,
}

func init() {
	RootCmd.AddCommand(submitCmd)

	submitCmd.Flags().String("title", "", "Post title")
	submitCmd.Flags().String("content", "", "Post body (markdown)")
	submitCmd.Flags().String("link", "", "Link to submit; the page title prefills the post title")
	submitCmd.Flags().String("image", "", "Path of an image to upload and attach")
	submitCmd.Flags().Bool("nsfw", false, "Mark the post NSFW")
	submitCmd.Flags().Bool("spoiler", false, "Mark the post a spoiler")
}

func submit(cmd *cobra.Command, args []string) {
	auth.MustResolveAuth()

	var communityPath string
	if len(args) > 0 {
		communityPath = utils.CommunityPathFromArg(args[0])
	} else {
		communityPath = selectCommunity()
	}

	title, _ := cmd.Flags().GetString("title")
	content, _ := cmd.Flags().GetString("content")
	link, _ := cmd.Flags().GetString("link")
	imagePath, _ := cmd.Flags().GetString("image")
	nsfw, _ := cmd.Flags().GetBool("nsfw")
	spoiler, _ := cmd.Flags().GetBool("spoiler")

	if link != "" {
		if !url.IsValidURL(link) {
			term.OutputErrorAndExit("Invalid URL: %s", link)
		}

		if title == "" {
			term.StartSpinner("")
			fetched, err := url.FetchTitle(link)
			term.StopSpinner()

			if err == nil && fetched != "" {
				title = fetched
			}
		}

		if content == "" {
			content = link
		} else {
			content = link + "\n\n" + content
		}
	}

	if title == "" {
		var err error
		title, err = term.GetRequiredUserStringInput("Title:")
		if err != nil {
			term.OutputErrorAndExit("Error reading title: %v", err)
		}
	}

	if content == "" && imagePath == "" {
		var err error
		content, err = term.GetUserStringInput("Body (optional):")
		if err != nil {
			term.OutputErrorAndExit("Error reading body: %v", err)
		}
	}

	var mediaUrls []string
	if imagePath != "" {
		mediaUrls = append(mediaUrls, uploadImage(imagePath))
	}

	term.StartSpinner("")
	post, apiErr := api.Client.CreatePost(communityPath, shared.CreatePostRequest{
		Title:     title,
		Content:   content,
		MediaUrls: mediaUrls,
		IsNsfw:    nsfw,
		IsSpoiler: spoiler,
	})
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiError(apiErr, "Error submitting post")
	}

	fmt.Println("✅ Submitted", color.New(color.Bold, term.ColorHiGreen).Sprint(post.Title))
	fmt.Println(ui.PostURL(*post))
}

// selectCommunity prompts with the communities list when none was given.
func selectCommunity() string {
	term.StartSpinner("")
	s := stream.Communities.Query(stream.CommunitiesKey())
	term.StopSpinner()

	if apiErr := s.Err(); apiErr != nil {
		term.OutputApiError(apiErr, "Error loading communities")
	}

	communities := s.Items()
	if len(communities) == 0 {
		term.OutputErrorAndExit("No communities found")
	}

	var options []string
	byName := map[string]string{}
	for _, c := range communities {
		options = append(options, c.Name)
		byName[c.Name] = c.Path
	}

	selected, err := term.SelectFromList("Post to which community?", options)
	if err != nil {
		term.OutputErrorAndExit("Error selecting community: %v", err)
	}

	return byName[selected]
}

func uploadImage(path string) string {
	file, err := os.Open(path)
	if err != nil {
		term.OutputErrorAndExit("Error opening image: %v", err)
	}
	defer file.Close()

	term.StartSpinner("📤 Uploading image")
	res, apiErr := api.Client.UploadImage(file, filepath.Base(path), types.UploadKindPost)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiError(apiErr, "Error uploading image")
	}

	return res.Url
}
