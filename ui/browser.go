package ui

import (
	"fmt"
	"os"

	"github.com/pkg/browser"

	"onuze-cli/shared"
)

func webHost() string {
	if host := os.Getenv("ONUZE_WEB_HOST"); host != "" {
		return host
	}
	if os.Getenv("ONUZE_ENV") == "development" {
		return "http://localhost:3000"
	}
	return "https://onuze.com"
}

// PostURL is the canonical web URL for a post.
func PostURL(post shared.Post) string {
	return fmt.Sprintf("%s/c/%s/post/%s", webHost(), post.Community.Path, post.Path)
}

func CommunityURL(community shared.Community) string {
	return fmt.Sprintf("%s/c/%s", webHost(), community.Path)
}

// OpenPostInBrowser opens the post in the system browser. Failure is
// non-fatal; the URL is printed either way so it can be opened manually.
func OpenPostInBrowser(post shared.Post) {
	OpenURL(PostURL(post))
}

func OpenURL(url string) {
	if err := browser.OpenURL(url); err != nil {
		fmt.Printf("Failed to open URL automatically: %v\n", err)
		fmt.Printf("Open it manually in your browser:\n%s\n", url)
	}
}
