package cmd

import (
	"log"

	"onuze-cli/api"
	"onuze-cli/auth"
	"onuze-cli/shared"
	"onuze-cli/term"
	"onuze-cli/utils"
)

// resolveAuthSilent loads stored credentials without requiring them.
// Browsing works anonymously; mutations check auth themselves.
func resolveAuthSilent() {
	if err := auth.Bootstrap(); err != nil {
		log.Println("error resolving auth:", err)
	}
}

func mustGetPost(arg string) *shared.Post {
	path := utils.PostPathFromArg(arg)

	term.StartSpinner("")
	post, apiErr := api.Client.GetPost(path)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiError(apiErr, "Error loading post")
	}

	return post
}

func mustGetCommunity(arg string) *shared.Community {
	path := utils.CommunityPathFromArg(arg)

	term.StartSpinner("")
	community, apiErr := api.Client.GetCommunity(path)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiError(apiErr, "Error loading community")
	}

	return community
}
