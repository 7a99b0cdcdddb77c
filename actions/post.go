package actions

import (
	"onuze-cli/api"
	"onuze-cli/comments"
	"onuze-cli/shared"
	"onuze-cli/stream"
)

// EditPost submits new content and merges the server's copy back into the
// passed post and the feed caches.
func EditPost(post *shared.Post, req shared.UpdatePostRequest) *shared.ApiError {
	gateKey := "post:" + post.Path
	if !beginMutation(gateKey) {
		return ErrMutationInFlight
	}
	defer endMutation(gateKey)

	updated, apiErr := api.Client.UpdatePost(post.Path, req)
	if apiErr != nil {
		return apiErr
	}

	*post = *updated
	stream.Posts.UpdateItem(post.Path, func(p *shared.Post) {
		*p = *updated
	})

	return nil
}

// DeletePost removes the post from every cached feed, drops its comment
// tree, and issues the delete. On failure the feed entries are restored.
func DeletePost(post *shared.Post) *shared.ApiError {
	gateKey := "post:" + post.Path
	if !beginMutation(gateKey) {
		return ErrMutationInFlight
	}
	defer endMutation(gateKey)

	restore := stream.Posts.RemoveItem(post.Path)

	if apiErr := api.Client.DeletePost(post.Path); apiErr != nil {
		restore()
		return apiErr
	}

	comments.Drop(post.Path)
	return nil
}
