package actions

import (
	"onuze-cli/api"
	"onuze-cli/comments"
	"onuze-cli/shared"
	"onuze-cli/stream"
)

// VotePost applies the optimistic vote projection to the given post and to
// every cached feed copy, then issues the request. On failure the snapshot
// is restored. Voting is keyed by post path.
func VotePost(post *shared.Post, dir shared.VoteDirection) *shared.ApiError {
	if currentUserId() == "" {
		return &shared.ApiError{Type: shared.ApiErrorTypeUnauthorized, Msg: "sign in to vote"}
	}

	gateKey := "post:" + post.Path
	if !beginMutation(gateKey) {
		return ErrMutationInFlight
	}
	defer endMutation(gateKey)

	prevScore := post.Score
	prevVote := post.UserVote

	delta, next := shared.ProjectVote(post.UserVote, dir)
	newScore := post.Score + delta

	post.Score = newScore
	post.UserVote = next
	stream.Posts.UpdateItem(post.Path, func(p *shared.Post) {
		p.Score = newScore
		p.UserVote = next
	})

	var apiErr *shared.ApiError
	if dir == shared.VoteUp {
		apiErr = api.Client.UpvotePost(post.Path)
	} else {
		apiErr = api.Client.DownvotePost(post.Path)
	}

	if apiErr != nil {
		post.Score = prevScore
		post.UserVote = prevVote
		stream.Posts.UpdateItem(post.Path, func(p *shared.Post) {
			p.Score = prevScore
			p.UserVote = prevVote
		})
		return apiErr
	}

	return nil
}

// VoteComment applies the same projection to one comment node, keyed by
// comment id. UI state on other nodes is untouched.
func VoteComment(tree *comments.Tree, id string, dir shared.VoteDirection) *shared.ApiError {
	if currentUserId() == "" {
		return &shared.ApiError{Type: shared.ApiErrorTypeUnauthorized, Msg: "sign in to vote"}
	}

	gateKey := "comment:" + id
	if !beginMutation(gateKey) {
		return ErrMutationInFlight
	}
	defer endMutation(gateKey)

	prevScore, prevVote, err := tree.Vote(id, dir)
	if err != nil {
		return &shared.ApiError{Type: shared.ApiErrorTypeOther, Msg: err.Error()}
	}

	var apiErr *shared.ApiError
	if dir == shared.VoteUp {
		apiErr = api.Client.UpvoteComment(id)
	} else {
		apiErr = api.Client.DownvoteComment(id)
	}

	if apiErr != nil {
		tree.RestoreVote(id, prevScore, prevVote)
		return apiErr
	}

	return nil
}
