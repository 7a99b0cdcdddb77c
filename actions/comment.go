package actions

import (
	"time"

	"github.com/google/uuid"

	"onuze-cli/api"
	"onuze-cli/auth"
	"onuze-cli/comments"
	"onuze-cli/shared"
	"onuze-cli/stream"
)

// SubmitReply inserts an optimistic placeholder under parentId (or as a new
// root when parentId is nil), issues the create, then swaps in the server's
// comment. On failure the placeholder is removed and the error lands on the
// parent node's reply form.
func SubmitReply(tree *comments.Tree, post *shared.Post, parentId *string, content string) *shared.ApiError {
	if currentUserId() == "" {
		return &shared.ApiError{Type: shared.ApiErrorTypeUnauthorized, Msg: "sign in to comment"}
	}
	if !ReplyAllowed(*post) {
		return &shared.ApiError{Type: shared.ApiErrorTypeConflict, Msg: "this post is locked"}
	}

	tempId := "pending-" + uuid.NewString()
	placeholder := shared.Comment{
		Id:        tempId,
		Content:   content,
		User:      auth.Current.User,
		CreatedAt: time.Now(),
		Parent:    parentId,
		Post:      post.Id,
	}

	if parentId != nil {
		tree.SetSubmittingReply(*parentId, true)
		if err := tree.InsertReply(*parentId, placeholder); err != nil {
			return &shared.ApiError{Type: shared.ApiErrorTypeOther, Msg: err.Error()}
		}
	} else {
		if err := tree.InsertRoot(placeholder); err != nil {
			return &shared.ApiError{Type: shared.ApiErrorTypeOther, Msg: err.Error()}
		}
	}

	created, apiErr := api.Client.CreateComment(shared.CreateCommentRequest{
		Post:    post.Path,
		Parent:  parentId,
		Content: content,
	})

	if apiErr != nil {
		tree.Delete(tempId)
		if parentId != nil {
			tree.SetReplyError(*parentId, apiErr.Msg)
		}
		return apiErr
	}

	tree.ReplaceId(tempId, *created)
	if parentId != nil {
		tree.SetSubmittingReply(*parentId, false)
		tree.ShowReplyForm(*parentId, false)
	}

	post.CommentCount++
	stream.Posts.UpdateItem(post.Path, func(p *shared.Post) {
		p.CommentCount++
	})

	return nil
}

// EditComment applies the new content optimistically, then reconciles with
// the server. A failure restores the old content and surfaces the error on
// the node.
func EditComment(tree *comments.Tree, id, content string) *shared.ApiError {
	gateKey := "comment:" + id
	if !beginMutation(gateKey) {
		return ErrMutationInFlight
	}
	defer endMutation(gateKey)

	prevContent, err := tree.Edit(id, content)
	if err != nil {
		return &shared.ApiError{Type: shared.ApiErrorTypeOther, Msg: err.Error()}
	}

	if _, apiErr := api.Client.UpdateComment(id, shared.UpdateCommentRequest{Content: content}); apiErr != nil {
		tree.RestoreEdit(id, prevContent, apiErr.Msg)
		return apiErr
	}

	return nil
}

// DeleteComment removes the node and its replies, then issues the delete.
// The comment count on the post is left to the next refetch.
func DeleteComment(tree *comments.Tree, id string) *shared.ApiError {
	gateKey := "comment:" + id
	if !beginMutation(gateKey) {
		return ErrMutationInFlight
	}
	defer endMutation(gateKey)

	if apiErr := api.Client.DeleteComment(id); apiErr != nil {
		return apiErr
	}

	if err := tree.Delete(id); err != nil {
		return &shared.ApiError{Type: shared.ApiErrorTypeOther, Msg: err.Error()}
	}

	return nil
}
