package actions

import (
	"onuze-cli/auth"
	"onuze-cli/shared"
)

// Client-side authorization checks. These only gate which actions are
// offered; the server remains authoritative and its errors are surfaced
// verbatim.

func currentUserId() string {
	if auth.Current == nil {
		return ""
	}
	return auth.Current.User.Id
}

func IsOwner(ownerId string) bool {
	id := currentUserId()
	return id != "" && id == ownerId
}

func CanModerate(community shared.Community) bool {
	id := currentUserId()
	return id != "" && community.IsModerator(id)
}

func CanEditPost(post shared.Post) bool {
	return IsOwner(post.User.Id)
}

func CanDeletePost(post shared.Post) bool {
	return IsOwner(post.User.Id) || CanModerate(post.Community)
}

func CanEditComment(c shared.Comment) bool {
	return IsOwner(c.User.Id)
}

func CanDeleteComment(c shared.Comment, community shared.Community) bool {
	return IsOwner(c.User.Id) || CanModerate(community)
}

// ReplyAllowed reports whether new comments and replies are offered on a
// post. A locked post disables reply and edit affordances down the whole
// rendered tree; voting stays enabled.
func ReplyAllowed(post shared.Post) bool {
	return !post.IsLocked
}

// CommentEditAllowed combines lock state with ownership.
func CommentEditAllowed(post shared.Post, c shared.Comment) bool {
	return !post.IsLocked && CanEditComment(c)
}
