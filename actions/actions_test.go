package actions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onuze-cli/api"
	"onuze-cli/auth"
	"onuze-cli/comments"
	"onuze-cli/shared"
	"onuze-cli/types"
)

// fakeClient overrides only the calls a test needs. Anything else panics on
// the embedded nil interface, which is what we want in a test.
type fakeClient struct {
	types.ApiClient

	upvotePost   func(path string) *shared.ApiError
	downvotePost func(path string) *shared.ApiError

	upvoteComment func(id string) *shared.ApiError

	createComment func(req shared.CreateCommentRequest) (*shared.Comment, *shared.ApiError)
	deletePost    func(path string) *shared.ApiError

	joinCommunity  func(path string) *shared.ApiError
	leaveCommunity func(path string) *shared.ApiError

	lockPost   func(path string, req shared.LockPostRequest) *shared.ApiError
	unlockPost func(path string) *shared.ApiError
	pinPost    func(path string) *shared.ApiError
	unpinPost  func(path string) *shared.ApiError

	banUser          func(path string, req shared.BanUserRequest) *shared.ApiError
	unbanUser        func(path string, req shared.UnbanUserRequest) *shared.ApiError
	approveBanAppeal func(id string) *shared.ApiError
	rejectBanAppeal  func(id string) *shared.ApiError
}

func (f *fakeClient) UpvotePost(path string) *shared.ApiError   { return f.upvotePost(path) }
func (f *fakeClient) DownvotePost(path string) *shared.ApiError { return f.downvotePost(path) }
func (f *fakeClient) UpvoteComment(id string) *shared.ApiError  { return f.upvoteComment(id) }
func (f *fakeClient) DeletePost(path string) *shared.ApiError   { return f.deletePost(path) }

func (f *fakeClient) CreateComment(req shared.CreateCommentRequest) (*shared.Comment, *shared.ApiError) {
	return f.createComment(req)
}

func (f *fakeClient) JoinCommunity(path string) *shared.ApiError  { return f.joinCommunity(path) }
func (f *fakeClient) LeaveCommunity(path string) *shared.ApiError { return f.leaveCommunity(path) }

func withFakeClient(t *testing.T, fake *fakeClient) {
	t.Helper()
	prev := api.Client
	api.Client = fake
	t.Cleanup(func() { api.Client = prev })
}

func signIn(t *testing.T, userId string) {
	t.Helper()
	prev := auth.Current
	auth.Current = &shared.ClientAuth{User: shared.User{Id: userId, Username: "tester"}}
	t.Cleanup(func() { auth.Current = prev })
}

func signOut(t *testing.T) {
	t.Helper()
	prev := auth.Current
	auth.Current = nil
	t.Cleanup(func() { auth.Current = prev })
}

func testPost(path string) *shared.Post {
	return &shared.Post{
		Id:    "id-" + path,
		Path:  path,
		Title: "a post",
		Score: 10,
	}
}

func TestVotePostOptimistic(t *testing.T) {
	signIn(t, "u1")

	var upvotes, downvotes int
	withFakeClient(t, &fakeClient{
		upvotePost:   func(string) *shared.ApiError { upvotes++; return nil },
		downvotePost: func(string) *shared.ApiError { downvotes++; return nil },
	})

	post := testPost("vote-post")

	require.Nil(t, VotePost(post, shared.VoteUp))
	assert.Equal(t, 11, post.Score)
	assert.Equal(t, shared.VoteUp, post.UserVote)

	// same direction again cancels
	require.Nil(t, VotePost(post, shared.VoteUp))
	assert.Equal(t, 10, post.Score)
	assert.Equal(t, shared.VoteNone, post.UserVote)

	// up then down flips by two
	require.Nil(t, VotePost(post, shared.VoteUp))
	require.Nil(t, VotePost(post, shared.VoteDown))
	assert.Equal(t, 9, post.Score)
	assert.Equal(t, shared.VoteDown, post.UserVote)

	assert.Equal(t, 2, upvotes)
	assert.Equal(t, 1, downvotes)
}

func TestVotePostRollbackOnFailure(t *testing.T) {
	signIn(t, "u1")

	withFakeClient(t, &fakeClient{
		upvotePost: func(string) *shared.ApiError {
			return &shared.ApiError{Type: shared.ApiErrorTypeServer, Status: 500, Msg: "boom"}
		},
	})

	post := testPost("failing-post")

	apiErr := VotePost(post, shared.VoteUp)
	require.NotNil(t, apiErr)
	assert.Equal(t, shared.ApiErrorTypeServer, apiErr.Type)
	assert.Equal(t, 10, post.Score, "score restored after failure")
	assert.Equal(t, shared.VoteNone, post.UserVote)
}

func TestVotePostRequiresAuth(t *testing.T) {
	signOut(t)

	post := testPost("anon-post")
	apiErr := VotePost(post, shared.VoteUp)
	require.NotNil(t, apiErr)
	assert.Equal(t, shared.ApiErrorTypeUnauthorized, apiErr.Type)
	assert.Equal(t, 10, post.Score)
}

// A second action on the same entity while one is in flight is rejected,
// not queued.
func TestVotePostSecondActionRejected(t *testing.T) {
	signIn(t, "u1")

	started := make(chan struct{})
	release := make(chan struct{})
	withFakeClient(t, &fakeClient{
		upvotePost: func(string) *shared.ApiError {
			close(started)
			<-release
			return nil
		},
	})

	post := testPost("gated-post")

	done := make(chan *shared.ApiError)
	go func() {
		done <- VotePost(post, shared.VoteUp)
	}()
	<-started

	second := testPost("gated-post")
	apiErr := VotePost(second, shared.VoteUp)
	require.NotNil(t, apiErr)
	assert.Same(t, ErrMutationInFlight, apiErr)
	assert.Equal(t, 10, second.Score, "rejected action must not project")

	close(release)
	require.Nil(t, <-done)
}

func TestVoteCommentRollbackOnFailure(t *testing.T) {
	signIn(t, "u1")

	withFakeClient(t, &fakeClient{
		upvoteComment: func(string) *shared.ApiError {
			return &shared.ApiError{Type: shared.ApiErrorTypeNetwork, Msg: "offline"}
		},
	})

	tree := comments.NewTree("some-post", comments.SortNew)
	tree.AddPage([]shared.Comment{{
		Id:        "c1",
		Content:   "hi",
		Score:     3,
		CreatedAt: time.Now(),
	}})

	apiErr := VoteComment(tree, "c1", shared.VoteUp)
	require.NotNil(t, apiErr)
	assert.Equal(t, 3, tree.Get("c1").Score)
	assert.Equal(t, shared.VoteNone, tree.Get("c1").UserVote)
}

func TestSubmitReplyConfirms(t *testing.T) {
	signIn(t, "u1")

	withFakeClient(t, &fakeClient{
		createComment: func(req shared.CreateCommentRequest) (*shared.Comment, *shared.ApiError) {
			return &shared.Comment{
				Id:        "server-id",
				Content:   req.Content,
				Parent:    req.Parent,
				CreatedAt: time.Now(),
			}, nil
		},
	})

	tree := comments.NewTree("some-post", comments.SortNew)
	tree.AddPage([]shared.Comment{{Id: "parent", Content: "root", CreatedAt: time.Now()}})

	post := testPost("reply-post")
	parentId := "parent"

	require.Nil(t, SubmitReply(tree, post, &parentId, "hello"))

	assert.Equal(t, []string{"server-id"}, tree.Replies("parent"), "placeholder swapped for server comment")
	assert.Equal(t, 1, post.CommentCount)
}

func TestSubmitReplyFailureRemovesPlaceholder(t *testing.T) {
	signIn(t, "u1")

	withFakeClient(t, &fakeClient{
		createComment: func(shared.CreateCommentRequest) (*shared.Comment, *shared.ApiError) {
			return nil, &shared.ApiError{Type: shared.ApiErrorTypeValidation, Status: 400, Msg: "too long"}
		},
	})

	tree := comments.NewTree("some-post", comments.SortNew)
	tree.AddPage([]shared.Comment{{Id: "parent", Content: "root", CreatedAt: time.Now()}})

	post := testPost("reply-post")
	parentId := "parent"

	apiErr := SubmitReply(tree, post, &parentId, "hello")
	require.NotNil(t, apiErr)

	assert.Empty(t, tree.Replies("parent"), "placeholder removed on failure")
	assert.Equal(t, "too long", tree.Get("parent").ReplyError)
	assert.Equal(t, 0, post.CommentCount)
}

func TestSubmitReplyRejectedOnLockedPost(t *testing.T) {
	signIn(t, "u1")

	tree := comments.NewTree("some-post", comments.SortNew)
	post := testPost("locked-post")
	post.IsLocked = true

	apiErr := SubmitReply(tree, post, nil, "hello")
	require.NotNil(t, apiErr)
	assert.Equal(t, shared.ApiErrorTypeConflict, apiErr.Type)
	assert.Equal(t, 0, tree.Len())
}

func TestJoinLeaveCommunity(t *testing.T) {
	signIn(t, "u1")

	withFakeClient(t, &fakeClient{
		joinCommunity:  func(string) *shared.ApiError { return nil },
		leaveCommunity: func(string) *shared.ApiError { return nil },
	})

	community := &shared.Community{Id: "c1", Path: "gophers", MemberCount: 5}

	require.Nil(t, JoinCommunity(community))
	assert.True(t, community.IsMember)
	assert.Equal(t, 6, community.MemberCount)

	require.Nil(t, LeaveCommunity(community))
	assert.False(t, community.IsMember)
	assert.Equal(t, 5, community.MemberCount)
}

func TestLeaveCommunityFloorsCountAtZero(t *testing.T) {
	signIn(t, "u1")

	withFakeClient(t, &fakeClient{
		leaveCommunity: func(string) *shared.ApiError { return nil },
	})

	community := &shared.Community{Id: "c1", Path: "empty", IsMember: true, MemberCount: 0}

	require.Nil(t, LeaveCommunity(community))
	assert.Equal(t, 0, community.MemberCount)
}

func TestJoinCommunityRollbackOnFailure(t *testing.T) {
	signIn(t, "u1")

	withFakeClient(t, &fakeClient{
		joinCommunity: func(string) *shared.ApiError {
			return &shared.ApiError{Type: shared.ApiErrorTypeServer, Status: 500, Msg: "boom"}
		},
	})

	community := &shared.Community{Id: "c1", Path: "gophers", MemberCount: 5}

	require.NotNil(t, JoinCommunity(community))
	assert.False(t, community.IsMember)
	assert.Equal(t, 5, community.MemberCount)
}

func TestDeletePostRestoresOnFailure(t *testing.T) {
	signIn(t, "u1")

	withFakeClient(t, &fakeClient{
		deletePost: func(string) *shared.ApiError {
			return &shared.ApiError{Type: shared.ApiErrorTypeServer, Status: 500, Msg: "boom"}
		},
	})

	post := testPost("doomed-post")
	require.NotNil(t, DeletePost(post))
}

func TestAuthzChecks(t *testing.T) {
	signIn(t, "u1")

	mine := shared.Post{User: shared.User{Id: "u1"}}
	theirs := shared.Post{User: shared.User{Id: "u2"}}

	assert.True(t, CanEditPost(mine))
	assert.False(t, CanEditPost(theirs))

	modded := shared.Community{
		Moderators: []shared.Moderator{{UserId: "u1"}},
	}
	theirs.Community = modded
	assert.True(t, CanDeletePost(theirs), "moderators can delete other users' posts")

	locked := shared.Post{IsLocked: true}
	assert.False(t, ReplyAllowed(locked))
	assert.False(t, CommentEditAllowed(locked, shared.Comment{User: shared.User{Id: "u1"}}))
	assert.True(t, CommentEditAllowed(mine, shared.Comment{User: shared.User{Id: "u1"}}))
}
