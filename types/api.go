package types

import (
	"io"

	"onuze-cli/shared"
)

type UploadKind string

const (
	UploadKindCommunity UploadKind = "community"
	UploadKindPost      UploadKind = "post"
	UploadKindAvatar    UploadKind = "avatar"
)

// ApiClient is implemented by the api package. Packages that the api package
// itself depends on (auth, notify) receive it by injection from main to
// avoid circular imports.
type ApiClient interface {
	WhoAmI() (*shared.User, *shared.ApiError)
	CreateToken(req shared.SignInRequest) (*shared.SignInResponse, *shared.ApiError)
	ResendActivation(req shared.ResendActivationRequest) *shared.ApiError
	ConfirmPasswordReset(uid, token string, req shared.ResetPasswordConfirmRequest) *shared.ApiError

	GetCommunity(path string) (*shared.Community, *shared.ApiError)
	CreateCommunity(req shared.CreateCommunityRequest) (*shared.Community, *shared.ApiError)
	UpdateCommunity(path string, req shared.UpdateCommunityRequest) (*shared.Community, *shared.ApiError)
	JoinCommunity(path string) *shared.ApiError
	LeaveCommunity(path string) *shared.ApiError
	ListRules(communityPath string) ([]shared.Rule, *shared.ApiError)
	CreateRule(communityPath string, req shared.CreateRuleRequest) (*shared.Rule, *shared.ApiError)
	UpdateRule(communityPath, ruleId string, req shared.CreateRuleRequest) (*shared.Rule, *shared.ApiError)
	DeleteRule(communityPath, ruleId string) *shared.ApiError
	ListModerators(communityPath string) ([]shared.Moderator, *shared.ApiError)
	AddModerator(communityPath string, req shared.AddModeratorRequest) *shared.ApiError
	RemoveModerator(communityPath, userId string) *shared.ApiError
	ListFlairs(communityPath string) ([]shared.Flair, *shared.ApiError)
	BanUser(communityPath string, req shared.BanUserRequest) *shared.ApiError
	UnbanUser(communityPath string, req shared.UnbanUserRequest) *shared.ApiError

	GetPost(path string) (*shared.Post, *shared.ApiError)
	CreatePost(communityName string, req shared.CreatePostRequest) (*shared.Post, *shared.ApiError)
	UpdatePost(path string, req shared.UpdatePostRequest) (*shared.Post, *shared.ApiError)
	DeletePost(path string) *shared.ApiError
	UpvotePost(path string) *shared.ApiError
	DownvotePost(path string) *shared.ApiError
	LockPost(path string, req shared.LockPostRequest) *shared.ApiError
	UnlockPost(path string) *shared.ApiError
	PinPost(path string) *shared.ApiError
	UnpinPost(path string) *shared.ApiError

	CreateComment(req shared.CreateCommentRequest) (*shared.Comment, *shared.ApiError)
	UpdateComment(id string, req shared.UpdateCommentRequest) (*shared.Comment, *shared.ApiError)
	DeleteComment(id string) *shared.ApiError
	UpvoteComment(id string) *shared.ApiError
	DownvoteComment(id string) *shared.ApiError

	CreateBanAppeal(communityPath string, req shared.CreateBanAppealRequest) (*shared.BanAppeal, *shared.ApiError)
	ApproveBanAppeal(id string) *shared.ApiError
	RejectBanAppeal(id string) *shared.ApiError
	ResolveReport(id string, req shared.ResolveReportRequest) *shared.ApiError
	RejectReport(id string) *shared.ApiError

	GetUnreadCount() (int, *shared.ApiError)
	MarkNotificationRead(id string) *shared.ApiError
	MarkAllNotificationsRead() *shared.ApiError

	GetUser(username string) (*shared.User, *shared.ApiError)
	GetLatestVersion() (*shared.VersionResponse, *shared.ApiError)

	UploadImage(file io.Reader, filename string, kind UploadKind) (*shared.UploadResponse, *shared.ApiError)
}
