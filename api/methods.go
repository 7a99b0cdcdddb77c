package api

import (
	"fmt"
	"net/http"
	"net/url"

	"onuze-cli/shared"
)

func (a *Api) WhoAmI() (*shared.User, *shared.ApiError) {
	return getJson[shared.User]("/auth/users/me/", reqOptions{})
}

func (a *Api) CreateToken(req shared.SignInRequest) (*shared.SignInResponse, *shared.ApiError) {
	return getJson[shared.SignInResponse]("/auth/jwt/create/", reqOptions{method: http.MethodPost, body: req, unauthed: true})
}

func (a *Api) ResendActivation(req shared.ResendActivationRequest) *shared.ApiError {
	_, apiErr := apiRequest("/auth/users/resend_activation/", reqOptions{method: http.MethodPost, body: req, unauthed: true})
	return apiErr
}

func (a *Api) ConfirmPasswordReset(uid, token string, req shared.ResetPasswordConfirmRequest) *shared.ApiError {
	path := fmt.Sprintf("/users/password/reset/confirm/%s/%s/", uid, token)
	_, apiErr := apiRequest(path, reqOptions{method: http.MethodPost, body: req, unauthed: true})
	return apiErr
}

func (a *Api) GetCommunity(path string) (*shared.Community, *shared.ApiError) {
	return getJson[shared.Community](fmt.Sprintf("/communities/%s/", url.PathEscape(path)), reqOptions{})
}

func (a *Api) CreateCommunity(req shared.CreateCommunityRequest) (*shared.Community, *shared.ApiError) {
	return getJson[shared.Community]("/communities/", reqOptions{method: http.MethodPost, body: req})
}

func (a *Api) UpdateCommunity(path string, req shared.UpdateCommunityRequest) (*shared.Community, *shared.ApiError) {
	return getJson[shared.Community](fmt.Sprintf("/communities/%s/", url.PathEscape(path)), reqOptions{method: http.MethodPatch, body: req})
}

func (a *Api) JoinCommunity(path string) *shared.ApiError {
	_, apiErr := apiRequest(fmt.Sprintf("/communities/%s/membership/", url.PathEscape(path)), reqOptions{method: http.MethodPost})
	return apiErr
}

func (a *Api) LeaveCommunity(path string) *shared.ApiError {
	_, apiErr := apiRequest(fmt.Sprintf("/communities/%s/membership/", url.PathEscape(path)), reqOptions{method: http.MethodDelete})
	return apiErr
}

func (a *Api) ListRules(communityPath string) ([]shared.Rule, *shared.ApiError) {
	rules, apiErr := getJson[[]shared.Rule](fmt.Sprintf("/communities/%s/rules/", url.PathEscape(communityPath)), reqOptions{})
	if apiErr != nil {
		return nil, apiErr
	}
	return *rules, nil
}

func (a *Api) CreateRule(communityPath string, req shared.CreateRuleRequest) (*shared.Rule, *shared.ApiError) {
	return getJson[shared.Rule](fmt.Sprintf("/communities/%s/rules/", url.PathEscape(communityPath)), reqOptions{method: http.MethodPost, body: req})
}

func (a *Api) UpdateRule(communityPath, ruleId string, req shared.CreateRuleRequest) (*shared.Rule, *shared.ApiError) {
	return getJson[shared.Rule](fmt.Sprintf("/communities/%s/rules/%s/", url.PathEscape(communityPath), ruleId), reqOptions{method: http.MethodPatch, body: req})
}

func (a *Api) DeleteRule(communityPath, ruleId string) *shared.ApiError {
	_, apiErr := apiRequest(fmt.Sprintf("/communities/%s/rules/%s/", url.PathEscape(communityPath), ruleId), reqOptions{method: http.MethodDelete})
	return apiErr
}

func (a *Api) ListModerators(communityPath string) ([]shared.Moderator, *shared.ApiError) {
	mods, apiErr := getJson[[]shared.Moderator](fmt.Sprintf("/communities/%s/moderators/", url.PathEscape(communityPath)), reqOptions{})
	if apiErr != nil {
		return nil, apiErr
	}
	return *mods, nil
}

func (a *Api) AddModerator(communityPath string, req shared.AddModeratorRequest) *shared.ApiError {
	_, apiErr := apiRequest(fmt.Sprintf("/communities/%s/moderators/", url.PathEscape(communityPath)), reqOptions{method: http.MethodPost, body: req})
	return apiErr
}

func (a *Api) RemoveModerator(communityPath, userId string) *shared.ApiError {
	_, apiErr := apiRequest(fmt.Sprintf("/communities/%s/moderators/%s/", url.PathEscape(communityPath), userId), reqOptions{method: http.MethodDelete})
	return apiErr
}

func (a *Api) ListFlairs(communityPath string) ([]shared.Flair, *shared.ApiError) {
	flairs, apiErr := getJson[[]shared.Flair](fmt.Sprintf("/communities/%s/flairs/", url.PathEscape(communityPath)), reqOptions{})
	if apiErr != nil {
		return nil, apiErr
	}
	return *flairs, nil
}

func (a *Api) BanUser(communityPath string, req shared.BanUserRequest) *shared.ApiError {
	_, apiErr := apiRequest(fmt.Sprintf("/communities/%s/ban/", url.PathEscape(communityPath)), reqOptions{method: http.MethodPost, body: req})
	return apiErr
}

func (a *Api) UnbanUser(communityPath string, req shared.UnbanUserRequest) *shared.ApiError {
	_, apiErr := apiRequest(fmt.Sprintf("/communities/%s/unban/", url.PathEscape(communityPath)), reqOptions{method: http.MethodPost, body: req})
	return apiErr
}

func (a *Api) GetPost(path string) (*shared.Post, *shared.ApiError) {
	return getJson[shared.Post](fmt.Sprintf("/posts/%s", url.PathEscape(path)), reqOptions{})
}

func (a *Api) CreatePost(communityName string, req shared.CreatePostRequest) (*shared.Post, *shared.ApiError) {
	return getJson[shared.Post](fmt.Sprintf("/communities/%s/posts/", url.PathEscape(communityName)), reqOptions{method: http.MethodPost, body: req})
}

func (a *Api) UpdatePost(path string, req shared.UpdatePostRequest) (*shared.Post, *shared.ApiError) {
	return getJson[shared.Post](fmt.Sprintf("/posts/%s", url.PathEscape(path)), reqOptions{method: http.MethodPatch, body: req})
}

func (a *Api) DeletePost(path string) *shared.ApiError {
	_, apiErr := apiRequest(fmt.Sprintf("/posts/%s", url.PathEscape(path)), reqOptions{method: http.MethodDelete})
	return apiErr
}

func (a *Api) UpvotePost(path string) *shared.ApiError {
	_, apiErr := apiRequest(fmt.Sprintf("/posts/%s/upvote", url.PathEscape(path)), reqOptions{method: http.MethodPost})
	return apiErr
}

func (a *Api) DownvotePost(path string) *shared.ApiError {
	_, apiErr := apiRequest(fmt.Sprintf("/posts/%s/downvote", url.PathEscape(path)), reqOptions{method: http.MethodPost})
	return apiErr
}

func (a *Api) LockPost(path string, req shared.LockPostRequest) *shared.ApiError {
	_, apiErr := apiRequest(fmt.Sprintf("/posts/%s/lock", url.PathEscape(path)), reqOptions{method: http.MethodPost, body: req})
	return apiErr
}

func (a *Api) UnlockPost(path string) *shared.ApiError {
	_, apiErr := apiRequest(fmt.Sprintf("/posts/%s/unlock", url.PathEscape(path)), reqOptions{method: http.MethodPost})
	return apiErr
}

func (a *Api) PinPost(path string) *shared.ApiError {
	_, apiErr := apiRequest(fmt.Sprintf("/posts/%s/pin", url.PathEscape(path)), reqOptions{method: http.MethodPost})
	return apiErr
}

func (a *Api) UnpinPost(path string) *shared.ApiError {
	_, apiErr := apiRequest(fmt.Sprintf("/posts/%s/unpin", url.PathEscape(path)), reqOptions{method: http.MethodPost})
	return apiErr
}

func (a *Api) CreateComment(req shared.CreateCommentRequest) (*shared.Comment, *shared.ApiError) {
	return getJson[shared.Comment]("/comments/", reqOptions{method: http.MethodPost, body: req})
}

func (a *Api) UpdateComment(id string, req shared.UpdateCommentRequest) (*shared.Comment, *shared.ApiError) {
	return getJson[shared.Comment](fmt.Sprintf("/comments/%s/", id), reqOptions{method: http.MethodPatch, body: req})
}

func (a *Api) DeleteComment(id string) *shared.ApiError {
	_, apiErr := apiRequest(fmt.Sprintf("/comments/%s/", id), reqOptions{method: http.MethodDelete})
	return apiErr
}

func (a *Api) UpvoteComment(id string) *shared.ApiError {
	_, apiErr := apiRequest(fmt.Sprintf("/comments/%s/upvote", id), reqOptions{method: http.MethodPost})
	return apiErr
}

func (a *Api) DownvoteComment(id string) *shared.ApiError {
	_, apiErr := apiRequest(fmt.Sprintf("/comments/%s/downvote", id), reqOptions{method: http.MethodPost})
	return apiErr
}

func (a *Api) CreateBanAppeal(communityPath string, req shared.CreateBanAppealRequest) (*shared.BanAppeal, *shared.ApiError) {
	return getJson[shared.BanAppeal](fmt.Sprintf("/moderation/ban-appeals/?community=%s", url.QueryEscape(communityPath)), reqOptions{method: http.MethodPost, body: req})
}

func (a *Api) ApproveBanAppeal(id string) *shared.ApiError {
	_, apiErr := apiRequest(fmt.Sprintf("/moderation/ban-appeals/%s/approve", id), reqOptions{method: http.MethodPost})
	return apiErr
}

func (a *Api) RejectBanAppeal(id string) *shared.ApiError {
	_, apiErr := apiRequest(fmt.Sprintf("/moderation/ban-appeals/%s/reject", id), reqOptions{method: http.MethodPost})
	return apiErr
}

func (a *Api) ResolveReport(id string, req shared.ResolveReportRequest) *shared.ApiError {
	_, apiErr := apiRequest(fmt.Sprintf("/moderation/reports/%s/resolve", id), reqOptions{method: http.MethodPost, body: req})
	return apiErr
}

func (a *Api) RejectReport(id string) *shared.ApiError {
	_, apiErr := apiRequest(fmt.Sprintf("/moderation/reports/%s/reject", id), reqOptions{method: http.MethodPost})
	return apiErr
}

func (a *Api) GetUnreadCount() (int, *shared.ApiError) {
	resp, apiErr := getJson[shared.UnreadCountResponse]("/notifications/unread-count", reqOptions{})
	if apiErr != nil {
		return 0, apiErr
	}
	return resp.Count, nil
}

func (a *Api) MarkNotificationRead(id string) *shared.ApiError {
	_, apiErr := apiRequest(fmt.Sprintf("/notifications/%s/read", id), reqOptions{method: http.MethodPost})
	return apiErr
}

func (a *Api) MarkAllNotificationsRead() *shared.ApiError {
	_, apiErr := apiRequest("/notifications/read-all", reqOptions{method: http.MethodPost})
	return apiErr
}

func (a *Api) GetUser(username string) (*shared.User, *shared.ApiError) {
	return getJson[shared.User](fmt.Sprintf("/users/%s/", url.PathEscape(username)), reqOptions{})
}

func (a *Api) GetLatestVersion() (*shared.VersionResponse, *shared.ApiError) {
	return getJson[shared.VersionResponse]("/version/", reqOptions{unauthed: true})
}
