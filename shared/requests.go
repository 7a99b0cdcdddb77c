package shared

type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SignInResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

type ResendActivationRequest struct {
	Email string `json:"email"`
}

type ResetPasswordConfirmRequest struct {
	NewPassword string `json:"new_password"`
}

type CreatePostRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content,omitempty"`
	MediaUrls []string `json:"media_urls,omitempty"`
	FlairId   string   `json:"flair_id,omitempty"`
	IsNsfw    bool     `json:"is_nsfw,omitempty"`
	IsSpoiler bool     `json:"is_spoiler,omitempty"`
}

type UpdatePostRequest struct {
	Title     *string `json:"title,omitempty"`
	Content   *string `json:"content,omitempty"`
	IsNsfw    *bool   `json:"is_nsfw,omitempty"`
	IsSpoiler *bool   `json:"is_spoiler,omitempty"`
}

type LockPostRequest struct {
	Reason string `json:"reason,omitempty"`
}

type CreateCommentRequest struct {
	Post    string  `json:"post"`
	Parent  *string `json:"parent,omitempty"`
	Content string  `json:"content"`
}

type UpdateCommentRequest struct {
	Content string `json:"content"`
}

type CreateCommunityRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	IsPrivate    bool   `json:"is_private,omitempty"`
	IsRestricted bool   `json:"is_restricted,omitempty"`
}

type UpdateCommunityRequest struct {
	Description  *string `json:"description,omitempty"`
	IconImage    *string `json:"icon_image,omitempty"`
	BannerImage  *string `json:"banner_image,omitempty"`
	IsPrivate    *bool   `json:"is_private,omitempty"`
	IsRestricted *bool   `json:"is_restricted,omitempty"`
}

type CreateRuleRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order,omitempty"`
}

type AddModeratorRequest struct {
	Username    string   `json:"username"`
	Permissions []string `json:"permissions,omitempty"`
}

type BanUserRequest struct {
	Username     string `json:"username"`
	Reason       string `json:"reason"`
	DurationDays int    `json:"duration_days,omitempty"`
}

type UnbanUserRequest struct {
	Username string `json:"username"`
}

type CreateBanAppealRequest struct {
	Content string `json:"content"`
}

type ResolveReportRequest struct {
	Note string `json:"note,omitempty"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}

type UploadResponse struct {
	Url string `json:"url"`
}

type VersionResponse struct {
	LatestVersion string `json:"latest_version"`
	DownloadUrl   string `json:"download_url"`
}
