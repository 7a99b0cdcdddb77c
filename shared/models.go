package shared

import "time"

type VoteDirection string

const (
	VoteNone VoteDirection = ""
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

type User struct {
	Id        string    `json:"id"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar,omitempty"`
	Karma     int       `json:"karma,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (u User) ItemId() string { return u.Id }

type Moderator struct {
	UserId      string   `json:"user_id"`
	Username    string   `json:"username"`
	Permissions []string `json:"permissions"`
}

type Community struct {
	Id           string      `json:"id"`
	Name         string      `json:"name"`
	Path         string      `json:"path"`
	Description  string      `json:"description,omitempty"`
	IconImage    string      `json:"icon_image,omitempty"`
	BannerImage  string      `json:"banner_image,omitempty"`
	MemberCount  int         `json:"member_count"`
	IsMember     bool        `json:"is_member"`
	IsPrivate    bool        `json:"is_private"`
	IsRestricted bool        `json:"is_restricted"`
	Verified     bool        `json:"verified,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	Moderators   []Moderator `json:"moderators,omitempty"`
}

func (c Community) ItemId() string { return c.Id }

// IsModerator reports whether userId moderates this community. The server
// remains authoritative; this only gates which actions are offered.
func (c Community) IsModerator(userId string) bool {
	for _, mod := range c.Moderators {
		if mod.UserId == userId {
			return true
		}
	}
	return false
}

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
	MediaTypeOther MediaType = "other"
)

type Media struct {
	Id           string    `json:"id"`
	MediaType    MediaType `json:"media_type"`
	MediaUrl     string    `json:"media_url"`
	ThumbnailUrl string    `json:"thumbnail_url,omitempty"`
}

type Post struct {
	Id           string        `json:"id"`
	Path         string        `json:"path"`
	Title        string        `json:"title"`
	Content      string        `json:"content,omitempty"`
	MediaDisplay []Media       `json:"media_display,omitempty"`
	Community    Community     `json:"community"`
	User         User          `json:"user"`
	CreatedAt    time.Time     `json:"created_at"`
	Score        int           `json:"score"`
	UserVote     VoteDirection `json:"user_vote"`
	CommentCount int           `json:"comment_count"`
	IsPinned     bool          `json:"is_pinned"`
	IsLocked     bool          `json:"is_locked"`
	LockedReason string        `json:"locked_reason,omitempty"`
	IsNsfw       bool          `json:"is_nsfw"`
	IsSpoiler    bool          `json:"is_spoiler"`
}

// ItemId keys posts by path rather than id. Path is the stable URL-safe
// identifier and the one canonical key for votes and cache entries.
func (p Post) ItemId() string { return p.Path }

type Comment struct {
	Id        string        `json:"id"`
	Content   string        `json:"content"`
	User      User          `json:"user"`
	CreatedAt time.Time     `json:"created_at"`
	Score     int           `json:"score"`
	UserVote  VoteDirection `json:"user_vote"`
	Parent    *string       `json:"parent"`
	Post      string        `json:"post"`
	IsDeleted bool          `json:"is_deleted,omitempty"`
}

func (c Comment) ItemId() string { return c.Id }

type Notification struct {
	Id        string    `json:"id"`
	Kind      string    `json:"notification_type"`
	Message   string    `json:"message"`
	Link      string    `json:"link,omitempty"`
	Sender    *User     `json:"sender,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func (n Notification) ItemId() string { return n.Id }

type Rule struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order"`
}

type Flair struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type BannedUser struct {
	Id          string     `json:"id"`
	User        User       `json:"user"`
	Reason      string     `json:"reason"`
	BannedBy    User       `json:"banned_by"`
	BannedAt    time.Time  `json:"banned_at"`
	BannedUntil *time.Time `json:"banned_until,omitempty"`
}

func (b BannedUser) ItemId() string { return b.Id }

type BanAppealStatus string

const (
	BanAppealPending  BanAppealStatus = "pending"
	BanAppealApproved BanAppealStatus = "approved"
	BanAppealRejected BanAppealStatus = "rejected"
)

type BanAppeal struct {
	Id        string          `json:"id"`
	User      User            `json:"user"`
	Community string          `json:"community"`
	Content   string          `json:"content"`
	Status    BanAppealStatus `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

func (a BanAppeal) ItemId() string { return a.Id }

type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportResolved ReportStatus = "resolved"
	ReportRejected ReportStatus = "rejected"
)

type Report struct {
	Id         string       `json:"id"`
	Reason     string       `json:"reason"`
	ReportedBy User         `json:"reported_by"`
	Post       *Post        `json:"post,omitempty"`
	Comment    *Comment     `json:"comment,omitempty"`
	Status     ReportStatus `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
}

func (r Report) ItemId() string { return r.Id }

type SearchResult struct {
	Id        string     `json:"id"`
	Type      string     `json:"type"`
	Post      *Post      `json:"post,omitempty"`
	Community *Community `json:"community,omitempty"`
	User      *User      `json:"user,omitempty"`
}

func (s SearchResult) ItemId() string { return s.Id }
