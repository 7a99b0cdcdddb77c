package stream

import (
	"fmt"
	"net/url"

	"onuze-cli/api"
	"onuze-cli/shared"
)

// Process-wide stream caches, one per record type. All paginated listings
// in the client go through these.
var (
	Posts         = NewCache[shared.Post](api.GetPage[shared.Post])
	PostComments  = NewCache[shared.Comment](api.GetPage[shared.Comment])
	UserComments  = NewCache[shared.Comment](api.GetPage[shared.Comment])
	Notifications = NewCache[shared.Notification](api.GetPage[shared.Notification])
	Communities   = NewCache[shared.Community](api.GetPage[shared.Community])
	Members       = NewCache[shared.User](api.GetPage[shared.User])
	Banned        = NewCache[shared.BannedUser](api.GetPage[shared.BannedUser])
	BanAppeals    = NewCache[shared.BanAppeal](api.GetPage[shared.BanAppeal])
	Reports       = NewCache[shared.Report](api.GetPage[shared.Report])
	Search        = NewCache[shared.SearchResult](api.GetPage[shared.SearchResult])
)

// PostsKey builds the key for a post feed. sort and timeRange map directly
// to backend params; communityPath scopes the feed to one community.
// The backend accepts `t` for the time range.
func PostsKey(sort, timeRange, communityPath string) Key {
	params := url.Values{}
	params.Set("sort", sort)
	params.Set("t", timeRange)
	params.Set("community", communityPath)
	return NewKey("/posts/", params)
}

func PostCommentsKey(postPath, sort string) Key {
	params := url.Values{}
	params.Set("sort", sort)
	return NewKey(fmt.Sprintf("/posts/%s/comments/", url.PathEscape(postPath)), params)
}

func UserCommentsKey(username string) Key {
	return NewKey(fmt.Sprintf("/users/%s/comments/", url.PathEscape(username)), nil)
}

func UserPostsKey(username string) Key {
	params := url.Values{}
	params.Set("user", username)
	return NewKey("/posts/", params)
}

func NotificationsKey() Key {
	return NewKey("/notifications/", nil)
}

func CommunitiesKey() Key {
	return NewKey("/communities/", nil)
}

func PopularCommunitiesKey() Key {
	return NewKey("/communities/popular/", nil)
}

func MembersKey(communityPath string) Key {
	return NewKey(fmt.Sprintf("/communities/%s/members/", url.PathEscape(communityPath)), nil)
}

func BannedKey(communityPath string) Key {
	return NewKey(fmt.Sprintf("/communities/%s/banned/", url.PathEscape(communityPath)), nil)
}

func BanAppealsKey(communityPath string) Key {
	params := url.Values{}
	params.Set("community", communityPath)
	params.Set("status", string(shared.BanAppealPending))
	return NewKey("/moderation/ban-appeals/", params)
}

func ReportsKey(communityPath string) Key {
	params := url.Values{}
	params.Set("community", communityPath)
	params.Set("status", string(shared.ReportPending))
	return NewKey("/moderation/reports/", params)
}

func SearchKey(query, searchType, sort string) Key {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", searchType)
	params.Set("sort", sort)
	return NewKey("/search/", params)
}
