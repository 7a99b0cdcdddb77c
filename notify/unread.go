package notify

import (
	"log"
	"sync"
	"time"

	"onuze-cli/shared"
	"onuze-cli/types"
)

// Unread count coordinator. Push deltas adjust the count immediately for
// latency, then a short debounce triggers an authoritative refetch so a
// push racing the server's own persistence can't leave the badge wrong.

const refetchDebounce = 750 * time.Millisecond

var apiClient types.ApiClient

// SetApiClient resolves the notify -> api circular dependency. Called from
// main.
func SetApiClient(client types.ApiClient) {
	apiClient = client
}

var unreadMu sync.Mutex
var unreadCount int
var refetchTimer *time.Timer
var unreadSubscribers = map[int]func(int){}
var unreadNextId int

func UnreadCount() int {
	unreadMu.Lock()
	defer unreadMu.Unlock()
	return unreadCount
}

// SubscribeUnread registers fn for unread-count changes and returns an
// unsubscribe func.
func SubscribeUnread(fn func(int)) func() {
	unreadMu.Lock()
	id := unreadNextId
	unreadNextId++
	unreadSubscribers[id] = fn
	unreadMu.Unlock()

	return func() {
		unreadMu.Lock()
		delete(unreadSubscribers, id)
		unreadMu.Unlock()
	}
}

func setUnread(count int) {
	if count < 0 {
		count = 0
	}

	unreadMu.Lock()
	if unreadCount == count {
		unreadMu.Unlock()
		return
	}
	unreadCount = count
	fns := make([]func(int), 0, len(unreadSubscribers))
	for _, fn := range unreadSubscribers {
		fns = append(fns, fn)
	}
	unreadMu.Unlock()

	for _, fn := range fns {
		fn(count)
	}
}

func bumpUnread() {
	setUnread(UnreadCount() + 1)
	scheduleRefetch()
}

func dropUnread(n int) {
	setUnread(UnreadCount() - n)
}

func resetUnread() {
	setUnread(0)
}

// scheduleRefetch debounces the authoritative count fetch.
func scheduleRefetch() {
	unreadMu.Lock()
	defer unreadMu.Unlock()

	if apiClient == nil {
		return
	}

	if refetchTimer != nil {
		refetchTimer.Stop()
	}
	refetchTimer = time.AfterFunc(refetchDebounce, func() {
		RefreshUnread()
	})
}

// RefreshUnread fetches the server's unread count and adopts it.
func RefreshUnread() {
	if apiClient == nil {
		return
	}

	count, apiErr := apiClient.GetUnreadCount()
	if apiErr != nil {
		log.Printf("notify: error fetching unread count: %v\n", apiErr.Msg)
		return
	}
	setUnread(count)
}

// MarkRead marks one notification read over HTTP and publishes the delta.
func MarkRead(id string) *shared.ApiError {
	if apiClient == nil {
		return &shared.ApiError{Type: shared.ApiErrorTypeOther, Msg: "api client not set"}
	}

	if apiErr := apiClient.MarkNotificationRead(id); apiErr != nil {
		return apiErr
	}

	dropUnread(1)
	Publish(Event{Kind: EventRead, Id: id})
	return nil
}

// MarkAllRead marks everything read over HTTP and publishes the delta.
func MarkAllRead() *shared.ApiError {
	if apiClient == nil {
		return &shared.ApiError{Type: shared.ApiErrorTypeOther, Msg: "api client not set"}
	}

	if apiErr := apiClient.MarkAllNotificationsRead(); apiErr != nil {
		return apiErr
	}

	resetUnread()
	Publish(Event{Kind: EventReadAll})
	return nil
}
