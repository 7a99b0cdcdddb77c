package actions

import (
	"sync"

	"onuze-cli/shared"
)

// Reentry policy: one in-flight mutation per entity. A second action on the
// same entity while one is outstanding is rejected rather than queued, so a
// double-keyed vote can't interleave projections.
var ErrMutationInFlight = &shared.ApiError{
	Type: shared.ApiErrorTypeConflict,
	Msg:  "another action on this item is still in progress",
}

var gateMu sync.Mutex
var inflight = map[string]bool{}

func beginMutation(key string) bool {
	gateMu.Lock()
	defer gateMu.Unlock()

	if inflight[key] {
		return false
	}
	inflight[key] = true
	return true
}

func endMutation(key string) {
	gateMu.Lock()
	defer gateMu.Unlock()
	delete(inflight, key)
}
