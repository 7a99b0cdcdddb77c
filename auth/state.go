package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"onuze-cli/fs"
	"onuze-cli/shared"
)

type AuthState string

const (
	AuthStateUnknown       AuthState = "unknown"
	AuthStateLoading       AuthState = "loading"
	AuthStateAuthenticated AuthState = "authenticated"
	AuthStateAnonymous     AuthState = "anonymous"
)

// Current is the process-wide identity cell. Only this package writes it;
// everything else reads it or subscribes to transitions.
var Current *shared.ClientAuth

var state = AuthStateUnknown

var mu sync.Mutex
var subscribers = map[int]func(AuthState){}
var nextSubId int

func State() AuthState {
	mu.Lock()
	defer mu.Unlock()
	return state
}

// Subscribe registers fn for auth state transitions and returns an
// unsubscribe func. fn is called outside the lock.
func Subscribe(fn func(AuthState)) func() {
	mu.Lock()
	id := nextSubId
	nextSubId++
	subscribers[id] = fn
	mu.Unlock()

	return func() {
		mu.Lock()
		delete(subscribers, id)
		mu.Unlock()
	}
}

func setState(next AuthState) {
	mu.Lock()
	if state == next {
		mu.Unlock()
		return
	}
	state = next
	var fns []func(AuthState)
	for _, fn := range subscribers {
		fns = append(fns, fn)
	}
	mu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
}

func loadAuth() (*shared.ClientAuth, error) {
	bytes, err := os.ReadFile(fs.HomeAuthPath)

	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading auth.json: %v", err)
	}

	var auth shared.ClientAuth
	err = json.Unmarshal(bytes, &auth)
	if err != nil {
		return nil, fmt.Errorf("error unmarshalling auth.json: %v", err)
	}

	return &auth, nil
}

func writeCurrentAuth() error {
	if Current == nil {
		return fmt.Errorf("error writing auth: auth not loaded")
	}

	bytes, err := json.Marshal(Current)
	if err != nil {
		return fmt.Errorf("error marshalling auth: %v", err)
	}

	err = os.WriteFile(fs.HomeAuthPath, bytes, 0600)
	if err != nil {
		return fmt.Errorf("error writing auth: %v", err)
	}

	return nil
}

func clearAuth() error {
	Current = nil
	err := os.Remove(fs.HomeAuthPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error removing auth.json: %v", err)
	}
	return nil
}
