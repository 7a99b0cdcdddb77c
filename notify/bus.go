package notify

import (
	"log"
	"sync"

	"onuze-cli/shared"
)

type EventKind string

const (
	EventCreated EventKind = "created"
	EventRead    EventKind = "read"
	EventReadAll EventKind = "read_all"
)

// Event is one notification delta on the in-process bus. Both HTTP-side
// mutations and push frames land here, so every subscriber sees one logical
// stream regardless of origin.
type Event struct {
	Kind         EventKind
	Id           string
	Notification *shared.Notification
}

var busMu sync.Mutex
var busSubscribers = map[int]func(Event){}
var busNextId int

// SubscribeEvents registers fn for notification deltas and returns an
// unsubscribe func.
func SubscribeEvents(fn func(Event)) func() {
	busMu.Lock()
	id := busNextId
	busNextId++
	busSubscribers[id] = fn
	busMu.Unlock()

	return func() {
		busMu.Lock()
		delete(busSubscribers, id)
		busMu.Unlock()
	}
}

// Publish delivers the event to every subscriber. Fire-and-forget:
// consumers refetch or adjust their own state.
func Publish(event Event) {
	busMu.Lock()
	fns := make([]func(Event), 0, len(busSubscribers))
	for _, fn := range busSubscribers {
		fns = append(fns, fn)
	}
	busMu.Unlock()

	for _, fn := range fns {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("notify: bus subscriber panic: %v\n", r)
				}
			}()
			fn(event)
		}()
	}
}

// handleInbound translates push frames into bus events and unread-count
// updates.
func handleInbound(msg shared.WsMessage) {
	switch msg.Type {
	case shared.WsMessageNewNotification:
		bumpUnread()
		Publish(Event{Kind: EventCreated, Notification: msg.Notification})
	case shared.WsMessageNotificationRead:
		dropUnread(1)
		Publish(Event{Kind: EventRead, Id: msg.Id})
	case shared.WsMessageNotificationReadAll:
		resetUnread()
		Publish(Event{Kind: EventReadAll})
	}
}
