package notify

import (
	"context"
	"log"
	"math/rand"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"onuze-cli/auth"
	"onuze-cli/shared"
)

const sendBufferSize = 8

const initialReconnectDelay = 1 * time.Second
const maxReconnectDelay = 30 * time.Second

const wsHandshakeTimeout = 5 * time.Second
const writeTimeout = 5 * time.Second
const readTimeout = 60 * time.Second
const pingInterval = 30 * time.Second

// Listener receives every inbound frame and every connection-status
// transition.
type Listener func(msg shared.WsMessage)

// Channel maintains the single long-lived websocket connection to the
// notification endpoint. One connection exists per authenticated identity;
// on identity change the channel is torn down and, if still authenticated,
// reopened.
type Channel struct {
	mu sync.Mutex

	endpoint func() string

	ctx     context.Context
	cancel  context.CancelFunc
	send    chan shared.WsMessage
	running bool

	listeners   map[int]Listener
	nextLisId   int
	initialized bool
}

func NewChannel(endpoint func() string) *Channel {
	return &Channel{
		endpoint:  endpoint,
		listeners: map[int]Listener{},
	}
}

// Default is the process-wide channel; its endpoint is wired from main to
// avoid an import cycle with the api package.
var Default = NewChannel(nil)

func SetEndpoint(endpoint func() string) {
	Default.mu.Lock()
	Default.endpoint = endpoint
	Default.mu.Unlock()
}

// Initialize is idempotent: it ties the channel lifecycle to the auth
// state, connecting when an identity appears and disconnecting when it
// goes away.
func (c *Channel) Initialize() {
	c.mu.Lock()
	if c.initialized {
		c.mu.Unlock()
		return
	}
	c.initialized = true
	c.mu.Unlock()

	auth.Subscribe(func(state auth.AuthState) {
		c.Disconnect()
		if state == auth.AuthStateAuthenticated {
			c.Connect()
		}
	})

	if auth.State() == auth.AuthStateAuthenticated {
		c.Connect()
	}
}

// Connect opens the channel. It is a no-op while a connection loop is
// already running.
func (c *Channel) Connect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return
	}

	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.send = make(chan shared.WsMessage, sendBufferSize)
	c.running = true

	go c.run(c.ctx, c.send)
}

// Disconnect closes the channel and stops reconnecting.
func (c *Channel) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return
	}
	c.cancel()
	c.running = false
}

// AddListener registers fn and returns a remove func. A panicking listener
// must not affect delivery to the others.
func (c *Channel) AddListener(fn Listener) func() {
	c.mu.Lock()
	id := c.nextLisId
	c.nextLisId++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// MarkAsRead asks the server to mark one notification read.
func (c *Channel) MarkAsRead(id string) {
	c.enqueue(shared.WsMessage{Type: shared.WsMessageMarkRead, Id: id})
}

// MarkAllAsRead asks the server to mark everything read.
func (c *Channel) MarkAllAsRead() {
	c.enqueue(shared.WsMessage{Type: shared.WsMessageMarkAllRead})
}

func (c *Channel) enqueue(msg shared.WsMessage) {
	c.mu.Lock()
	send := c.send
	running := c.running
	c.mu.Unlock()

	if !running {
		return
	}

	select {
	case send <- msg:
	default:
		log.Println("notify: send buffer full, dropping outbound message")
	}
}

func (c *Channel) deliver(msg shared.WsMessage) {
	c.mu.Lock()
	fns := make([]Listener, 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("notify: listener panic: %v\n", r)
				}
			}()
			fn(msg)
		}()
	}
}

func (c *Channel) connectUrl() (string, bool) {
	c.mu.Lock()
	endpoint := c.endpoint
	c.mu.Unlock()

	if endpoint == nil {
		return "", false
	}

	base := endpoint()
	if auth.Current == nil || auth.Current.Token == "" {
		return base, true
	}

	// the token rides along in the handshake
	params := url.Values{}
	params.Set("token", auth.Current.Token)
	return base + "?" + params.Encode(), true
}

// run is the connection loop: dial, pump, and on unexpected close retry
// with exponential backoff and jitter. A successful open resets the
// backoff.
func (c *Channel) run(ctx context.Context, send chan shared.WsMessage) {
	delay := initialReconnectDelay

	for {
		connectUrl, ok := c.connectUrl()
		if !ok {
			log.Println("notify: no endpoint configured")
			return
		}

		dialer := &websocket.Dialer{HandshakeTimeout: wsHandshakeTimeout}
		ws, _, err := dialer.DialContext(ctx, connectUrl, nil)
		if err != nil {
			log.Printf("notify: connect error: %v\n", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(withJitter(delay)):
				delay = nextDelay(delay)
				continue
			}
		}

		delay = initialReconnectDelay
		c.deliver(shared.WsMessage{Type: shared.WsMessageConnectionStatus, Status: shared.WsStatusConnected})

		c.pump(ctx, ws, send)

		c.deliver(shared.WsMessage{Type: shared.WsMessageConnectionStatus, Status: shared.WsStatusDisconnected})

		select {
		case <-ctx.Done():
			return
		case <-time.After(withJitter(delay)):
			delay = nextDelay(delay)
		}
	}
}

// pump runs the send and receive sides of one connection and returns when
// either fails or the context ends.
func (c *Channel) pump(ctx context.Context, ws *websocket.Conn, send chan shared.WsMessage) {
	defer ws.Close()

	pumpCtx, pumpCancel := context.WithCancel(ctx)
	defer pumpCancel()

	// closing the conn is the only way to unblock a pending read, so a
	// Disconnect must not wait out the read deadline
	go func() {
		<-pumpCtx.Done()
		ws.Close()
	}()

	go func() {
		defer pumpCancel()

		for {
			select {
			case <-pumpCtx.Done():
				return
			case msg := <-send:
				ws.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := ws.WriteJSON(msg); err != nil {
					log.Printf("notify: write error: %v\n", err)
					return
				}
			case <-time.After(pingInterval):
				ws.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	for {
		select {
		case <-pumpCtx.Done():
			return
		default:
		}

		ws.SetReadDeadline(time.Now().Add(readTimeout))
		var msg shared.WsMessage
		if err := ws.ReadJSON(&msg); err != nil {
			log.Printf("notify: read error: %v\n", err)
			return
		}

		// a frame that raced the teardown belongs to the old identity and
		// must not reach listeners or the unread count
		select {
		case <-pumpCtx.Done():
			return
		default:
		}

		c.deliver(msg)
		handleInbound(msg)
	}
}

func nextDelay(cur time.Duration) time.Duration {
	next := cur * 2
	if next > maxReconnectDelay {
		next = maxReconnectDelay
	}
	return next
}

func withJitter(d time.Duration) time.Duration {
	// +/- 20%
	jitter := time.Duration(rand.Int63n(int64(d) / 5))
	if rand.Intn(2) == 0 {
		return d - jitter
	}
	return d + jitter
}
