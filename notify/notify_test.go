package notify

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onuze-cli/shared"
	"onuze-cli/types"
)

type fakeNotifyClient struct {
	types.ApiClient

	unreadCount int
	markRead    []string
	markAllRead int
}

func (f *fakeNotifyClient) GetUnreadCount() (int, *shared.ApiError) {
	return f.unreadCount, nil
}

func (f *fakeNotifyClient) MarkNotificationRead(id string) *shared.ApiError {
	f.markRead = append(f.markRead, id)
	return nil
}

func (f *fakeNotifyClient) MarkAllNotificationsRead() *shared.ApiError {
	f.markAllRead++
	return nil
}

func resetForTest(t *testing.T, client types.ApiClient) {
	t.Helper()
	SetApiClient(client)
	setUnread(0)
	t.Cleanup(func() {
		SetApiClient(nil)
		setUnread(0)
	})
}

func TestBusDelivery(t *testing.T) {
	var got []Event
	unsubscribe := SubscribeEvents(func(e Event) {
		got = append(got, e)
	})

	Publish(Event{Kind: EventRead, Id: "n1"})

	require.Len(t, got, 1)
	assert.Equal(t, EventRead, got[0].Kind)
	assert.Equal(t, "n1", got[0].Id)

	unsubscribe()
	Publish(Event{Kind: EventReadAll})
	assert.Len(t, got, 1, "unsubscribed consumer must not receive events")
}

// One panicking subscriber must not affect delivery to the others.
func TestBusPanicIsolation(t *testing.T) {
	defer SubscribeEvents(func(Event) {
		panic("bad subscriber")
	})()

	delivered := false
	defer SubscribeEvents(func(Event) {
		delivered = true
	})()

	Publish(Event{Kind: EventReadAll})
	assert.True(t, delivered)
}

func TestInboundFramesAdjustUnread(t *testing.T) {
	resetForTest(t, nil)

	handleInbound(shared.WsMessage{Type: shared.WsMessageNewNotification})
	handleInbound(shared.WsMessage{Type: shared.WsMessageNewNotification})
	assert.Equal(t, 2, UnreadCount())

	handleInbound(shared.WsMessage{Type: shared.WsMessageNotificationRead, Id: "n1"})
	assert.Equal(t, 1, UnreadCount())

	handleInbound(shared.WsMessage{Type: shared.WsMessageNotificationReadAll})
	assert.Equal(t, 0, UnreadCount())

	// the count never goes negative
	handleInbound(shared.WsMessage{Type: shared.WsMessageNotificationRead, Id: "n2"})
	assert.Equal(t, 0, UnreadCount())
}

func TestInboundFramesPublish(t *testing.T) {
	resetForTest(t, nil)

	var got []Event
	defer SubscribeEvents(func(e Event) {
		got = append(got, e)
	})()

	notification := &shared.Notification{Id: "n1", Message: "hi"}
	handleInbound(shared.WsMessage{Type: shared.WsMessageNewNotification, Notification: notification})
	handleInbound(shared.WsMessage{Type: shared.WsMessageNotificationRead, Id: "n1"})

	require.Len(t, got, 2)
	assert.Equal(t, EventCreated, got[0].Kind)
	assert.Same(t, notification, got[0].Notification)
	assert.Equal(t, EventRead, got[1].Kind)
	assert.Equal(t, "n1", got[1].Id)
}

func TestSubscribeUnread(t *testing.T) {
	resetForTest(t, nil)

	var counts []int
	unsubscribe := SubscribeUnread(func(n int) {
		counts = append(counts, n)
	})

	bumpUnread()
	bumpUnread()
	resetUnread()

	assert.Equal(t, []int{1, 2, 0}, counts)

	unsubscribe()
	bumpUnread()
	assert.Equal(t, []int{1, 2, 0}, counts)
}

func TestMarkRead(t *testing.T) {
	client := &fakeNotifyClient{}
	resetForTest(t, client)
	setUnread(3)

	var got []Event
	defer SubscribeEvents(func(e Event) {
		got = append(got, e)
	})()

	require.Nil(t, MarkRead("n1"))

	assert.Equal(t, []string{"n1"}, client.markRead)
	assert.Equal(t, 2, UnreadCount())
	require.Len(t, got, 1)
	assert.Equal(t, EventRead, got[0].Kind)
}

func TestMarkAllRead(t *testing.T) {
	client := &fakeNotifyClient{}
	resetForTest(t, client)
	setUnread(5)

	require.Nil(t, MarkAllRead())

	assert.Equal(t, 1, client.markAllRead)
	assert.Equal(t, 0, UnreadCount())
}

func TestRefreshUnreadAdoptsServerCount(t *testing.T) {
	client := &fakeNotifyClient{unreadCount: 7}
	resetForTest(t, client)
	setUnread(2)

	RefreshUnread()
	assert.Equal(t, 7, UnreadCount())
}

var upgrader = websocket.Upgrader{}

func wsEndpoint(server *httptest.Server) func() string {
	return func() string {
		return "ws" + strings.TrimPrefix(server.URL, "http")
	}
}

func TestChannelDeliversFrames(t *testing.T) {
	frames := make(chan shared.WsMessage, 8)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer ws.Close()

		require.NoError(t, ws.WriteJSON(shared.WsMessage{
			Type:         shared.WsMessageNewNotification,
			Notification: &shared.Notification{Id: "n1", Message: "new reply"},
		}))

		// hold the connection open until the client goes away
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer server.Close()

	channel := NewChannel(wsEndpoint(server))
	defer channel.AddListener(func(msg shared.WsMessage) {
		frames <- msg
	})()

	channel.Connect()
	defer channel.Disconnect()

	var got []shared.WsMessage
	timeout := time.After(5 * time.Second)
	for len(got) < 2 {
		select {
		case msg := <-frames:
			got = append(got, msg)
		case <-timeout:
			t.Fatalf("timed out waiting for frames, got %v", got)
		}
	}

	assert.Equal(t, shared.WsMessageConnectionStatus, got[0].Type)
	assert.Equal(t, shared.WsStatusConnected, got[0].Status)
	assert.Equal(t, shared.WsMessageNewNotification, got[1].Type)
	require.NotNil(t, got[1].Notification)
	assert.Equal(t, "n1", got[1].Notification.Id)
}

func TestChannelSendsOutbound(t *testing.T) {
	outbound := make(chan shared.WsMessage, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer ws.Close()

		var msg shared.WsMessage
		if err := ws.ReadJSON(&msg); err == nil {
			outbound <- msg
		}
	}))
	defer server.Close()

	channel := NewChannel(wsEndpoint(server))
	channel.Connect()
	defer channel.Disconnect()

	channel.MarkAsRead("n42")

	select {
	case msg := <-outbound:
		assert.Equal(t, shared.WsMessageMarkRead, msg.Type)
		assert.Equal(t, "n42", msg.Id)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for outbound frame")
	}
}

// Disconnect must close the websocket right away, not leave the read pump
// blocked until its deadline; frames the server sends afterwards must never
// reach listeners.
func TestChannelDisconnectClosesConnection(t *testing.T) {
	frames := make(chan shared.WsMessage, 8)
	sendLate := make(chan struct{})
	serverSawClose := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer ws.Close()

		<-sendLate
		// the write may or may not fail depending on how far the close has
		// propagated; either way nothing must be delivered client-side
		ws.WriteJSON(shared.WsMessage{
			Type:         shared.WsMessageNewNotification,
			Notification: &shared.Notification{Id: "late"},
		})

		ws.SetReadDeadline(time.Now().Add(5 * time.Second))
		if _, _, err := ws.ReadMessage(); err != nil {
			close(serverSawClose)
		}
	}))
	defer server.Close()

	channel := NewChannel(wsEndpoint(server))
	defer channel.AddListener(func(msg shared.WsMessage) {
		frames <- msg
	})()

	channel.Connect()

	select {
	case msg := <-frames:
		require.Equal(t, shared.WsMessageConnectionStatus, msg.Type)
		require.Equal(t, shared.WsStatusConnected, msg.Status)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for connect")
	}

	channel.Disconnect()
	close(sendLate)

	select {
	case <-serverSawClose:
	case <-time.After(5 * time.Second):
		t.Fatal("server never observed the connection closing")
	}

	deadline := time.After(500 * time.Millisecond)
	for {
		select {
		case msg := <-frames:
			require.NotEqual(t, shared.WsMessageNewNotification, msg.Type,
				"frame delivered after Disconnect")
		case <-deadline:
			return
		}
	}
}

// A dropped connection is reported and then redialed with backoff.
func TestChannelReconnects(t *testing.T) {
	if testing.Short() {
		t.Skip("reconnect test waits out the backoff")
	}

	var conns int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)

		conns++
		if conns == 1 {
			// first connection is dropped immediately
			ws.Close()
			return
		}

		defer ws.Close()
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer server.Close()

	statuses := make(chan shared.WsConnectionStatus, 8)

	channel := NewChannel(wsEndpoint(server))
	defer channel.AddListener(func(msg shared.WsMessage) {
		if msg.Type == shared.WsMessageConnectionStatus {
			statuses <- msg.Status
		}
	})()

	channel.Connect()
	defer channel.Disconnect()

	var got []shared.WsConnectionStatus
	timeout := time.After(10 * time.Second)
	for len(got) < 3 {
		select {
		case status := <-statuses:
			got = append(got, status)
		case <-timeout:
			t.Fatalf("timed out waiting for reconnect, got %v", got)
		}
	}

	assert.Equal(t, []shared.WsConnectionStatus{
		shared.WsStatusConnected,
		shared.WsStatusDisconnected,
		shared.WsStatusConnected,
	}, got)
}

func TestChannelConnectIsIdempotent(t *testing.T) {
	channel := NewChannel(func() string { return "ws://127.0.0.1:1/ws/notifications/" })
	channel.Connect()
	channel.Connect()
	channel.Disconnect()
	channel.Disconnect()
}
