package shared

type WsMessageType string

const (
	WsMessageConnectionStatus    WsMessageType = "connection_status"
	WsMessageNewNotification     WsMessageType = "new_notification"
	WsMessageNotificationRead    WsMessageType = "notification_read"
	WsMessageNotificationReadAll WsMessageType = "notification_read_all"

	// outbound
	WsMessageMarkRead    WsMessageType = "mark_read"
	WsMessageMarkAllRead WsMessageType = "mark_all_read"
)

type WsConnectionStatus string

const (
	WsStatusConnected    WsConnectionStatus = "connected"
	WsStatusDisconnected WsConnectionStatus = "disconnected"
)

// WsMessage is one JSON frame on the push channel, inbound or outbound.
// Only the fields relevant to Type are set.
type WsMessage struct {
	Type         WsMessageType      `json:"type"`
	Status       WsConnectionStatus `json:"status,omitempty"`
	Id           string             `json:"id,omitempty"`
	Notification *Notification      `json:"notification,omitempty"`
}
