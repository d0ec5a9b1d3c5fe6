package models

// PushSubscription is one browser registration. A user may hold several.
type PushSubscription struct {
	ID       int    `json:"id"`
	UserID   int    `json:"user_id"`
	Endpoint string `json:"endpoint"`
	P256dh   string `json:"p256dh"`
	Auth     string `json:"auth"`
}

type SubscribeRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
	P256dh   string `json:"p256dh" binding:"required"`
	Auth     string `json:"auth" binding:"required"`
}

type UnsubscribeRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

type SendPushRequest struct {
	UserIDs []int  `json:"userIds" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
	URL     string `json:"url"`
}

// PushPayload is the wire JSON delivered to the service worker. All fields
// are optional on the receiving side, which carries its own fallbacks.
type PushPayload struct {
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`
	URL     string `json:"url,omitempty"`
}
