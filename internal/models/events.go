package models

// Outbound event shapes sent to clients over the classroom WebSocket.

// ConnectionConfirmed acknowledges a successful join handshake.
type ConnectionConfirmed struct {
	Type     string `json:"type"`
	UserType Role   `json:"user_type"`
	ClassID  string `json:"class_id"`
}

// PresenceEvent announces a participant joining or leaving a classroom.
// Type is "user_joined" or "user_left".
type PresenceEvent struct {
	Type      string `json:"type"`
	UserName  string `json:"user_name"`
	UserType  Role   `json:"user_type"`
	UserCount int    `json:"user_count"`
}

// ChatEvent is a delivered chat message.
type ChatEvent struct {
	Type       string `json:"type"`
	ID         string `json:"id"`
	SenderName string `json:"sender_name"`
	SenderType Role   `json:"sender_type"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
	IsDoubt    bool   `json:"is_doubt"`
}

// MessageBlocked tells a sender their message failed moderation.
type MessageBlocked struct {
	Type      string `json:"type"`
	Reason    string `json:"reason"`
	Timestamp string `json:"timestamp"`
}

// DoubtNotification alerts teachers to a student message classified as a
// genuine academic doubt.
type DoubtNotification struct {
	Type        string  `json:"type"`
	StudentName string  `json:"student_name"`
	Message     string  `json:"message"`
	Confidence  float64 `json:"confidence"`
	Reason      string  `json:"reason"`
	Timestamp   string  `json:"timestamp"`
}

// AIResponse is an assistant answer delivered only to the requester.
type AIResponse struct {
	Type      string `json:"type"`
	Query     string `json:"query"`
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

// JoinError is sent before closing a connection whose join was rejected.
type JoinError struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

const (
	EventConnectionConfirmed = "connection_confirmed"
	EventUserJoined          = "user_joined"
	EventUserLeft            = "user_left"
	EventChatMessage         = "chat_message"
	EventMessageBlocked      = "message_blocked"
	EventDoubtNotification   = "doubt_notification"
	EventAIResponse          = "ai_response"
	EventError               = "error"
)
