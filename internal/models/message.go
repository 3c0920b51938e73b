package models

import "encoding/json"

// MessageType identifies an inbound client message.
type MessageType string

const (
	MessageTypeJoin   MessageType = "join"
	MessageTypeChat   MessageType = "chat_message"
	MessageTypeQuery  MessageType = "ai_query"
	MessageTypeSignal MessageType = "webrtc_signal"
)

// SignalType represents the type of WebRTC signaling message.
type SignalType string

const (
	SignalTypeStudentReady SignalType = "student_ready"
	SignalTypeOffer        SignalType = "offer"
	SignalTypeAnswer       SignalType = "answer"
	SignalTypeICECandidate SignalType = "ice_candidate"
)

// Role is the declared role of a classroom participant.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// ValidRole reports whether a declared user type is one the platform accepts.
func ValidRole(r Role) bool {
	return r == RoleTeacher || r == RoleStudent
}

// InboundMessage is a decoded client message. Type selects which of the
// remaining fields are meaningful.
type InboundMessage struct {
	Type MessageType `json:"type"`

	// join handshake
	UserType Role   `json:"user_type,omitempty"`
	UserName string `json:"user_name,omitempty"`

	// chat_message
	Message string `json:"message,omitempty"`

	// ai_query
	Query string `json:"query,omitempty"`

	// webrtc_signal
	SignalType  SignalType      `json:"signal_type,omitempty"`
	RecipientID string          `json:"recipient_id,omitempty"`
	Payload     json.RawMessage `json:"payload,omitempty"`
}

// SignalEnvelope is a relayed WebRTC signaling message. The router stamps
// the sender fields and fixes Type before delivery; the payload (SDP/ICE
// body) is forwarded opaquely.
type SignalEnvelope struct {
	Type        MessageType     `json:"type"`
	SignalType  SignalType      `json:"signal_type"`
	SenderID    string          `json:"sender_id"`
	SenderType  Role            `json:"sender_type"`
	SenderName  string          `json:"sender_name"`
	RecipientID string          `json:"recipient_id,omitempty"`
	Payload     json.RawMessage `json:"payload,omitempty"`
}
