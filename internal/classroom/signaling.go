package classroom

import (
	"log"

	"github.com/thearpankumar/Instructify/internal/models"
)

// SignalRouter relays WebRTC negotiation messages between teachers and
// students. It keeps no state: each envelope is routed independently on
// (signal type, sender role). Payloads are opaque; validating SDP or ICE
// bodies is the peers' problem.
type SignalRouter struct {
	registry *Registry
}

func NewSignalRouter(registry *Registry) *SignalRouter {
	return &SignalRouter{registry: registry}
}

// Route stamps the envelope with the sender's identity and delivers it:
//
//	student_ready (student)        -> all teachers
//	offer (teacher)                -> recipient if set, else all students
//	answer (student)               -> all teachers
//	ice_candidate, recipient set   -> that recipient
//	ice_candidate (teacher)        -> all students except sender
//	ice_candidate (student)        -> all teachers
//
// Anything else is dropped.
func (s *SignalRouter) Route(classID string, sender Connection, msg models.InboundMessage) {
	info, ok := s.registry.Lookup(sender)
	if !ok {
		log.Printf("signaling: dropping %s from unregistered connection %s", msg.SignalType, sender.ID())
		return
	}

	env := models.SignalEnvelope{
		Type:        models.MessageTypeSignal,
		SignalType:  msg.SignalType,
		SenderID:    sender.ID(),
		SenderType:  info.Role,
		SenderName:  info.Name,
		RecipientID: msg.RecipientID,
		Payload:     msg.Payload,
	}

	switch {
	case msg.SignalType == models.SignalTypeStudentReady && info.Role == models.RoleStudent:
		s.registry.BroadcastToRole(classID, models.RoleTeacher, env, "")

	case msg.SignalType == models.SignalTypeOffer && info.Role == models.RoleTeacher:
		if msg.RecipientID != "" {
			s.registry.SendToRecipient(classID, msg.RecipientID, env)
		} else {
			s.registry.BroadcastToRole(classID, models.RoleStudent, env, sender.ID())
		}

	case msg.SignalType == models.SignalTypeAnswer && info.Role == models.RoleStudent:
		s.registry.BroadcastToRole(classID, models.RoleTeacher, env, "")

	case msg.SignalType == models.SignalTypeICECandidate:
		switch {
		case msg.RecipientID != "":
			s.registry.SendToRecipient(classID, msg.RecipientID, env)
		case info.Role == models.RoleTeacher:
			s.registry.BroadcastToRole(classID, models.RoleStudent, env, sender.ID())
		default:
			s.registry.BroadcastToRole(classID, models.RoleTeacher, env, "")
		}

	default:
		log.Printf("signaling: dropping %s from %s %q in %s", msg.SignalType, info.Role, info.Name, classID)
	}
}
