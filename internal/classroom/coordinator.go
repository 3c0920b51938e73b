package classroom

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/thearpankumar/Instructify/internal/models"
	"github.com/thearpankumar/Instructify/internal/moderation"
	"github.com/thearpankumar/Instructify/internal/oracle"
)

// contextWindow is how many recent messages are scanned for teacher
// context when classifying doubts or answering assistant queries.
const contextWindow = 10

const (
	blockedNotice = "Your message was blocked for inappropriate content. Please keep our classroom discussions educational and respectful."

	queryRefusalNotice = "I cannot respond to that message. Please keep our conversation educational and appropriate. If you have academic questions, I'm here to help with those."

	answerRefusalNotice = "I cannot provide that information. Please ask an educational question and I'll be happy to help."

	unavailableNotice = "I'm currently unavailable. Please try again later or ask your teacher directly."
)

// Oracle is the judgment capability the coordinator consumes beyond the
// moderation pipeline's safety gate.
type Oracle interface {
	ClassifyDoubt(ctx context.Context, text, classContext string) (*oracle.DoubtVerdict, error)
	GenerateAnswer(ctx context.Context, query, lectureContext string) (string, error)
}

// Coordinator dispatches decoded inbound messages: chat messages run the
// moderation gate, doubt escalation and room broadcast; assistant queries
// are double-gated and answered to the requester only; signaling messages
// go to the relay.
type Coordinator struct {
	registry *Registry
	router   *SignalRouter
	filter   *moderation.Pipeline
	oracle   Oracle
	history  *history
}

func NewCoordinator(registry *Registry, router *SignalRouter, filter *moderation.Pipeline, orc Oracle) *Coordinator {
	return &Coordinator{
		registry: registry,
		router:   router,
		filter:   filter,
		oracle:   orc,
		history:  newHistory(),
	}
}

// HandleMessage routes one inbound message by its declared type.
// Unrecognized types are dropped.
func (c *Coordinator) HandleMessage(ctx context.Context, classID string, conn Connection, msg models.InboundMessage) {
	switch msg.Type {
	case models.MessageTypeChat:
		c.handleChat(ctx, classID, conn, msg)
	case models.MessageTypeQuery:
		c.handleQuery(ctx, classID, conn, msg)
	case models.MessageTypeSignal:
		c.router.Route(classID, conn, msg)
	default:
		log.Printf("classroom %s: dropping message with unknown type %q", classID, msg.Type)
	}
}

// History returns the chat log of a classroom.
func (c *Coordinator) History(classID string) []models.ChatMessage {
	return c.history.all(classID)
}

func (c *Coordinator) handleChat(ctx context.Context, classID string, conn Connection, msg models.InboundMessage) {
	info, ok := c.registry.Lookup(conn)
	if !ok {
		log.Printf("classroom %s: chat from unregistered connection %s: %v", classID, conn.ID(), ErrConnectionUnknown)
		return
	}

	verdict := c.filter.Filter(ctx, msg.Message)
	if !verdict.IsSafe {
		log.Printf("classroom %s: blocked message from %q (%s, stage %s): %s",
			classID, info.Name, verdict.Category, verdict.Stage, verdict.Reason)
		if err := conn.WriteJSON(models.MessageBlocked{
			Type:      models.EventMessageBlocked,
			Reason:    blockedNotice,
			Timestamp: timestamp(),
		}); err != nil {
			log.Printf("classroom %s: failed to notify %q of blocked message: %v", classID, info.Name, err)
		}
		// Never stored, never broadcast, never part of later context.
		return
	}

	isDoubt := false
	if info.Role == models.RoleStudent {
		classContext := c.history.recentTeacherContext(classID, contextWindow)
		classification, err := c.oracle.ClassifyDoubt(ctx, msg.Message, classContext)
		if err != nil {
			// Uncertain classification never escalates and never blocks
			// the message itself.
			log.Printf("classroom %s: doubt classification failed: %v", classID, err)
		} else if classification.IsGenuineDoubt {
			isDoubt = true
			c.registry.BroadcastToRole(classID, models.RoleTeacher, models.DoubtNotification{
				Type:        models.EventDoubtNotification,
				StudentName: info.Name,
				Message:     msg.Message,
				Confidence:  classification.Confidence,
				Reason:      classification.Reason,
				Timestamp:   timestamp(),
			}, "")
		}
	}

	chat := models.ChatMessage{
		ID:         uuid.New().String(),
		ClassID:    classID,
		SenderName: info.Name,
		SenderType: info.Role,
		Message:    msg.Message,
		Timestamp:  time.Now(),
		IsDoubt:    isDoubt,
	}
	c.history.append(chat)

	c.registry.BroadcastToRoom(classID, models.ChatEvent{
		Type:       models.EventChatMessage,
		ID:         chat.ID,
		SenderName: chat.SenderName,
		SenderType: chat.SenderType,
		Message:    chat.Message,
		Timestamp:  chat.Timestamp.Format(time.RFC3339),
		IsDoubt:    chat.IsDoubt,
	}, "")
}

func (c *Coordinator) handleQuery(ctx context.Context, classID string, conn Connection, msg models.InboundMessage) {
	if msg.Query == "" {
		return
	}

	response := c.answerQuery(ctx, classID, msg.Query)

	// The requester may have disconnected while the oracle was thinking;
	// a failed write here just means the answer has no one to go to.
	if err := conn.WriteJSON(models.AIResponse{
		Type:      models.EventAIResponse,
		Query:     msg.Query,
		Response:  response,
		Timestamp: timestamp(),
	}); err != nil {
		log.Printf("classroom %s: discarding assistant response for %s: %v", classID, conn.ID(), err)
	}
}

func (c *Coordinator) answerQuery(ctx context.Context, classID, query string) string {
	if verdict := c.filter.Filter(ctx, query); !verdict.IsSafe {
		log.Printf("classroom %s: blocked assistant query (%s): %s", classID, verdict.Category, verdict.Reason)
		return queryRefusalNotice
	}

	lectureContext := c.history.recentTeacherContext(classID, contextWindow)
	answer, err := c.oracle.GenerateAnswer(ctx, query, lectureContext)
	if err != nil {
		log.Printf("classroom %s: answer generation failed: %v", classID, err)
		return unavailableNotice
	}

	// The generated answer goes through the same gate as user text; an
	// unsafe answer is replaced, never leaked.
	if verdict := c.filter.Filter(ctx, answer); !verdict.IsSafe {
		log.Printf("classroom %s: blocked assistant answer (%s): %s", classID, verdict.Category, verdict.Reason)
		return answerRefusalNotice
	}
	return answer
}

func timestamp() string {
	return time.Now().Format(time.RFC3339)
}
