package classroom

import (
	"fmt"
	"strings"
	"sync"

	"github.com/thearpankumar/Instructify/internal/models"
)

// history is the append-only per-classroom chat log. It exists as a
// rolling context window for doubt classification and assistant answers,
// not as durable storage.
type history struct {
	mu       sync.Mutex
	messages map[string][]models.ChatMessage
}

func newHistory() *history {
	return &history{messages: make(map[string][]models.ChatMessage)}
}

func (h *history) append(msg models.ChatMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages[msg.ClassID] = append(h.messages[msg.ClassID], msg)
}

func (h *history) all(classID string) []models.ChatMessage {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]models.ChatMessage(nil), h.messages[classID]...)
}

// recentTeacherContext formats the teacher messages among the last limit
// entries into a context string for the oracle.
func (h *history) recentTeacherContext(classID string, limit int) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	msgs := h.messages[classID]
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}

	var parts []string
	for _, msg := range msgs {
		if msg.SenderType == models.RoleTeacher {
			parts = append(parts, fmt.Sprintf("Teacher (%s): %s", msg.SenderName, msg.Message))
		}
	}
	return strings.Join(parts, "\n")
}
