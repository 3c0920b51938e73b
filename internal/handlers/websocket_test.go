package handlers

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/thearpankumar/Instructify/internal/models"
)

func TestClientWriteJSONQueuesWithoutBlocking(t *testing.T) {
	client := &Client{id: "c1", send: make(chan []byte, 2)}

	event := models.PresenceEvent{Type: models.EventUserJoined, UserName: "sam", UserType: models.RoleStudent, UserCount: 2}
	if err := client.WriteJSON(event); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	data := <-client.send
	var got models.PresenceEvent
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("queued payload is not valid JSON: %v", err)
	}
	if got != event {
		t.Errorf("queued event = %+v; want %+v", got, event)
	}
}

func TestClientWriteJSONFailsWhenBufferFull(t *testing.T) {
	client := &Client{id: "c1", send: make(chan []byte, 1)}

	if err := client.WriteJSON(models.JoinError{Type: models.EventError, Reason: "x"}); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if err := client.WriteJSON(models.JoinError{Type: models.EventError, Reason: "y"}); !errors.Is(err, ErrSendBufferFull) {
		t.Errorf("second write error = %v; want ErrSendBufferFull", err)
	}
}
