package classroom

import (
	"encoding/json"
	"testing"

	"github.com/thearpankumar/Instructify/internal/models"
)

// signalingRoom builds a room with one teacher and two students and
// returns the connections with their broadcast history cleared.
func signalingRoom(t *testing.T) (*Registry, *SignalRouter, *fakeConn, *fakeConn, *fakeConn) {
	t.Helper()
	r := NewRegistry()
	newTestRoom(t, r, "ABC123")

	teacher := &fakeConn{id: "t1"}
	s1 := &fakeConn{id: "s1"}
	s2 := &fakeConn{id: "s2"}
	join(t, r, "ABC123", teacher, models.RoleTeacher, "Ms. Rivers")
	join(t, r, "ABC123", s1, models.RoleStudent, "sam")
	join(t, r, "ABC123", s2, models.RoleStudent, "ana")
	for _, c := range []*fakeConn{teacher, s1, s2} {
		c.reset()
	}
	return r, NewSignalRouter(r), teacher, s1, s2
}

func envelopes(t *testing.T, c *fakeConn) []models.SignalEnvelope {
	t.Helper()
	var out []models.SignalEnvelope
	for _, m := range c.messages() {
		env, ok := m.(models.SignalEnvelope)
		if !ok {
			t.Fatalf("connection %s received %T; want SignalEnvelope", c.ID(), m)
		}
		out = append(out, env)
	}
	return out
}

func TestStudentReadyGoesToTeachersOnly(t *testing.T) {
	_, router, teacher, s1, s2 := signalingRoom(t)

	router.Route("ABC123", s1, models.InboundMessage{
		Type:       models.MessageTypeSignal,
		SignalType: models.SignalTypeStudentReady,
	})

	got := envelopes(t, teacher)
	if len(got) != 1 {
		t.Fatalf("teacher received %d envelopes; want 1", len(got))
	}
	env := got[0]
	if env.Type != models.MessageTypeSignal || env.SignalType != models.SignalTypeStudentReady {
		t.Errorf("envelope type/signal = %s/%s", env.Type, env.SignalType)
	}
	if env.SenderID != "s1" || env.SenderType != models.RoleStudent || env.SenderName != "sam" {
		t.Errorf("sender stamp = %s/%s/%s; want s1/student/sam", env.SenderID, env.SenderType, env.SenderName)
	}

	if n := len(s1.messages()) + len(s2.messages()); n != 0 {
		t.Errorf("students received %d envelopes; want 0", n)
	}
}

func TestTeacherOfferBroadcastsToStudentsWithoutRecipient(t *testing.T) {
	_, router, teacher, s1, s2 := signalingRoom(t)

	payload := json.RawMessage(`{"sdp":"v=0"}`)
	router.Route("ABC123", teacher, models.InboundMessage{
		Type:       models.MessageTypeSignal,
		SignalType: models.SignalTypeOffer,
		Payload:    payload,
	})

	if n := len(teacher.messages()); n != 0 {
		t.Errorf("sending teacher received %d envelopes; want 0", n)
	}
	for _, s := range []*fakeConn{s1, s2} {
		got := envelopes(t, s)
		if len(got) != 1 {
			t.Fatalf("student %s received %d envelopes; want 1", s.ID(), len(got))
		}
		if string(got[0].Payload) != string(payload) {
			t.Errorf("payload forwarded as %s; want %s", got[0].Payload, payload)
		}
	}
}

func TestTeacherOfferUnicastsToRecipient(t *testing.T) {
	_, router, teacher, s1, s2 := signalingRoom(t)

	router.Route("ABC123", teacher, models.InboundMessage{
		Type:        models.MessageTypeSignal,
		SignalType:  models.SignalTypeOffer,
		RecipientID: "s2",
	})

	if n := len(s1.messages()); n != 0 {
		t.Errorf("non-recipient student received %d envelopes; want 0", n)
	}
	got := envelopes(t, s2)
	if len(got) != 1 || got[0].RecipientID != "s2" {
		t.Fatalf("recipient student envelopes = %+v; want exactly one addressed to s2", got)
	}
}

func TestStudentAnswerGoesToTeachers(t *testing.T) {
	_, router, teacher, s1, s2 := signalingRoom(t)

	router.Route("ABC123", s2, models.InboundMessage{
		Type:       models.MessageTypeSignal,
		SignalType: models.SignalTypeAnswer,
	})

	if n := len(envelopes(t, teacher)); n != 1 {
		t.Errorf("teacher received %d envelopes; want 1", n)
	}
	if n := len(s1.messages()); n != 0 {
		t.Errorf("other student received %d envelopes; want 0", n)
	}
}

func TestICECandidateRouting(t *testing.T) {
	t.Run("recipient set unicasts regardless of role", func(t *testing.T) {
		_, router, teacher, s1, s2 := signalingRoom(t)

		router.Route("ABC123", s1, models.InboundMessage{
			Type:        models.MessageTypeSignal,
			SignalType:  models.SignalTypeICECandidate,
			RecipientID: "s2",
		})

		if n := len(envelopes(t, s2)); n != 1 {
			t.Errorf("recipient received %d envelopes; want 1", n)
		}
		if n := len(teacher.messages()); n != 0 {
			t.Errorf("teacher received %d envelopes; want 0", n)
		}
	})

	t.Run("teacher without recipient reaches students", func(t *testing.T) {
		_, router, teacher, s1, s2 := signalingRoom(t)

		router.Route("ABC123", teacher, models.InboundMessage{
			Type:       models.MessageTypeSignal,
			SignalType: models.SignalTypeICECandidate,
		})

		if n := len(envelopes(t, s1)) + len(envelopes(t, s2)); n != 2 {
			t.Errorf("students received %d envelopes; want 2", n)
		}
		if n := len(teacher.messages()); n != 0 {
			t.Errorf("sender received %d envelopes; want 0", n)
		}
	})

	t.Run("student without recipient reaches teachers", func(t *testing.T) {
		_, router, teacher, s1, s2 := signalingRoom(t)

		router.Route("ABC123", s1, models.InboundMessage{
			Type:       models.MessageTypeSignal,
			SignalType: models.SignalTypeICECandidate,
		})

		if n := len(envelopes(t, teacher)); n != 1 {
			t.Errorf("teacher received %d envelopes; want 1", n)
		}
		if n := len(s2.messages()); n != 0 {
			t.Errorf("other student received %d envelopes; want 0", n)
		}
	})
}

func TestUnknownCombinationsAreDropped(t *testing.T) {
	_, router, teacher, s1, s2 := signalingRoom(t)

	// offer from a student has no routing rule
	router.Route("ABC123", s1, models.InboundMessage{
		Type:       models.MessageTypeSignal,
		SignalType: models.SignalTypeOffer,
	})
	// student_ready from a teacher has no routing rule
	router.Route("ABC123", teacher, models.InboundMessage{
		Type:       models.MessageTypeSignal,
		SignalType: models.SignalTypeStudentReady,
	})
	// unregistered sender
	router.Route("ABC123", &fakeConn{id: "ghost"}, models.InboundMessage{
		Type:       models.MessageTypeSignal,
		SignalType: models.SignalTypeOffer,
	})

	if n := len(teacher.messages()) + len(s1.messages()) + len(s2.messages()); n != 0 {
		t.Errorf("%d envelopes delivered for unroutable signals; want 0", n)
	}
}
