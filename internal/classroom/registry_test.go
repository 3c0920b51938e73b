package classroom

import (
	"errors"
	"sync"
	"testing"

	"github.com/thearpankumar/Instructify/internal/models"
)

// fakeConn records everything written to it. Setting fail makes every
// write error, simulating a dead client.
type fakeConn struct {
	id   string
	mu   sync.Mutex
	msgs []any
	fail bool
}

func (f *fakeConn) ID() string { return f.id }

func (f *fakeConn) WriteJSON(v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("write failed")
	}
	f.msgs = append(f.msgs, v)
	return nil
}

func (f *fakeConn) messages() []any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]any(nil), f.msgs...)
}

func (f *fakeConn) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = nil
}

func newTestRoom(t *testing.T, r *Registry, classID string) {
	t.Helper()
	if _, err := r.CreateRoom(classID, "Ms. Rivers"); err != nil {
		t.Fatalf("CreateRoom(%q) failed: %v", classID, err)
	}
}

func join(t *testing.T, r *Registry, classID string, conn *fakeConn, role models.Role, name string) {
	t.Helper()
	if err := r.JoinRoom(classID, conn, role, name); err != nil {
		t.Fatalf("JoinRoom(%q, %s) failed: %v", name, role, err)
	}
}

func TestCreateRoomRejectsDuplicate(t *testing.T) {
	r := NewRegistry()
	newTestRoom(t, r, "ABC123")

	if _, err := r.CreateRoom("ABC123", "Someone Else"); !errors.Is(err, ErrDuplicateRoom) {
		t.Errorf("duplicate CreateRoom error = %v; want ErrDuplicateRoom", err)
	}

	room, ok := r.GetRoom("ABC123")
	if !ok {
		t.Fatal("room disappeared after duplicate create attempt")
	}
	if room.TeacherName != "Ms. Rivers" {
		t.Errorf("TeacherName = %q; duplicate create must not overwrite", room.TeacherName)
	}
}

func TestJoinRoomRequiresExistingRoom(t *testing.T) {
	r := NewRegistry()

	conn := &fakeConn{id: "c1"}
	if err := r.JoinRoom("NOPE", conn, models.RoleStudent, "sam"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("JoinRoom on unknown room error = %v; want ErrRoomNotFound", err)
	}

	if _, ok := r.Lookup(conn); ok {
		t.Error("rejected join must not register the connection")
	}
}

func TestJoinRegistersParticipantAndNotifiesOthers(t *testing.T) {
	r := NewRegistry()
	newTestRoom(t, r, "ABC123")

	teacher := &fakeConn{id: "t1"}
	join(t, r, "ABC123", teacher, models.RoleTeacher, "Ms. Rivers")

	student := &fakeConn{id: "s1"}
	join(t, r, "ABC123", student, models.RoleStudent, "sam")

	info, ok := r.Lookup(student)
	if !ok {
		t.Fatal("joined connection has no participant info")
	}
	if info.ClassID != "ABC123" || info.Role != models.RoleStudent || info.Name != "sam" {
		t.Errorf("Lookup = %+v; want {ABC123 student sam}", info)
	}

	room, _ := r.GetRoom("ABC123")
	if len(room.Users) != 2 {
		t.Fatalf("room has %d participants; want 2", len(room.Users))
	}

	// The joiner itself is excluded from the user_joined broadcast.
	if n := len(student.messages()); n != 0 {
		t.Errorf("joining student received %d messages; want 0", n)
	}

	msgs := teacher.messages()
	if len(msgs) != 1 {
		t.Fatalf("teacher received %d messages; want 1", len(msgs))
	}
	event, ok := msgs[0].(models.PresenceEvent)
	if !ok {
		t.Fatalf("teacher received %T; want PresenceEvent", msgs[0])
	}
	if event.Type != models.EventUserJoined || event.UserName != "sam" || event.UserCount != 2 {
		t.Errorf("user_joined event = %+v", event)
	}
}

func TestLeaveRoomRemovesBothRecordsAndIsIdempotent(t *testing.T) {
	r := NewRegistry()
	newTestRoom(t, r, "ABC123")

	teacher := &fakeConn{id: "t1"}
	student := &fakeConn{id: "s1"}
	join(t, r, "ABC123", teacher, models.RoleTeacher, "Ms. Rivers")
	join(t, r, "ABC123", student, models.RoleStudent, "sam")
	teacher.reset()

	r.LeaveRoom(student)

	if _, ok := r.Lookup(student); ok {
		t.Error("participant info survived LeaveRoom")
	}
	room, _ := r.GetRoom("ABC123")
	if len(room.Users) != 1 || room.Users[0].Name != "Ms. Rivers" {
		t.Errorf("room users after leave = %+v; want only the teacher", room.Users)
	}

	msgs := teacher.messages()
	if len(msgs) != 1 {
		t.Fatalf("teacher received %d messages after leave; want 1", len(msgs))
	}
	event := msgs[0].(models.PresenceEvent)
	if event.Type != models.EventUserLeft || event.UserName != "sam" || event.UserCount != 1 {
		t.Errorf("user_left event = %+v", event)
	}

	// Second leave is a no-op: no panic, no extra broadcast.
	teacher.reset()
	r.LeaveRoom(student)
	if n := len(teacher.messages()); n != 0 {
		t.Errorf("second LeaveRoom produced %d broadcasts; want 0", n)
	}
}

func TestLeaveRoomPurgesAllMatchingNames(t *testing.T) {
	r := NewRegistry()
	newTestRoom(t, r, "ABC123")

	first := &fakeConn{id: "s1"}
	second := &fakeConn{id: "s2"}
	join(t, r, "ABC123", first, models.RoleStudent, "sam")
	join(t, r, "ABC123", second, models.RoleStudent, "sam")

	r.LeaveRoom(first)

	// Both participant records named "sam" go together; the second
	// connection itself stays registered.
	room, _ := r.GetRoom("ABC123")
	if len(room.Users) != 0 {
		t.Errorf("room users = %+v; want all %q records purged", room.Users, "sam")
	}
	if _, ok := r.Lookup(second); !ok {
		t.Error("second connection lost its participant info")
	}
}
