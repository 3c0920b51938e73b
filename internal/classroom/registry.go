package classroom

import (
	"log"
	"sync"
	"time"

	"github.com/thearpankumar/Instructify/internal/models"
)

// ParticipantInfo is the per-connection metadata held by the registry.
type ParticipantInfo struct {
	ClassID string
	Role    models.Role
	Name    string
}

// Registry tracks live classrooms, their connections and per-connection
// participant metadata. Classroom state is volatile and process-local; the
// registry is the single authority for who is in which room.
//
// Invariant: a connection appears in a room's connection list if and only
// if it has a participants entry. Every mutation keeps both in step under
// one lock.
type Registry struct {
	mu           sync.RWMutex
	rooms        map[string]*models.Classroom
	connections  map[string][]Connection    // classID -> connections in join order
	participants map[string]ParticipantInfo // connection ID -> info
}

func NewRegistry() *Registry {
	return &Registry{
		rooms:        make(map[string]*models.Classroom),
		connections:  make(map[string][]Connection),
		participants: make(map[string]ParticipantInfo),
	}
}

// CreateRoom registers a new classroom. Creating an ID that is already
// tracked fails with ErrDuplicateRoom; callers must create before any join.
func (r *Registry) CreateRoom(classID, teacherName string) (models.Classroom, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rooms[classID]; exists {
		return models.Classroom{}, ErrDuplicateRoom
	}

	room := &models.Classroom{
		ClassID:     classID,
		TeacherName: teacherName,
		CreatedAt:   time.Now(),
		IsActive:    true,
	}
	r.rooms[classID] = room
	r.connections[classID] = nil

	log.Printf("classroom created: %s (teacher: %s)", classID, teacherName)
	return copyRoom(room), nil
}

// GetRoom returns a snapshot of a classroom's state.
func (r *Registry) GetRoom(classID string) (models.Classroom, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[classID]
	if !ok {
		return models.Classroom{}, false
	}
	return copyRoom(room), true
}

// JoinRoom registers a connection as a participant of an existing
// classroom and notifies the other members. The room must have been
// created first; joining an unknown ID fails with ErrRoomNotFound.
func (r *Registry) JoinRoom(classID string, conn Connection, role models.Role, name string) error {
	r.mu.Lock()
	room, ok := r.rooms[classID]
	if !ok {
		r.mu.Unlock()
		return ErrRoomNotFound
	}

	r.connections[classID] = append(r.connections[classID], conn)
	r.participants[conn.ID()] = ParticipantInfo{ClassID: classID, Role: role, Name: name}
	room.Users = append(room.Users, models.Participant{
		Name:     name,
		UserType: role,
		JoinedAt: time.Now(),
	})
	count := len(room.Users)
	r.mu.Unlock()

	log.Printf("classroom %s: %s %q joined (%d participants)", classID, role, name, count)

	r.BroadcastToRoom(classID, models.PresenceEvent{
		Type:      models.EventUserJoined,
		UserName:  name,
		UserType:  role,
		UserCount: count,
	}, conn.ID())

	return nil
}

// LeaveRoom removes a connection and its participant records, then
// notifies the remaining members. Calling it for a connection that is not
// registered is a no-op, so disconnect cleanup is idempotent.
//
// All participant records sharing the leaver's display name are purged
// together; two simultaneously-connected users with the same name leave
// the roster as one.
func (r *Registry) LeaveRoom(conn Connection) {
	r.mu.Lock()
	info, ok := r.participants[conn.ID()]
	if !ok {
		r.mu.Unlock()
		return
	}

	conns := r.connections[info.ClassID]
	for i, c := range conns {
		if c.ID() == conn.ID() {
			r.connections[info.ClassID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}

	count := 0
	room, roomExists := r.rooms[info.ClassID]
	if roomExists {
		kept := room.Users[:0]
		for _, u := range room.Users {
			if u.Name != info.Name {
				kept = append(kept, u)
			}
		}
		room.Users = kept
		count = len(room.Users)
	}

	delete(r.participants, conn.ID())
	r.mu.Unlock()

	log.Printf("classroom %s: %s %q left (%d participants)", info.ClassID, info.Role, info.Name, count)

	if roomExists {
		r.BroadcastToRoom(info.ClassID, models.PresenceEvent{
			Type:      models.EventUserLeft,
			UserName:  info.Name,
			UserType:  info.Role,
			UserCount: count,
		}, "")
	}
}

// Lookup returns the participant metadata for a connection.
func (r *Registry) Lookup(conn Connection) (ParticipantInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info, ok := r.participants[conn.ID()]
	return info, ok
}

func copyRoom(room *models.Classroom) models.Classroom {
	snapshot := *room
	snapshot.Users = append([]models.Participant(nil), room.Users...)
	return snapshot
}
