package classroom

import (
	"log"

	"github.com/thearpankumar/Instructify/internal/models"
)

// Delivery is best-effort: a failed write marks that connection dead and
// never aborts delivery to the rest. Dead connections are cleaned up with a
// full LeaveRoom after the fan-out pass so participant bookkeeping and the
// connection list cannot diverge. Every primitive iterates a snapshot taken
// under the read lock; the live connection list is never walked while a
// concurrent leave mutates it.

// BroadcastToRoom sends msg to every connection in the room except
// excludeID, in join order. Pass excludeID "" to reach everyone.
func (r *Registry) BroadcastToRoom(classID string, msg any, excludeID string) {
	r.deliver(r.snapshot(classID), msg, excludeID)
}

// BroadcastToRole sends msg to every connection in the room whose
// participant role matches, except excludeID.
func (r *Registry) BroadcastToRole(classID string, role models.Role, msg any, excludeID string) {
	all := r.snapshot(classID)
	targets := all[:0]
	for _, conn := range all {
		if info, ok := r.Lookup(conn); ok && info.Role == role {
			targets = append(targets, conn)
		}
	}
	r.deliver(targets, msg, excludeID)
}

// SendToRecipient sends msg to the single connection whose ID matches
// recipientID. An unknown recipient is a silent no-op.
func (r *Registry) SendToRecipient(classID, recipientID string, msg any) {
	for _, conn := range r.snapshot(classID) {
		if conn.ID() != recipientID {
			continue
		}
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("classroom %s: send to %s failed, removing: %v", classID, recipientID, err)
			r.LeaveRoom(conn)
		}
		return
	}
}

func (r *Registry) snapshot(classID string) []Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Connection(nil), r.connections[classID]...)
}

func (r *Registry) deliver(targets []Connection, msg any, excludeID string) {
	var dead []Connection
	for _, conn := range targets {
		if excludeID != "" && conn.ID() == excludeID {
			continue
		}
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("classroom: send to %s failed, marking dead: %v", conn.ID(), err)
			dead = append(dead, conn)
		}
	}
	for _, conn := range dead {
		r.LeaveRoom(conn)
	}
}
