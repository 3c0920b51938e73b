package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/thearpankumar/Instructify/internal/classroom"
	"github.com/thearpankumar/Instructify/internal/models"
	"github.com/thearpankumar/Instructify/internal/redis"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin checking is handled by middleware
		return true
	},
}

// ErrSendBufferFull signals that a client stopped draining its outbound
// queue; the broadcast engine treats it as a dead connection.
var ErrSendBufferFull = errors.New("send buffer full")

// Client is one classroom WebSocket connection. Writes are serialized
// through the send channel and the write pump; the stable ID is the
// wire-visible handle used for unicast signaling.
type Client struct {
	id      string
	classID string
	conn    *websocket.Conn
	send    chan []byte
}

func (c *Client) ID() string {
	return c.id
}

// WriteJSON queues a message for the write pump without blocking.
func (c *Client) WriteJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	select {
	case c.send <- data:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// HandleClassroomSocket upgrades a classroom WebSocket connection. The
// classroom must already exist; the first client message is the join
// handshake declaring user_type and user_name.
func HandleClassroomSocket(registry *classroom.Registry, coordinator *classroom.Coordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		classID := c.Param("classId")
		if classID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "classId is required"})
			return
		}

		if _, ok := registry.GetRoom(classID); !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Classroom not found"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("Failed to upgrade connection: %v", err)
			return
		}

		client := &Client{
			id:      uuid.New().String(),
			classID: classID,
			conn:    conn,
			send:    make(chan []byte, 256),
		}

		go client.writePump()
		go client.readPump(registry, coordinator)
	}
}

func (c *Client) readPump(registry *classroom.Registry, coordinator *classroom.Coordinator) {
	defer func() {
		registry.LeaveRoom(c)

		redisClient := redis.GetClient()
		ctx := redis.GetContext()
		redisClient.SRem(ctx, "class:"+c.classID+":participants", c.id)

		c.conn.Close()
		log.Printf("Connection %s closed for classroom %s", c.id, c.classID)
	}()

	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	if !c.join(registry) {
		return
	}

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var msg models.InboundMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("Failed to parse message from %s: %v", c.id, err)
			continue
		}

		coordinator.HandleMessage(context.Background(), c.classID, c, msg)
	}
}

// join performs the handshake: the first message declares the user's role
// and display name. A bad role or an unknown classroom is surfaced to the
// client before closing.
func (c *Client) join(registry *classroom.Registry) bool {
	_, message, err := c.conn.ReadMessage()
	if err != nil {
		return false
	}

	var msg models.InboundMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Printf("Failed to parse join message from %s: %v", c.id, err)
		return false
	}

	if !models.ValidRole(msg.UserType) {
		c.WriteJSON(models.JoinError{Type: models.EventError, Reason: "user_type must be teacher or student"})
		return false
	}

	name := msg.UserName
	if name == "" {
		name = "Anonymous"
	}

	if err := registry.JoinRoom(c.classID, c, msg.UserType, name); err != nil {
		c.WriteJSON(models.JoinError{Type: models.EventError, Reason: "Classroom not found"})
		return false
	}

	redisClient := redis.GetClient()
	ctx := redis.GetContext()
	redisClient.SAdd(ctx, "class:"+c.classID+":participants", c.id)
	redisClient.Expire(ctx, "class:"+c.classID+":participants", classroomTTL)

	c.WriteJSON(models.ConnectionConfirmed{
		Type:     models.EventConnectionConfirmed,
		UserType: msg.UserType,
		ClassID:  c.classID,
	})
	return true
}

func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("Failed to write message: %v", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
