package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thearpankumar/Instructify/internal/classroom"
	"github.com/thearpankumar/Instructify/internal/models"
	"github.com/thearpankumar/Instructify/internal/redis"
)

const classroomTTL = 24 * time.Hour

// CreateClassroom creates a new classroom and returns its shareable class
// ID (requires authentication).
func CreateClassroom(registry *classroom.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		var req models.CreateClassroomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		classID := generateClassID()
		room, err := registry.CreateRoom(classID, req.TeacherName)
		if err != nil {
			if errors.Is(err, classroom.ErrDuplicateRoom) {
				c.JSON(http.StatusConflict, gin.H{"error": "Classroom already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create classroom"})
			return
		}

		mirrorClassroom(room)

		log.Printf("classroom created: %s by user %v", classID, userID)

		c.JSON(http.StatusCreated, models.CreateClassroomResponse{
			ClassID:     classID,
			TeacherName: req.TeacherName,
		})
	}
}

// GetClassroom returns classroom information including its participants
// (public).
func GetClassroom(registry *classroom.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		classID := c.Param("classId")

		room, ok := registry.GetRoom(classID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Classroom not found"})
			return
		}

		c.JSON(http.StatusOK, room)
	}
}

// GetClassroomMessages returns the moderated chat history of a classroom.
func GetClassroomMessages(registry *classroom.Registry, coordinator *classroom.Coordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		classID := c.Param("classId")

		if _, ok := registry.GetRoom(classID); !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Classroom not found"})
			return
		}

		messages := coordinator.History(classID)
		if messages == nil {
			messages = []models.ChatMessage{}
		}
		c.JSON(http.StatusOK, gin.H{"messages": messages})
	}
}

// mirrorClassroom publishes classroom metadata to Redis for external
// consumers. The registry stays authoritative; mirror failures are logged
// and never fail the request.
func mirrorClassroom(room models.Classroom) {
	data, err := json.Marshal(room)
	if err != nil {
		return
	}

	redisClient := redis.GetClient()
	ctx := redis.GetContext()
	if err := redisClient.Set(ctx, "class:"+room.ClassID, data, classroomTTL).Err(); err != nil {
		log.Printf("Failed to mirror classroom %s to Redis: %v", room.ClassID, err)
	}
}

// generateClassID mints a short, shareable class ID.
func generateClassID() string {
	return strings.ToUpper(uuid.New().String()[:8])
}
