package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thearpankumar/Instructify/internal/classroom"
	"github.com/thearpankumar/Instructify/internal/transcript"
)

// TranscriptChunkRequest is one piece of transcribed lecture speech.
type TranscriptChunkRequest struct {
	Text      string `json:"text" binding:"required"`
	Timestamp string `json:"timestamp"`
}

// AddTranscriptChunk appends transcribed text to a classroom transcript.
func AddTranscriptChunk(registry *classroom.Registry, store *transcript.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		classID := c.Param("classId")
		if _, ok := registry.GetRoom(classID); !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Classroom not found"})
			return
		}

		var req TranscriptChunkRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		store.AddChunk(classID, req.Text, req.Timestamp)
		c.JSON(http.StatusOK, gin.H{"status": "recorded"})
	}
}

// GetTranscript returns the recorded transcript chunks for a classroom.
func GetTranscript(store *transcript.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		classID := c.Param("classId")

		chunks := store.Get(classID)
		if chunks == nil {
			chunks = []transcript.Chunk{}
		}
		c.JSON(http.StatusOK, gin.H{"class_id": classID, "transcript": chunks})
	}
}

// GenerateClassNotes turns a classroom transcript into structured notes.
func GenerateClassNotes(store *transcript.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		classID := c.Param("classId")

		notes, err := store.GenerateNotes(c.Request.Context(), classID)
		if errors.Is(err, transcript.ErrEmptyTranscript) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No transcript recorded for this class"})
			return
		}
		if err != nil {
			log.Printf("Notes generation failed for %s: %v", classID, err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Notes generation is currently unavailable"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"class_id":     classID,
			"notes":        notes,
			"generated_at": time.Now().Format(time.RFC3339),
		})
	}
}
