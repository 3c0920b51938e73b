package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/thearpankumar/Instructify/config"
	"github.com/thearpankumar/Instructify/internal/classroom"
	"github.com/thearpankumar/Instructify/internal/handlers"
	"github.com/thearpankumar/Instructify/internal/middleware"
	"github.com/thearpankumar/Instructify/internal/moderation"
	"github.com/thearpankumar/Instructify/internal/oracle"
	"github.com/thearpankumar/Instructify/internal/redis"
	"github.com/thearpankumar/Instructify/internal/transcript"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to Redis
	if err := redis.Connect(cfg.Redis); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	log.Println("Redis connection established")

	// Judgment oracle and the moderation pipeline built on it
	oracleClient := oracle.NewClient(cfg.Oracle.APIKey, cfg.Oracle.APIURL, cfg.Oracle.Model, cfg.Oracle.Timeout)
	if !oracleClient.IsAvailable() {
		log.Println("Warning: no oracle API key configured; chat moderation will fail closed")
	}
	filter := moderation.NewPipeline(oracleClient)

	// Classroom core
	registry := classroom.NewRegistry()
	signalRouter := classroom.NewSignalRouter(registry)
	coordinator := classroom.NewCoordinator(registry, signalRouter, filter, oracleClient)

	// Transcripts and notes
	transcripts := transcript.NewStore(oracleClient)

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Global CORS middleware (runs before routing)
	router.Use(handlers.OriginFilter(cfg.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api")
	{
		// Login endpoint (public)
		apiGroup.POST("/auth/login", handlers.Login(cfg.JWTSecret))

		// Create classroom (requires JWT)
		apiGroup.POST("/classroom/create", middleware.JWTAuth(cfg.JWTSecret), handlers.CreateClassroom(registry))

		// Classroom info and chat history (public)
		apiGroup.GET("/classroom/:classId", handlers.GetClassroom(registry))
		apiGroup.GET("/classroom/:classId/messages", handlers.GetClassroomMessages(registry, coordinator))

		// Lecture transcripts and generated notes
		apiGroup.POST("/transcript/:classId/chunk", handlers.AddTranscriptChunk(registry, transcripts))
		apiGroup.GET("/transcript/:classId", handlers.GetTranscript(transcripts))
		apiGroup.POST("/transcript/:classId/notes", handlers.GenerateClassNotes(transcripts))
	}

	// WebSocket classroom endpoint
	wsGroup := router.Group("/ws")
	{
		wsGroup.GET("/classroom/:classId", handlers.HandleClassroomSocket(registry, coordinator))
	}

	// Start server
	log.Printf("Starting Instructify server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
