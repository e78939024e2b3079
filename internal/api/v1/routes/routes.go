package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/P0llen/speaker-detector/internal/api/v1/handlers"
	"github.com/P0llen/speaker-detector/internal/api/v1/services"
)

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	SpeakerService  services.SpeakerService
	MeetingService  services.MeetingService
	FeedbackService services.FeedbackService
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	speakerHandler := handlers.NewSpeakerHandler(container.SpeakerService)
	speakers := router.Group("/speakers")
	{
		speakers.GET("", speakerHandler.List)
		speakers.GET("/export", speakerHandler.Export)
		speakers.GET("/recordings", speakerHandler.Recordings)
		speakers.POST("/:id/samples", speakerHandler.Enroll)
		speakers.POST("/:id/improve", speakerHandler.Improve)
		speakers.PUT("/:id", speakerHandler.Rename)
		speakers.DELETE("/:id", speakerHandler.Delete)
	}

	router.POST("/identify", speakerHandler.Identify)

	meetingHandler := handlers.NewMeetingHandler(container.MeetingService)
	meetings := router.Group("/meetings")
	{
		meetings.GET("", meetingHandler.List)
		meetings.GET("/history", meetingHandler.History)
		meetings.POST("/:id/chunks", meetingHandler.UploadChunk)
		meetings.POST("/:id/summary", meetingHandler.Summary)
		meetings.DELETE("/:id", meetingHandler.Delete)
	}

	feedbackHandler := handlers.NewFeedbackHandler(container.FeedbackService)
	corrections := router.Group("/corrections")
	{
		corrections.POST("", feedbackHandler.Correct)
		corrections.GET("", feedbackHandler.History)
	}
}
