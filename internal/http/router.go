package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/interviewsim-backend/internal/http/handlers"
	httpMW "github.com/yungbote/interviewsim-backend/internal/http/middleware"
)

type RouterConfig struct {
	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware
	UserHandler    *httpH.UserHandler

	InterviewHandler *httpH.InterviewHandler
	SkillGapHandler  *httpH.SkillGapHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
		}

		// Interviews
		if cfg.InterviewHandler != nil {
			protected.GET("/me/stats", cfg.InterviewHandler.GetUserStats)
			protected.POST("/interviews", cfg.InterviewHandler.CreateInterview)
			protected.GET("/interviews", cfg.InterviewHandler.ListInterviews)
			protected.GET("/interviews/:id", cfg.InterviewHandler.GetInterview)
			protected.GET("/interviews/:id/results", cfg.InterviewHandler.GetResults)
			protected.GET("/interviews/:id/score", cfg.InterviewHandler.GetScore)
			protected.POST("/interviews/:id/complete", cfg.InterviewHandler.CompleteInterview)
			protected.POST("/interviews/:id/questions/:question_id/answer", cfg.InterviewHandler.SubmitAnswer)
		}

		// Skill gaps
		if cfg.SkillGapHandler != nil {
			protected.POST("/interviews/:id/skill-gaps/analyze", cfg.SkillGapHandler.AnalyzeSkillGaps)
			protected.GET("/interviews/:id/skill-gaps", cfg.SkillGapHandler.GetInterviewSkillGaps)
			protected.GET("/skill-gaps", cfg.SkillGapHandler.ListUserSkillGaps)
		}
	}

	return r
}
