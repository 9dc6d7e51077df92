package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler, authHandler *AuthHandler) {
	// Health and readiness checks
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// OAuth sign-in flow
	authRoutes := router.Group("/auth")
	{
		authRoutes.GET("/login", authHandler.Login)       // GET /auth/login
		authRoutes.GET("/callback", authHandler.Callback) // GET /auth/callback
		authRoutes.POST("/logout", authHandler.Logout)    // POST /auth/logout
	}

	// API v1 routes, session-authenticated
	v1 := router.Group("/api/v1")
	{
		comments := v1.Group("/comments")
		{
			comments.POST("", handler.PostComment)          // POST /api/v1/comments
			comments.POST("/delete", handler.DeleteComments) // POST /api/v1/comments/delete
			comments.POST("/reply", handler.PostReply)       // POST /api/v1/comments/reply
		}

		replies := v1.Group("/replies")
		{
			replies.POST("/generate", handler.GenerateReply) // POST /api/v1/replies/generate
		}

		moderationRoutes := v1.Group("/moderation")
		{
			moderationRoutes.GET("/queue", handler.GetModerationQueue) // GET /api/v1/moderation/queue
			moderationRoutes.GET("/stats", handler.GetModerationStats) // GET /api/v1/moderation/stats
		}
	}
}
