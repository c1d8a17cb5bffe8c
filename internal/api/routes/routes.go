package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/proxytool/proxytool/internal/api/handlers"
	"github.com/proxytool/proxytool/internal/api/middleware"
)

type Deps struct {
	User   *handlers.UserHandler
	Resume *handlers.ResumeHandler
	Chat   *handlers.ChatHandler

	// JWTSecret, when non-empty, puts the API behind bearer auth.
	JWTSecret string
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "ProxyTool API is running", "version": "0.1.0"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	api := r.Group("/")
	if d.JWTSecret != "" {
		api.Use(middleware.JWTAuth(d.JWTSecret))
	}

	api.POST("/auth/signup", d.User.SignUp)
	api.GET("/auth/user", d.User.Get)
	api.DELETE("/auth/user", d.User.Delete)

	api.POST("/chat/resume", d.Resume.Upload)
	api.GET("/chat/resume-details", d.Resume.Details)
	api.POST("/chat/invoke", d.Chat.Invoke)
}
