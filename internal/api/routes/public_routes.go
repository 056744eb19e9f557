package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/hpaanonlineuniversity/Mern-blog-openldap/internal/api/handlers"
)

// registerPublicRoutes defines all routes accessible without authentication
func registerPublicRoutes(g *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	g.GET("/health", authHandler.HealthHandler)
	g.POST("/login", authHandler.LoginHandler)
	g.POST("/register", authHandler.RegisterHandler)
}
