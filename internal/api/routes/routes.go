package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/hpaanonlineuniversity/Mern-blog-openldap/internal/api/handlers"
)

// RegisterRoutes sets up all API routes with their respective handlers
func RegisterRoutes(r *gin.Engine, authHandler *handlers.AuthHandler) {
	// Public routes (no authentication required)
	public := r.Group("/")
	registerPublicRoutes(public, authHandler)
}
