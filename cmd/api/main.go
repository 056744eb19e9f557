package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/hpaanonlineuniversity/Mern-blog-openldap/internal/api/handlers"
	"github.com/hpaanonlineuniversity/Mern-blog-openldap/internal/api/middleware"
	"github.com/hpaanonlineuniversity/Mern-blog-openldap/internal/api/routes"
	"github.com/hpaanonlineuniversity/Mern-blog-openldap/internal/auth"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the HTTP-side application configuration
type Config struct {
	Port       string `envconfig:"PORT" default:":8080"`
	CORSOrigin string `envconfig:"CORS_ORIGIN" default:"http://localhost:5173"`
}

// init the environment
func init() {
	_ = godotenv.Load()
}

func main() {
	gin.SetMode(gin.ReleaseMode)

	// Load and parse configuration from environment variables
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		log.Fatalf("Failed to process environment configuration: %v", err)
	}

	// Connect to the directory and bind the administrative identity
	authService, err := auth.NewAuthService()
	if err != nil {
		log.Fatalf("Failed to initialize auth service: %v", err)
	}

	r := gin.Default()
	r.Use(middleware.CORSMiddleware(config.CORSOrigin))

	authHandler := handlers.NewAuthHandler(authService)
	routes.RegisterRoutes(r, authHandler)

	if err := r.Run(config.Port); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
