package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hpaanonlineuniversity/Mern-blog-openldap/internal/auth"
	"github.com/hpaanonlineuniversity/Mern-blog-openldap/internal/ldap"
)

type AuthHandler struct {
	authService auth.Service
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginHandler handles the login POST request
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Username and password are required",
		})
		return
	}

	user, err := h.authService.Authenticate(req.Username, req.Password)
	if err != nil {
		// Unknown users and wrong passwords get the same answer so the
		// endpoint cannot be used to enumerate usernames.
		if errors.Is(err, ldap.ErrUserNotFound) || errors.Is(err, ldap.ErrInvalidCredentials) {
			log.Printf("Login rejected for user %s: %v", req.Username, err)
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid credentials",
			})
			return
		}

		log.Printf("Login failed for user %s: %v", req.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Authentication failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user":    user,
	})
}

// RegisterHandler handles the registration POST request
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid registration request",
		})
		return
	}

	user, err := h.authService.Register(auth.RegistrationInfo{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsAdmin:   req.IsAdmin,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "All fields are required",
			})
		case errors.Is(err, ldap.ErrUserExists):
			log.Printf("Attempt to register existing username: %s", req.Username)
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"message": "Username already exists",
			})
		default:
			log.Printf("Failed to create user %s: %v", req.Username, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to create user",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user":    user,
	})
}
