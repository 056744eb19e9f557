package auth

import (
	"errors"
	"fmt"

	"github.com/hpaanonlineuniversity/Mern-blog-openldap/internal/ldap"
)

// ErrValidation marks a request that is missing required fields. It is
// returned before any directory call is made.
var ErrValidation = errors.New("auth: invalid registration data")

// Service is the authentication surface the HTTP layer consumes.
type Service interface {
	Authenticate(username string, password string) (*ldap.User, error)
	Register(info RegistrationInfo) (*ldap.User, error)
	HealthCheck() error
}

type AuthService struct {
	directory ldap.Service
}

// RegistrationInfo carries everything needed to provision a new user.
type RegistrationInfo struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
	IsAdmin   bool
}

func (info RegistrationInfo) validate() error {
	required := map[string]string{
		"username":  info.Username,
		"password":  info.Password,
		"email":     info.Email,
		"firstName": info.FirstName,
		"lastName":  info.LastName,
	}
	for field, value := range required {
		if value == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, field)
		}
	}
	return nil
}
