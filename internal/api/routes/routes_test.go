package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hpaanonlineuniversity/Mern-blog-openldap/internal/api/handlers"
	"github.com/hpaanonlineuniversity/Mern-blog-openldap/internal/auth"
	"github.com/hpaanonlineuniversity/Mern-blog-openldap/internal/ldap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct{}

func (stubAuthService) Authenticate(username string, password string) (*ldap.User, error) {
	return &ldap.User{Username: username}, nil
}

func (stubAuthService) Register(info auth.RegistrationInfo) (*ldap.User, error) {
	return &ldap.User{Username: info.Username}, nil
}

func (stubAuthService) HealthCheck() error { return nil }

// The endpoint paths are the external contract; they live at the root,
// unprefixed.
func TestRegisterRoutesServesContractPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, handlers.NewAuthHandler(stubAuthService{}))

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/health", nil)
	require.NoError(t, err)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, err = http.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"username":"thura","password":"s3cret-pass"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, err = http.NewRequest(http.MethodPost, "/register",
		strings.NewReader(`{"username":"thura","password":"s3cret-pass","email":"thura@example.com","firstName":"Thura","lastName":"Win"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
}
