package ldap

import (
	"strings"
	"sync"

	"github.com/go-ldap/ldap/v3"
)

// =================================================
// LDAP Service Interface
// =================================================

type Service interface {
	// Directory Operations
	SearchUser(username string) (*User, error)
	AddEntry(dn string, attributes Attributes) error
	VerifyCredentials(dn string, password string) error
	UserDN(username string) string
	EnsureUsersOU() error

	// Connection Management
	HealthCheck() error
	Close() error
}

type LDAPService struct {
	client *Client
}

// =================================================
// LDAP Client
// =================================================

type Config struct {
	URL           string `envconfig:"LDAP_URL" default:"ldap://localhost:389"`
	BaseDN        string `envconfig:"LDAP_BASE_DN" default:"dc=example,dc=com"`
	AdminDN       string `envconfig:"LDAP_ADMIN_DN" default:"cn=admin,dc=example,dc=com"`
	AdminPassword string `envconfig:"LDAP_ADMIN_PASSWORD"`
	UsersOU       string `envconfig:"LDAP_USERS_OU" default:"ou=users"`
}

// UsersDN is the subtree that holds all user entries.
func (c *Config) UsersDN() string {
	return c.UsersOU + "," + c.BaseDN
}

// UsersOUName is the bare name of the users organizational unit, without
// the "ou=" prefix.
func (c *Config) UsersOUName() string {
	return strings.TrimPrefix(c.UsersOU, "ou=")
}

type Client struct {
	conn      ldap.Client
	config    *Config
	mutex     sync.RWMutex
	connected bool
	bound     bool
}

// Attributes is a raw directory attribute bag: attribute name to its
// ordered values. Directory attributes are multi-valued even when only
// the first value is ever used.
type Attributes map[string][]string

// First returns the first value of the named attribute, or "" when the
// attribute is absent.
func (a Attributes) First(name string) string {
	if values := a[name]; len(values) > 0 {
		return values[0]
	}
	return ""
}
