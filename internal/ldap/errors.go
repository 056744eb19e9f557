package ldap

import (
	"errors"
	"fmt"

	"github.com/go-ldap/ldap/v3"
)

// Every error leaving this package wraps one of these values, so callers
// can match with errors.Is instead of inspecting LDAP result codes.
var (
	ErrConnection         = errors.New("ldap: connection failed")
	ErrInvalidCredentials = errors.New("ldap: invalid credentials")
	ErrUserNotFound       = errors.New("ldap: user not found")
	ErrUserExists         = errors.New("ldap: user already exists")
	ErrSearch             = errors.New("ldap: search failed")
	ErrWrite              = errors.New("ldap: write failed")
)

// wrapBindError classifies a failed bind. A rejected credential is the
// expected outcome of a wrong password; everything else is a transport
// problem.
func wrapBindError(err error) error {
	if ldap.IsErrorWithCode(err, ldap.LDAPResultInvalidCredentials) {
		return fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	return fmt.Errorf("%w: %v", ErrConnection, err)
}
