package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/hpaanonlineuniversity/Mern-blog-openldap/internal/ldap"
)

// NewAuthService connects to the directory, binds the administrative
// identity, and makes sure the users subtree exists.
func NewAuthService() (*AuthService, error) {
	ldapService, err := ldap.NewLDAPService()
	if err != nil {
		return nil, fmt.Errorf("failed to create LDAP service: %w", err)
	}

	if err := ldapService.EnsureUsersOU(); err != nil {
		ldapService.Close()
		return nil, fmt.Errorf("failed to prepare users subtree: %w", err)
	}

	return NewAuthServiceWithDirectory(ldapService), nil
}

// NewAuthServiceWithDirectory wires an existing directory session, which
// lets tests substitute a fake.
func NewAuthServiceWithDirectory(directory ldap.Service) *AuthService {
	return &AuthService{directory: directory}
}

// Authenticate resolves the username to a directory entry, then proves
// the password by binding as that entry on a disposable connection. The
// user view returned is the one found during resolution; it is not
// re-fetched after the bind.
func (s *AuthService) Authenticate(username string, password string) (*ldap.User, error) {
	user, err := s.directory.SearchUser(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", ldap.ErrUserNotFound, username)
	}

	if err := s.directory.VerifyCredentials(user.DN, password); err != nil {
		return nil, err
	}

	return user, nil
}

// Register provisions a directory entry for a new user and returns the
// view built from the attributes just written. The existence pre-check
// races with the write; when the directory wins the race its duplicate
// conflict maps to the same already-exists error, so callers cannot tell
// which side failed.
func (s *AuthService) Register(info RegistrationInfo) (*ldap.User, error) {
	if err := info.validate(); err != nil {
		return nil, err
	}

	existing, err := s.directory.SearchUser(info.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ldap.ErrUserExists, info.Username)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	attributes := ldap.Attributes{
		"objectClass": {"exampleUser", "inetOrgPerson", "organizationalPerson", "person", "top"},
		"uid":         {info.Username},
		"cn":          {info.FirstName + " " + info.LastName},
		"sn":          {info.LastName},
		"givenName":   {info.FirstName},
		"mail":        {info.Email},
		// Passed through verbatim; the directory server hashes it.
		"userPassword":   {info.Password},
		"profilePicture": {ldap.DefaultProfilePicture},
		"isAdmin":        {strconv.FormatBool(info.IsAdmin)},
		"CreateAt":       {now},
		"UpdateAt":       {now},
	}

	dn := s.directory.UserDN(info.Username)
	if err := s.directory.AddEntry(dn, attributes); err != nil {
		return nil, err
	}

	user := ldap.NewUser(dn, attributes)
	return &user, nil
}

func (s *AuthService) HealthCheck() error {
	return s.directory.HealthCheck()
}
