package ldap

import (
	"fmt"

	"github.com/go-ldap/ldap/v3"
)

// userAttributes is the fixed attribute set requested for user lookups.
// The operational timestamps are included as fallbacks for entries that
// predate the product attributes.
var userAttributes = []string{
	"uid", "cn", "sn", "givenName", "mail", "profilePicture",
	"isAdmin", "CreateAt", "UpdateAt", "createTimestamp", "modifyTimestamp",
}

// NewLDAPService loads configuration, connects, and binds the service's
// administrative identity. The returned service owns one long-lived
// connection shared across requests.
func NewLDAPService() (*LDAPService, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load LDAP configuration: %w", err)
	}

	client := NewClient(config)
	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to LDAP: %w", err)
	}

	if err := client.BindAdmin(); err != nil {
		client.Disconnect()
		return nil, fmt.Errorf("failed to bind admin identity: %w", err)
	}

	return &LDAPService{client: client}, nil
}

// SearchUser looks up a user by uid under the users subtree. A missing
// user is (nil, nil), not an error. When the directory holds duplicate
// uids the last entry in the result stream wins; duplicates are a data
// problem this service does not detect.
func (s *LDAPService) SearchUser(username string) (*User, error) {
	searchRequest := ldap.NewSearchRequest(
		s.client.config.UsersDN(),
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 0, int(requestTimeout.Seconds()), false,
		fmt.Sprintf("(uid=%s)", ldap.EscapeFilter(username)),
		userAttributes,
		nil,
	)

	result, err := s.client.Search(searchRequest)
	if err != nil {
		if ldap.IsErrorWithCode(err, ldap.LDAPResultNoSuchObject) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrSearch, err)
	}

	var user *User
	for _, entry := range result.Entries {
		found := NewUserFromEntry(entry)
		user = &found
	}
	return user, nil
}

// AddEntry writes a new entry through the administrative connection.
func (s *LDAPService) AddEntry(dn string, attributes Attributes) error {
	addRequest := ldap.NewAddRequest(dn, nil)
	for name, values := range attributes {
		addRequest.Attribute(name, values)
	}

	if err := s.client.Add(addRequest); err != nil {
		if ldap.IsErrorWithCode(err, ldap.LDAPResultEntryAlreadyExists) {
			return fmt.Errorf("%w: %s", ErrUserExists, dn)
		}
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// VerifyCredentials attempts a bind as the given DN on a short-lived
// connection of its own. Using a disposable connection keeps a failed
// user bind from invalidating the shared administrative session, and
// keeps untrusted input away from its elevated identity. The connection
// is released on every path.
func (s *LDAPService) VerifyCredentials(dn string, password string) error {
	if password == "" {
		// An empty password would be an anonymous bind, which most
		// servers accept. Never let that pass as a credential check.
		return fmt.Errorf("%w: empty password", ErrInvalidCredentials)
	}

	client := NewClient(s.client.config)
	if err := client.Connect(); err != nil {
		return err
	}
	defer client.Disconnect()

	return client.Bind(dn, password)
}

// UserDN is the distinguished name a user entry gets under the users
// subtree.
func (s *LDAPService) UserDN(username string) string {
	return fmt.Sprintf("uid=%s,%s", ldap.EscapeDN(username), s.client.config.UsersDN())
}

// EnsureUsersOU creates the users organizational unit if the directory
// does not have it yet.
func (s *LDAPService) EnsureUsersOU() error {
	addRequest := ldap.NewAddRequest(s.client.config.UsersDN(), nil)
	addRequest.Attribute("objectClass", []string{"organizationalUnit", "top"})
	addRequest.Attribute("ou", []string{s.client.config.UsersOUName()})

	if err := s.client.Add(addRequest); err != nil {
		if ldap.IsErrorWithCode(err, ldap.LDAPResultEntryAlreadyExists) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// HealthCheck verifies the directory answers on the shared connection.
func (s *LDAPService) HealthCheck() error {
	searchRequest := ldap.NewSearchRequest(
		s.client.config.BaseDN,
		ldap.ScopeBaseObject, ldap.NeverDerefAliases, 1, 1, false,
		"(objectClass=*)",
		[]string{"objectClass"},
		nil,
	)

	if _, err := s.client.Search(searchRequest); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

func (s *LDAPService) Close() error {
	return s.client.Disconnect()
}
