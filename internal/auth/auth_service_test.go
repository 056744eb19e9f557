package auth

import (
	"fmt"
	"testing"

	"github.com/hpaanonlineuniversity/Mern-blog-openldap/internal/ldap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDirectory is an in-memory stand-in for the LDAP service, keyed by
// username the same way the users subtree is.
type fakeDirectory struct {
	entries   map[string]ldap.Attributes
	passwords map[string]string

	searchErr error
	addErr    error

	searchCalls int
	addCalls    int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		entries:   make(map[string]ldap.Attributes),
		passwords: make(map[string]string),
	}
}

func (f *fakeDirectory) SearchUser(username string) (*ldap.User, error) {
	f.searchCalls++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	attributes, ok := f.entries[username]
	if !ok {
		return nil, nil
	}
	user := ldap.NewUser(f.UserDN(username), attributes)
	return &user, nil
}

func (f *fakeDirectory) AddEntry(dn string, attributes ldap.Attributes) error {
	f.addCalls++
	if f.addErr != nil {
		return f.addErr
	}
	username := attributes.First("uid")
	if _, ok := f.entries[username]; ok {
		return fmt.Errorf("%w: %s", ldap.ErrUserExists, dn)
	}
	f.entries[username] = attributes
	f.passwords[dn] = attributes.First("userPassword")
	return nil
}

func (f *fakeDirectory) VerifyCredentials(dn string, password string) error {
	if password == "" || f.passwords[dn] != password {
		return fmt.Errorf("%w: bind rejected", ldap.ErrInvalidCredentials)
	}
	return nil
}

func (f *fakeDirectory) UserDN(username string) string {
	return "uid=" + username + ",ou=users,dc=example,dc=com"
}

func (f *fakeDirectory) EnsureUsersOU() error { return nil }
func (f *fakeDirectory) HealthCheck() error   { return nil }
func (f *fakeDirectory) Close() error         { return nil }

func registration() RegistrationInfo {
	return RegistrationInfo{
		Username:  "thura",
		Password:  "s3cret-pass",
		Email:     "thura@example.com",
		FirstName: "Thura",
		LastName:  "Win",
	}
}

func TestRegisterThenAuthenticateRoundTrip(t *testing.T) {
	directory := newFakeDirectory()
	service := NewAuthServiceWithDirectory(directory)

	created, err := service.Register(registration())
	require.NoError(t, err)
	assert.Equal(t, "thura", created.Username)
	assert.Equal(t, "thura@example.com", created.Email)
	assert.Equal(t, "Thura", created.FirstName)
	assert.Equal(t, "Win", created.LastName)
	assert.Equal(t, "Thura Win", created.FullName)
	assert.False(t, created.IsAdmin)
	assert.NotEmpty(t, created.CreatedAt)

	user, err := service.Authenticate("thura", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "thura", user.Username)
	assert.Equal(t, created.Email, user.Email)
	assert.Equal(t, created.FirstName, user.FirstName)
	assert.Equal(t, created.LastName, user.LastName)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	directory := newFakeDirectory()
	service := NewAuthServiceWithDirectory(directory)

	_, err := service.Register(registration())
	require.NoError(t, err)

	_, err = service.Authenticate("thura", "wrong-pass")
	assert.ErrorIs(t, err, ldap.ErrInvalidCredentials)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	service := NewAuthServiceWithDirectory(newFakeDirectory())

	_, err := service.Authenticate("nobody", "whatever")
	assert.ErrorIs(t, err, ldap.ErrUserNotFound)
}

func TestAuthenticatePropagatesSearchFailure(t *testing.T) {
	directory := newFakeDirectory()
	directory.searchErr = fmt.Errorf("%w: directory down", ldap.ErrSearch)
	service := NewAuthServiceWithDirectory(directory)

	_, err := service.Authenticate("thura", "s3cret-pass")
	assert.ErrorIs(t, err, ldap.ErrSearch)
}

func TestRegisterDuplicateFromPreCheck(t *testing.T) {
	directory := newFakeDirectory()
	service := NewAuthServiceWithDirectory(directory)

	_, err := service.Register(registration())
	require.NoError(t, err)

	_, err = service.Register(registration())
	assert.ErrorIs(t, err, ldap.ErrUserExists)
	// Failed on the pre-check, before a second write.
	assert.Equal(t, 1, directory.addCalls)
}

func TestRegisterDuplicateFromDirectoryWrite(t *testing.T) {
	// The pre-check can lose the race against a concurrent writer; the
	// directory's own conflict must surface as the same error.
	directory := newFakeDirectory()
	directory.addErr = fmt.Errorf("%w: entry already exists", ldap.ErrUserExists)
	service := NewAuthServiceWithDirectory(directory)

	_, err := service.Register(registration())
	assert.ErrorIs(t, err, ldap.ErrUserExists)
}

func TestRegisterMissingFieldsFailBeforeDirectoryCalls(t *testing.T) {
	cases := map[string]RegistrationInfo{}

	info := registration()
	info.Username = ""
	cases["username"] = info

	info = registration()
	info.Password = ""
	cases["password"] = info

	info = registration()
	info.Email = ""
	cases["email"] = info

	info = registration()
	info.FirstName = ""
	cases["firstName"] = info

	info = registration()
	info.LastName = ""
	cases["lastName"] = info

	for field, invalid := range cases {
		directory := newFakeDirectory()
		service := NewAuthServiceWithDirectory(directory)

		_, err := service.Register(invalid)
		assert.ErrorIsf(t, err, ErrValidation, "missing %s", field)
		assert.Zerof(t, directory.searchCalls, "missing %s reached the directory", field)
		assert.Zerof(t, directory.addCalls, "missing %s reached the directory", field)
	}
}

func TestRegisterAdminFlagRoundTrips(t *testing.T) {
	directory := newFakeDirectory()
	service := NewAuthServiceWithDirectory(directory)

	info := registration()
	info.IsAdmin = true

	created, err := service.Register(info)
	require.NoError(t, err)
	assert.True(t, created.IsAdmin)

	user, err := service.Authenticate("thura", "s3cret-pass")
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
}

func TestRegisterWritesDefaultProfilePicture(t *testing.T) {
	directory := newFakeDirectory()
	service := NewAuthServiceWithDirectory(directory)

	created, err := service.Register(registration())
	require.NoError(t, err)
	assert.Equal(t, ldap.DefaultProfilePicture, created.ProfilePicture)

	// The placeholder is stored on the entry itself, not just defaulted
	// at read time.
	stored := directory.entries["thura"]
	require.NotNil(t, stored)
	assert.Equal(t, ldap.DefaultProfilePicture, stored.First("profilePicture"))
}

func TestRegisterPasswordPassedThroughVerbatim(t *testing.T) {
	directory := newFakeDirectory()
	service := NewAuthServiceWithDirectory(directory)

	_, err := service.Register(registration())
	require.NoError(t, err)

	dn := directory.UserDN("thura")
	assert.Equal(t, "s3cret-pass", directory.passwords[dn])
}
