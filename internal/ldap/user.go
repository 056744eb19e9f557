package ldap

import (
	"time"

	"github.com/go-ldap/ldap/v3"
)

// DefaultProfilePicture is served for users that never uploaded one.
const DefaultProfilePicture = "https://cdn.pixabay.com/photo/2015/10/05/22/37/blank-profile-picture-973460_960_720.png"

// User is the application-level view of a directory entry.
type User struct {
	DN             string `json:"dn"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	FullName       string `json:"fullName"`
	ProfilePicture string `json:"profilePicture"`
	IsAdmin        bool   `json:"isAdmin"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

// NewUser projects a raw directory entry onto a User. Every field has a
// fallback, so the mapping never fails regardless of which attributes
// the entry carries.
//
// The admin flag is true only for the literal string "true". Timestamps
// prefer the product attributes over the server's operational ones and
// fall back to the current time.
func NewUser(dn string, attributes Attributes) User {
	firstName := attributes.First("givenName")
	lastName := attributes.First("sn")

	fullName := attributes.First("cn")
	if fullName == "" {
		fullName = firstName + " " + lastName
	}

	picture := attributes.First("profilePicture")
	if picture == "" {
		picture = DefaultProfilePicture
	}

	return User{
		DN:             dn,
		Username:       attributes.First("uid"),
		Email:          attributes.First("mail"),
		FirstName:      firstName,
		LastName:       lastName,
		FullName:       fullName,
		ProfilePicture: picture,
		IsAdmin:        attributes.First("isAdmin") == "true",
		CreatedAt:      firstOf(attributes, "CreateAt", "createTimestamp"),
		UpdatedAt:      firstOf(attributes, "UpdateAt", "modifyTimestamp"),
	}
}

// NewUserFromEntry adapts a search result entry.
func NewUserFromEntry(entry *ldap.Entry) User {
	attributes := make(Attributes, len(entry.Attributes))
	for _, attribute := range entry.Attributes {
		attributes[attribute.Name] = attribute.Values
	}
	return NewUser(entry.DN, attributes)
}

func firstOf(attributes Attributes, names ...string) string {
	for _, name := range names {
		if value := attributes.First(name); value != "" {
			return value
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}
