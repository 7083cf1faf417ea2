package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrUnknownRole = errors.New("unknown user role")

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleInterviewer Role = "interviewer"
	RoleClient      Role = "client"
)

func (r Role) String() string {
	return string(r)
}

// Internal reports whether the role belongs to a staff member
// (as opposed to a client-company viewer).
func (r Role) Internal() bool {
	return r == RoleAdmin || r == RoleInterviewer
}

func AsRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleInterviewer:
		return RoleInterviewer, nil
	case RoleClient:
		return RoleClient, nil
	default:
		return Role(s), fmt.Errorf("%w: %s", ErrUnknownRole, s)
	}
}

// User is a local account provisioned from the external identity provider.
// ClerkID is the provider-side subject and is unique.
//
// CompanyId is set only for RoleClient users and scopes everything they can see.
type User struct {
	Id        string
	ClerkId   string
	Name      string
	Email     string
	Role      Role
	CompanyId string // empty unless Role == RoleClient
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) Equal(other *User) bool {
	if (u == nil) || (other == nil) {
		return (u == nil) && (other == nil)
	}
	return u.Id == other.Id &&
		u.ClerkId == other.ClerkId &&
		u.Name == other.Name &&
		u.Email == other.Email &&
		u.Role == other.Role &&
		u.CompanyId == other.CompanyId
}

// UserPatch enumerates the mutable fields of User.
// nil means "leave unchanged". Id, ClerkId and CreatedAt are not patchable.
type UserPatch struct {
	Name      *string
	Email     *string
	Role      *Role
	CompanyId *string
}

type NewUser struct {
	ClerkId   string
	Name      string
	Email     string
	Role      Role
	CompanyId string
}
