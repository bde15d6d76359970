package domain

import (
	"fmt"
	"time"
)

// Role is the enumerated account type.
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
)

// Roles lists every valid role in allocation-prefix order.
var Roles = []Role{RoleStudent, RoleFaculty, RoleAdmin}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleFaculty, RoleAdmin:
		return true
	}
	return false
}

// IDPrefix is the letter that starts every identifier issued for the role.
func (r Role) IDPrefix() string {
	switch r {
	case RoleStudent:
		return "S"
	case RoleFaculty:
		return "F"
	case RoleAdmin:
		return "A"
	}
	return ""
}

// ProfileLinks references the role-specific profile document of a user.
// Values are storage ids of the linked profile; empty means unset.
type ProfileLinks struct {
	Student string `json:"student,omitempty"`
	Faculty string `json:"faculty,omitempty"`
	Admin   string `json:"admin,omitempty"`
}

// Validate enforces that at most one link is set and that it matches role.
func (p ProfileLinks) Validate(role Role) error {
	set := map[Role]string{}
	if p.Student != "" {
		set[RoleStudent] = "student"
	}
	if p.Faculty != "" {
		set[RoleFaculty] = "faculty"
	}
	if p.Admin != "" {
		set[RoleAdmin] = "admin"
	}
	if len(set) > 1 {
		return NewValidationError("profile", "only one of student, faculty or admin may be linked")
	}
	for linked, path := range set {
		if linked != role {
			return NewValidationError(path, fmt.Sprintf("a %s profile cannot be linked to a %s account", linked, role))
		}
	}
	return nil
}

// User models an account able to log in.
type User struct {
	ID                  string       `json:"id"`
	Role                Role         `json:"role"`
	PasswordHash        string       `json:"-"`
	NeedsPasswordChange bool         `json:"needsPasswordChange"`
	PasswordChangedAt   *time.Time   `json:"passwordChangedAt,omitempty"`
	Profile             ProfileLinks `json:"profile"`
	CreatedAt           time.Time    `json:"createdAt"`
	UpdatedAt           time.Time    `json:"updatedAt"`
}

// UserPatch carries a partial update. Passwords only change through
// AuthService.ChangePassword, never through a patch.
type UserPatch struct {
	NeedsPasswordChange *bool
	Profile             *ProfileLinks
}

// Credentials is the minimal projection used for login checks.
type Credentials struct {
	ID                  string
	Role                Role
	PasswordHash        string
	NeedsPasswordChange bool
}
