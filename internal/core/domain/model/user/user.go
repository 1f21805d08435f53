// Package user models the directory of accounts known to the service and
// the role each one holds. Role changes go through SetRole only.
package user

import (
	"fmt"
	"strings"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
)

// Role is the authorization level of an account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleRider Role = "rider"
)

// ParseRole accepts the three role names in any casing.
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	if err := role.Validate(); err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%q is not a role", s))
	}
	return role, nil
}

func (r Role) Validate() error {
	switch r {
	case RoleUser, RoleAdmin, RoleRider:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%q is not a role", string(r)))
}

func (r Role) String() string {
	return string(r)
}

// User is a directory entry keyed by email.
type User struct {
	email     kernel.Email
	name      string
	role      Role
	createdAt time.Time
}

// NewUser registers an account with the default user role.
func NewUser(email kernel.Email, name string, now time.Time) (User, error) {
	return RestoreUser(email, name, RoleUser, now)
}

func RestoreUser(email kernel.Email, name string, role Role, createdAt time.Time) (User, error) {
	if email.IsZero() {
		return User{}, errs.NewValueIsRequiredError("email")
	}
	if err := role.Validate(); err != nil {
		return User{}, err
	}
	return User{
		email:     email,
		name:      strings.TrimSpace(name),
		role:      role,
		createdAt: createdAt,
	}, nil
}

func (u User) Email() kernel.Email {
	return u.email
}

func (u User) Name() string {
	return u.name
}

func (u User) Role() Role {
	return u.role
}

func (u User) IsAdmin() bool {
	return u.role == RoleAdmin
}

func (u User) CreatedAt() time.Time {
	return u.createdAt
}
