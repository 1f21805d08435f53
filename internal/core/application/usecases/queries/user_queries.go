package queries

import (
	"context"
	"errors"
	"strings"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/guard"

	"gorm.io/gorm"
)

// searchUsersLimit caps a directory search.
const searchUsersLimit = 10

var (
	ErrGetUserRoleQueryIsNotConstructed = errors.New(
		"GetUserRoleQuery must be created via NewGetUserRoleQuery constructor",
	)
	ErrSearchUsersQueryIsNotConstructed = errors.New(
		"SearchUsersQuery must be created via NewSearchUsersQuery constructor",
	)
)

// GetUserRoleQuery reads the role of one account.
type GetUserRoleQuery struct {
	email kernel.Email
	guard guard.ConstructorGuard
}

func NewGetUserRoleQuery(email string) (GetUserRoleQuery, error) {
	parsed, err := requiredEmail("email", email)
	if err != nil {
		return GetUserRoleQuery{}, err
	}
	return GetUserRoleQuery{email: parsed, guard: guard.NewConstructorGuard()}, nil
}

func (q GetUserRoleQuery) Validate() error {
	return q.guard.Validate(ErrGetUserRoleQueryIsNotConstructed)
}

func (q GetUserRoleQuery) Email() kernel.Email {
	return q.email
}

type GetUserRoleQueryHandler struct {
	db *gorm.DB
}

func NewGetUserRoleQueryHandler(db *gorm.DB) GetUserRoleQueryHandler {
	return GetUserRoleQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError when the email has no account.
func (h GetUserRoleQueryHandler) Handle(ctx context.Context, query GetUserRoleQuery) (string, error) {
	if err := query.Validate(); err != nil {
		return "", err
	}

	var roles []string
	err := h.db.WithContext(ctx).Raw(`SELECT role FROM users WHERE email = ?`, query.Email().String()).
		Scan(&roles).Error
	if err != nil {
		return "", errs.NewStoreUnavailableError("get user role", err)
	}
	if len(roles) == 0 {
		return "", errs.NewObjectNotFoundError("user", query.Email().String())
	}
	return roles[0], nil
}

// SearchUsersQuery finds accounts whose email contains a fragment,
// ignoring case.
type SearchUsersQuery struct {
	fragment string
	guard    guard.ConstructorGuard
}

func NewSearchUsersQuery(fragment string) (SearchUsersQuery, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return SearchUsersQuery{}, errs.NewValueIsRequiredError("email")
	}
	return SearchUsersQuery{fragment: fragment, guard: guard.NewConstructorGuard()}, nil
}

func (q SearchUsersQuery) Validate() error {
	return q.guard.Validate(ErrSearchUsersQueryIsNotConstructed)
}

func (q SearchUsersQuery) Fragment() string {
	return q.fragment
}

type SearchUsersQueryHandler struct {
	db *gorm.DB
}

func NewSearchUsersQueryHandler(db *gorm.DB) SearchUsersQueryHandler {
	return SearchUsersQueryHandler{db: db}
}

func (h SearchUsersQueryHandler) Handle(ctx context.Context, query SearchUsersQuery) ([]UserView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	users := make([]UserView, 0)
	err := h.db.WithContext(ctx).Raw(`
		SELECT email, name, role, created_at
		FROM users
		WHERE email ILIKE ?
		ORDER BY email
		LIMIT ?
	`, "%"+escapeLike(query.Fragment())+"%", searchUsersLimit).Scan(&users).Error
	if err != nil {
		return nil, errs.NewStoreUnavailableError("search users", err)
	}
	return users, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
