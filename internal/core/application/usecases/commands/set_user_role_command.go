package commands

import (
	"context"
	"errors"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/user"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/guard"
)

var ErrSetUserRoleCommandIsNotConstructed = errors.New(
	"SetUserRoleCommand must be created via NewSetUserRoleCommand constructor",
)

type SetUserRoleCommand struct {
	email kernel.Email
	role  user.Role
	guard guard.ConstructorGuard
}

func NewSetUserRoleCommand(email, role string) (SetUserRoleCommand, error) {
	address, emailErr := requiredEmail("email", email)

	var (
		parsed  user.Role
		roleErr error
	)
	if r, err := requiredString("role", role); err != nil {
		roleErr = err
	} else {
		parsed, roleErr = user.ParseRole(r)
	}

	if err := errors.Join(emailErr, roleErr); err != nil {
		return SetUserRoleCommand{}, err
	}

	return SetUserRoleCommand{
		email: address,
		role:  parsed,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c SetUserRoleCommand) Validate() error {
	return c.guard.Validate(ErrSetUserRoleCommandIsNotConstructed)
}

func (c SetUserRoleCommand) Email() kernel.Email {
	return c.email
}

func (c SetUserRoleCommand) Role() user.Role {
	return c.role
}

type SetUserRoleCommandHandler struct {
	users ports.UserDirectory
}

func NewSetUserRoleCommandHandler(users ports.UserDirectory) SetUserRoleCommandHandler {
	return SetUserRoleCommandHandler{users: users}
}

func (h SetUserRoleCommandHandler) Handle(ctx context.Context, cmd SetUserRoleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.users.SetRole(ctx, cmd.Email(), cmd.Role())
}
