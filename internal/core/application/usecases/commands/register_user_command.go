package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/user"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

type RegisterUserCommand struct {
	email kernel.Email
	name  string
	guard guard.ConstructorGuard
}

func NewRegisterUserCommand(email, name string) (RegisterUserCommand, error) {
	address, err := requiredEmail("email", email)
	if err != nil {
		return RegisterUserCommand{}, err
	}

	return RegisterUserCommand{
		email: address,
		name:  strings.TrimSpace(name),
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) Email() kernel.Email {
	return c.email
}

func (c RegisterUserCommand) Name() string {
	return c.name
}

// RegisterUserCommandHandler adds an account on first sign-in. Registering
// a known email changes nothing and reports inserted=false.
type RegisterUserCommandHandler struct {
	users ports.UserDirectory
	now   func() time.Time
}

func NewRegisterUserCommandHandler(users ports.UserDirectory) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{users: users, now: time.Now}
}

func (h RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	u, err := user.NewUser(cmd.Email(), cmd.Name(), h.now().UTC())
	if err != nil {
		return false, err
	}
	return h.users.Register(ctx, u)
}
