package user_test

import (
	"testing"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/user"
	"parcelflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	role, err := user.ParseRole(" Admin ")
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, role)

	_, err = user.ParseRole("owner")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewUser(t *testing.T) {
	email, err := kernel.NewEmail("ana@example.com")
	require.NoError(t, err)

	u, err := user.NewUser(email, " Ana ", time.Now())

	require.NoError(t, err)
	assert.Equal(t, user.RoleUser, u.Role())
	assert.Equal(t, "Ana", u.Name())
	assert.False(t, u.IsAdmin())

	_, err = user.NewUser(kernel.Email{}, "Ana", time.Now())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
