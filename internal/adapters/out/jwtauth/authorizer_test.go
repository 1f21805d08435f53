package jwtauth_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"parcelflow/internal/adapters/out/jwtauth"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/user"
	"parcelflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRoleReader struct {
	mock.Mock
}

func (m *MockRoleReader) GetByEmail(ctx context.Context, email kernel.Email) (user.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(user.User), args.Error(1)
}

type roleReaderFunc func(ctx context.Context, email kernel.Email) (user.User, error)

func (f roleReaderFunc) GetByEmail(ctx context.Context, email kernel.Email) (user.User, error) {
	return f(ctx, email)
}

func account(t *testing.T, address string, role user.Role) user.User {
	t.Helper()
	email, err := kernel.NewEmail(address)
	require.NoError(t, err)
	u, err := user.RestoreUser(email, "", role, time.Now())
	require.NoError(t, err)
	return u
}

func TestAuthorizer_Authorize(t *testing.T) {
	ctx := context.Background()

	t.Run("should resolve admin role from the directory", func(t *testing.T) {
		users := new(MockRoleReader)
		users.On("GetByEmail", mock.Anything, mock.Anything).
			Return(account(t, "admin@example.com", user.RoleAdmin), nil).Once()
		auth, err := jwtauth.NewAuthorizer("secret", "parcelflow", users)
		require.NoError(t, err)
		token, err := auth.Issue("Admin@Example.com", time.Hour, time.Now())
		require.NoError(t, err)

		caller, err := auth.Authorize(ctx, "Bearer "+token)

		require.NoError(t, err)
		assert.Equal(t, "admin@example.com", caller.Email)
		assert.True(t, caller.IsAdmin)
		users.AssertExpectations(t)
	})

	t.Run("should treat unknown accounts as plain users", func(t *testing.T) {
		users := new(MockRoleReader)
		users.On("GetByEmail", mock.Anything, mock.Anything).
			Return(user.User{}, errs.NewObjectNotFoundError("user", "x")).Once()
		auth, err := jwtauth.NewAuthorizer("secret", "", users)
		require.NoError(t, err)
		token, err := auth.Issue("new@example.com", time.Hour, time.Now())
		require.NoError(t, err)

		caller, err := auth.Authorize(ctx, token)

		require.NoError(t, err)
		assert.False(t, caller.IsAdmin)
	})

	t.Run("should surface directory outages", func(t *testing.T) {
		users := new(MockRoleReader)
		users.On("GetByEmail", mock.Anything, mock.Anything).
			Return(user.User{}, errs.NewStoreUnavailableError("get user", errors.New("down"))).Once()
		auth, err := jwtauth.NewAuthorizer("secret", "", users)
		require.NoError(t, err)
		token, err := auth.Issue("rider@example.com", time.Hour, time.Now())
		require.NoError(t, err)

		_, err = auth.Authorize(ctx, token)

		require.ErrorIs(t, err, errs.ErrStoreUnavailable)
		require.NotErrorIs(t, err, jwtauth.ErrInvalidToken)
	})

	t.Run("should reject bad tokens", func(t *testing.T) {
		users := new(MockRoleReader)
		auth, err := jwtauth.NewAuthorizer("secret", "parcelflow", users)
		require.NoError(t, err)
		other, err := jwtauth.NewAuthorizer("other-secret", "parcelflow", users)
		require.NoError(t, err)
		foreign, err := other.Issue("rider@example.com", time.Hour, time.Now())
		require.NoError(t, err)
		expired, err := auth.Issue("rider@example.com", time.Minute, time.Now().Add(-time.Hour))
		require.NoError(t, err)

		for name, token := range map[string]string{
			"empty":   "",
			"garbage": "not.a.token",
			"foreign": foreign,
			"expired": expired,
		} {
			t.Run(name, func(t *testing.T) {
				_, authErr := auth.Authorize(ctx, token)
				require.ErrorIs(t, authErr, jwtauth.ErrInvalidToken)
			})
		}
		users.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("should share concurrent lookups for one email", func(t *testing.T) {
		var calls atomic.Int32
		release := make(chan struct{})
		users := new(MockRoleReader)
		users.On("GetByEmail", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) {
				calls.Add(1)
				<-release
			}).
			Return(account(t, "rider@example.com", user.RoleRider), nil)
		auth, err := jwtauth.NewAuthorizer("secret", "", users)
		require.NoError(t, err)
		token, err := auth.Issue("rider@example.com", time.Hour, time.Now())
		require.NoError(t, err)

		var wg sync.WaitGroup
		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, authErr := auth.Authorize(ctx, token)
				assert.NoError(t, authErr)
			}()
		}
		require.Eventually(t, func() bool { return calls.Load() >= 1 }, time.Second, time.Millisecond)
		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Less(t, calls.Load(), int32(5))
	})

	t.Run("should not fail waiting callers when the first one gives up", func(t *testing.T) {
		var calls atomic.Int32
		release := make(chan struct{})
		rider := account(t, "rider@example.com", user.RoleRider)
		users := roleReaderFunc(func(ctx context.Context, _ kernel.Email) (user.User, error) {
			calls.Add(1)
			<-release
			if err := ctx.Err(); err != nil {
				return user.User{}, err
			}
			return rider, nil
		})
		auth, err := jwtauth.NewAuthorizer("secret", "", users)
		require.NoError(t, err)
		token, err := auth.Issue("rider@example.com", time.Hour, time.Now())
		require.NoError(t, err)

		firstCtx, cancel := context.WithCancel(ctx)
		first := make(chan error, 1)
		go func() {
			_, authErr := auth.Authorize(firstCtx, token)
			first <- authErr
		}()
		require.Eventually(t, func() bool { return calls.Load() >= 1 }, time.Second, time.Millisecond)

		type outcome struct {
			email string
			err   error
		}
		second := make(chan outcome, 1)
		go func() {
			caller, authErr := auth.Authorize(ctx, token)
			second <- outcome{email: caller.Email, err: authErr}
		}()
		time.Sleep(20 * time.Millisecond)

		cancel()
		require.ErrorIs(t, <-first, context.Canceled)

		close(release)
		got := <-second
		require.NoError(t, got.err)
		assert.Equal(t, "rider@example.com", got.email)
	})

	t.Run("should require a secret", func(t *testing.T) {
		_, err := jwtauth.NewAuthorizer("", "", new(MockRoleReader))

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
