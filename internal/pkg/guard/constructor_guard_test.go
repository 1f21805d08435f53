package guard_test

import (
	"errors"
	"testing"

	"parcelflow/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("Parcel must be created via NewParcel")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_falls_back_to_default", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})

	t.Run("copies_keep_constructed_state", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		cp := g

		require.NoError(t, cp.Validate(nil))
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	errCmdNotConstructed := errors.New("CashoutCommand must be created via NewCashoutCommand")

	type cashoutCommand struct {
		riderEmail string
		guard      guard.ConstructorGuard
	}

	newCommand := func(email string) (cashoutCommand, error) {
		if email == "" {
			return cashoutCommand{}, errors.New("rider email is required")
		}
		return cashoutCommand{riderEmail: email, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed", func(t *testing.T) {
		cmd, err := newCommand("rider@example.com")

		require.NoError(t, err)
		require.NoError(t, cmd.guard.Validate(errCmdNotConstructed))
		assert.Equal(t, "rider@example.com", cmd.riderEmail)
	})

	t.Run("zero_value", func(t *testing.T) {
		var cmd cashoutCommand

		require.ErrorIs(t, cmd.guard.Validate(errCmdNotConstructed), errCmdNotConstructed)
	})
}

func TestConstructorGuard_Concurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	done := make(chan struct{})
	for range 50 {
		go func() {
			for range 200 {
				assert.NoError(t, g.Validate(validationError))
			}
			done <- struct{}{}
		}()
	}
	for range 50 {
		<-done
	}
}
