package pgerr_test

import (
	"errors"
	"testing"

	"parcelflow/internal/adapters/out/postgres/pgerr"
	"parcelflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestWrap(t *testing.T) {
	require.NoError(t, pgerr.Wrap("parcel get", "parcel", "42", nil))

	err := pgerr.Wrap("parcel get", "parcel", "42", gorm.ErrRecordNotFound)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Contains(t, err.Error(), "42")

	cause := errors.New("connection refused")
	err = pgerr.Wrap("parcel get", "parcel", "42", cause)
	require.ErrorIs(t, err, errs.ErrStoreUnavailable)
	require.ErrorIs(t, err, cause)
}

func TestUnavailable(t *testing.T) {
	require.NoError(t, pgerr.Unavailable("rider update", nil))
	require.ErrorIs(t, pgerr.Unavailable("rider update", gorm.ErrRecordNotFound), errs.ErrStoreUnavailable)
}
