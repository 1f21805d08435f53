package tracking_test

import (
	"testing"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/tracking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpdate(t *testing.T) {
	t.Run("should accept tracking id alone", func(t *testing.T) {
		u, err := tracking.NewUpdate(kernel.NewUUID(), nil, " PCL-1 ", "picked up", "Hub 3", "", &tracking.Coordinates{Lat: 23.8, Lng: 90.4}, time.Now())

		require.NoError(t, err)
		assert.Equal(t, "PCL-1", u.TrackingID())
		assert.InDelta(t, 23.8, u.Coordinates().Lat, 0.0001)
	})

	t.Run("should require a reference and a status", func(t *testing.T) {
		_, err := tracking.NewUpdate(kernel.NewUUID(), nil, "", " ", "", "", nil, time.Now())

		require.ErrorIs(t, err, tracking.ErrReferenceIsRequired)
		require.ErrorIs(t, err, tracking.ErrStatusIsRequired)
	})
}
