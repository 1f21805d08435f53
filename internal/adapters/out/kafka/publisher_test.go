package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"parcelflow/internal/adapters/out/kafka"
	"parcelflow/internal/core/ports"

	skafka "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []skafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...skafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	t.Run("should key messages by aggregate and tag the type", func(t *testing.T) {
		fw := &fakeWriter{}
		p := kafka.NewPublisherWithWriter(fw)
		at := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

		err := p.Publish(context.Background(),
			ports.Event{Type: ports.EventParcelPaid, Key: "parcel-1", OccurredAt: at, Payload: map[string]any{"tx": "t1"}},
			ports.Event{Type: ports.EventParcelDelivered, Key: "parcel-1", OccurredAt: at},
		)

		require.NoError(t, err)
		require.Len(t, fw.msgs, 2)
		assert.Equal(t, "parcel-1", string(fw.msgs[0].Key))
		assert.Equal(t, at, fw.msgs[0].Time)
		require.Len(t, fw.msgs[0].Headers, 1)
		assert.Equal(t, ports.EventParcelPaid, string(fw.msgs[0].Headers[0].Value))

		var decoded ports.Event
		require.NoError(t, json.Unmarshal(fw.msgs[0].Value, &decoded))
		assert.Equal(t, ports.EventParcelPaid, decoded.Type)
		assert.Equal(t, "t1", decoded.Payload["tx"])
	})

	t.Run("should skip empty batches", func(t *testing.T) {
		fw := &fakeWriter{err: errors.New("must not be called")}

		require.NoError(t, kafka.NewPublisherWithWriter(fw).Publish(context.Background()))
	})

	t.Run("should return writer failures", func(t *testing.T) {
		fw := &fakeWriter{err: errors.New("broker down")}

		err := kafka.NewPublisherWithWriter(fw).Publish(context.Background(), ports.Event{Type: ports.EventParcelCreated})

		require.ErrorContains(t, err, "broker down")
	})
}

func TestPublisher_Close(t *testing.T) {
	fw := &fakeWriter{}

	require.NoError(t, kafka.NewPublisherWithWriter(fw).Close())
	assert.True(t, fw.closed)
}
