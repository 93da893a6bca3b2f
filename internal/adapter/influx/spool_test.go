package influx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/euanh/inforad/internal/app"
	"github.com/euanh/inforad/internal/mock"
)

func spoolData(t *testing.T, created time.Time, batches ...[]app.Sample) map[string][]byte {
	t.Helper()

	data := make(map[string][]byte)
	for _, samples := range batches {
		entry := spoolEntry{Created: created.Unix()}
		for _, smp := range samples {
			entry.Samples = append(entry.Samples, spoolSample{
				Series: smp.Series,
				Value:  smp.Value,
				Time:   smp.Time.UnixNano(),
			})
		}
		raw, err := json.Marshal(entry)
		require.NoError(t, err)
		data[fmt.Sprintf("sp/%020d", samples[0].Time.UnixNano())] = raw
	}

	return data
}

func TestSpoolAdd(t *testing.T) {
	t.Parallel()

	store := mock.NewKVStore(nil)
	s := NewSpool(store, 24*time.Hour, logrus.New())

	require.NoError(t, s.Add(nil))
	assert.Equal(t, 0, store.Updates())

	ts := time.Unix(1500000000, 0)
	require.NoError(t, s.Add([]app.Sample{{Series: "dc_inbox", Value: 42, Time: ts}}))
	assert.Equal(t, 1, store.Updates())

	data := store.Data()
	require.Len(t, data, 1)
	raw, ok := data["sp/01500000000000000000"]
	require.True(t, ok)

	var entry spoolEntry
	require.NoError(t, json.Unmarshal(raw, &entry))
	require.Len(t, entry.Samples, 1)
	assert.Equal(t, "dc_inbox", entry.Samples[0].Series)
	assert.Equal(t, 42.0, entry.Samples[0].Value)
	assert.Equal(t, ts.UnixNano(), entry.Samples[0].Time)
}

func TestSpoolDrain(t *testing.T) {
	t.Parallel()

	older := []app.Sample{{Series: "dc_inbox", Value: 1, Time: time.Unix(1500000000, 0)}}
	newer := []app.Sample{{Series: "dc_inbox", Value: 2, Time: time.Unix(1500000600, 0)}}

	t.Run("delivers oldest first and deletes", func(t *testing.T) {
		store := mock.NewKVStore(spoolData(t, time.Now(), newer, older))
		s := NewSpool(store, 24*time.Hour, logrus.New())

		var delivered []float64
		err := s.Drain(context.Background(), func(_ context.Context, samples []app.Sample) error {
			delivered = append(delivered, samples[0].Value)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2}, delivered)
		assert.Empty(t, store.Data())
	})

	t.Run("stops on first write failure", func(t *testing.T) {
		store := mock.NewKVStore(spoolData(t, time.Now(), newer, older))
		s := NewSpool(store, 24*time.Hour, logrus.New())

		var calls int
		err := s.Drain(context.Background(), func(_ context.Context, _ []app.Sample) error {
			calls++
			return errors.New("influx still down")
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
		// Nothing was delivered, both batches stay spooled.
		assert.Len(t, store.Data(), 2)
	})

	t.Run("drops expired entries without writing", func(t *testing.T) {
		store := mock.NewKVStore(spoolData(t, time.Now().Add(-48*time.Hour), older))
		s := NewSpool(store, 24*time.Hour, logrus.New())

		var calls int
		err := s.Drain(context.Background(), func(_ context.Context, _ []app.Sample) error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 0, calls)
		assert.Empty(t, store.Data())
	})

	t.Run("drops unreadable entries", func(t *testing.T) {
		store := mock.NewKVStore(map[string][]byte{
			"sp/00000000000000000001": []byte("not json"),
		})
		s := NewSpool(store, 24*time.Hour, logrus.New())

		err := s.Drain(context.Background(), func(_ context.Context, _ []app.Sample) error {
			return nil
		})
		require.NoError(t, err)
		assert.Empty(t, store.Data())
	})
}
