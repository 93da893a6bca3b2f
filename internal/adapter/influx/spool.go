package influx

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/euanh/inforad/internal/app"
)

// KVStore provides simple kv data storage.
type KVStore interface {
	ReadKey(key []byte) ([]byte, error)
	UpdateKey(key []byte, data []byte) error
	DeleteKey(key []byte) error
	Keys() ([][]byte, error)
}

// Spool buffers batches that failed to reach the database. Keys encode the
// cycle timestamp zero padded, so the store iterates them oldest first.
// Entries older than ttl are dropped instead of delivered: the dashboard has
// long moved past them.
type Spool struct {
	store KVStore
	ttl   time.Duration
	l     logrus.FieldLogger
}

var _ app.SampleSpool = &Spool{}

// NewSpool creates new Spool instance.
func NewSpool(store KVStore, ttl time.Duration, l logrus.FieldLogger) *Spool {
	return &Spool{
		store: store,
		ttl:   ttl,
		l:     l,
	}
}

// Add stores a batch for later delivery.
func (s *Spool) Add(samples []app.Sample) error {
	if len(samples) == 0 {
		return nil
	}

	entry := spoolEntry{
		Created: time.Now().Unix(),
		Samples: make([]spoolSample, 0, len(samples)),
	}
	for _, smp := range samples {
		entry.Samples = append(entry.Samples, spoolSample{
			Series: smp.Series,
			Value:  smp.Value,
			Time:   smp.Time.UnixNano(),
		})
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshalling spool entry: %w", err)
	}

	return s.store.UpdateKey(s.batchKey(samples[0].Time), data)
}

// Drain delivers spooled batches oldest first via given write func, deleting
// each delivered batch. Stops on the first write failure, leaving the rest
// for a later cycle.
func (s *Spool) Drain(ctx context.Context, write func(context.Context, []app.Sample) error) error {
	keys, err := s.store.Keys()
	if err != nil {
		return fmt.Errorf("listing spool keys: %w", err)
	}

	for _, key := range keys {
		data, err := s.store.ReadKey(key)
		if err != nil {
			return fmt.Errorf("reading spool entry: %w", err)
		}
		if data == nil {
			continue
		}

		var entry spoolEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			// Unreadable entries are dropped, they would block the spool forever.
			s.l.Errorf("dropping unreadable spool entry %s: %v", key, err)
			if err := s.store.DeleteKey(key); err != nil {
				return fmt.Errorf("deleting spool entry: %w", err)
			}
			continue
		}

		if time.Unix(entry.Created, 0).Add(s.ttl).Before(time.Now()) {
			s.l.Warnf("dropping expired spool entry %s", key)
			if err := s.store.DeleteKey(key); err != nil {
				return fmt.Errorf("deleting spool entry: %w", err)
			}
			continue
		}

		samples := make([]app.Sample, 0, len(entry.Samples))
		for _, smp := range entry.Samples {
			samples = append(samples, app.Sample{
				Series: smp.Series,
				Value:  smp.Value,
				Time:   time.Unix(0, smp.Time),
			})
		}

		if err := write(ctx, samples); err != nil {
			return fmt.Errorf("writing spooled batch: %w", err)
		}
		if err := s.store.DeleteKey(key); err != nil {
			return fmt.Errorf("deleting spool entry: %w", err)
		}
		s.l.Infof("delivered spooled batch of %d samples", len(samples))
	}

	return nil
}

func (s *Spool) batchKey(t time.Time) []byte {
	return []byte(fmt.Sprintf("sp/%020d", t.UnixNano()))
}

type spoolEntry struct {
	Created int64         `json:"created"`
	Samples []spoolSample `json:"samples"`
}

type spoolSample struct {
	Series string  `json:"series"`
	Value  float64 `json:"value"`
	Time   int64   `json:"time"`
}
