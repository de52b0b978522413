// Package library keeps raw persisted records in a pebble database and
// decodes them on demand, one record or the whole library at a time.
package library

import (
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/stylegraph/pkg/codec"
)

// ErrNotFound is returned when no entry has the requested id.
var ErrNotFound = errors.New("library: entry not found")

// Entry is one stored record blob.
type Entry struct {
	ID      ksuid.KSUID
	Name    string
	Data    []byte
	Created time.Time
}

// EntryInfo describes an entry without its data.
type EntryInfo struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Size    int       `json:"size"`
	Created time.Time `json:"created"`
}

// Library stores record blobs keyed by KSUID, so iteration order is
// insertion order.
type Library struct {
	db        *pebble.DB
	reg       *codec.Registry
	decodeOps []codec.Option
	log       zerolog.Logger
	now       func() time.Time
}

// Option configures a Library.
type Option func(*Library)

// WithDecodeOptions sets the stream options used for every decode.
func WithDecodeOptions(opts ...codec.Option) Option {
	return func(l *Library) {
		l.decodeOps = append(l.decodeOps, opts...)
	}
}

// WithLogger sets the logger for decode outcomes.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Library) {
		l.log = log
	}
}

// Open opens or creates the library in dir. Records are decoded through reg,
// which should be sealed.
func Open(dir string, reg *codec.Registry, opts ...Option) (*Library, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open library at %s: %w", dir, err)
	}
	l := &Library{
		db:  db,
		reg: reg,
		log: zerolog.Nop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Close releases the underlying database.
func (l *Library) Close() error {
	return l.db.Close()
}

// Put stores data under a new id. The bytes are stored as given; they are
// not decoded until asked for.
func (l *Library) Put(name string, data []byte) (ksuid.KSUID, error) {
	env, err := newEnvelope(name, data, l.now())
	if err != nil {
		return ksuid.Nil, err
	}
	id := ksuid.New()
	if err := l.db.Set(id.Bytes(), env.encode(), pebble.Sync); err != nil {
		return ksuid.Nil, fmt.Errorf("failed to store %q: %w", name, err)
	}
	l.log.Debug().Str("id", id.String()).Str("name", name).Int("size", len(data)).Msg("stored record")
	return id, nil
}

// Get returns the entry stored under id.
func (l *Library) Get(id ksuid.KSUID) (*Entry, error) {
	val, closer, err := l.db.Get(id.Bytes())
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", id, err)
	}
	buf := make([]byte, len(val))
	copy(buf, val)
	if err := closer.Close(); err != nil {
		return nil, err
	}
	return toEntry(id, buf)
}

// Delete removes the entry stored under id.
func (l *Library) Delete(id ksuid.KSUID) error {
	if _, err := l.Get(id); err != nil {
		return err
	}
	if err := l.db.Delete(id.Bytes(), pebble.Sync); err != nil {
		return fmt.Errorf("failed to delete %s: %w", id, err)
	}
	return nil
}

// List describes every entry, oldest first.
func (l *Library) List() ([]EntryInfo, error) {
	var out []EntryInfo
	err := l.each(func(e *Entry) error {
		out = append(out, EntryInfo{
			ID:      e.ID.String(),
			Name:    e.Name,
			Size:    len(e.Data),
			Created: e.Created,
		})
		return nil
	})
	return out, err
}

// Decode decodes the record stored under id.
func (l *Library) Decode(id ksuid.KSUID) (codec.Object, error) {
	e, err := l.Get(id)
	if err != nil {
		return nil, err
	}
	return codec.Decode(e.Data, l.reg, l.decodeOps...)
}

// Result is the outcome of decoding one entry in a batch.
type Result struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Outcome  codec.Outcome  `json:"outcome"`
	Class    string         `json:"class,omitempty"`
	Size     int            `json:"size"`
	Error    string         `json:"error,omitempty"`
	Snapshot codec.Snapshot `json:"snapshot,omitempty"`
	// Elapsed is the decode time for this record alone.
	Elapsed time.Duration `json:"-"`
}

// Report summarises a batch decode.
type Report struct {
	Total   int                   `json:"total"`
	Counts  map[codec.Outcome]int `json:"counts"`
	Results []Result              `json:"results"`
}

// DecodeAll decodes every entry. A record that fails to decode is reported
// and the batch moves on; only storage failures abort it.
func (l *Library) DecodeAll() (*Report, error) {
	report := &Report{Counts: make(map[codec.Outcome]int)}
	err := l.each(func(e *Entry) error {
		r := l.decodeEntry(e)
		report.Total++
		report.Counts[r.Outcome]++
		report.Results = append(report.Results, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (l *Library) decodeEntry(e *Entry) Result {
	r := Result{ID: e.ID.String(), Name: e.Name, Size: len(e.Data)}
	start := time.Now()
	obj, err := codec.Decode(e.Data, l.reg, l.decodeOps...)
	r.Elapsed = time.Since(start)
	r.Outcome = codec.Classify(err)
	if err != nil {
		r.Error = err.Error()
		l.log.Warn().Str("id", r.ID).Str("name", e.Name).Str("outcome", string(r.Outcome)).Err(err).Msg("record did not decode")
		return r
	}
	if obj != nil {
		r.Class = obj.ClassName()
		r.Snapshot = obj.Snapshot()
	}
	l.log.Debug().Str("id", r.ID).Str("class", r.Class).Msg("decoded record")
	return r
}

func (l *Library) each(fn func(*Entry) error) error {
	iter, err := l.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return fmt.Errorf("failed to iterate library: %w", err)
	}
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key())
		if err != nil {
			iter.Close()
			return fmt.Errorf("%w: bad key %x", ErrCorrupt, iter.Key())
		}
		val := iter.Value()
		buf := make([]byte, len(val))
		copy(buf, val)
		e, err := toEntry(id, buf)
		if err != nil {
			iter.Close()
			return err
		}
		if err := fn(e); err != nil {
			iter.Close()
			return err
		}
	}
	return iter.Close()
}

func toEntry(id ksuid.KSUID, buf []byte) (*Entry, error) {
	env, err := decodeEnvelope(buf)
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", id, err)
	}
	return &Entry{
		ID:      id,
		Name:    string(env.Name),
		Data:    env.Data,
		Created: time.Unix(0, int64(env.Timestamp)),
	}, nil
}
