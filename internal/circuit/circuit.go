package circuit

import (
	"fmt"
	"time"
)

// Store is the durable key-value storage a Circuit snapshots into.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Option configures a Circuit at construction.
type Option func(*Circuit)

// WithPolicy selects which kinds count toward each aggregate.
func WithPolicy(p Policy) Option {
	return func(c *Circuit) { c.policy = p }
}

// WithTimestamp toggles writing SavedAtKey alongside each snapshot.
func WithTimestamp(enabled bool) Option {
	return func(c *Circuit) { c.timestamp = enabled }
}

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Circuit) { c.now = now }
}

// Circuit is the ordered collection of placed components. Insertion order is
// display and storage order; it has no electrical meaning.
type Circuit struct {
	components []Component
	store      Store
	policy     Policy
	timestamp  bool
	now        func() time.Time
	savedAt    time.Time
}

// New returns an empty Circuit that snapshots into store. It does not read
// the store; call Restore, or use Open.
func New(store Store, opts ...Option) *Circuit {
	c := &Circuit{
		components: []Component{},
		store:      store,
		policy:     DefaultPolicy,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open constructs a Circuit and restores the last snapshot. A corrupt
// snapshot still yields a usable, empty circuit alongside the error.
func Open(store Store, opts ...Option) (*Circuit, error) {
	c := New(store, opts...)
	return c, c.Restore()
}

// Policy reports which kinds feed the totals.
func (c *Circuit) Policy() Policy { return c.policy }

// Components returns a copy of the ordered sequence.
func (c *Circuit) Components() []Component {
	out := make([]Component, len(c.components))
	copy(out, c.components)
	return out
}

func (c *Circuit) Len() int { return len(c.components) }

// SavedAt is the time of the last snapshot write, zero if unknown.
func (c *Circuit) SavedAt() time.Time { return c.savedAt }

// Add appends comp and snapshots. The component is always kept; a non-nil
// error only reports that the snapshot write failed.
func (c *Circuit) Add(comp Component) error {
	c.components = append(c.components, comp)
	return c.snapshot()
}

// Clear empties the circuit and snapshots the empty sequence.
func (c *Circuit) Clear() error {
	c.components = []Component{}
	return c.snapshot()
}

// Remove deletes the component at index i.
func (c *Circuit) Remove(i int) error {
	if i < 0 || i >= len(c.components) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	c.components = append(c.components[:i], c.components[i+1:]...)
	return c.snapshot()
}

// Move writes a new position back into the component at index i.
func (c *Circuit) Move(i int, pos Position) error {
	if i < 0 || i >= len(c.components) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	c.components[i].Position = pos
	return c.snapshot()
}

// TotalResistance sums magnitudes of the policy's resistance kinds.
func (c *Circuit) TotalResistance() float64 {
	total := 0.0
	for _, comp := range c.components {
		if c.policy.countsAsResistance(comp.Kind) {
			total += comp.Magnitude
		}
	}
	return total
}

// TotalVoltage sums magnitudes of the policy's voltage kinds.
func (c *Circuit) TotalVoltage() float64 {
	total := 0.0
	for _, comp := range c.components {
		if c.policy.countsAsVoltage(comp.Kind) {
			total += comp.Magnitude
		}
	}
	return total
}

// TotalCurrent applies Ohm's law to the totals. Zero resistance reports zero
// current rather than an infinite or undefined one.
func (c *Circuit) TotalCurrent() float64 {
	r := c.TotalResistance()
	if r == 0 {
		return 0
	}
	return c.TotalVoltage() / r
}

type Totals struct {
	Resistance float64 `json:"resistance"`
	Voltage    float64 `json:"voltage"`
	Current    float64 `json:"current"`
}

func (c *Circuit) Totals() Totals {
	return Totals{
		Resistance: c.TotalResistance(),
		Voltage:    c.TotalVoltage(),
		Current:    c.TotalCurrent(),
	}
}

// Restore replaces the sequence with the last snapshot. A missing snapshot
// leaves the circuit empty and is not an error. Unreadable entries are
// dropped, the raw snapshot is copied to BackupKey, and the returned error
// wraps ErrCorruptSnapshot; every readable entry is still restored.
func (c *Circuit) Restore() error {
	c.components = []Component{}
	c.savedAt = time.Time{}

	raw, ok, err := c.store.Get(ComponentsKey)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	if !ok || raw == "" || raw == "null" {
		return nil
	}

	components, decodeErr := decodeComponents(raw)
	c.components = append(c.components, components...)

	if ts, ok, err := c.store.Get(SavedAtKey); err == nil && ok {
		if t, err := parseTimestamp(ts); err == nil {
			c.savedAt = t
		}
	}

	if decodeErr != nil {
		if err := c.store.Set(BackupKey, raw); err != nil {
			return fmt.Errorf("%w (backup failed: %v)", decodeErr, err)
		}
		return decodeErr
	}
	return nil
}

func (c *Circuit) snapshot() error {
	raw, err := encodeComponents(c.components)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := c.store.Set(ComponentsKey, raw); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if !c.timestamp {
		return nil
	}
	now := c.now()
	if err := c.store.Set(SavedAtKey, formatTimestamp(now)); err != nil {
		return fmt.Errorf("write timestamp: %w", err)
	}
	c.savedAt = now
	return nil
}
