package persons

import (
	"github.com/rs/zerolog"

	"github.com/umd-lib/staffdir/pkg/sources"
)

// Reason explains why a lookup missed.
type Reason string

const (
	// SourceMissing means the person has no data from the source.
	SourceMissing Reason = "source_missing"
	// FieldMissing means the source exists but lacks the field.
	FieldMissing Reason = "field_missing"
)

// Miss describes a lookup that found no value.
type Miss struct {
	PersonID string
	Source   sources.ID
	Field    string
	Reason   Reason
}

// Observer receives lookup misses.
type Observer func(Miss)

// LogObserver returns an Observer writing misses to logger at debug level.
func LogObserver(logger *zerolog.Logger) Observer {
	return func(m Miss) {
		logger.Debug().
			Str("uid", m.PersonID).
			Str("source", m.Source.String()).
			Str("field", m.Field).
			Str("reason", string(m.Reason)).
			Msg("Lookup miss")
	}
}

// Collector accumulates misses in memory.
type Collector struct {
	Misses []Miss
}

// Observe implements Observer.
func (c *Collector) Observe(m Miss) {
	c.Misses = append(c.Misses, m)
}

// Count returns the number of misses recorded for reason.
func (c *Collector) Count(reason Reason) int {
	n := 0
	for _, m := range c.Misses {
		if m.Reason == reason {
			n++
		}
	}
	return n
}
