package flex

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/angelmondragon/stockdesk/pkg/clock"
)

// Int is an integer that may arrive as a JSON number or string. null leaves it untouched.
type Int int64

func (i *Int) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		return nil
	}
	v, err := DecodeInt(b)
	if err != nil {
		return err
	}
	*i = Int(v)
	return nil
}

// Float is a float that may arrive as a JSON number or string. null leaves it untouched.
type Float float64

func (f *Float) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		return nil
	}
	v, err := DecodeFloat(b)
	if err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// Money is an amount in minor units; fractional wire values are truncated toward zero.
type Money int64

func (m *Money) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		return nil
	}
	v, err := DecodeMinor(b)
	if err != nil {
		return err
	}
	*m = Money(v)
	return nil
}

// Time is a leniently decoded timestamp. Unparseable input is remembered as invalid
// and resolved against a clock by Or.
type Time struct {
	at    time.Time
	valid bool
}

func (t *Time) UnmarshalJSON(b []byte) error {
	t.at, t.valid = parseTimestamp(b)
	return nil
}

// NewTime wraps a known instant.
func NewTime(at time.Time) Time {
	return Time{at: at.UTC(), valid: true}
}

// Valid reports whether the wire value parsed.
func (t Time) Valid() bool { return t.valid }

// Or returns the decoded instant, or c.Now() when the wire value did not parse.
func (t Time) Or(c clock.Clock) time.Time {
	if t.valid {
		return t.at
	}
	return clock.OrSystem(c).Now()
}

// OptionalTime resolves a nullable wire timestamp: absent stays nil.
func OptionalTime(t *Time, c clock.Clock) *time.Time {
	if t == nil {
		return nil
	}
	at := t.Or(c)
	return &at
}

func isNull(b []byte) bool {
	return bytes.Equal(bytes.TrimSpace(b), jsonNull)
}

var _ json.Unmarshaler = (*Time)(nil)
