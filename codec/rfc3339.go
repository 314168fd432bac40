// Package codec holds small wire-format converters used during coercion.
package codec

import "time"

// RFC3339 converts between RFC3339 strings and time.Time. Decoding accepts
// RFC3339Nano (trailing zeros optional); encoding normalizes to UTC.
type RFC3339 struct{}

// Decode parses an RFC3339 timestamp.
func (RFC3339) Decode(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

// Encode renders a canonical RFC3339 string (UTC, trailing zeros trimmed).
func (RFC3339) Encode(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
