package model

import (
	"time"

	"github.com/google/uuid"
)

// NullTime is the sentinel for temporal fields describing events that have
// not happened yet (last access, reply date). It is distinguishable from any
// real timestamp the system produces.
var NullTime = time.Unix(0, 0).UTC()

// Now returns the current time in UTC, truncated to second precision to
// survive storage round trips unchanged.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// IsNullTime reports whether t is the null timestamp sentinel.
func IsNullTime(t time.Time) bool {
	return t.IsZero() || t.Equal(NullTime)
}

// NewID generates a fresh globally unique, non-sequential identifier.
func NewID() string {
	return uuid.NewString()
}

// asTime accepts only already-valid timestamps. The engine performs no
// parsing or timezone normalization on temporal input.
func asTime(v any) (time.Time, bool) {
	t, ok := v.(time.Time)
	return t, ok
}
