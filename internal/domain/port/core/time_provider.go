package core

import "time"

// TimeProvider abstracts time operations for the domain
type TimeProvider interface {
	// Now returns the current instant in UTC
	Now() time.Time
	Since(t time.Time) time.Duration
}
