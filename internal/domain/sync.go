package domain

import "time"

// SyncStats holds the result of one full resynchronization.
type SyncStats struct {
	Articles int
	Tags     int
	Links    int
	Duration time.Duration
}
