package model

import "time"

// LogEntry is a row of the app_logs table.
// Level is free-form (info, warn, error, debug are the conventional values).
type LogEntry struct {
	ID        int64     `json:"id" db:"id"`
	Level     string    `json:"level" db:"level"`
	Message   string    `json:"message" db:"message"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}

// LogFilter narrows a log listing.
type LogFilter struct {
	// Level matches exactly when non-empty.
	Level string
	Limit int
}
