package model

import "time"

// Metric is a row of the system_metrics table. Only the seeder writes it.
type Metric struct {
	ID         int64     `json:"id" db:"id"`
	Name       string    `json:"metric_name" db:"metric_name"`
	Value      float64   `json:"metric_value" db:"metric_value"`
	Unit       string    `json:"metric_unit" db:"metric_unit"`
	RecordedAt time.Time `json:"recorded_at" db:"recorded_at"`
}
