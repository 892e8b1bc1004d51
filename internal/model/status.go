package model

// DBStatus describes the connected database and its row counts.
type DBStatus struct {
	Database  string `json:"database"`
	User      string `json:"user"`
	Version   string `json:"version"`
	UserCount int64  `json:"user_count"`
	LogCount  int64  `json:"log_count"`
}
