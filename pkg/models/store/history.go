package store

import "time"

// AnalysisSnapshot is a persisted analysis run; Report holds the full
// JSON-encoded api.AnalysisReport so old dashboards can be replayed.
type AnalysisSnapshot struct {
	ID          string
	Industry    string
	GeneratedAt time.Time
	Report      string
}

// Note is a persisted collaboration note.
type Note struct {
	ID        string
	Text      string
	CreatedAt time.Time
}
