package data

import "database/sql"

// Job statuses. A job moves from created to running, then to exactly one of
// the three terminal states.
const (
	JobCreated   = "created"
	JobRunning   = "running"
	JobCompleted = "completed"
	JobCancelled = "cancelled"
	JobFailed    = "failed"
)

// A ScrapeJob is the durable record of one scrape run.
type ScrapeJob struct {
	ID     string `gorm:"primaryKey"`
	Seller string
	Status string

	AlbumsAdded   int64
	AlbumsUpdated int64
	TotalItems    int64

	Error string

	StartedAt  sql.NullTime
	FinishedAt sql.NullTime
}
