package db

import (
	"database/sql"
	"fmt"
	"time"

	"cratedig/data"
)

// CreateJob records the start of a scrape run.
func (db *DB) CreateJob(id, seller string) error {
	if id == "" {
		return fmt.Errorf("no job id")
	}
	job := data.ScrapeJob{
		ID:        id,
		Seller:    seller,
		Status:    data.JobRunning,
		StartedAt: sql.NullTime{Time: time.Now(), Valid: true},
	}
	if err := db.Create(&job).Error; err != nil {
		return fmt.Errorf("error creating job '%s': %w", id, err)
	}
	return nil
}

// FinishJob records a job's terminal status together with its counters and,
// for failed runs, the error message.
func (db *DB) FinishJob(id, status string, added, updated, total int64, errMsg string) error {
	if err := db.
		Table("scrape_jobs").
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         status,
			"albums_added":   added,
			"albums_updated": updated,
			"total_items":    total,
			"error":          errMsg,
			"finished_at":    time.Now(),
		}).
		Error; err != nil {
		return fmt.Errorf("error finishing job '%s': %w", id, err)
	}
	return nil
}

// RecentJobs returns up to limit jobs, newest first.
func (db *DB) RecentJobs(limit int) ([]data.ScrapeJob, error) {
	jobs := []data.ScrapeJob{}
	if err := db.
		Order("started_at desc").
		Limit(limit).
		Find(&jobs).
		Error; err != nil {
		return nil, fmt.Errorf("error listing jobs: %w", err)
	}
	return jobs, nil
}
