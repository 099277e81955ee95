// Package scraper orchestrates a two-phase scrape of one seller's marketplace
// inventory: phase 1 pages through the inventory and saves the cheap listing
// fields, phase 2 enriches each seen release with its full catalog record.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"cratedig/data"
	"cratedig/discogs"

	"github.com/google/uuid"
)

// ErrCancelled is returned by Run after Cancel has been observed at a
// checkpoint. In-flight network calls complete first; nothing is aborted
// mid-flight.
var ErrCancelled = errors.New("scrape cancelled")

// DefaultBatchSize is the number of releases enriched between progress events
// and courtesy pauses in phase 2.
const DefaultBatchSize = 10

// batchPause is the courtesy delay between enrichment batches, on top of the
// client's own rate limiting.
const batchPause = 100 * time.Millisecond

// Catalog is the remote API surface the job needs.
type Catalog interface {
	GetInventory(ctx context.Context, seller string, page, perPage int) (*discogs.InventoryResponse, error)
	GetRelease(ctx context.Context, releaseID int64) (*discogs.Release, error)
}

// Writer is the persistence surface the job needs.
type Writer interface {
	AlbumExists(releaseID int64) (bool, error)
	SaveAlbumFromListing(ctx context.Context, listing *discogs.Listing) error
	EnrichAlbum(ctx context.Context, release *discogs.Release) error
}

// A Result aggregates what a completed run did.
type Result struct {
	AlbumsAdded   int64 `json:"albums_added"`
	AlbumsUpdated int64 `json:"albums_updated"`
	TotalItems    int64 `json:"total_items"`
}

// A Job runs one scrape. Jobs are single-use: construct, Run once, done.
// Cancel may be called from any goroutine; all other state is owned by the
// Run call.
type Job struct {
	id      string
	catalog Catalog
	writer  Writer
	emitter Emitter
	perPage int

	cancelled atomic.Bool
	status    atomic.Value
}

// New creates a Job over the given collaborators. A nil emitter is replaced
// with NopEmitter.
func New(catalog Catalog, writer Writer, emitter Emitter) *Job {
	if emitter == nil {
		emitter = NopEmitter{}
	}
	job := &Job{
		id:      uuid.NewString(),
		catalog: catalog,
		writer:  writer,
		emitter: emitter,
		perPage: discogs.MaxPerPage,
	}
	job.status.Store(data.JobCreated)
	return job
}

// SetPerPage changes the inventory page size. Call before Run.
func (job *Job) SetPerPage(n int) {
	if n > 0 && n <= discogs.MaxPerPage {
		job.perPage = n
	}
}

func (job *Job) ID() string { return job.id }

// Status reports the job's lifecycle state: created, running, then exactly
// one of completed, cancelled, or failed.
func (job *Job) Status() string { return job.status.Load().(string) }

// Cancel requests cooperative cancellation. The running phase loop observes
// the flag at its next checkpoint and returns ErrCancelled.
func (job *Job) Cancel() {
	job.cancelled.Store(true)
}

// checkpoint is called before each page fetch, each listing, each enrichment
// item, and each batch.
func (job *Job) checkpoint(ctx context.Context) error {
	if job.cancelled.Load() || ctx.Err() != nil {
		return ErrCancelled
	}
	return nil
}

// Run executes both phases and returns the aggregated result. Fetch errors
// abort the run; persistence errors are absorbed as per-item error events.
// A limit above zero caps the number of inventory items processed.
func (job *Job) Run(ctx context.Context, seller string, limit, batchSize int) (*Result, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	job.status.Store(data.JobRunning)
	result, err := job.run(ctx, seller, limit, batchSize)
	switch {
	case errors.Is(err, ErrCancelled):
		job.status.Store(data.JobCancelled)
	case err != nil:
		job.status.Store(data.JobFailed)
	default:
		job.status.Store(data.JobCompleted)
	}
	return result, err
}

func (job *Job) run(ctx context.Context, seller string, limit, batchSize int) (*Result, error) {
	log.Printf("starting scrape for seller %s (limit %d, batch size %d)", seller, limit, batchSize)
	job.emitter.Emit(EventStarted, map[string]any{
		"seller": seller,
		"limit":  limit,
	})

	result := &Result{}

	releaseIDs, err := job.runInventoryPhase(ctx, seller, limit, result)
	if err != nil {
		return nil, err
	}

	if err := job.runEnrichmentPhase(ctx, releaseIDs, batchSize, result); err != nil {
		return nil, err
	}

	log.Printf("scrape completed: added=%d updated=%d total=%d",
		result.AlbumsAdded, result.AlbumsUpdated, result.TotalItems)
	job.emitter.Emit(EventCompleted, map[string]any{
		"albums_added":   result.AlbumsAdded,
		"albums_updated": result.AlbumsUpdated,
		"total_items":    result.TotalItems,
	})

	return result, nil
}

// runInventoryPhase pages through the seller's inventory, saving albums it
// has not seen before, and returns every release id encountered in order.
func (job *Job) runInventoryPhase(ctx context.Context, seller string, limit int, result *Result) ([]int64, error) {
	var releaseIDs []int64
	processed := 0

	for page := 1; ; page++ {
		if err := job.checkpoint(ctx); err != nil {
			return nil, err
		}

		resp, err := job.catalog.GetInventory(ctx, seller, page, job.perPage)
		if err != nil {
			return nil, err
		}

		if page == 1 {
			result.TotalItems = resp.Pagination.Items
			job.emitter.Emit(EventProgress, map[string]any{
				"phase":   "inventory",
				"current": 0,
				"total":   result.TotalItems,
			})
		}

		for i := range resp.Listings {
			if err := job.checkpoint(ctx); err != nil {
				return nil, err
			}
			listing := &resp.Listings[i]
			releaseIDs = append(releaseIDs, listing.Release.ID)

			exists, err := job.writer.AlbumExists(listing.Release.ID)
			if err != nil {
				job.itemError(fmt.Sprintf("failed to check album %d: %v", listing.Release.ID, err))
			} else if !exists {
				if err := job.writer.SaveAlbumFromListing(ctx, listing); err != nil {
					job.itemError(fmt.Sprintf("failed to save album %d: %v", listing.Release.ID, err))
				} else {
					result.AlbumsAdded++
					log.Printf("saved album %d: %s - %s",
						listing.Release.ID, listing.Release.Artist, listing.Release.Title)
					job.emitter.Emit(EventItemSaved, map[string]any{
						"release_id": listing.Release.ID,
						"title":      listing.Release.Title,
					})
				}
			}

			processed++
			if processed%10 == 0 || int64(processed) == result.TotalItems {
				job.emitter.Emit(EventProgress, map[string]any{
					"phase":   "inventory",
					"current": processed,
					"total":   result.TotalItems,
				})
			}
			if limit > 0 && processed >= limit {
				break
			}
		}

		if limit > 0 && processed >= limit {
			break
		}
		if int64(page) >= resp.Pagination.Pages {
			break
		}
	}

	job.emitter.Emit(EventProgress, map[string]any{
		"phase":   "inventory",
		"current": processed,
		"total":   result.TotalItems,
	})

	return releaseIDs, nil
}

// runEnrichmentPhase fetches full release records for the collected ids in
// fixed-size batches. Fetch and persistence failures here are both absorbed
// per item; a short pause separates batches.
func (job *Job) runEnrichmentPhase(ctx context.Context, releaseIDs []int64, batchSize int, result *Result) error {
	total := len(releaseIDs)
	job.emitter.Emit(EventProgress, map[string]any{
		"phase":   "enrichment",
		"current": 0,
		"total":   total,
	})

	processed := 0
	for start := 0; start < total; start += batchSize {
		if err := job.checkpoint(ctx); err != nil {
			return err
		}

		end := start + batchSize
		if end > total {
			end = total
		}
		log.Printf("enriching batch %d-%d of %d", start+1, end, total)

		for _, releaseID := range releaseIDs[start:end] {
			if err := job.checkpoint(ctx); err != nil {
				return err
			}

			job.enrichOne(ctx, releaseID, result)
			processed++
		}

		job.emitter.Emit(EventProgress, map[string]any{
			"phase":      "enrichment",
			"current":    processed,
			"total":      total,
			"batch_info": fmt.Sprintf("Batch %d-%d", start+1, end),
		})

		time.Sleep(batchPause)
	}

	return nil
}

// enrichOne handles a single release id in phase 2. Remote and persistence
// failures are both reported and swallowed so the phase keeps going.
func (job *Job) enrichOne(ctx context.Context, releaseID int64, result *Result) {
	exists, err := job.writer.AlbumExists(releaseID)
	if err != nil {
		job.itemError(fmt.Sprintf("failed to check album %d: %v", releaseID, err))
		return
	}
	if !exists {
		// phase 1 persistence failures can leave gaps
		return
	}

	release, err := job.catalog.GetRelease(ctx, releaseID)
	if err != nil {
		job.itemError(fmt.Sprintf("failed to fetch release %d: %v", releaseID, err))
		return
	}

	if err := job.writer.EnrichAlbum(ctx, release); err != nil {
		job.itemError(fmt.Sprintf("failed to update release %d: %v", releaseID, err))
		return
	}

	// counters only move on full success
	result.AlbumsUpdated++
	log.Printf("enriched release %d: %s", releaseID, release.Title)
}

func (job *Job) itemError(message string) {
	log.Print(message)
	job.emitter.Emit(EventError, map[string]any{"message": message})
}
