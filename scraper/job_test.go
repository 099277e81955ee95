package scraper_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"cratedig/data"
	"cratedig/discogs"
	"cratedig/scraper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalog serves a canned inventory split into pages and synthesizes
// release records on demand.
type fakeCatalog struct {
	mu             sync.Mutex
	pages          [][]discogs.Listing
	pageErr        map[int]error
	releaseErr     map[int64]error
	inventoryCalls int
	releaseCalls   []int64
}

func (c *fakeCatalog) GetInventory(ctx context.Context, seller string, page, perPage int) (*discogs.InventoryResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inventoryCalls++
	if err := c.pageErr[page]; err != nil {
		return nil, err
	}

	total := 0
	for _, p := range c.pages {
		total += len(p)
	}
	return &discogs.InventoryResponse{
		Pagination: discogs.Pagination{
			PerPage: int64(perPage),
			Items:   int64(total),
			Page:    int64(page),
			Pages:   int64(len(c.pages)),
		},
		Listings: c.pages[page-1],
	}, nil
}

func (c *fakeCatalog) GetRelease(ctx context.Context, releaseID int64) (*discogs.Release, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.releaseCalls = append(c.releaseCalls, releaseID)
	if err := c.releaseErr[releaseID]; err != nil {
		return nil, err
	}
	return &discogs.Release{ID: releaseID, Title: fmt.Sprintf("Release %d", releaseID)}, nil
}

// fakeWriter keeps albums in a map and can be told to fail specific ids.
type fakeWriter struct {
	mu        sync.Mutex
	albums    map[int64]bool
	saveErr   map[int64]error
	enrichErr map[int64]error
	enriched  []int64
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{albums: map[int64]bool{}}
}

func (w *fakeWriter) AlbumExists(releaseID int64) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.albums[releaseID], nil
}

func (w *fakeWriter) SaveAlbumFromListing(ctx context.Context, listing *discogs.Listing) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.saveErr[listing.Release.ID]; err != nil {
		return err
	}
	w.albums[listing.Release.ID] = true
	return nil
}

func (w *fakeWriter) EnrichAlbum(ctx context.Context, release *discogs.Release) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.enrichErr[release.ID]; err != nil {
		return err
	}
	w.enriched = append(w.enriched, release.ID)
	return nil
}

// eventRecorder collects every emitted event and can trigger a callback, which
// tests use to cancel the job mid-run.
type eventRecorder struct {
	mu     sync.Mutex
	events []recordedEvent
	onEmit func(event string, payload map[string]any)
}

type recordedEvent struct {
	name    string
	payload map[string]any
}

func (r *eventRecorder) Emit(event string, payload map[string]any) {
	r.mu.Lock()
	r.events = append(r.events, recordedEvent{event, payload})
	callback := r.onEmit
	r.mu.Unlock()
	if callback != nil {
		callback(event, payload)
	}
}

func (r *eventRecorder) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.name == name {
			n++
		}
	}
	return n
}

// listings builds n inventory listings with release ids from first upward.
func listings(first, n int) []discogs.Listing {
	out := make([]discogs.Listing, n)
	for i := range out {
		id := int64(first + i)
		out[i] = discogs.Listing{
			ID:     id * 1000,
			Status: "For Sale",
			Release: discogs.ListingRelease{
				ID:    id,
				Title: fmt.Sprintf("Release %d", id),
			},
			Seller: discogs.Seller{ID: 1, Username: "shop"},
		}
	}
	return out
}

func TestRunHappyPath(t *testing.T) {
	catalog := &fakeCatalog{pages: [][]discogs.Listing{
		listings(1, 10),
		listings(11, 10),
	}}
	writer := newFakeWriter()
	writer.albums[1] = true
	writer.albums[2] = true
	writer.albums[3] = true
	recorder := &eventRecorder{}

	job := scraper.New(catalog, writer, recorder)
	result, err := job.Run(context.Background(), "shop", 0, 10)
	require.NoError(t, err)

	assert.Equal(t, data.JobCompleted, job.Status())
	assert.Equal(t, int64(17), result.AlbumsAdded, "already-known releases are not re-saved")
	assert.Equal(t, int64(20), result.AlbumsUpdated, "every seen release gets enriched")
	assert.Equal(t, int64(20), result.TotalItems)

	assert.Equal(t, 2, catalog.inventoryCalls)
	assert.Len(t, catalog.releaseCalls, 20)
	assert.Equal(t, 1, recorder.count(scraper.EventStarted))
	assert.Equal(t, 17, recorder.count(scraper.EventItemSaved))
	assert.Equal(t, 1, recorder.count(scraper.EventCompleted))
	assert.Zero(t, recorder.count(scraper.EventError))

	require.NotEmpty(t, recorder.events)
	assert.Equal(t, scraper.EventStarted, recorder.events[0].name)
	assert.Equal(t, scraper.EventCompleted, recorder.events[len(recorder.events)-1].name)
}

func TestRunHonorsLimit(t *testing.T) {
	catalog := &fakeCatalog{pages: [][]discogs.Listing{
		listings(1, 10),
		listings(11, 10),
		listings(21, 10),
	}}
	writer := newFakeWriter()

	job := scraper.New(catalog, writer, nil)
	result, err := job.Run(context.Background(), "shop", 15, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(15), result.AlbumsAdded)
	assert.Equal(t, int64(15), result.AlbumsUpdated)
	assert.Len(t, catalog.releaseCalls, 15, "enrichment only covers the capped set")
	assert.Equal(t, 2, catalog.inventoryCalls, "paging stops once the limit is reached")
}

func TestRunCancelBeforeStart(t *testing.T) {
	catalog := &fakeCatalog{pages: [][]discogs.Listing{listings(1, 5)}}
	writer := newFakeWriter()

	job := scraper.New(catalog, writer, nil)
	job.Cancel()

	_, err := job.Run(context.Background(), "shop", 0, 10)
	assert.ErrorIs(t, err, scraper.ErrCancelled)
	assert.Equal(t, data.JobCancelled, job.Status())
	assert.Zero(t, catalog.inventoryCalls, "a pre-cancelled job never touches the network")
	assert.Empty(t, writer.albums)
}

func TestRunCancelDuringEnrichment(t *testing.T) {
	catalog := &fakeCatalog{pages: [][]discogs.Listing{listings(1, 20)}}
	writer := newFakeWriter()
	recorder := &eventRecorder{}

	job := scraper.New(catalog, writer, recorder)
	recorder.onEmit = func(event string, payload map[string]any) {
		// cancel as soon as the first enrichment batch reports done
		if event == scraper.EventProgress && payload["batch_info"] != nil {
			job.Cancel()
		}
	}

	_, err := job.Run(context.Background(), "shop", 0, 5)
	assert.ErrorIs(t, err, scraper.ErrCancelled)
	assert.Equal(t, data.JobCancelled, job.Status())

	assert.Len(t, writer.enriched, 5, "completed batches stay persisted")
	assert.Len(t, writer.albums, 20, "phase 1 had already finished")
}

func TestRunCancelViaContext(t *testing.T) {
	catalog := &fakeCatalog{pages: [][]discogs.Listing{listings(1, 5)}}
	writer := newFakeWriter()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	job := scraper.New(catalog, writer, nil)
	_, err := job.Run(ctx, "shop", 0, 10)
	assert.ErrorIs(t, err, scraper.ErrCancelled)
	assert.Equal(t, data.JobCancelled, job.Status())
}

func TestRunAbsorbsSaveFailures(t *testing.T) {
	catalog := &fakeCatalog{pages: [][]discogs.Listing{listings(1, 5)}}
	writer := newFakeWriter()
	writer.saveErr = map[int64]error{3: errors.New("disk full")}
	recorder := &eventRecorder{}

	job := scraper.New(catalog, writer, recorder)
	result, err := job.Run(context.Background(), "shop", 0, 10)
	require.NoError(t, err, "one bad item must not sink the run")

	assert.Equal(t, data.JobCompleted, job.Status())
	assert.Equal(t, int64(4), result.AlbumsAdded)
	assert.Equal(t, int64(4), result.AlbumsUpdated, "the unsaved release is skipped in phase 2")
	assert.Equal(t, 1, recorder.count(scraper.EventError))
	assert.NotContains(t, catalog.releaseCalls, int64(3),
		"no release fetch for an album that was never saved")
}

func TestRunAbsorbsEnrichmentFetchFailures(t *testing.T) {
	catalog := &fakeCatalog{
		pages:      [][]discogs.Listing{listings(1, 5)},
		releaseErr: map[int64]error{2: discogs.ErrNotFound},
	}
	writer := newFakeWriter()
	recorder := &eventRecorder{}

	job := scraper.New(catalog, writer, recorder)
	result, err := job.Run(context.Background(), "shop", 0, 10)
	require.NoError(t, err)

	assert.Equal(t, data.JobCompleted, job.Status())
	assert.Equal(t, int64(5), result.AlbumsAdded)
	assert.Equal(t, int64(4), result.AlbumsUpdated)
	assert.Equal(t, 1, recorder.count(scraper.EventError))
}

func TestRunAbortsOnInventoryFetchError(t *testing.T) {
	catalog := &fakeCatalog{
		pages: [][]discogs.Listing{
			listings(1, 10),
			listings(11, 10),
		},
		pageErr: map[int]error{2: discogs.ErrRateLimited},
	}
	writer := newFakeWriter()

	job := scraper.New(catalog, writer, nil)
	_, err := job.Run(context.Background(), "shop", 0, 10)
	assert.ErrorIs(t, err, discogs.ErrRateLimited)
	assert.Equal(t, data.JobFailed, job.Status())
}

func TestStatusLifecycle(t *testing.T) {
	catalog := &fakeCatalog{pages: [][]discogs.Listing{listings(1, 1)}}
	job := scraper.New(catalog, newFakeWriter(), nil)

	assert.Equal(t, data.JobCreated, job.Status())
	assert.NotEmpty(t, job.ID())

	_, err := job.Run(context.Background(), "shop", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, data.JobCompleted, job.Status())
}
