package discogs

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingToken is returned by New when no access token is configured.
	ErrMissingToken = errors.New("missing discogs token")

	// ErrRateLimited is returned when the API answers 429. The local limiter
	// should make this rare; when it happens anyway, the caller decides
	// whether to retry.
	ErrRateLimited = errors.New("discogs rate limit exceeded")

	// ErrNotFound is returned when a release does not exist.
	ErrNotFound = errors.New("release not found")

	// ErrMalformedResponse is returned when a 2xx body fails to decode.
	ErrMalformedResponse = errors.New("malformed discogs response")

	// ErrTransport wraps network-level failures.
	ErrTransport = errors.New("transport error")
)

// A RemoteError is any non-2xx response other than the ones mapped to
// sentinels above. It carries the status and body for diagnostics.
type RemoteError struct {
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("discogs api returned %d: %s", e.Status, e.Body)
}
