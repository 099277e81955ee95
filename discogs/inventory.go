package discogs

import "context"

// FetchAllReleaseIDs pages through a seller's entire inventory and returns the
// referenced release ids in arrival order. A limit above zero truncates the
// result to exactly that many ids; zero means unlimited. Any client error
// aborts the whole call.
func FetchAllReleaseIDs(ctx context.Context, c *Client, seller string, limit int) ([]int64, error) {
	var releaseIDs []int64

	for page := 1; ; page++ {
		resp, err := c.GetInventory(ctx, seller, page, MaxPerPage)
		if err != nil {
			return nil, err
		}

		for _, listing := range resp.Listings {
			releaseIDs = append(releaseIDs, listing.Release.ID)
		}

		if limit > 0 && len(releaseIDs) >= limit {
			return releaseIDs[:limit], nil
		}
		if int64(page) >= resp.Pagination.Pages {
			return releaseIDs, nil
		}
	}
}
