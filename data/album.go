package data

import "database/sql"

// An Album is the locally persisted projection of a Discogs release, keyed by
// the release's numeric id (stored as text). A row is created the first time
// the release is seen in a seller's inventory, holding only the cheap fields
// available from the listing; the enrichment phase fills in the rest.
type Album struct {
	DiscogsReleaseID string `gorm:"primaryKey;column:discogs_release_id"`
	Artist           string
	Title            string
	Label            string
	CatalogNumber    string
	Format           string
	Country          string
	ReleasedYear     int64
	CoverImageURL    string
	ResourceURL      string

	HaveCount    int64
	WantCount    int64
	AvgRating    float64
	RatingsCount int64

	CreatedAt sql.NullTime
	UpdatedAt sql.NullTime

	Tracks []Track  `gorm:"-"`
	Genres []string `gorm:"-"`
	Styles []string `gorm:"-"`
	Videos []Video  `gorm:"-"`
}
