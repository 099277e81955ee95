package data

// A Track is one tracklist row of an enriched Album. Tracks are fully replaced
// on every enrichment, so they carry no identity beyond the generated id.
type Track struct {
	ID       int64 `gorm:"primaryKey"`
	AlbumID  string
	Position string
	Title    string
	Duration string
	Side     string
}
