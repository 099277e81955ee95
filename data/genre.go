package data

// Genres are global deduplicated labels like "Electronic" or "Jazz".
//
// Genres have many albums via the association table album_genres.
type Genre struct {
	ID   int64 `gorm:"primaryKey"`
	Name string
}

// An AlbumGenre links an album to a genre. The links for an album reflect only
// its most recent enrichment.
type AlbumGenre struct {
	AlbumID string `gorm:"primaryKey"`
	GenreID int64  `gorm:"primaryKey"`
}
