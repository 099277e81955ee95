package data

// Styles are the finer-grained cousins of genres ("Deep House" under
// "Electronic"). Same dedup and replace-on-enrichment rules as genres.
type Style struct {
	ID   int64 `gorm:"primaryKey"`
	Name string
}

type AlbumStyle struct {
	AlbumID string `gorm:"primaryKey"`
	StyleID int64  `gorm:"primaryKey"`
}
