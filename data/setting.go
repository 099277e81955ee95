package data

import "database/sql"

// A Setting is one key/value pair, like the Discogs access token.
type Setting struct {
	Key       string `gorm:"primaryKey"`
	Value     string
	UpdatedAt sql.NullTime
}
