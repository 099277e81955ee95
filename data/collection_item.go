package data

// A CollectionItem records one sighting of a listing in a seller's inventory:
// price, condition, and availability at scrape time. Rows are append-only and
// never merged, so repeated scrapes of the same listing accumulate a price
// history rather than overwriting it.
type CollectionItem struct {
	ID              int64 `gorm:"primaryKey"`
	AlbumID         string
	SellerID        int64
	Price           float64
	Currency        string
	Condition       string
	SleeveCondition string
	Notes           string
	IsAvailable     bool
	ItemURL         string
}
