package data

// A Seller is a Discogs marketplace user whose inventory we scrape. Identity
// is the external numeric id; the username is display data and may change.
type Seller struct {
	ID              int64 `gorm:"primaryKey"`
	DiscogsSellerID int64
	Name            string
	URI             string
}
