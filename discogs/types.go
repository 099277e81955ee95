package discogs

// Wire types for the two Discogs endpoints we call. Field names follow the
// API's JSON; only the fields this pipeline reads are declared.

type InventoryResponse struct {
	Pagination Pagination `json:"pagination"`
	Listings   []Listing  `json:"listings"`
}

type Pagination struct {
	PerPage int64 `json:"per_page"`
	Items   int64 `json:"items"`
	Page    int64 `json:"page"`
	Pages   int64 `json:"pages"`
}

// A Listing is one for-sale entry in a seller's inventory. It is transient:
// we project it into albums, sellers, and collection_items but never store it
// as-is.
type Listing struct {
	ID              int64          `json:"id"`
	Status          string         `json:"status"`
	Price           Price          `json:"price"`
	Condition       string         `json:"condition"`
	SleeveCondition string         `json:"sleeve_condition"`
	Comments        string         `json:"comments"`
	URI             string         `json:"uri"`
	Release         ListingRelease `json:"release"`
	Seller          Seller         `json:"seller"`
}

type Price struct {
	Currency string  `json:"currency"`
	Value    float64 `json:"value"`
}

type Seller struct {
	Username    string `json:"username"`
	ID          int64  `json:"id"`
	ResourceURL string `json:"resource_url"`
}

// A ListingRelease is the release summary embedded in a listing. Its numeric
// id is the durable join key to the full release record.
type ListingRelease struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Artist        string `json:"artist"`
	Format        string `json:"format"`
	CatalogNumber string `json:"catalog_number"`
	Year          int64  `json:"year"`
	Thumbnail     string `json:"thumbnail"`
	ResourceURL   string `json:"resource_url"`
}

// A Release is the full catalog record for one edition, fetched during the
// enrichment phase.
type Release struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Artists       []Artist   `json:"artists"`
	Genres        []string   `json:"genres"`
	Styles        []string   `json:"styles"`
	Labels        []Label    `json:"labels"`
	Country       string     `json:"country"`
	Released      string     `json:"released"`
	Year          int64      `json:"year"`
	Format        string     `json:"format"`
	Formats       []Format   `json:"formats"`
	CatalogNumber string     `json:"catalog_number"`
	Tracklist     []Track    `json:"tracklist"`
	Videos        []Video    `json:"videos"`
	Images        []Image    `json:"images"`
	Community     *Community `json:"community"`
	ResourceURL   string     `json:"resource_url"`
}

type Artist struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Label struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	CatNo string `json:"catno"`
}

type Format struct {
	Name         string   `json:"name"`
	Descriptions []string `json:"descriptions"`
	Qty          string   `json:"qty"`
}

type Track struct {
	Position string `json:"position"`
	Title    string `json:"title"`
	Duration string `json:"duration"`
	Type     string `json:"type_"`
}

type Video struct {
	URI         string `json:"uri"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    int64  `json:"duration"`
}

type Image struct {
	URI         string `json:"uri"`
	ResourceURL string `json:"resource_url"`
	Type        string `json:"type"`
}

type Community struct {
	Have   int64   `json:"have"`
	Want   int64   `json:"want"`
	Rating *Rating `json:"rating"`
}

type Rating struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}
