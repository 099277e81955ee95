package data

// A Video is a promotional YouTube video attached to a release, keyed by the
// video id extracted from its watch URL.
type Video struct {
	ID    string `gorm:"primaryKey;column:id"`
	Title string
	URL   string
}

func (Video) TableName() string { return "youtube_videos" }

// An AlbumVideo links an album to a video, preserving the order the videos
// appeared in on the release page.
type AlbumVideo struct {
	AlbumID    string `gorm:"primaryKey"`
	VideoID    string `gorm:"primaryKey"`
	OrderIndex int64
}
