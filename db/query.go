package db

import (
	"fmt"

	"cratedig/data"
)

func (db *DB) CountAlbums() (int, error) {
	return db.count("albums")
}

func (db *DB) CountTracks() (int, error) {
	return db.count("tracks")
}

func (db *DB) CountSellers() (int, error) {
	return db.count("sellers")
}

func (db *DB) CountCollectionItems() (int, error) {
	return db.count("collection_items")
}

func (db *DB) CountGenres() (int, error) {
	return db.count("genres")
}

func (db *DB) CountStyles() (int, error) {
	return db.count("styles")
}

func (db *DB) CountVideos() (int, error) {
	return db.count("youtube_videos")
}

// CountEnrichedAlbums counts albums that have been through phase 2 at least
// once, approximated as albums with a tracklist.
func (db *DB) CountEnrichedAlbums() (int, error) {
	var count int64
	if err := db.
		Table("albums").
		Where("discogs_release_id in (?)",
			db.Table("tracks").Distinct("album_id")).
		Count(&count).
		Error; err != nil {
		return 0, fmt.Errorf("error counting enriched albums: %w", err)
	}
	return int(count), nil
}

func (db *DB) count(table string) (int, error) {
	var count int64
	if err := db.
		Table(table).
		Count(&count).
		Error; err != nil {
		return 0, fmt.Errorf("error counting %s: %w", table, err)
	}
	return int(count), nil
}

// ListAlbums returns a page of albums, most recently updated first.
func (db *DB) ListAlbums(limit, offset int) ([]data.Album, error) {
	albums := []data.Album{}
	if err := db.
		Order("updated_at desc").
		Limit(limit).
		Offset(offset).
		Find(&albums).
		Error; err != nil {
		return nil, fmt.Errorf("error listing albums: %w", err)
	}
	return albums, nil
}

// GetAlbum returns one album with its tracks, genres, styles, and videos.
func (db *DB) GetAlbum(releaseID string) (*data.Album, error) {
	var album data.Album
	if err := db.
		Where("discogs_release_id = ?", releaseID).
		Take(&album).
		Error; err != nil {
		return nil, fmt.Errorf("error fetching album '%s': %w", releaseID, err)
	}

	if err := db.
		Where("album_id = ?", releaseID).
		Order("id").
		Find(&album.Tracks).
		Error; err != nil {
		return nil, fmt.Errorf("error fetching tracks for album '%s': %w", releaseID, err)
	}

	if err := db.
		Table("genres").
		Joins("join album_genres on album_genres.genre_id = genres.id").
		Where("album_genres.album_id = ?", releaseID).
		Order("genres.name").
		Pluck("genres.name", &album.Genres).
		Error; err != nil {
		return nil, fmt.Errorf("error fetching genres for album '%s': %w", releaseID, err)
	}

	if err := db.
		Table("styles").
		Joins("join album_styles on album_styles.style_id = styles.id").
		Where("album_styles.album_id = ?", releaseID).
		Order("styles.name").
		Pluck("styles.name", &album.Styles).
		Error; err != nil {
		return nil, fmt.Errorf("error fetching styles for album '%s': %w", releaseID, err)
	}

	if err := db.
		Table("youtube_videos").
		Joins("join album_videos on album_videos.video_id = youtube_videos.id").
		Where("album_videos.album_id = ?", releaseID).
		Order("album_videos.order_index").
		Find(&album.Videos).
		Error; err != nil {
		return nil, fmt.Errorf("error fetching videos for album '%s': %w", releaseID, err)
	}

	return &album, nil
}
