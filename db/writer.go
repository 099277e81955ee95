package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cratedig/data"
	"cratedig/discogs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SaveAlbumFromListing projects one inventory listing into the albums,
// sellers, and collection_items tables. The album upsert is idempotent;
// collection items are append-only, one row per sighting.
func (db *DB) SaveAlbumFromListing(ctx context.Context, listing *discogs.Listing) error {
	release := &listing.Release
	if release.ID == 0 {
		return fmt.Errorf("no release id")
	}

	now := sql.NullTime{Time: time.Now(), Valid: true}
	album := data.Album{
		DiscogsReleaseID: strconv.FormatInt(release.ID, 10),
		Artist:           release.Artist,
		Title:            release.Title,
		CatalogNumber:    release.CatalogNumber,
		Format:           release.Format,
		ReleasedYear:     release.Year,
		CoverImageURL:    release.Thumbnail,
		ResourceURL:      release.ResourceURL,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("canceled: %w", err)
		}

		if err := tx.
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "discogs_release_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"artist", "title", "catalog_number", "format",
					"released_year", "cover_image_url", "resource_url",
					"updated_at",
				}),
			}).
			Create(&album).
			Error; err != nil {
			return fmt.Errorf("error saving album '%s': %w", album.DiscogsReleaseID, err)
		}

		sellerID, err := upsertSeller(tx, &listing.Seller)
		if err != nil {
			return err
		}

		item := data.CollectionItem{
			AlbumID:         album.DiscogsReleaseID,
			SellerID:        sellerID,
			Price:           listing.Price.Value,
			Currency:        listing.Price.Currency,
			Condition:       listing.Condition,
			SleeveCondition: listing.SleeveCondition,
			Notes:           listing.Comments,
			IsAvailable:     listing.Status == "For Sale",
			ItemURL:         listing.URI,
		}
		if err := tx.Create(&item).Error; err != nil {
			return fmt.Errorf("error saving collection item for album '%s': %w", album.DiscogsReleaseID, err)
		}

		return nil
	})
}

// upsertSeller inserts or updates the seller by its external id (last write
// wins on name and uri) and returns the internal row id.
func upsertSeller(tx *gorm.DB, seller *discogs.Seller) (int64, error) {
	if err := tx.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "discogs_seller_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "uri"}),
		}).
		Create(&data.Seller{
			DiscogsSellerID: seller.ID,
			Name:            seller.Username,
			URI:             seller.ResourceURL,
		}).
		Error; err != nil {
		return 0, fmt.Errorf("error saving seller '%s': %w", seller.Username, err)
	}

	var row data.Seller
	if err := tx.
		Where("discogs_seller_id = ?", seller.ID).
		Take(&row).
		Error; err != nil {
		return 0, fmt.Errorf("error resolving seller id for '%s': %w", seller.Username, err)
	}
	return row.ID, nil
}

// EnrichAlbum completes an album row from the full release record, then
// replaces its genre links, style links, and tracks with the latest sets and
// upserts its videos. Everything happens in one transaction so a failure
// never leaves the link tables half-replaced.
func (db *DB) EnrichAlbum(ctx context.Context, release *discogs.Release) error {
	if release.ID == 0 {
		return fmt.Errorf("no release id")
	}
	albumID := strconv.FormatInt(release.ID, 10)

	updates := map[string]interface{}{
		"artist":          enrichArtist(release),
		"title":           release.Title,
		"label":           enrichLabel(release),
		"catalog_number":  enrichCatalogNumber(release),
		"format":          enrichFormat(release),
		"country":         release.Country,
		"released_year":   enrichYear(release),
		"cover_image_url": enrichCoverImage(release),
		"resource_url":    release.ResourceURL,
		"updated_at":      time.Now(),
	}
	if c := release.Community; c != nil {
		updates["have_count"] = c.Have
		updates["want_count"] = c.Want
		if c.Rating != nil {
			updates["avg_rating"] = c.Rating.Average
			updates["ratings_count"] = c.Rating.Count
		}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("canceled: %w", err)
		}

		if err := tx.
			Table("albums").
			Where("discogs_release_id = ?", albumID).
			Updates(updates).
			Error; err != nil {
			return fmt.Errorf("error updating album '%s': %w", albumID, err)
		}

		if err := replaceGenres(tx, albumID, release.Genres); err != nil {
			return err
		}
		if err := replaceStyles(tx, albumID, release.Styles); err != nil {
			return err
		}
		if err := replaceTracks(tx, albumID, release.Tracklist); err != nil {
			return err
		}
		if err := saveVideos(tx, albumID, release.Videos); err != nil {
			return err
		}

		return nil
	})
}

// replaceGenres makes the album's genre links reflect exactly the given set.
func replaceGenres(tx *gorm.DB, albumID string, genres []string) error {
	if err := tx.
		Where("album_id = ?", albumID).
		Delete(&data.AlbumGenre{}).
		Error; err != nil {
		return fmt.Errorf("error clearing genres for album '%s': %w", albumID, err)
	}

	for _, name := range genres {
		if name == "" {
			continue
		}
		if err := tx.
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&data.Genre{Name: name}).
			Error; err != nil {
			return fmt.Errorf("error inserting genre '%s': %w", name, err)
		}

		var genre data.Genre
		if err := tx.
			Where("name = ?", name).
			Take(&genre).
			Error; err != nil {
			return fmt.Errorf("error resolving genre '%s': %w", name, err)
		}

		if err := tx.
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&data.AlbumGenre{AlbumID: albumID, GenreID: genre.ID}).
			Error; err != nil {
			return fmt.Errorf("error linking genre '%s' to album '%s': %w", name, albumID, err)
		}
	}

	return nil
}

func replaceStyles(tx *gorm.DB, albumID string, styles []string) error {
	if err := tx.
		Where("album_id = ?", albumID).
		Delete(&data.AlbumStyle{}).
		Error; err != nil {
		return fmt.Errorf("error clearing styles for album '%s': %w", albumID, err)
	}

	for _, name := range styles {
		if name == "" {
			continue
		}
		if err := tx.
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&data.Style{Name: name}).
			Error; err != nil {
			return fmt.Errorf("error inserting style '%s': %w", name, err)
		}

		var style data.Style
		if err := tx.
			Where("name = ?", name).
			Take(&style).
			Error; err != nil {
			return fmt.Errorf("error resolving style '%s': %w", name, err)
		}

		if err := tx.
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&data.AlbumStyle{AlbumID: albumID, StyleID: style.ID}).
			Error; err != nil {
			return fmt.Errorf("error linking style '%s' to album '%s': %w", name, albumID, err)
		}
	}

	return nil
}

func replaceTracks(tx *gorm.DB, albumID string, tracks []discogs.Track) error {
	if err := tx.
		Where("album_id = ?", albumID).
		Delete(&data.Track{}).
		Error; err != nil {
		return fmt.Errorf("error clearing tracks for album '%s': %w", albumID, err)
	}

	for _, track := range tracks {
		if err := tx.
			Create(&data.Track{
				AlbumID:  albumID,
				Position: track.Position,
				Title:    track.Title,
				Duration: track.Duration,
				Side:     trackSide(track.Position),
			}).
			Error; err != nil {
			return fmt.Errorf("error saving track '%s' for album '%s': %w", track.Title, albumID, err)
		}
	}

	return nil
}

// saveVideos upserts each video by the id extracted from its watch URL and
// links it to the album at its position in the release's video list. Existing
// links are kept as-is, so reordering across rescrapes is not reflected.
func saveVideos(tx *gorm.DB, albumID string, videos []discogs.Video) error {
	for index, video := range videos {
		id := videoID(video.URI)
		if id == "" {
			continue
		}

		if err := tx.
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&data.Video{ID: id, Title: video.Title, URL: video.URI}).
			Error; err != nil {
			return fmt.Errorf("error saving video '%s': %w", id, err)
		}

		if err := tx.
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&data.AlbumVideo{
				AlbumID:    albumID,
				VideoID:    id,
				OrderIndex: int64(index),
			}).
			Error; err != nil {
			return fmt.Errorf("error linking video '%s' to album '%s': %w", id, albumID, err)
		}
	}

	return nil
}

// AlbumExists reports whether a release has been seen in some inventory
// listing. Enrichment never creates album rows, only updates them.
func (db *DB) AlbumExists(releaseID int64) (bool, error) {
	var count int64
	if err := db.
		Table("albums").
		Where("discogs_release_id = ?", strconv.FormatInt(releaseID, 10)).
		Count(&count).
		Error; err != nil {
		return false, fmt.Errorf("error checking album '%d': %w", releaseID, err)
	}
	return count > 0, nil
}

// enrichArtist and friends resolve the release's partially-overlapping
// optional fields with one fallback chain per field.

func enrichArtist(release *discogs.Release) string {
	if len(release.Artists) > 0 {
		return release.Artists[0].Name
	}
	return ""
}

func enrichLabel(release *discogs.Release) string {
	if len(release.Labels) > 0 {
		return release.Labels[0].Name
	}
	return ""
}

func enrichCatalogNumber(release *discogs.Release) string {
	if len(release.Labels) > 0 && release.Labels[0].CatNo != "" {
		return release.Labels[0].CatNo
	}
	return release.CatalogNumber
}

// enrichFormat prefers the structured format list, joining the format name
// with its descriptions ("Vinyl, LP, Album"), and falls back to the flat
// format string.
func enrichFormat(release *discogs.Release) string {
	if len(release.Formats) > 0 {
		format := release.Formats[0]
		parts := append([]string{format.Name}, format.Descriptions...)
		return strings.Join(parts, ", ")
	}
	return release.Format
}

// enrichYear uses the explicit year when present, otherwise the leading year
// component of the release-date string ("1977-06-10" -> 1977).
func enrichYear(release *discogs.Release) int64 {
	if release.Year != 0 {
		return release.Year
	}
	leading, _, _ := strings.Cut(release.Released, "-")
	year, err := strconv.ParseInt(leading, 10, 64)
	if err != nil {
		return 0
	}
	return year
}

// enrichCoverImage prefers the image flagged "primary", else the first image;
// within an image, the uri over the resource url.
func enrichCoverImage(release *discogs.Release) string {
	if len(release.Images) == 0 {
		return ""
	}
	img := release.Images[0]
	for _, candidate := range release.Images {
		if candidate.Type == "primary" {
			img = candidate
			break
		}
	}
	if img.URI != "" {
		return img.URI
	}
	return img.ResourceURL
}

// videoID extracts the YouTube video id from a watch URL. URIs without a
// watch?v= parameter yield "" and are skipped by the caller.
func videoID(uri string) string {
	_, after, found := strings.Cut(uri, "watch?v=")
	if !found {
		return ""
	}
	id, _, _ := strings.Cut(after, "&")
	return id
}

func trackSide(position string) string {
	if position == "" {
		return ""
	}
	return string([]rune(position)[0])
}
