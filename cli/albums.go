package main

import (
	"context"
	"fmt"
	"strings"

	"cratedig/db"
	"cratedig/subcmd"
)

func albums(ctx context.Context, db *db.DB, args []string) error {
	sc := subcmd.New("albums", "list scraped albums, or show one in detail").
		SetArg("release-id", "string", "optional discogs release id to show in full")
	limit := sc.Int("limit", 20, "how many albums to list")
	offset := sc.Int("offset", 0, "how many albums to skip")
	if err := sc.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	if sc.NArg() > 0 {
		return showAlbum(db, sc.Arg(0))
	}

	albums, err := db.ListAlbums(*limit, *offset)
	if err != nil {
		return err
	}
	for _, album := range albums {
		fmt.Printf("%s\t%s - %s", album.DiscogsReleaseID, album.Artist, album.Title)
		if album.ReleasedYear != 0 {
			fmt.Printf(" (%d)", album.ReleasedYear)
		}
		fmt.Println()
	}
	return nil
}

func showAlbum(db *db.DB, releaseID string) error {
	album, err := db.GetAlbum(releaseID)
	if err != nil {
		return err
	}

	fmt.Printf("%s - %s\n", album.Artist, album.Title)
	if album.Label != "" {
		fmt.Printf("label:\t%s", album.Label)
		if album.CatalogNumber != "" {
			fmt.Printf(" (%s)", album.CatalogNumber)
		}
		fmt.Println()
	}
	if album.Format != "" {
		fmt.Printf("format:\t%s\n", album.Format)
	}
	if album.Country != "" {
		fmt.Printf("country:\t%s\n", album.Country)
	}
	if album.ReleasedYear != 0 {
		fmt.Printf("year:\t%d\n", album.ReleasedYear)
	}
	if len(album.Genres) > 0 {
		fmt.Printf("genres:\t%s\n", strings.Join(album.Genres, ", "))
	}
	if len(album.Styles) > 0 {
		fmt.Printf("styles:\t%s\n", strings.Join(album.Styles, ", "))
	}
	if album.RatingsCount > 0 {
		fmt.Printf("rating:\t%.2f (%d ratings, %d have, %d want)\n",
			album.AvgRating, album.RatingsCount, album.HaveCount, album.WantCount)
	}
	for _, track := range album.Tracks {
		fmt.Printf("  %s\t%s", track.Position, track.Title)
		if track.Duration != "" {
			fmt.Printf("\t%s", track.Duration)
		}
		fmt.Println()
	}
	for _, video := range album.Videos {
		fmt.Printf("  video:\t%s\t%s\n", video.Title, video.URL)
	}
	return nil
}
