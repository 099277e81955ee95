package main

import (
	"context"
	"fmt"
	"strings"

	"cratedig/db"
	"cratedig/setflag"
	"cratedig/subcmd"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func status(ctx context.Context, db *db.DB, args []string) error {
	sc := subcmd.New("status", "report what has been scraped so far")
	only := setflag.New("albums", "catalog", "marketplace", "jobs")
	sc.Var(only, "only", "limit output to these sections (comma-separated)")
	if err := sc.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	if only.Has("albums") {
		known, err := db.CountAlbums()
		if err != nil {
			return err
		}
		enriched, err := db.CountEnrichedAlbums()
		if err != nil {
			return err
		}
		printSection("albums", known, map[string]int{
			"enriched": enriched,
		})
	}

	if only.Has("catalog") {
		genres, err := db.CountGenres()
		if err != nil {
			return err
		}
		styles, err := db.CountStyles()
		if err != nil {
			return err
		}
		tracks, err := db.CountTracks()
		if err != nil {
			return err
		}
		videos, err := db.CountVideos()
		if err != nil {
			return err
		}
		humanPrinter.Printf("CATALOG\n")
		humanPrinter.Printf("  %d\tgenres\n", genres)
		humanPrinter.Printf("  %d\tstyles\n", styles)
		humanPrinter.Printf("  %d\ttracks\n", tracks)
		humanPrinter.Printf("  %d\tvideos\n", videos)
		humanPrinter.Printf("\n")
	}

	if only.Has("marketplace") {
		sellers, err := db.CountSellers()
		if err != nil {
			return err
		}
		items, err := db.CountCollectionItems()
		if err != nil {
			return err
		}
		humanPrinter.Printf("MARKETPLACE\n")
		humanPrinter.Printf("  %d\tsellers\n", sellers)
		humanPrinter.Printf("  %d\tcollection items\n", items)
		humanPrinter.Printf("\n")
	}

	if only.Has("jobs") {
		jobs, err := db.RecentJobs(10)
		if err != nil {
			return err
		}
		humanPrinter.Printf("RECENT JOBS\n")
		for _, job := range jobs {
			line := fmt.Sprintf("  %s\t%s\t%s\tadded %d, updated %d of %d",
				job.ID, job.Seller, job.Status,
				job.AlbumsAdded, job.AlbumsUpdated, job.TotalItems)
			if job.Error != "" {
				line += "\t" + job.Error
			}
			fmt.Println(line)
		}
		humanPrinter.Printf("\n")
	}

	return nil
}

var humanPrinter = message.NewPrinter(language.English)

func printSection(name string, known int, done map[string]int) {
	humanPrinter.Printf("%s\n", strings.ToUpper(name))
	humanPrinter.Printf("  %d\tknown\n", known)
	for k, v := range done {
		if known > 0 {
			humanPrinter.Printf("  %d\t%s (%.2f%%)\n", v, k, 100.0*float64(v)/float64(known))
		} else {
			humanPrinter.Printf("  %d\t%s\n", v, k)
		}
	}
	humanPrinter.Printf("\n")
}
