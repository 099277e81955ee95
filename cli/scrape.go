package main

import (
	"context"
	"fmt"
	"log"

	"cratedig/config"
	"cratedig/db"
	"cratedig/discogs"
	"cratedig/scraper"
	"cratedig/subcmd"
)

func scrape(ctx context.Context, cfg *config.Config, db *db.DB, args []string) error {
	sc := subcmd.New("scrape",
		"scrape a seller's marketplace inventory into the local database\n"+
			"requires a discogs token: 'cratedig token -set ...' or DISCOGS_TOKEN").
		SetArg("seller", "string", "discogs username of the seller")
	limit := sc.Int("limit", 0, "stop after this many inventory items (0 = all)")
	batch := sc.Int("batch", cfg.BatchSize, "enrichment batch size")
	if err := sc.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}
	if sc.NArg() != 1 {
		sc.Usage()
		return fmt.Errorf("expected one seller")
	}
	seller := sc.Arg(0)

	token, err := db.DiscogsToken()
	if err != nil {
		return err
	}
	if token == "" && cfg.Token != "" {
		log.Printf("using DISCOGS_TOKEN from the environment")
		token = cfg.Token
	}

	client, err := discogs.New(token)
	if err != nil {
		return err
	}
	client.SetQuota(cfg.RateLimit, cfg.RateWindow)

	job := scraper.New(client, db, scraper.LogEmitter{})
	job.SetPerPage(cfg.PerPage)
	if err := db.CreateJob(job.ID(), seller); err != nil {
		return err
	}

	// Ctrl-C requests cooperative cancellation; the run stops at its next
	// checkpoint rather than aborting in-flight calls.
	go func() {
		<-ctx.Done()
		job.Cancel()
	}()

	result, runErr := job.Run(context.Background(), seller, *limit, *batch)

	var added, updated, total int64
	var errMsg string
	if result != nil {
		added, updated, total = result.AlbumsAdded, result.AlbumsUpdated, result.TotalItems
	}
	if runErr != nil {
		errMsg = runErr.Error()
	}
	if err := db.FinishJob(job.ID(), job.Status(), added, updated, total, errMsg); err != nil {
		log.Printf("failed to record job outcome: %v", err)
	}

	if runErr != nil {
		return runErr
	}

	fmt.Printf("added %d albums, updated %d, out of %d inventory items\n",
		result.AlbumsAdded, result.AlbumsUpdated, result.TotalItems)
	return nil
}
