// this program scrapes a discogs seller's marketplace inventory into a
// sqlite3 database file.
//
// see db/schema.sql for info about the resulting database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"cratedig/config"
	"cratedig/db"
	"cratedig/scraper"
	"cratedig/sigctx"
)

func main() {
	err := run()
	switch {
	case err == nil:
	case errors.Is(err, scraper.ErrCancelled), errors.Is(err, context.Canceled):
		fmt.Println("cancelled")
		os.Exit(1)
	case errors.Is(err, flag.ErrHelp):
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var usage = strings.TrimSpace(`
usage: cratedig $cmd
valid $cmd are 'scrape', 'albums', 'status', 'token'
for help: cratedig $cmd -help
`)

func run() error {
	ctx := sigctx.New()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if len(os.Args) < 2 {
		return errors.New(usage)
	}
	cmd, args := os.Args[1], os.Args[2:]

	switch cmd {
	case "scrape":
		return scrape(ctx, cfg, db, args)

	case "albums":
		return albums(ctx, db, args)

	case "status":
		return status(ctx, db, args)

	case "token":
		return token(ctx, db, args)

	default:
		return fmt.Errorf("unknown cmd: '%s'\n%s", cmd, usage)
	}
}
