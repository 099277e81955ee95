package main

import (
	"context"
	"fmt"

	"cratedig/db"
	"cratedig/subcmd"
)

func token(ctx context.Context, db *db.DB, args []string) error {
	sc := subcmd.New("token", "read or store the discogs access token")
	set := sc.String("set", "", "store this token in the settings table")
	if err := sc.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	if *set != "" {
		if err := db.SetDiscogsToken(*set); err != nil {
			return err
		}
		fmt.Println("token stored")
		return nil
	}

	stored, err := db.DiscogsToken()
	if err != nil {
		return err
	}
	if stored == "" {
		fmt.Println("no token stored")
		return nil
	}
	fmt.Printf("token stored (%d characters)\n", len(stored))
	return nil
}
