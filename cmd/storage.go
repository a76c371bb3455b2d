package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matheuskafuri/newsdeck/internal/config"
	"github.com/matheuskafuri/newsdeck/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show local store statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := config.StorePath()
		db, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer db.Close()

		count, size, err := db.Stats(dbPath)
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}

		extracted, err := db.Keys("extract:payload:")
		if err != nil {
			return fmt.Errorf("listing extraction entries: %w", err)
		}

		fmt.Printf("Store: %s\n", dbPath)
		fmt.Printf("Entries: %d (%d cached extractions)\n", count, len(extracted))
		fmt.Printf("Size: %s\n", humanize.Bytes(uint64(size)))
		return nil
	},
}
