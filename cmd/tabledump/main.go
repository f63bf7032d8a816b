// Command tabledump fetches a single table from the tabular service and
// prints its raw records as indented JSON. Debugging aid for checking what
// the service actually returns before it hits the typed decoders.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/courtside/standings-sync/internal/client"
	"github.com/courtside/standings-sync/internal/config"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: tabledump <table>\nknown tables: %s\n", strings.Join(config.Tables, ", "))
		os.Exit(2)
	}
	table := os.Args[1]

	ctx := context.Background()
	cfg := config.MustLoad()

	cl := client.NewClient(
		cfg.AirtableBaseURL,
		config.BaseID,
		cfg.AirtableAPIKey,
		cfg.AirtableTimeout,
	)

	records, err := cl.List(ctx, table)
	if err != nil {
		log.Fatal().Err(err).Str("table", table).Msg("Fetch failed")
	}

	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal records")
	}

	fmt.Println(string(out))
	log.Info().Str("table", table).Int("count", len(records)).Msg("Table dumped")
}
