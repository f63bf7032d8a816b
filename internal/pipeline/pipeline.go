// Package pipeline orchestrates one sync run: fetch the five tables,
// aggregate both brackets, assemble the report, write it out.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/courtside/standings-sync/internal/client"
	"github.com/courtside/standings-sync/internal/config"
	"github.com/courtside/standings-sync/internal/metrics"
	"github.com/courtside/standings-sync/internal/models"
	"github.com/courtside/standings-sync/internal/report"
	"github.com/courtside/standings-sync/internal/standings"
)

// Runner executes sync runs against a fixed configuration.
type Runner struct {
	cfg    *config.Config
	client *client.Client
}

// NewRunner creates a new pipeline runner
func NewRunner(cfg *config.Config, cl *client.Client) *Runner {
	return &Runner{cfg: cfg, client: cl}
}

// Run performs a full fetch -> aggregate -> write cycle. The five table
// fetches run concurrently; the first failure cancels the rest and aborts
// the run before anything is written.
func (r *Runner) Run(ctx context.Context) error {
	start := time.Now()

	err := r.run(ctx)
	if err != nil {
		metrics.RecordRun("failure", time.Since(start).Seconds())
		return err
	}

	metrics.RecordRun("success", time.Since(start).Seconds())
	log.Info().
		Dur("duration", time.Since(start)).
		Str("output", r.cfg.OutputPath).
		Msg("Sync run complete")
	return nil
}

func (r *Runner) run(ctx context.Context) error {
	var (
		playerRecords  []models.Record
		singlesRecords []models.Record
		teamRecords    []models.Record
		doublesRecords []models.Record
		typeRecords    []models.Record
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		var err error
		playerRecords, err = r.client.List(ctx, config.TablePlayers)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		singlesRecords, err = r.client.List(ctx, config.TableSinglesMatches)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		teamRecords, err = r.client.List(ctx, config.TableTeams)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		doublesRecords, err = r.client.List(ctx, config.TableDoublesMatches)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		typeRecords, err = r.client.List(ctx, config.TableMatchTypes)
		return err
	})
	if err := p.Wait(); err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	log.Info().
		Int("players", len(playerRecords)).
		Int("singles_matches", len(singlesRecords)).
		Int("teams", len(teamRecords)).
		Int("doubles_matches", len(doublesRecords)).
		Int("match_types", len(typeRecords)).
		Msg("All tables fetched")

	players, err := models.EntitiesFromRecords(playerRecords)
	if err != nil {
		return err
	}
	teams, err := models.EntitiesFromRecords(teamRecords)
	if err != nil {
		return err
	}
	singlesMatches, err := models.SinglesMatchesFromRecords(singlesRecords)
	if err != nil {
		return err
	}
	doublesMatches, err := models.DoublesMatchesFromRecords(doublesRecords)
	if err != nil {
		return err
	}
	matchTypes, typesByID, err := models.MatchTypesFromRecords(typeRecords)
	if err != nil {
		return err
	}

	opts := standings.Options{
		Now:           time.Now(),
		WindowMonths:  config.WindowMonths,
		LoserFraction: config.LoserFraction,
	}
	singlesRows := standings.Compute(players, singlesMatches, typesByID, opts)
	doublesRows := standings.Compute(teams, doublesMatches, typesByID, opts)
	metrics.RecordStandings("singles", len(singlesRows))
	metrics.RecordStandings("doubles", len(doublesRows))

	doc := report.Build(singlesRows, doublesRows, matchTypes, time.Now())
	if err := doc.Write(r.cfg.OutputPath); err != nil {
		return err
	}

	return nil
}
