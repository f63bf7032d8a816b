// Package standings turns match records into a ranked table. The computation
// is pure: it never touches the network, the clock (beyond the reference time
// it is handed), or the filesystem.
package standings

import (
	"math"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/courtside/standings-sync/internal/models"
)

const (
	// DefaultWindowMonths is how far back a dated match still counts.
	DefaultWindowMonths = 6

	// DefaultLoserFraction is the consolation share of the match points
	// awarded to each loser, rounded to the nearest point (half up).
	DefaultLoserFraction = 0.10
)

// Row is one line of the ranking table.
type Row struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

// Options tune the aggregation. Zero values fall back to the defaults, so
// callers outside tests normally pass Options{Now: time.Now()}.
type Options struct {
	Now           time.Time
	WindowMonths  int
	LoserFraction float64
}

type tally struct {
	points int
	wins   int
	losses int
}

// Compute aggregates per-entity points, wins, and losses from the given
// matches and produces the sorted ranking.
//
// Rules, applied per match inside the active window:
//   - the match type is the first element of the type-reference list; a match
//     with an empty list or an unresolvable reference contributes nothing
//   - each winner earns the type's full point value and a win
//   - each loser earns the rounded loser fraction of the point value and a loss
//
// Every entity in the canonical list appears in the output exactly once, even
// with no matches. Identifiers that show up in matches but not in the entity
// list are tallied internally and dropped at output time.
func Compute(entities []models.Entity, matches []models.Match, typesByID map[string]models.MatchType, opts Options) []Row {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	windowMonths := opts.WindowMonths
	if windowMonths == 0 {
		windowMonths = DefaultWindowMonths
	}
	loserFraction := opts.LoserFraction
	if loserFraction == 0 {
		loserFraction = DefaultLoserFraction
	}
	cutoff := now.AddDate(0, -windowMonths, 0)

	tallies := make(map[string]*tally, len(entities))
	for _, entity := range entities {
		tallies[entity.ID] = &tally{}
	}

	for _, match := range matches {
		if !inWindow(match.Date, cutoff) {
			continue
		}
		if len(match.TypeIDs) == 0 {
			continue
		}
		matchType, ok := typesByID[match.TypeIDs[0]]
		if !ok {
			continue
		}

		winnerPoints := matchType.Points
		loserPoints := int(math.Round(float64(matchType.Points) * loserFraction))

		for _, id := range match.Winners {
			entry := tallyFor(tallies, id)
			entry.points += winnerPoints
			entry.wins++
		}
		for _, id := range match.Losers {
			entry := tallyFor(tallies, id)
			entry.points += loserPoints
			entry.losses++
		}
	}

	rows := make([]Row, 0, len(entities))
	for _, entity := range entities {
		entry := tallies[entity.ID]
		rows = append(rows, Row{
			Name:   entity.Name,
			Points: entry.points,
			Wins:   entry.wins,
			Losses: entry.losses,
		})
	}

	cl := collate.New(language.English)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return cl.CompareString(rows[i].Name, rows[j].Name) < 0
	})

	return rows
}

// inWindow reports whether a match date keeps the match active. Undated
// matches are always active; dated ones stay active from the cutoff onward,
// future dates included.
func inWindow(date *time.Time, cutoff time.Time) bool {
	if date == nil {
		return true
	}
	return !date.Before(cutoff)
}

func tallyFor(tallies map[string]*tally, id string) *tally {
	if entry, ok := tallies[id]; ok {
		return entry
	}
	entry := &tally{}
	tallies[id] = entry
	return entry
}
