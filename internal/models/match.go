package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Match is a played match normalized across the singles and doubles tables.
// Winners and Losers hold entity identifiers; TypeIDs holds the match-type
// reference list as stored, of which only the first element is meaningful.
type Match struct {
	ID      string
	Date    *time.Time
	TypeIDs []string
	Winners []string
	Losers  []string
}

// singlesMatchInput is the raw fields payload of the Singles Matches table.
type singlesMatchInput struct {
	Date      string   `json:"Date"`
	MatchType []string `json:"Match Type"`
	Winners   []string `json:"Winner(s)"`
	Losers    []string `json:"Loser(s)"`
}

// doublesMatchInput is the raw fields payload of the Doubles Matches table.
type doublesMatchInput struct {
	Date      string   `json:"Date"`
	MatchType []string `json:"Match Type"`
	Winners   []string `json:"Winner Team"`
	Losers    []string `json:"Loser Team"`
}

// SinglesMatchesFromRecords decodes Singles Matches records.
func SinglesMatchesFromRecords(records []Record) ([]Match, error) {
	matches := make([]Match, 0, len(records))
	for _, rec := range records {
		var input singlesMatchInput
		if len(rec.Fields) > 0 {
			if err := json.Unmarshal(rec.Fields, &input); err != nil {
				return nil, fmt.Errorf("failed to decode singles match record %s: %w", rec.ID, err)
			}
		}
		matches = append(matches, Match{
			ID:      rec.ID,
			Date:    parseMatchDate(input.Date),
			TypeIDs: input.MatchType,
			Winners: input.Winners,
			Losers:  input.Losers,
		})
	}
	return matches, nil
}

// DoublesMatchesFromRecords decodes Doubles Matches records.
func DoublesMatchesFromRecords(records []Record) ([]Match, error) {
	matches := make([]Match, 0, len(records))
	for _, rec := range records {
		var input doublesMatchInput
		if len(rec.Fields) > 0 {
			if err := json.Unmarshal(rec.Fields, &input); err != nil {
				return nil, fmt.Errorf("failed to decode doubles match record %s: %w", rec.ID, err)
			}
		}
		matches = append(matches, Match{
			ID:      rec.ID,
			Date:    parseMatchDate(input.Date),
			TypeIDs: input.MatchType,
			Winners: input.Winners,
			Losers:  input.Losers,
		})
	}
	return matches, nil
}

// parseMatchDate accepts the date formats the service emits. Anything
// unparseable is treated as an absent date, which keeps the match inside
// the active window.
func parseMatchDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			utc := parsed.UTC()
			return &utc
		}
	}
	return nil
}
