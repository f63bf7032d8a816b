// Package report assembles the ranking document and persists it.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/courtside/standings-sync/internal/models"
	"github.com/courtside/standings-sync/internal/standings"
)

// MatchTypeEntry is the published projection of an active match type.
type MatchTypeEntry struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// Document is the full report written for the presentation layer.
type Document struct {
	GeneratedAt string           `json:"generatedAt"`
	Singles     []standings.Row  `json:"singles"`
	Doubles     []standings.Row  `json:"doubles"`
	MatchTypes  []MatchTypeEntry `json:"matchTypes"`
}

// ActiveMatchTypes filters to the active types and sorts them ascending by
// point value for display.
func ActiveMatchTypes(types []models.MatchType) []MatchTypeEntry {
	entries := make([]MatchTypeEntry, 0, len(types))
	for _, mt := range types {
		if !mt.Active {
			continue
		}
		entries = append(entries, MatchTypeEntry{Name: mt.Name, Points: mt.Points})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points < entries[j].Points
	})
	return entries
}

// Build combines the two standings tables and the match-type metadata into
// one document stamped with the generation time.
func Build(singles, doubles []standings.Row, types []models.MatchType, generatedAt time.Time) *Document {
	return &Document{
		GeneratedAt: generatedAt.UTC().Format(time.RFC3339),
		Singles:     singles,
		Doubles:     doubles,
		MatchTypes:  ActiveMatchTypes(types),
	}
}

// Write persists the document as indented JSON, creating parent directories
// as needed. The file is fully overwritten on every run.
func (d *Document) Write(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
