package models

import (
	"encoding/json"
	"fmt"
)

// MatchType describes how a kind of match is scored.
type MatchType struct {
	ID     string
	Name   string
	Points int
	Active bool
}

// matchTypeInput is the raw fields payload of the Match Types table.
// "Match Type" is the identifier-style label; "Name" is the longer
// display name. Display resolution prefers the label.
type matchTypeInput struct {
	Label  string `json:"Match Type"`
	Name   string `json:"Name"`
	Points int    `json:"Points"`
	Active bool   `json:"Active"`
}

// toMatchType converts raw fields into a MatchType. A missing Points field
// scores zero; a missing name falls back through the label to UnknownName.
func (mi *matchTypeInput) toMatchType(id string) MatchType {
	name := mi.Label
	if name == "" {
		name = mi.Name
	}
	if name == "" {
		name = UnknownName
	}
	return MatchType{
		ID:     id,
		Name:   name,
		Points: mi.Points,
		Active: mi.Active,
	}
}

// MatchTypesFromRecords decodes Match Types records, returning both the
// ordered list and a lookup keyed by record identifier.
func MatchTypesFromRecords(records []Record) ([]MatchType, map[string]MatchType, error) {
	types := make([]MatchType, 0, len(records))
	byID := make(map[string]MatchType, len(records))
	for _, rec := range records {
		var input matchTypeInput
		if len(rec.Fields) > 0 {
			if err := json.Unmarshal(rec.Fields, &input); err != nil {
				return nil, nil, fmt.Errorf("failed to decode match type record %s: %w", rec.ID, err)
			}
		}
		mt := input.toMatchType(rec.ID)
		types = append(types, mt)
		byID[mt.ID] = mt
	}
	return types, byID, nil
}
