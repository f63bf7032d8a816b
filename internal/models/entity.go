package models

import (
	"encoding/json"
	"fmt"
)

// UnknownName is used whenever a record carries no display name.
const UnknownName = "Unknown"

// Entity is a ranked competitor: an individual player in the singles
// bracket or a doubles team in the doubles bracket.
type Entity struct {
	ID   string
	Name string
}

// entityInput is the raw fields payload shared by the Players and Teams tables.
type entityInput struct {
	Name string `json:"Name"`
}

// toEntity converts raw fields into an Entity, defaulting the display name.
func (ei *entityInput) toEntity(id string) Entity {
	name := ei.Name
	if name == "" {
		name = UnknownName
	}
	return Entity{ID: id, Name: name}
}

// EntitiesFromRecords decodes a page-complete record list from the Players or
// Teams table into entities. Record order is preserved.
func EntitiesFromRecords(records []Record) ([]Entity, error) {
	entities := make([]Entity, 0, len(records))
	for _, rec := range records {
		var input entityInput
		if len(rec.Fields) > 0 {
			if err := json.Unmarshal(rec.Fields, &input); err != nil {
				return nil, fmt.Errorf("failed to decode entity record %s: %w", rec.ID, err)
			}
		}
		entities = append(entities, input.toEntity(rec.ID))
	}
	return entities, nil
}
