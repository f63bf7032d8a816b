package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntitiesFromRecords(t *testing.T) {
	records := []Record{
		{ID: "rec1", Fields: json.RawMessage(`{"Name": "Ana"}`)},
		{ID: "rec2", Fields: json.RawMessage(`{}`)},
		{ID: "rec3"},
	}

	entities, err := EntitiesFromRecords(records)
	require.NoError(t, err, "Should decode entity records")

	require.Len(t, entities, 3)
	assert.Equal(t, Entity{ID: "rec1", Name: "Ana"}, entities[0])
	assert.Equal(t, Entity{ID: "rec2", Name: "Unknown"}, entities[1], "Missing name should default to Unknown")
	assert.Equal(t, Entity{ID: "rec3", Name: "Unknown"}, entities[2], "Empty fields payload should default to Unknown")
}

func TestEntitiesFromRecords_MalformedFields(t *testing.T) {
	records := []Record{
		{ID: "rec1", Fields: json.RawMessage(`{"Name": 42}`)},
	}

	_, err := EntitiesFromRecords(records)
	require.Error(t, err, "Malformed fields should abort decoding")
	assert.Contains(t, err.Error(), "rec1")
}

func TestSinglesMatchesFromRecords(t *testing.T) {
	records := []Record{
		{ID: "m1", Fields: json.RawMessage(`{
			"Date": "2025-03-01",
			"Match Type": ["mt1"],
			"Winner(s)": ["p1"],
			"Loser(s)": ["p2", "p3"]
		}`)},
	}

	matches, err := SinglesMatchesFromRecords(records)
	require.NoError(t, err)

	require.Len(t, matches, 1)
	m := matches[0]
	assert.Equal(t, "m1", m.ID)
	require.NotNil(t, m.Date)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), *m.Date)
	assert.Equal(t, []string{"mt1"}, m.TypeIDs)
	assert.Equal(t, []string{"p1"}, m.Winners)
	assert.Equal(t, []string{"p2", "p3"}, m.Losers)
}

func TestDoublesMatchesFromRecords(t *testing.T) {
	records := []Record{
		{ID: "d1", Fields: json.RawMessage(`{
			"Date": "2025-04-02T18:30:00Z",
			"Match Type": ["mt2"],
			"Winner Team": ["t1"],
			"Loser Team": ["t2"]
		}`)},
	}

	matches, err := DoublesMatchesFromRecords(records)
	require.NoError(t, err)

	require.Len(t, matches, 1)
	m := matches[0]
	require.NotNil(t, m.Date)
	assert.Equal(t, time.Date(2025, time.April, 2, 18, 30, 0, 0, time.UTC), *m.Date)
	assert.Equal(t, []string{"t1"}, m.Winners)
	assert.Equal(t, []string{"t2"}, m.Losers)
}

func TestMatchDateDefaults(t *testing.T) {
	records := []Record{
		{ID: "m1", Fields: json.RawMessage(`{"Match Type": ["mt1"]}`)},
		{ID: "m2", Fields: json.RawMessage(`{"Date": "not-a-date"}`)},
	}

	matches, err := SinglesMatchesFromRecords(records)
	require.NoError(t, err)

	require.Len(t, matches, 2)
	assert.Nil(t, matches[0].Date, "Absent date should stay nil")
	assert.Nil(t, matches[1].Date, "Unparseable date should be treated as absent")
}

func TestMatchTypesFromRecords(t *testing.T) {
	records := []Record{
		{ID: "mt1", Fields: json.RawMessage(`{"Match Type": "Ladder", "Points": 10, "Active": true}`)},
		{ID: "mt2", Fields: json.RawMessage(`{"Name": "Friendly"}`)},
		{ID: "mt3", Fields: json.RawMessage(`{"Points": 5}`)},
	}

	types, byID, err := MatchTypesFromRecords(records)
	require.NoError(t, err)

	require.Len(t, types, 3)
	assert.Equal(t, MatchType{ID: "mt1", Name: "Ladder", Points: 10, Active: true}, types[0])
	assert.Equal(t, MatchType{ID: "mt2", Name: "Friendly"}, types[1], "Name should fall back to the display field")
	assert.Equal(t, MatchType{ID: "mt3", Name: "Unknown", Points: 5}, types[2], "Nameless type should default to Unknown")

	require.Len(t, byID, 3)
	assert.Equal(t, types[0], byID["mt1"], "Lookup should be keyed by record identifier")
}
