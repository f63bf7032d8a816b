package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/standings-sync/internal/client"
	"github.com/courtside/standings-sync/internal/config"
	"github.com/courtside/standings-sync/internal/report"
)

func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	return &config.Config{
		AirtableAPIKey:  "test-key",
		AirtableBaseURL: baseURL,
		AirtableTimeout: 5 * time.Second,
		OutputPath:      filepath.Join(t.TempDir(), "data", "standings.json"),
	}
}

func tableHandler(t *testing.T, pages map[string]string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		table := filepath.Base(r.URL.Path)
		body, ok := pages[table]
		if !ok {
			t.Errorf("unexpected table request %q", table)
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	}
}

func TestRunnerRun_EndToEnd(t *testing.T) {
	recentDate := time.Now().AddDate(0, -1, 0).Format("2006-01-02")
	staleDate := time.Now().AddDate(0, -8, 0).Format("2006-01-02")

	pages := map[string]string{
		"Players": `{"records": [
			{"id": "p1", "fields": {"Name": "Ana"}},
			{"id": "p2", "fields": {"Name": "Ben"}}
		]}`,
		"Singles Matches": `{"records": [
			{"id": "m1", "fields": {"Date": "` + recentDate + `", "Match Type": ["mt1"], "Winner(s)": ["p1"], "Loser(s)": ["p2"]}},
			{"id": "m2", "fields": {"Date": "` + staleDate + `", "Match Type": ["mt1"], "Winner(s)": ["p2"], "Loser(s)": ["p1"]}}
		]}`,
		"Teams": `{"records": [
			{"id": "t1", "fields": {"Name": "Aces"}}
		]}`,
		"Doubles Matches": `{"records": []}`,
		"Match Types": `{"records": [
			{"id": "mt1", "fields": {"Match Type": "Ladder", "Points": 10, "Active": true}},
			{"id": "mt2", "fields": {"Match Type": "Retired", "Points": 50}}
		]}`,
	}

	server := httptest.NewServer(tableHandler(t, pages))
	defer server.Close()

	cfg := testConfig(t, server.URL)
	cl := client.NewClient(cfg.AirtableBaseURL, config.BaseID, cfg.AirtableAPIKey, cfg.AirtableTimeout)
	runner := NewRunner(cfg, cl)

	require.NoError(t, runner.Run(context.Background()), "Run should complete")

	data, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err, "Report should be written to the configured path")

	var doc report.Document
	require.NoError(t, json.Unmarshal(data, &doc))

	_, err = time.Parse(time.RFC3339, doc.GeneratedAt)
	assert.NoError(t, err, "Generation timestamp should be RFC3339")

	// The stale match is outside the six-month window, so only m1 counts.
	require.Len(t, doc.Singles, 2)
	assert.Equal(t, "Ana", doc.Singles[0].Name)
	assert.Equal(t, 10, doc.Singles[0].Points)
	assert.Equal(t, 1, doc.Singles[0].Wins)
	assert.Equal(t, "Ben", doc.Singles[1].Name)
	assert.Equal(t, 1, doc.Singles[1].Points, "Loser should keep the consolation point")
	assert.Equal(t, 1, doc.Singles[1].Losses)

	require.Len(t, doc.Doubles, 1)
	assert.Equal(t, "Aces", doc.Doubles[0].Name)
	assert.Equal(t, 0, doc.Doubles[0].Points)

	assert.Equal(t, []report.MatchTypeEntry{{Name: "Ladder", Points: 10}}, doc.MatchTypes,
		"Only active match types should be published")
}

func TestRunnerRun_FetchFailureAbortsWithoutWriting(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if filepath.Base(r.URL.Path) == "Match Types" {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"records": []}`)
	}))
	defer server.Close()

	cfg := testConfig(t, server.URL)
	cl := client.NewClient(cfg.AirtableBaseURL, config.BaseID, cfg.AirtableAPIKey, cfg.AirtableTimeout)
	runner := NewRunner(cfg, cl)

	err := runner.Run(context.Background())
	require.Error(t, err, "A single table failure should abort the whole run")
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "quota exceeded")

	_, statErr := os.Stat(cfg.OutputPath)
	assert.True(t, os.IsNotExist(statErr), "No partial report should be written on failure")
}
