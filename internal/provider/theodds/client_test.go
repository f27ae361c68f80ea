// internal/provider/theodds/client_test.go
package theodds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"paperbook/internal/util"
)

func TestGetOddsUnknownSportKey(t *testing.T) {
	client := NewClient("", "test-key", 5*time.Second, nil)

	_, err := client.GetOdds(context.Background(), "underwater_hockey")
	assert.Error(t, err)
	assert.True(t, util.IsError(err, util.ErrInvalidInput))
}

func TestGetOddsParsesFeedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sports/icehockey_nhl/odds", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		assert.Equal(t, "american", r.URL.Query().Get("oddsFormat"))

		w.Header().Set("x-requests-remaining", "480")
		w.Header().Set("x-requests-used", "20")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{
				"id": "abc123",
				"sport_key": "icehockey_nhl",
				"sport_title": "NHL",
				"commence_time": "2026-09-01T00:00:00Z",
				"home_team": "Toronto Maple Leafs",
				"away_team": "Montreal Canadiens",
				"bookmakers": [
					{
						"key": "draftkings",
						"title": "DraftKings",
						"markets": [
							{
								"key": "h2h",
								"outcomes": [
									{"name": "Toronto Maple Leafs", "price": -130},
									{"name": "Montreal Canadiens", "price": 110}
								]
							}
						]
					}
				]
			}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5*time.Second, nil)

	events, err := client.GetOdds(context.Background(), "hockey_nhl")
	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, "abc123", events[0].ID)
	// feed keys are translated back to our internal sport naming
	assert.Equal(t, "hockey_nhl", events[0].SportKey)
	assert.Equal(t, "Toronto Maple Leafs", events[0].HomeTeam)
	assert.Len(t, events[0].Bookmakers, 1)
	assert.Equal(t, float64(-130), events[0].Bookmakers[0].Markets[0].Outcomes[0].Price)

	q := client.Quota()
	if assert.NotNil(t, q.Remaining) {
		assert.Equal(t, 480, *q.Remaining)
	}
	if assert.NotNil(t, q.Used) {
		assert.Equal(t, 20, *q.Used)
	}
}

func TestGetOddsRetriesServerErrors(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5*time.Second, nil)

	events, err := client.GetOdds(context.Background(), "basketball_nba")
	assert.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, 2, calls)
}

func TestGetCompletedGamesParsesScores(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sports/baseball_mlb/scores", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("daysFrom"))

		w.Write([]byte(`[
			{
				"id": "game-1",
				"sport_key": "baseball_mlb",
				"commence_time": "2026-08-30T23:00:00Z",
				"completed": true,
				"home_team": "New York Yankees",
				"away_team": "Boston Red Sox",
				"scores": [
					{"name": "New York Yankees", "score": "7"},
					{"name": "Boston Red Sox", "score": "4"}
				]
			},
			{
				"id": "game-2",
				"sport_key": "baseball_mlb",
				"commence_time": "2026-08-31T23:00:00Z",
				"completed": false,
				"home_team": "Houston Astros",
				"away_team": "Texas Rangers",
				"scores": null
			}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5*time.Second, nil)

	games, err := client.GetCompletedGames(context.Background(), "baseball_mlb", 10)
	assert.NoError(t, err)
	assert.Len(t, games, 1)
	assert.Equal(t, "game-1", games[0].ID)
	assert.Equal(t, 7, games[0].HomeScore)
	assert.Equal(t, 4, games[0].AwayScore)
	assert.True(t, games[0].Completed)
}

func TestSyntheticFallbackWithoutAPIKey(t *testing.T) {
	client := NewClient("", "", 5*time.Second, nil)

	events, err := client.GetOdds(context.Background(), "soccer_epl")
	assert.NoError(t, err)
	assert.Len(t, events, 3)

	for _, event := range events {
		assert.NotEmpty(t, event.ID)
		assert.Equal(t, "soccer_epl", event.SportKey)
		assert.NotEmpty(t, event.HomeTeam)
		assert.NotEmpty(t, event.AwayTeam)
		assert.NotEmpty(t, event.Bookmakers)

		markets := event.Bookmakers[0].Markets
		assert.Len(t, markets, 3)
		assert.Equal(t, "h2h", markets[0].Key)
		assert.Equal(t, "spreads", markets[1].Key)
		assert.Equal(t, "totals", markets[2].Key)
	}

	// prices are stable per sport between calls
	again, err := client.GetOdds(context.Background(), "soccer_epl")
	assert.NoError(t, err)
	assert.Equal(t,
		events[0].Bookmakers[0].Markets[0].Outcomes[0].Price,
		again[0].Bookmakers[0].Markets[0].Outcomes[0].Price)
}

func TestSyntheticSportsListedWithoutAPIKey(t *testing.T) {
	client := NewClient("", "", 5*time.Second, nil)

	sports, err := client.GetSports(context.Background())
	assert.NoError(t, err)
	assert.NotEmpty(t, sports)
	for _, s := range sports {
		assert.True(t, s.Active)
	}
}
