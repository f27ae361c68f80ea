// internal/provider/theodds/client.go

// Package theodds is a client for The-Odds-API v4. It serves live
// bookmaker odds and completed-game scores, tracks the key's request
// quota from response headers, and caches responses in Redis. When no
// API key is configured it falls back to deterministic synthetic
// events so the rest of the system stays usable in development.
package theodds

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"paperbook/internal/domain"
	"paperbook/internal/util"
)

const (
	defaultBaseURL = "https://api.the-odds-api.com/v4"
	defaultRegions = "us"
	defaultMarkets = "h2h,spreads,totals"
	maxScoreDays   = 3
	maxRetries     = 2
)

// sportKeyMap translates our internal sport keys to the feed's keys.
var sportKeyMap = map[string]string{
	"basketball_nba":   "basketball_nba",
	"basketball_wnba":  "basketball_wnba",
	"basketball_ncaab": "basketball_ncaab",
	"football_nfl":     "americanfootball_nfl",
	"football_ncaaf":   "americanfootball_ncaaf",
	"baseball_mlb":     "baseball_mlb",
	"hockey_nhl":       "icehockey_nhl",
	"soccer_epl":       "soccer_epl",
	"soccer_laliga":    "soccer_spain_la_liga",
	"soccer_mls":       "soccer_usa_mls",
	"mma_ufc":          "mma_mixed_martial_arts",
}

// Sport describes one sport offered by the feed.
type Sport struct {
	Key          string `json:"key"`
	Group        string `json:"group"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Active       bool   `json:"active"`
	HasOutrights bool   `json:"has_outrights"`
}

type scoreEntry struct {
	Name  string `json:"name"`
	Score string `json:"score"`
}

type scoreEvent struct {
	ID           string       `json:"id"`
	SportKey     string       `json:"sport_key"`
	CommenceTime time.Time    `json:"commence_time"`
	Completed    bool         `json:"completed"`
	HomeTeam     string       `json:"home_team"`
	AwayTeam     string       `json:"away_team"`
	Scores       []scoreEntry `json:"scores"`
}

// Client talks to The-Odds-API. Zero value is not usable; construct
// with NewClient.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	quota      *quota
	cache      *Cache
}

// NewClient builds a feed client. cache may be nil to disable caching,
// and apiKey may be empty to run on synthetic events only.
func NewClient(baseURL, apiKey string, timeout time.Duration, cache *Cache) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		quota:      &quota{},
		cache:      cache,
	}
}

// Quota reports the key's request allowance as of the last response.
func (c *Client) Quota() QuotaSnapshot {
	return c.quota.snapshot()
}

// get fetches path with query params, retrying transient failures with
// exponential backoff, and decodes the JSON body into dest.
func (c *Client) get(ctx context.Context, path string, params url.Values, dest any) error {
	params.Set("apiKey", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<attempt) * 250 * time.Millisecond
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return fmt.Errorf("creating odds feed request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		c.quota.updateFromHeaders(resp.Header)

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("odds feed returned status %d", resp.StatusCode)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return fmt.Errorf("odds feed returned status %d: %s", resp.StatusCode, string(body))
		}

		err = json.NewDecoder(resp.Body).Decode(dest)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("decoding odds feed response: %w", err)
		}
		return nil
	}

	return fmt.Errorf("odds feed request failed after retries: %w", lastErr)
}

// GetSports lists the feed's active sports.
func (c *Client) GetSports(ctx context.Context) ([]Sport, error) {
	if c.apiKey == "" {
		return syntheticSports(), nil
	}

	var sports []Sport
	if err := c.get(ctx, "/sports", url.Values{}, &sports); err != nil {
		return nil, err
	}

	active := sports[:0]
	for _, s := range sports {
		if s.Active {
			active = append(active, s)
		}
	}
	return active, nil
}

// GetOdds returns upcoming events with bookmaker odds for a sport,
// identified by our internal sport key. Responses are cached; when no
// API key is configured, deterministic synthetic events are returned.
func (c *Client) GetOdds(ctx context.Context, sportKey string) ([]domain.Event, error) {
	apiSportKey, ok := sportKeyMap[sportKey]
	if !ok {
		return nil, fmt.Errorf("%w: unknown sport key %q", util.ErrInvalidInput, sportKey)
	}

	if c.apiKey == "" {
		return syntheticEvents(sportKey, apiSportKey), nil
	}

	cacheKey := "odds:" + apiSportKey
	var events []domain.Event
	if c.cache.Get(ctx, cacheKey, &events) {
		return events, nil
	}

	params := url.Values{}
	params.Set("regions", defaultRegions)
	params.Set("markets", defaultMarkets)
	params.Set("oddsFormat", "american")

	if err := c.get(ctx, "/sports/"+apiSportKey+"/odds", params, &events); err != nil {
		return nil, err
	}

	// re-key events to our sport naming so callers never see feed keys
	for i := range events {
		events[i].SportKey = sportKey
	}

	c.cache.Set(ctx, cacheKey, events)
	util.GetLogger().Info("fetched odds", "sport", apiSportKey, "events", len(events))
	return events, nil
}

// GetCompletedGames returns finished games with final scores for the
// settlement pass, looking back up to daysFrom days (feed caps at 3).
func (c *Client) GetCompletedGames(ctx context.Context, sportKey string, daysFrom int) ([]domain.CompletedGame, error) {
	apiSportKey, ok := sportKeyMap[sportKey]
	if !ok {
		return nil, fmt.Errorf("%w: unknown sport key %q", util.ErrInvalidInput, sportKey)
	}

	if c.apiKey == "" {
		return nil, nil
	}

	if daysFrom < 1 {
		daysFrom = 1
	}
	if daysFrom > maxScoreDays {
		daysFrom = maxScoreDays
	}

	params := url.Values{}
	params.Set("daysFrom", strconv.Itoa(daysFrom))

	var scores []scoreEvent
	if err := c.get(ctx, "/sports/"+apiSportKey+"/scores", params, &scores); err != nil {
		return nil, err
	}

	games := make([]domain.CompletedGame, 0, len(scores))
	for _, s := range scores {
		if !s.Completed || len(s.Scores) == 0 {
			continue
		}

		game := domain.CompletedGame{
			ID:           s.ID,
			SportKey:     sportKey,
			HomeTeam:     s.HomeTeam,
			AwayTeam:     s.AwayTeam,
			Completed:    true,
			CommenceTime: s.CommenceTime,
		}
		for _, entry := range s.Scores {
			n, err := strconv.Atoi(entry.Score)
			if err != nil {
				continue
			}
			switch entry.Name {
			case s.HomeTeam:
				game.HomeScore = n
			case s.AwayTeam:
				game.AwayScore = n
			}
		}
		games = append(games, game)
	}

	util.GetLogger().Info("fetched completed games", "sport", apiSportKey, "games", len(games))
	return games, nil
}

// SupportedSportKeys lists the internal sport keys this client accepts.
func SupportedSportKeys() []string {
	keys := make([]string, 0, len(sportKeyMap))
	for k := range sportKeyMap {
		keys = append(keys, k)
	}
	return keys
}
