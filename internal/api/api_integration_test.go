// internal/api/api_integration_test.go
package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "paperbook/internal"
)

// testApp is the global application instance for testing.
var testApp *app.Application

// testServer is the httptest server.
var testServer *httptest.Server

// TestMain is the special entry point for Go tests, executed once before all tests.
func TestMain(m *testing.M) {
	// Point the app at the test database and force the synthetic odds
	// feed so no test touches the network.
	setupEnvVars()

	testApp = app.NewApplication()
	if err := testApp.Initialize(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize test application: %v\n", err)
		os.Exit(1)
	}

	testServer = httptest.NewServer(testApp.HTTPHandler)
	defer testServer.Close()

	code := m.Run()

	if err := testApp.Shutdown(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to shutdown test application: %v\n", err)
		os.Exit(1)
	}

	os.Exit(code)
}

// setupEnvVars sets the environment variables required for testing.
func setupEnvVars() {
	if os.Getenv("DB_HOST") == "" {
		os.Setenv("DB_HOST", "localhost")
	}
	if os.Getenv("DB_PORT") == "" {
		os.Setenv("DB_PORT", "5432")
	}
	if os.Getenv("DB_USER") == "" {
		os.Setenv("DB_USER", "user")
	}
	if os.Getenv("DB_PASSWORD") == "" {
		os.Setenv("DB_PASSWORD", "password")
	}
	if os.Getenv("DB_NAME") == "" {
		os.Setenv("DB_NAME", "paperbook_test")
	}
	if os.Getenv("DB_SSLMODE") == "" {
		os.Setenv("DB_SSLMODE", "disable")
	}
	// Empty key switches the odds client to deterministic synthetic events.
	os.Setenv("ODDS_API_KEY", "")
	os.Setenv("REDIS_ADDR", "")
	os.Setenv("BET_LIMITS_ENFORCED", "false")
}

// clearDatabase truncates all tables so each test starts clean.
func clearDatabase(t *testing.T) {
	// Order is important due to foreign key dependencies.
	tables := []string{"wallet_transactions", "parlay_legs", "parlays", "bets", "user_preferences", "wallets", "users"}
	for _, table := range tables {
		_, err := testApp.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE;", table))
		require.NoError(t, err, "Failed to truncate table %s", table)
	}
}

// makeRequest sends an HTTP request to the test server.
func makeRequest(t *testing.T, method, path string, body io.Reader) (*http.Response, string) {
	req, err := http.NewRequest(method, testServer.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(respBody)
}

// createTestUser registers a user through the API and returns their ID.
func createTestUser(t *testing.T, username string) int64 {
	resp, body := makeRequest(t, "POST", "/users", strings.NewReader(fmt.Sprintf(`{"username": %q}`, username)))
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	var responseMap map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &responseMap))
	userMap := responseMap["user"].(map[string]interface{})
	return int64(userMap["id"].(float64))
}

func decimalField(t *testing.T, m map[string]interface{}, key string) decimal.Decimal {
	value, err := decimal.NewFromString(m[key].(string))
	require.NoError(t, err)
	return value
}

// TestWalletIntegration covers registration, the starting bankroll, and
// deposit/withdraw flows.
func TestWalletIntegration(t *testing.T) {
	clearDatabase(t)
	userID := createTestUser(t, "wallet_user")

	t.Run("StartingBalance", func(t *testing.T) {
		resp, body := makeRequest(t, "GET", fmt.Sprintf("/users/%d/wallet", userID), nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var wallet map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(body), &wallet))
		assert.True(t, decimal.RequireFromString("10000.00").Equal(decimalField(t, wallet, "balance")))
	})

	t.Run("SuccessfulDeposit", func(t *testing.T) {
		resp, body := makeRequest(t, "POST", fmt.Sprintf("/users/%d/wallet/deposit", userID),
			strings.NewReader(`{"amount": "500.00"}`))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var responseMap map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(body), &responseMap))
		assert.Equal(t, "Deposit successful", responseMap["message"])
		assert.True(t, decimal.RequireFromString("10500.00").Equal(decimalField(t, responseMap, "new_balance")))
	})

	t.Run("InvalidAmount", func(t *testing.T) {
		resp, body := makeRequest(t, "POST", fmt.Sprintf("/users/%d/wallet/deposit", userID),
			strings.NewReader(`{"amount": "-10.00"}`))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body, "invalid input provided")
	})

	t.Run("InsufficientBalanceOnWithdraw", func(t *testing.T) {
		resp, body := makeRequest(t, "POST", fmt.Sprintf("/users/%d/wallet/withdraw", userID),
			strings.NewReader(`{"amount": "999999.00"}`))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
		assert.Contains(t, body, "Insufficient balance")
	})
}

// TestBetLifecycleIntegration covers placing and settling a bet and the
// resulting wallet and stats state.
func TestBetLifecycleIntegration(t *testing.T) {
	clearDatabase(t)
	userID := createTestUser(t, "bettor")

	placeBody := `{
		"event_id": "evt-100",
		"sport_key": "basketball_nba",
		"home_team": "Los Angeles Lakers",
		"away_team": "Boston Celtics",
		"commence_time": "2026-09-01T19:00:00Z",
		"bet_type": "moneyline",
		"selection": "Los Angeles Lakers",
		"odds": 150,
		"stake": "100.00"
	}`

	var betID int64

	t.Run("PlaceBet", func(t *testing.T) {
		resp, body := makeRequest(t, "POST", fmt.Sprintf("/users/%d/bets", userID), strings.NewReader(placeBody))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusCreated, resp.StatusCode, body)
		var responseMap map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(body), &responseMap))

		betMap := responseMap["bet"].(map[string]interface{})
		betID = int64(betMap["id"].(float64))
		assert.Equal(t, "pending", betMap["status"])
		assert.True(t, decimal.RequireFromString("250.00").Equal(decimalField(t, betMap, "potential_payout")))
		assert.True(t, decimal.RequireFromString("9900.00").Equal(decimalField(t, responseMap, "new_balance")))
	})

	t.Run("SettleWon", func(t *testing.T) {
		resp, body := makeRequest(t, "POST", fmt.Sprintf("/users/%d/bets/%d/settle", userID, betID),
			strings.NewReader(`{"status": "won", "result": "Los Angeles Lakers 110 - 99 Boston Celtics"}`))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode, body)
		var betMap map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(body), &betMap))
		assert.Equal(t, "won", betMap["status"])
		assert.NotNil(t, betMap["settled_at"])
	})

	t.Run("SettleTwiceRejected", func(t *testing.T) {
		resp, body := makeRequest(t, "POST", fmt.Sprintf("/users/%d/bets/%d/settle", userID, betID),
			strings.NewReader(`{"status": "lost"}`))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Contains(t, body, "Already settled")
	})

	t.Run("WalletCredited", func(t *testing.T) {
		resp, body := makeRequest(t, "GET", fmt.Sprintf("/users/%d/wallet", userID), nil)
		defer resp.Body.Close()

		var wallet map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(body), &wallet))
		// 10000 - 100 stake + 250 payout
		assert.True(t, decimal.RequireFromString("10150.00").Equal(decimalField(t, wallet, "balance")))
	})

	t.Run("StatsReflectSettlement", func(t *testing.T) {
		resp, body := makeRequest(t, "GET", fmt.Sprintf("/users/%d/stats", userID), nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var stats map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(body), &stats))
		assert.Equal(t, float64(1), stats["total_bets"])
		assert.Equal(t, float64(1), stats["won_bets"])
		assert.True(t, decimal.RequireFromString("150.00").Equal(decimalField(t, stats, "profit_loss")))
	})
}

// TestParlayIntegration covers parlay placement and settlement.
func TestParlayIntegration(t *testing.T) {
	clearDatabase(t)
	userID := createTestUser(t, "parlay_user")

	placeBody := `{
		"stake": "10.00",
		"legs": [
			{
				"event_id": "evt-1", "sport_key": "basketball_nba",
				"home_team": "Los Angeles Lakers", "away_team": "Boston Celtics",
				"commence_time": "2026-09-01T19:00:00Z",
				"bet_type": "moneyline", "selection": "Los Angeles Lakers", "odds": -110
			},
			{
				"event_id": "evt-2", "sport_key": "basketball_nba",
				"home_team": "Miami Heat", "away_team": "Chicago Bulls",
				"commence_time": "2026-09-01T22:00:00Z",
				"bet_type": "moneyline", "selection": "Miami Heat", "odds": 150
			}
		]
	}`

	var parlayID int64

	t.Run("PlaceParlay", func(t *testing.T) {
		resp, body := makeRequest(t, "POST", fmt.Sprintf("/users/%d/parlays", userID), strings.NewReader(placeBody))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusCreated, resp.StatusCode, body)
		var responseMap map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(body), &responseMap))

		parlayMap := responseMap["parlay"].(map[string]interface{})
		parlayID = int64(parlayMap["id"].(float64))
		assert.True(t, decimal.RequireFromString("47.70").Equal(decimalField(t, parlayMap, "potential_payout")))
		assert.Len(t, parlayMap["legs"], 2)
	})

	t.Run("SingleLegRejected", func(t *testing.T) {
		resp, body := makeRequest(t, "POST", fmt.Sprintf("/users/%d/parlays", userID),
			strings.NewReader(`{"stake": "10.00", "legs": [{"event_id": "evt-1", "sport_key": "basketball_nba", "home_team": "a", "away_team": "b", "bet_type": "moneyline", "selection": "a", "odds": 100}]}`))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body, "parlay must have at least 2 legs")
	})

	t.Run("SettlePush", func(t *testing.T) {
		resp, body := makeRequest(t, "POST", fmt.Sprintf("/users/%d/parlays/%d/settle", userID, parlayID),
			strings.NewReader(`{"status": "push"}`))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode, body)

		// the stake comes back on a push
		respWallet, bodyWallet := makeRequest(t, "GET", fmt.Sprintf("/users/%d/wallet", userID), nil)
		defer respWallet.Body.Close()
		var wallet map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(bodyWallet), &wallet))
		assert.True(t, decimal.RequireFromString("10000.00").Equal(decimalField(t, wallet, "balance")))
	})
}

// TestOddsAndPredictionsIntegration exercises the synthetic odds feed
// and the prediction surface end to end.
func TestOddsAndPredictionsIntegration(t *testing.T) {
	t.Run("SyntheticOdds", func(t *testing.T) {
		resp, body := makeRequest(t, "GET", "/sports/basketball_nba/odds", nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var events []map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(body), &events))
		require.NotEmpty(t, events)
		assert.Equal(t, "basketball_nba", events[0]["sport_key"])
	})

	t.Run("UnknownSportKey", func(t *testing.T) {
		resp, _ := makeRequest(t, "GET", "/sports/cricket_ipl/odds", nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Predictions", func(t *testing.T) {
		resp, body := makeRequest(t, "GET", "/sports/basketball_nba/predictions", nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var results []map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(body), &results))
		require.NotEmpty(t, results)
		for _, r := range results {
			sum := r["home_win_probability"].(float64) +
				r["away_win_probability"].(float64) +
				r["draw_probability"].(float64)
			assert.InDelta(t, 1.0, sum, 0.001)
		}
	})

	t.Run("Quota", func(t *testing.T) {
		resp, _ := makeRequest(t, "GET", "/quota", nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

// TestPreferencesIntegration covers the get-or-create defaults and
// partial updates.
func TestPreferencesIntegration(t *testing.T) {
	clearDatabase(t)
	userID := createTestUser(t, "prefs_user")

	t.Run("DefaultsOnFirstAccess", func(t *testing.T) {
		resp, body := makeRequest(t, "GET", fmt.Sprintf("/users/%d/preferences", userID), nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var prefs map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(body), &prefs))
		assert.Equal(t, "moderate", prefs["risk_tolerance"])
		assert.True(t, decimal.RequireFromString("100.00").Equal(decimalField(t, prefs, "max_bet_amount")))
	})

	t.Run("PartialUpdate", func(t *testing.T) {
		resp, body := makeRequest(t, "PUT", fmt.Sprintf("/users/%d/preferences", userID),
			strings.NewReader(`{"risk_tolerance": "aggressive", "max_bet_amount": "250.00"}`))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode, body)
		var prefs map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(body), &prefs))
		assert.Equal(t, "aggressive", prefs["risk_tolerance"])
		assert.True(t, decimal.RequireFromString("250.00").Equal(decimalField(t, prefs, "max_bet_amount")))
	})

	t.Run("UnknownRiskTolerance", func(t *testing.T) {
		resp, _ := makeRequest(t, "PUT", fmt.Sprintf("/users/%d/preferences", userID),
			strings.NewReader(`{"risk_tolerance": "reckless"}`))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
