package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tgriffin/lineupiq/internal/auth"
	"github.com/tgriffin/lineupiq/internal/models"
	"github.com/tgriffin/lineupiq/internal/service"
	"github.com/tgriffin/lineupiq/internal/workbook"
)

func buildXLSX(t *testing.T, order []string, sheets map[string][][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// newTestServer spins up a workbook fixture server plus the API on top
// of it and returns the API base URL.
func newTestServer(t *testing.T, tokens *auth.TokenIssuer) *httptest.Server {
	t.Helper()

	statsBytes := buildXLSX(t, []string{"Passing W1"}, map[string][][]interface{}{
		"Passing W1": {
			{"Player", "Team", "Pos", "Yds", "TD", "Int"},
			{"Sam Smith", "BUF", "QB", "300", "3", "1"},
		},
	})
	schedBytes := buildXLSX(t, []string{"Schedule"}, map[string][][]interface{}{
		"Schedule": {
			{"Team", "W1"},
			{"BUF", "@NYJ"},
		},
	})

	fixtures := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/stats.xlsx":
			w.Write(statsBytes)
		case "/schedule.xlsx":
			w.Write(schedBytes)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(fixtures.Close)

	players := service.NewPlayerService(workbook.NewLoader(fixtures.URL), "/stats.xlsx", "/schedule.xlsx", nil)
	handler := NewHandler(players, nil, nil, tokens)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func TestHandlePlayers(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/players?week=1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.WeekResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.True(t, body.OK)
	assert.Equal(t, 1, body.Week)
	require.Len(t, body.Players, 1)
	assert.Equal(t, "Sam Smith", body.Players[0].Name)
	assert.Equal(t, 22.0, body.Players[0].Projected)
	assert.Equal(t, models.SourceActual, body.Players[0].Source)
}

func TestHandlePlayers_InvalidWeek(t *testing.T) {
	ts := newTestServer(t, nil)

	for _, week := range []string{"0", "19", "abc"} {
		resp, err := http.Get(ts.URL + "/api/players?week=" + week)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "week=%s", week)
	}
}

func TestHandlePlayers_UpstreamFailure(t *testing.T) {
	players := service.NewPlayerService(workbook.NewLoader("http://127.0.0.1:1"), "/stats.xlsx", "/schedule.xlsx", nil)
	handler := NewHandler(players, nil, nil, nil)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	ts := httptest.NewServer(r)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/players?week=1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.OK)
	assert.NotEmpty(t, body.Message)
}

func TestHandleRankings(t *testing.T) {
	ts := newTestServer(t, nil)

	t.Run("valid position", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/rankings?pos=qb&week=1")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			OK       bool                  `json:"ok"`
			Rankings []models.RankingEntry `json:"rankings"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.OK)
		require.Len(t, body.Rankings, 1)
		assert.Equal(t, "S", body.Rankings[0].Tier)
	})

	t.Run("invalid position", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/rankings?pos=FLEX&week=1")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestHandleTrade(t *testing.T) {
	ts := newTestServer(t, nil)

	t.Run("valid proposal", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/api/trade", "application/json",
			strings.NewReader(`{"giveId":"r2","getId":"o1"}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Score   int    `json:"score"`
			Verdict string `json:"verdict"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, 60, body.Score)
		assert.Equal(t, "fair", body.Verdict)
	})

	t.Run("unknown players", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/api/trade", "application/json",
			strings.NewReader(`{"giveId":"xx","getId":"o1"}`))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/api/trade", "application/json", strings.NewReader("{"))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestHandleLeagueConnect(t *testing.T) {
	t.Run("missing fields", func(t *testing.T) {
		ts := newTestServer(t, nil)
		resp, err := http.Post(ts.URL+"/api/league/connect", "application/json",
			strings.NewReader(`{"platform":"sleeper"}`))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("without token issuer", func(t *testing.T) {
		ts := newTestServer(t, nil)
		resp, err := http.Post(ts.URL+"/api/league/connect", "application/json",
			strings.NewReader(`{"platform":"sleeper","identifier":"league-1"}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, true, body["ok"])
		assert.Equal(t, "mock-connection", body["kind"])
		assert.NotContains(t, body, "token")
	})

	t.Run("with token issuer", func(t *testing.T) {
		issuer := auth.NewTokenIssuer("test-secret")
		ts := newTestServer(t, issuer)
		resp, err := http.Post(ts.URL+"/api/league/connect", "application/json",
			strings.NewReader(`{"platform":"sleeper","identifier":"league-1"}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		token, _ := body["token"].(string)
		require.NotEmpty(t, token)

		claims, err := issuer.VerifyLeagueToken(token)
		require.NoError(t, err)
		assert.Equal(t, "sleeper", claims.Platform)
	})
}

func TestHandleHealth(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestHandlePushSubscribe_NotConfigured(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Post(ts.URL+"/api/push/subscribe", "application/json",
		strings.NewReader(`{"endpoint":"https://push.example/abc","keys":{}}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
}
