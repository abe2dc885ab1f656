package lookup

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yd1008/lol-analyzer/internal/cache"
)

func TestValidRegion(t *testing.T) {
	assert.True(t, ValidRegion("na1"))
	assert.True(t, ValidRegion("KR"))
	assert.False(t, ValidRegion(""))
	assert.False(t, ValidRegion("moon1"))
}

func TestEntriesBySummoner(t *testing.T) {
	var calls int32
	var gotToken, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		gotToken = r.Header.Get("X-Riot-Token")
		gotPath = r.URL.Path
		io.WriteString(w, `[{"queueType":"RANKED_SOLO_5x5","tier":"GOLD","rank":"II","leaguePoints":50,"wins":30,"losses":25}]`)
	}))
	defer srv.Close()

	c := NewLeagueClient("riot-key", cache.NewLocal())
	c.baseURL = srv.URL
	ctx := context.Background()

	entries, err := c.EntriesBySummoner(ctx, "na1", "summoner-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "GOLD", entries[0].Tier)
	assert.Equal(t, 50, entries[0].LeaguePoints)
	assert.Equal(t, "riot-key", gotToken)
	assert.Equal(t, "/lol/league/v4/entries/by-summoner/summoner-1", gotPath)

	// Repeat lookup within the TTL is served from cache.
	_, err = c.EntriesBySummoner(ctx, "na1", "summoner-1")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestEntriesBySummonerMissingKey(t *testing.T) {
	c := NewLeagueClient("", cache.NewLocal())

	_, err := c.EntriesBySummoner(context.Background(), "na1", "summoner-1")
	assert.Error(t, err)
}

func TestEntriesBySummonerUnknownRegion(t *testing.T) {
	c := NewLeagueClient("riot-key", cache.NewLocal())

	_, err := c.EntriesBySummoner(context.Background(), "moon1", "summoner-1")
	assert.Error(t, err)
}

func TestEntriesBySummonerUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewLeagueClient("riot-key", cache.NewLocal())
	c.baseURL = srv.URL

	_, err := c.EntriesBySummoner(context.Background(), "na1", "summoner-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
