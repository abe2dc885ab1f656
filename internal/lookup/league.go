package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yd1008/lol-analyzer/internal/cache"
	"github.com/yd1008/lol-analyzer/pkg/logx"
)

// RegionToRouting maps platform regions to their routing super-region.
var RegionToRouting = map[string]string{
	"na1": "americas", "br1": "americas", "la1": "americas", "la2": "americas",
	"oc1": "sea", "ph2": "sea", "sg2": "sea", "th2": "sea", "tw2": "sea", "vn2": "sea",
	"euw1": "europe", "eun1": "europe", "tr1": "europe", "ru": "europe",
	"jp1": "asia", "kr": "asia",
}

// ValidRegion reports whether region is a known platform region.
func ValidRegion(region string) bool {
	_, ok := RegionToRouting[strings.ToLower(region)]
	return ok
}

const leagueEntryTTL = 10 * time.Minute

// LeagueClient fetches ranked standings from the platform league-v4 API,
// caching each summoner's entries for a fixed window.
type LeagueClient struct {
	apiKey     string
	httpClient *http.Client
	cache      *cache.Service
	baseURL    string // test override; empty in production
}

// NewLeagueClient creates a league entries client.
func NewLeagueClient(apiKey string, c *cache.Service) *LeagueClient {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	}
	return &LeagueClient{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
		},
		cache: c,
	}
}

// EntriesBySummoner returns all ranked-queue entries for a summoner on the
// given platform region.
func (c *LeagueClient) EntriesBySummoner(ctx context.Context, region, summonerID string) ([]LeagueEntry, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("riot API key not configured")
	}
	region = strings.ToLower(region)
	if !ValidRegion(region) {
		return nil, fmt.Errorf("unknown platform region %q", region)
	}

	cacheKey := fmt.Sprintf("league:%s:%s", region, summonerID)
	var entries []LeagueEntry
	if c.cache.GetJSON(ctx, cacheKey, &entries) {
		return entries, nil
	}

	base := c.baseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.api.riotgames.com", region)
	}
	reqURL := fmt.Sprintf("%s/lol/league/v4/entries/by-summoner/%s", base, summonerID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Riot-Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 300))
		return nil, fmt.Errorf("league API error %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	c.cache.SetJSON(ctx, cacheKey, entries, leagueEntryTTL)
	logx.Debug().Str("region", region).Int("entries", len(entries)).Msg("league entries fetched")
	return entries, nil
}
