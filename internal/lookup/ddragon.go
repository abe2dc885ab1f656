package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/yd1008/lol-analyzer/internal/cache"
	"github.com/yd1008/lol-analyzer/pkg/logx"
)

const (
	ddVersionsURL  = "https://ddragon.leagueoflegends.com/api/versions.json"
	ddChampionsURL = "https://ddragon.leagueoflegends.com/cdn/%s/data/en_US/champion.json"
	ddItemsURL     = "https://ddragon.leagueoflegends.com/cdn/%s/data/en_US/item.json"

	// Version lookups cache successes for hours but failures only briefly,
	// so an upstream outage backs off instead of retry-storming.
	versionTTL        = 6 * time.Hour
	versionFailureTTL = 5 * time.Minute
	assetTTL          = 6 * time.Hour

	versionFailureSentinel = "!unavailable"
)

// DataDragon is the default ReferenceData implementation backed by the
// public Data Dragon CDN, cache-protected through the cache service.
type DataDragon struct {
	httpClient *http.Client
	cache      *cache.Service
	baseURL    string // test override; empty in production
}

// NewDataDragon creates a Data Dragon client.
func NewDataDragon(c *cache.Service) *DataDragon {
	return &DataDragon{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      c,
	}
}

func (d *DataDragon) url(format string, args ...any) string {
	u := fmt.Sprintf(format, args...)
	if d.baseURL != "" {
		if i := strings.Index(u, "/cdn/"); i >= 0 {
			return d.baseURL + u[i:]
		}
		if i := strings.Index(u, "/api/"); i >= 0 {
			return d.baseURL + u[i:]
		}
	}
	return u
}

func (d *DataDragon) fetchJSON(ctx context.Context, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 300))
		return fmt.Errorf("ddragon error %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// LatestVersion returns the newest Data Dragon version string.
func (d *DataDragon) LatestVersion(ctx context.Context) (string, error) {
	const key = "ddragon:version"

	if val, ok := d.cache.Get(ctx, key); ok {
		if val == versionFailureSentinel {
			return "", fmt.Errorf("version lookup recently failed, backing off")
		}
		return val, nil
	}

	var versions []string
	if err := d.fetchJSON(ctx, d.url(ddVersionsURL), &versions); err != nil || len(versions) == 0 {
		d.cache.Set(ctx, key, versionFailureSentinel, versionFailureTTL)
		if err == nil {
			err = fmt.Errorf("empty version list")
		}
		return "", err
	}

	d.cache.Set(ctx, key, versions[0], versionTTL)
	return versions[0], nil
}

type championFile struct {
	Data map[string]ChampionRecord `json:"data"`
}

// Champion resolves a champion record by name or id, case and punctuation
// insensitive.
func (d *DataDragon) Champion(ctx context.Context, version, name string) (*ChampionRecord, error) {
	champs, err := d.champions(ctx, version)
	if err != nil {
		return nil, err
	}

	want := normalizeName(name)
	for key, rec := range champs {
		if normalizeName(key) == want || normalizeName(rec.Name) == want {
			r := rec
			return &r, nil
		}
	}
	return nil, fmt.Errorf("champion %q not found in version %s", name, version)
}

func (d *DataDragon) champions(ctx context.Context, version string) (map[string]ChampionRecord, error) {
	key := "ddragon:champions:" + version

	var champs map[string]ChampionRecord
	if d.cache.GetJSON(ctx, key, &champs) {
		return champs, nil
	}

	var file championFile
	if err := d.fetchJSON(ctx, d.url(ddChampionsURL, version), &file); err != nil {
		return nil, err
	}

	d.cache.SetJSON(ctx, key, file.Data, assetTTL)
	return file.Data, nil
}

type itemFile struct {
	Data map[string]struct {
		Name string   `json:"name"`
		Tags []string `json:"tags"`
	} `json:"data"`
}

// Items resolves item ids to names and tags. Unknown ids are skipped, so an
// empty build produces an empty list rather than an error.
func (d *DataDragon) Items(ctx context.Context, version string, ids []int) ([]Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	key := "ddragon:items:" + version
	var file itemFile
	if !d.cache.GetJSON(ctx, key, &file) {
		if err := d.fetchJSON(ctx, d.url(ddItemsURL, version), &file); err != nil {
			return nil, err
		}
		d.cache.SetJSON(ctx, key, file, assetTTL)
	}

	var items []Item
	for _, id := range ids {
		detail, ok := file.Data[strconv.Itoa(id)]
		if !ok {
			logx.Debug().Int("item_id", id).Msg("unknown item id")
			continue
		}
		items = append(items, Item{ID: id, Name: detail.Name, Tags: detail.Tags})
	}
	return items, nil
}

// normalizeName lowercases and strips punctuation/whitespace so "Kai'Sa",
// "kaisa" and "KaiSa" all match.
func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
