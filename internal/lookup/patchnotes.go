package lookup

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/yd1008/lol-analyzer/internal/cache"
	"github.com/yd1008/lol-analyzer/pkg/logx"
)

const (
	patchNotesURLFormat = "https://www.leagueoflegends.com/en-us/news/game-updates/patch-%s-notes/"
	patchNotesTTL       = 6 * time.Hour
	maxHeadlines        = 8
)

// PatchNotes scrapes headline strings from the official patch-notes page.
type PatchNotes struct {
	httpClient *http.Client
	cache      *cache.Service
	baseURL    string // test override; empty in production
}

// NewPatchNotes creates a patch-notes scraper.
func NewPatchNotes(c *cache.Service) *PatchNotes {
	return &PatchNotes{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      c,
	}
}

// Headlines returns the section headlines of the patch notes matching the
// given Data Dragon version ("16.1.1" resolves patch "16-1").
func (p *PatchNotes) Headlines(ctx context.Context, version string) ([]string, error) {
	slug := patchSlug(version)
	if slug == "" {
		return nil, fmt.Errorf("cannot derive patch slug from version %q", version)
	}

	cacheKey := "patchnotes:" + slug
	var cached []string
	if p.cache.GetJSON(ctx, cacheKey, &cached) {
		return cached, nil
	}

	url := fmt.Sprintf(patchNotesURLFormat, slug)
	if p.baseURL != "" {
		url = p.baseURL + "/patch-" + slug
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	// The site serves static HTML but rejects bare clients.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	var headlines []string
	doc.Find("h2, h3").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return true
		}
		headlines = append(headlines, text)
		return len(headlines) < maxHeadlines
	})

	if len(headlines) > 0 {
		p.cache.SetJSON(ctx, cacheKey, headlines, patchNotesTTL)
	}
	logx.Debug().Str("patch", slug).Int("headlines", len(headlines)).Msg("patch notes scraped")
	return headlines, nil
}

// patchSlug turns "16.1.1" into "16-1".
func patchSlug(version string) string {
	parts := strings.Split(version, ".")
	if len(parts) < 2 {
		return ""
	}
	return parts[0] + "-" + parts[1]
}
