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

const patchHTML = `<html><body>
<h1>Patch 15.1 Notes</h1>
<h2>Champions</h2>
<h3>Ahri</h3>
<h3>Zed</h3>
<h2>Items</h2>
<h3></h3>
</body></html>`

func TestPatchSlug(t *testing.T) {
	assert.Equal(t, "16-1", patchSlug("16.1.1"))
	assert.Equal(t, "15-24", patchSlug("15.24.1"))
	assert.Empty(t, patchSlug("15"))
	assert.Empty(t, patchSlug(""))
}

func TestHeadlines(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/patch-15-1", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		io.WriteString(w, patchHTML)
	}))
	defer srv.Close()

	p := NewPatchNotes(cache.NewLocal())
	p.baseURL = srv.URL
	ctx := context.Background()

	headlines, err := p.Headlines(ctx, "15.1.1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Champions", "Ahri", "Zed", "Items"}, headlines)

	_, err = p.Headlines(ctx, "15.1.1")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second scrape served from cache")
}

func TestHeadlinesCapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html><body>")
		for i := 0; i < 20; i++ {
			io.WriteString(w, "<h2>Section</h2>")
		}
		io.WriteString(w, "</body></html>")
	}))
	defer srv.Close()

	p := NewPatchNotes(cache.NewLocal())
	p.baseURL = srv.URL

	headlines, err := p.Headlines(context.Background(), "15.2.1")
	require.NoError(t, err)
	assert.Len(t, headlines, maxHeadlines)
}

func TestHeadlinesBadVersion(t *testing.T) {
	p := NewPatchNotes(cache.NewLocal())

	_, err := p.Headlines(context.Background(), "garbage")
	assert.Error(t, err)
}
