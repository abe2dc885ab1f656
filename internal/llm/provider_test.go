package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectAdapter(t *testing.T) {
	assert.Equal(t, "opencode-zen", SelectAdapter("https://api.opencode.zen/v1/chat/completions", nil).Name())
	assert.Equal(t, "default", SelectAdapter("https://api.openai.com/v1/chat/completions", nil).Name())
	assert.Equal(t, "default", SelectAdapter("not a url at all ://", nil).Name())
}

func TestOpenCodeValidateEndpoint(t *testing.T) {
	a := &openCodeZenAdapter{}

	assert.Nil(t, a.ValidateEndpoint("https://api.opencode.zen/v1/chat/completions"))
	assert.Nil(t, a.ValidateEndpoint("https://api.opencode.zen/v1/chat/completions/"))

	err := a.ValidateEndpoint("https://api.opencode.zen/v1/completions")
	require.NotNil(t, err)
	assert.Equal(t, KindConfiguration, err.Kind)
	assert.Equal(t, http.StatusBadRequest, err.Status)
}

func TestPassthroughAdapter(t *testing.T) {
	a := passthroughAdapter{}

	assert.Nil(t, a.ValidateEndpoint("https://example.com/anything"))

	model, err := a.ResolveModel(context.Background(), "", "gpt-4o")
	require.Nil(t, err)
	assert.Equal(t, "gpt-4o", model)

	temp := 0.7
	base := RequestBody{Model: "gpt-4o", Temperature: &temp, MaxTokens: 100}
	assert.Equal(t, []RequestBody{base}, a.Variants(base, []string{"fallback"}),
		"passthrough never synthesizes payload variants")

	assert.False(t, a.FatalVariantSignature(500, "prompt_tokens NoneType"))
}

func catalogServer(t *testing.T, ids ...string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/v1/models" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		out := `{"data":[`
		for i, id := range ids {
			if i > 0 {
				out += ","
			}
			out += `{"id":"` + id + `"}`
		}
		out += `]}`
		w.Write([]byte(out))
	}))
}

func TestOpenCodeResolveModelAlias(t *testing.T) {
	srv := catalogServer(t, "grok-code", "deepseek-chat")
	defer srv.Close()
	a := &openCodeZenAdapter{httpClient: srv.Client()}
	apiURL := srv.URL + "/v1/chat/completions"

	model, err := a.ResolveModel(context.Background(), apiURL, "grok-beta")
	require.Nil(t, err)
	assert.Equal(t, "grok-code", model)
}

func TestOpenCodeResolveModelRejectedFamily(t *testing.T) {
	a := &openCodeZenAdapter{httpClient: http.DefaultClient}

	_, err := a.ResolveModel(context.Background(), "https://api.opencode.zen/v1/chat/completions", "text-embedding-3-small")
	require.NotNil(t, err)
	assert.Equal(t, KindConfiguration, err.Kind)
}

func TestOpenCodeResolveModelNotInCatalog(t *testing.T) {
	srv := catalogServer(t, "deepseek-chat")
	defer srv.Close()
	a := &openCodeZenAdapter{httpClient: srv.Client()}

	_, err := a.ResolveModel(context.Background(), srv.URL+"/v1/chat/completions", "made-up-model")
	require.NotNil(t, err)
	assert.Equal(t, KindConfiguration, err.Kind)
	assert.Contains(t, err.Message, "deepseek-chat", "message suggests valid models")
}

func TestOpenCodeResolveModelCatalogUnreachableFailsOpen(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	a := &openCodeZenAdapter{httpClient: srv.Client()}

	model, err := a.ResolveModel(context.Background(), srv.URL+"/v1/chat/completions", "anything-goes")
	require.Nil(t, err)
	assert.Equal(t, "anything-goes", model)
}

func TestOpenCodeVariantsOrder(t *testing.T) {
	a := &openCodeZenAdapter{}
	temp := 0.7
	base := RequestBody{
		Model:       "deepseek-chat",
		Messages:    []Message{{Role: "user", Content: "hi"}},
		MaxTokens:   100,
		Temperature: &temp,
	}

	variants := a.Variants(base, []string{"claude-sonnet-4"})
	require.Len(t, variants, 4)

	assert.NotNil(t, variants[0].Temperature)
	assert.Equal(t, 100, variants[0].MaxTokens)

	assert.Nil(t, variants[1].Temperature)
	assert.Equal(t, 100, variants[1].MaxTokens)

	assert.Nil(t, variants[2].Temperature)
	assert.Zero(t, variants[2].MaxTokens)
	assert.Equal(t, "deepseek-chat", variants[2].Model)

	assert.Equal(t, "claude-sonnet-4", variants[3].Model)
	assert.Zero(t, variants[3].MaxTokens)
}

func TestOpenCodeVariantsDedup(t *testing.T) {
	a := &openCodeZenAdapter{}
	base := RequestBody{Model: "deepseek-chat", Messages: []Message{{Role: "user", Content: "hi"}}}

	// No temperature and no max_tokens: base, noTemp and minimal collapse,
	// and a fallback equal to the primary model adds nothing.
	variants := a.Variants(base, []string{"deepseek-chat"})
	assert.Len(t, variants, 1)
}

func TestOpenCodeFatalVariantSignature(t *testing.T) {
	a := &openCodeZenAdapter{}

	assert.True(t, a.FatalVariantSignature(500, `TypeError: unsupported operand, "prompt_tokens" is NoneType`))
	assert.True(t, a.FatalVariantSignature(502, `{"error":"prompt_tokens was null"}`))
	assert.False(t, a.FatalVariantSignature(400, "prompt_tokens NoneType"), "only 5xx counts")
	assert.False(t, a.FatalVariantSignature(500, "internal server error"))
	assert.False(t, a.FatalVariantSignature(500, "prompt_tokens exceeded"), "needs the null-field marker")
}
