package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yd1008/lol-analyzer/internal/cache"
	"github.com/yd1008/lol-analyzer/pkg/logx"
)

const chatCompletionsSuffix = "/chat/completions"

// ProviderAdapter encapsulates provider-specific validation and payload
// quirk handling. Selected once per configured URL, not re-matched per
// call.
type ProviderAdapter interface {
	// Name identifies the adapter in logs.
	Name() string
	// ValidateEndpoint checks the configured URL shape.
	ValidateEndpoint(apiURL string) *Error
	// ResolveModel maps deprecated aliases and rejects unsupported model
	// families, consulting the live catalog when reachable.
	ResolveModel(ctx context.Context, apiURL, model string) (string, *Error)
	// Variants returns the ordered, deduplicated payload fallback list.
	Variants(base RequestBody, fallbackModels []string) []RequestBody
	// FatalVariantSignature reports whether a 5xx body indicates a
	// payload-shape-sensitive crash that should skip straight to the next
	// variant.
	FatalVariantSignature(status int, body string) bool
}

// SelectAdapter picks the adapter for the configured endpoint.
func SelectAdapter(apiURL string, c *cache.Service) ProviderAdapter {
	if isOpenCodeZenURL(apiURL) {
		return &openCodeZenAdapter{
			cache:      c,
			httpClient: &http.Client{Timeout: 5 * time.Second},
		}
	}
	return passthroughAdapter{}
}

func isOpenCodeZenURL(apiURL string) bool {
	u, err := url.Parse(apiURL)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(u.Host), "opencode")
}

// passthroughAdapter is the default for well-behaved providers: the literal
// payload, no extra validation.
type passthroughAdapter struct{}

func (passthroughAdapter) Name() string { return "default" }

func (passthroughAdapter) ValidateEndpoint(string) *Error { return nil }

func (passthroughAdapter) FatalVariantSignature(int, string) bool { return false }

func (passthroughAdapter) ResolveModel(_ context.Context, _, model string) (string, *Error) {
	return model, nil
}

func (passthroughAdapter) Variants(base RequestBody, _ []string) []RequestBody {
	return []RequestBody{base}
}

// openCodeZenAdapter handles the OpenCode Zen gateway, which is only
// inconsistently OpenAI-compatible: some payload fields trigger 500s, some
// model ids are served on a different endpoint shape entirely.
type openCodeZenAdapter struct {
	cache      *cache.Service
	httpClient *http.Client
}

// Deprecated aliases still seen in configs, mapped to the ids the gateway
// actually serves.
var openCodeDeprecatedAliases = map[string]string{
	"grok-beta":         "grok-code",
	"claude-3.5-sonnet": "claude-sonnet-4",
	"deepseek-v2":       "deepseek-chat",
}

// Model families served on non-chat-completions endpoints.
var openCodeRejectedFamilies = []string{"text-embedding", "whisper", "dall-e"}

const modelCatalogTTL = 5 * time.Minute

func (a *openCodeZenAdapter) Name() string { return "opencode-zen" }

func (a *openCodeZenAdapter) ValidateEndpoint(apiURL string) *Error {
	u, err := url.Parse(apiURL)
	if err != nil {
		return ConfigError("LLM_API_URL is not a valid URL: %v", err)
	}
	if !strings.HasSuffix(strings.TrimRight(u.Path, "/"), chatCompletionsSuffix) {
		return ConfigError("OpenCode Zen URL must end with %s, got path %q", chatCompletionsSuffix, u.Path)
	}
	return nil
}

func (a *openCodeZenAdapter) ResolveModel(ctx context.Context, apiURL, model string) (string, *Error) {
	if mapped, ok := openCodeDeprecatedAliases[model]; ok {
		logx.Warn().Str("model", model).Str("replacement", mapped).Msg("deprecated model alias remapped")
		model = mapped
	}

	for _, family := range openCodeRejectedFamilies {
		if strings.HasPrefix(model, family) {
			return "", ConfigError(
				"model %q is not served on the chat-completions endpoint; use a chat model such as deepseek-chat or claude-sonnet-4", model)
		}
	}

	catalog := a.modelCatalog(ctx, apiURL)
	if len(catalog) == 0 {
		// Catalog unreachable: fail open, the live call validates anyway.
		return model, nil
	}
	for _, id := range catalog {
		if id == model {
			return model, nil
		}
	}
	examples := catalog
	if len(examples) > 5 {
		examples = examples[:5]
	}
	return "", ConfigError("model %q is not in the provider catalog; valid examples: %s", model, strings.Join(examples, ", "))
}

// modelCatalog fetches the gateway's live model list, cached briefly.
// Returns nil when unreachable.
func (a *openCodeZenAdapter) modelCatalog(ctx context.Context, apiURL string) []string {
	const key = "llm:opencode:models"

	var ids []string
	if a.cache != nil && a.cache.GetJSON(ctx, key, &ids) {
		return ids
	}

	modelsURL := strings.TrimSuffix(strings.TrimRight(apiURL, "/"), chatCompletionsSuffix) + "/models"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, modelsURL, nil)
	if err != nil {
		return nil
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		logx.Debug().Err(err).Msg("model catalog unreachable")
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var payload struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil
	}
	for _, m := range payload.Data {
		if m.ID != "" {
			ids = append(ids, m.ID)
		}
	}
	if a.cache != nil && len(ids) > 0 {
		a.cache.SetJSON(ctx, key, ids, modelCatalogTTL)
	}
	return ids
}

// Variants orders the fallback payloads: the literal request first, then
// progressively stripped shapes, then fallback model substitutions.
func (a *openCodeZenAdapter) Variants(base RequestBody, fallbackModels []string) []RequestBody {
	variants := []RequestBody{base}

	noTemp := base
	noTemp.Temperature = nil
	variants = append(variants, noTemp)

	minimal := noTemp
	minimal.MaxTokens = 0
	variants = append(variants, minimal)

	for _, model := range fallbackModels {
		v := minimal
		v.Model = model
		variants = append(variants, v)
	}

	return dedupeVariants(variants)
}

// FatalVariantSignature matches the gateway's known crash shape: a 500
// whose body is a null-field traceback mentioning prompt_tokens. That
// failure is payload-shape-sensitive, not transient.
func (a *openCodeZenAdapter) FatalVariantSignature(status int, body string) bool {
	return status >= 500 &&
		strings.Contains(body, "prompt_tokens") &&
		(strings.Contains(body, "NoneType") || strings.Contains(body, "null"))
}

func dedupeVariants(variants []RequestBody) []RequestBody {
	var out []RequestBody
	for _, v := range variants {
		duplicate := false
		for _, kept := range out {
			if v.equal(kept) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			out = append(out, v)
		}
	}
	return out
}
