package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yd1008/lol-analyzer/pkg/logx"
)

const defaultTemperature = 0.7

// Result is a successful synchronous completion.
type Result struct {
	Text    string
	Model   string
	Retries int // retry attempts consumed across all variants
}

// Client executes completion requests against the configured provider,
// applying the retry/backoff and payload-variant fallback policy.
type Client struct {
	settings   *Settings
	adapter    ProviderAdapter
	httpClient *http.Client
	streamHTTP *http.Client
}

// NewClient creates an executor for the given validated settings. The
// synchronous client bounds the whole exchange; the streaming client only
// bounds the wait for response headers, since a healthy stream may deliver
// its body for far longer than the request timeout. Stream body reads are
// canceled through ctx.
func NewClient(settings *Settings, adapter ProviderAdapter) *Client {
	return &Client{
		settings: settings,
		adapter:  adapter,
		httpClient: &http.Client{
			Timeout: settings.Timeout,
		},
		streamHTTP: &http.Client{
			Transport: &http.Transport{
				ResponseHeaderTimeout: settings.Timeout,
			},
		},
	}
}

// prepare validates the endpoint/model through the adapter and builds the
// ordered variant list for one request.
func (c *Client) prepare(ctx context.Context, system, user string, stream bool) ([]RequestBody, *Error) {
	if err := c.adapter.ValidateEndpoint(c.settings.APIURL); err != nil {
		return nil, err
	}
	model, err := c.adapter.ResolveModel(ctx, c.settings.APIURL, c.settings.Model)
	if err != nil {
		return nil, err
	}

	temp := defaultTemperature
	base := RequestBody{
		Model: model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   c.settings.MaxTokens,
		Temperature: &temp,
		Stream:      stream,
	}
	return c.adapter.Variants(base, c.settings.FallbackModels), nil
}

// Complete runs the synchronous completion path and returns the normalized
// response text.
func (c *Client) Complete(ctx context.Context, system, user string) (*Result, error) {
	variants, perr := c.prepare(ctx, system, user, false)
	if perr != nil {
		return nil, perr
	}

	attempts := c.settings.Retries + 1
	retriesUsed := 0
	var lastErr *Error

	for vi, body := range variants {
		advanceVariant := false
		for attempt := 0; attempt < attempts; attempt++ {
			if attempt > 0 {
				retriesUsed++
				if err := c.backoff(ctx, attempt-1); err != nil {
					return nil, TransientError(http.StatusGatewayTimeout, "canceled during retry backoff: %v", err)
				}
			}

			text, err := c.doSync(ctx, body)
			if err == nil {
				return &Result{Text: text, Model: body.Model, Retries: retriesUsed}, nil
			}

			lastErr = err
			if err.Kind != KindTransient {
				return nil, err
			}
			// A crash-signature 5xx is payload-shape-sensitive: skip the
			// remaining retries on this variant and try the next shape.
			if c.adapter.FatalVariantSignature(providerStatus(err), err.Message) && vi < len(variants)-1 {
				logx.Warn().
					Str("model", body.Model).
					Int("variant", vi+2).
					Int("variants", len(variants)).
					Msg("provider crash signature, advancing to fallback payload variant")
				advanceVariant = true
				break
			}
		}
		// A transient failure that exhausted its retry budget is terminal;
		// only the crash signature advances variants.
		if !advanceVariant {
			break
		}
	}

	if lastErr == nil {
		lastErr = TransientError(http.StatusBadGateway, "unknown completion request failure")
	}
	return nil, lastErr
}

// doSync performs one POST and classifies the outcome.
func (c *Client) doSync(ctx context.Context, body RequestBody) (string, *Error) {
	resp, cerr := c.post(ctx, body)
	if cerr != nil {
		return "", cerr
	}
	defer resp.Body.Close()

	if cerr := c.classifyStatus(resp); cerr != nil {
		return "", cerr
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", TransientError(http.StatusBadGateway, "failed to read response: %v", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return "", MalformedError("provider returned empty response body. URL: %s | Model: %s", c.settings.APIURL, body.Model)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", MalformedError("provider returned non-JSON response. URL: %s | Body: %s", c.settings.APIURL, truncate(string(raw), 300))
	}
	if len(parsed.Choices) == 0 {
		return "", MalformedError("provider response missing choices. URL: %s | Body: %s", c.settings.APIURL, truncate(string(raw), 300))
	}

	content := parsed.Choices[0].Message.Content
	if content == "" {
		content = parsed.Choices[0].Message.ReasoningContent
	}
	if content == "" {
		return "", MalformedError("provider response missing content. URL: %s | Body: %s", c.settings.APIURL, truncate(string(raw), 300))
	}
	return softTextClean(content), nil
}

// Stream runs the streaming completion path, delivering events on a
// bounded channel. The channel is closed after a terminal event. The
// producer observes ctx so a departed consumer releases the connection.
func (c *Client) Stream(ctx context.Context, system, user string) <-chan StreamEvent {
	ch := make(chan StreamEvent, 16)
	go func() {
		defer close(ch)
		c.stream(ctx, system, user, ch)
	}()
	return ch
}

func (c *Client) stream(ctx context.Context, system, user string, ch chan<- StreamEvent) {
	emit := func(ev StreamEvent) bool {
		select {
		case ch <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	variants, perr := c.prepare(ctx, system, user, true)
	if perr != nil {
		emit(StreamEvent{Type: StreamError, Err: perr})
		return
	}

	attempts := c.settings.Retries + 1
	var lastErr *Error

	for vi, body := range variants {
		advanceVariant := false
		for attempt := 0; attempt < attempts; attempt++ {
			if attempt > 0 {
				if err := c.backoff(ctx, attempt-1); err != nil {
					return
				}
			}

			done, err := c.streamOnce(ctx, body, emit)
			if done {
				return
			}
			if err == nil {
				return // consumer went away
			}

			lastErr = err
			if err.Kind != KindTransient {
				emit(StreamEvent{Type: StreamError, Err: err})
				return
			}
			if c.adapter.FatalVariantSignature(providerStatus(err), err.Message) && vi < len(variants)-1 {
				logx.Warn().
					Str("model", body.Model).
					Int("variant", vi+2).
					Msg("provider crash signature on stream, advancing to fallback payload variant")
				advanceVariant = true
				break
			}
		}
		if !advanceVariant {
			break
		}
	}

	if lastErr == nil {
		lastErr = TransientError(http.StatusBadGateway, "unknown stream request failure")
	}
	emit(StreamEvent{Type: StreamError, Err: lastErr})
}

// streamOnce issues one streaming request. It returns done=true when a
// terminal event was emitted, or a classified error when the attempt may
// be retried or advanced. Once any chunk has been emitted, failures are
// terminal: partial output cannot be retried under a different payload.
func (c *Client) streamOnce(ctx context.Context, body RequestBody, emit func(StreamEvent) bool) (bool, *Error) {
	resp, cerr := c.post(ctx, body)
	if cerr != nil {
		return false, cerr
	}
	defer resp.Body.Close()

	if cerr := c.classifyStatus(resp); cerr != nil {
		return false, cerr
	}

	var collected strings.Builder
	emittedAny := false

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if line == "" {
			continue
		}
		if line == "[DONE]" {
			break
		}

		var frame streamFrame
		if err := json.Unmarshal([]byte(line), &frame); err != nil {
			continue
		}
		delta := frame.delta()
		if delta == "" {
			continue
		}
		collected.WriteString(delta)
		if !emit(StreamEvent{Type: StreamChunk, Delta: delta}) {
			return false, nil // consumer canceled; connection released by defer
		}
		emittedAny = true
	}

	if err := scanner.Err(); err != nil {
		if emittedAny {
			// Partial output already delivered: end in error, no re-issue.
			emit(StreamEvent{Type: StreamError, Err: TransientError(http.StatusBadGateway, "stream interrupted: %v", err)})
			return true, nil
		}
		return false, TransientError(http.StatusBadGateway, "stream read failed: %v", err)
	}

	content := softTextClean(collected.String())
	if content == "" {
		return false, MalformedError("stream response missing choices/content. URL: %s | Model: %s", c.settings.APIURL, body.Model)
	}
	emit(StreamEvent{Type: StreamDone, Text: content})
	return true, nil
}

// post issues the HTTP request, classifying transport failures.
func (c *Client) post(ctx context.Context, body RequestBody) (*http.Response, *Error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, MalformedError("failed to marshal request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.settings.APIURL, bytes.NewReader(payload))
	if err != nil {
		return nil, ConfigError("failed to create request: %v", err)
	}
	req.Header.Set("Authorization", c.settings.AuthHeader)
	req.Header.Set("Content-Type", "application/json")

	hc := c.httpClient
	if body.Stream {
		hc = c.streamHTTP
	}
	resp, err := hc.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &Error{
				Kind:    KindTransient,
				Status:  http.StatusGatewayTimeout,
				Message: fmt.Sprintf("request timed out after %s. URL: %s | Model: %s", c.settings.Timeout, c.settings.APIURL, body.Model),
				Err:     err,
			}
		}
		return nil, TransientError(http.StatusBadGateway, "request failed. URL: %s | Error: %v", c.settings.APIURL, err)
	}
	return resp, nil
}

// classifyStatus maps non-200 statuses onto the error taxonomy, consuming
// the body for the diagnostic message. Returns nil for 200.
func (c *Client) classifyStatus(resp *http.Response) *Error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 300))
	text := string(snippet)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return AuthError("authentication failed (401), check your LLM_API_KEY. Response: %s", truncate(text, 200))
	case resp.StatusCode == http.StatusNotFound:
		return NotFoundError("endpoint not found (404), check your LLM_API_URL: %s", c.settings.APIURL)
	case resp.StatusCode >= 500:
		return TransientError(http.StatusBadGateway, "provider returned status %d: %s", resp.StatusCode, text)
	default:
		return ConfigError("provider returned status %d: %s", resp.StatusCode, text)
	}
}

// backoff sleeps backoff × 2^attempt, observing ctx.
func (c *Client) backoff(ctx context.Context, attempt int) error {
	if c.settings.Backoff <= 0 {
		return nil
	}
	d := c.settings.Backoff * (1 << attempt)
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// providerStatus extracts the upstream status code embedded in a transient
// error message; the crash-signature check only needs the 5xx-ness.
func providerStatus(err *Error) int {
	if err.Kind != KindTransient {
		return 0
	}
	if strings.Contains(err.Message, "status 5") {
		return 500
	}
	return err.Status
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}

var htmlTagPattern = regexp.MustCompile(`<[^>\n]{1,80}>`)

// softTextClean strips HTML-looking tags and collapses runs of whitespace
// while preserving paragraph breaks.
func softTextClean(text string) string {
	text = htmlTagPattern.ReplaceAllString(text, "")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	text = strings.Join(lines, "\n")

	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(text)
}

// truncate shortens s to at most n bytes, backing up to a rune boundary so
// multi-byte provider bodies stay valid UTF-8 in diagnostics.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
