package llm

import (
	"encoding/json"
	"time"

	"github.com/yd1008/lol-analyzer/internal/config"
)

// Message is one chat-completion message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RequestBody is the chat-completions payload. Optional fields use
// pointer/zero semantics so payload variants can strip them.
type RequestBody struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
	Stream      bool      `json:"stream,omitempty"`
}

// equal compares two bodies by structural (serialized) equality.
func (b RequestBody) equal(other RequestBody) bool {
	left, err := json.Marshal(b)
	if err != nil {
		return false
	}
	right, err := json.Marshal(other)
	if err != nil {
		return false
	}
	return string(left) == string(right)
}

// chatResponse is the non-streaming completion response.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content          string `json:"content"`
			ReasoningContent string `json:"reasoning_content"`
		} `json:"message"`
	} `json:"choices"`
}

// streamFrame is one streamed event frame. Providers deliver the delta in
// one of three shapes; all are accepted.
type streamFrame struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Text string `json:"text"`
	} `json:"choices"`
}

func (f streamFrame) delta() string {
	if len(f.Choices) == 0 {
		return ""
	}
	c := f.Choices[0]
	if c.Delta.Content != "" {
		return c.Delta.Content
	}
	if c.Message.Content != "" {
		return c.Message.Content
	}
	return c.Text
}

// StreamEventType tags executor stream events.
type StreamEventType string

const (
	StreamChunk StreamEventType = "chunk"
	StreamDone  StreamEventType = "done"
	StreamError StreamEventType = "error"
)

// StreamEvent is one executor-level streaming event. Chunk events carry an
// incremental delta; done carries the full normalized text; error carries
// the classified failure. The sequence is terminal once done or error is
// emitted.
type StreamEvent struct {
	Type  StreamEventType
	Delta string
	Text  string
	Err   *Error
}

// Settings are the validated provider settings for one request.
type Settings struct {
	APIURL         string
	Model          string
	FallbackModels []string
	Timeout        time.Duration
	Retries        int
	Backoff        time.Duration
	MaxTokens      int
	AuthHeader     string
}

// ResolveSettings validates the raw configuration into Settings, failing
// fast when a required field is absent.
func ResolveSettings(cfg config.LLMConfig) (*Settings, *Error) {
	if cfg.APIKey == "" {
		return nil, ConfigError("LLM_API_KEY is not set")
	}
	if cfg.APIURL == "" {
		return nil, ConfigError("LLM_API_URL is not set")
	}
	if cfg.Model == "" {
		return nil, ConfigError("LLM_MODEL is not set")
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	retries := cfg.Retries
	if retries < 0 {
		retries = 0
	}

	return &Settings{
		APIURL:         cfg.APIURL,
		Model:          cfg.Model,
		FallbackModels: cfg.FallbackModelList(),
		Timeout:        time.Duration(timeout) * time.Second,
		Retries:        retries,
		Backoff:        time.Duration(cfg.RetryBackoffSeconds * float64(time.Second)),
		MaxTokens:      cfg.MaxTokens,
		AuthHeader:     "Bearer " + cfg.APIKey,
	}, nil
}
