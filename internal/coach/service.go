// Package coach orchestrates the coaching pipeline: knowledge enrichment,
// prompt composition, LLM execution, and the caller-facing event protocol.
package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/yd1008/lol-analyzer/internal/cache"
	"github.com/yd1008/lol-analyzer/internal/knowledge"
	"github.com/yd1008/lol-analyzer/internal/llm"
	"github.com/yd1008/lol-analyzer/internal/match"
	"github.com/yd1008/lol-analyzer/internal/prompt"
	"github.com/yd1008/lol-analyzer/pkg/logx"
)

const resultTTL = 24 * time.Hour

// Event is one caller-facing stream event, serialized as newline-delimited
// JSON. The sequence is: one meta, zero or more chunks, then exactly one of
// done, stale or error.
type Event struct {
	Type      string `json:"type"`
	Cached    *bool  `json:"cached,omitempty"`
	Language  string `json:"language,omitempty"`
	Knowledge bool   `json:"knowledge,omitempty"`
	Delta     string `json:"delta,omitempty"`
	Analysis  string `json:"analysis,omitempty"`
	Error     string `json:"error,omitempty"`
	Status    int    `json:"status,omitempty"`
}

// cachedFlag marks the meta/done events that carry the cached field; the
// other event shapes omit it entirely.
func cachedFlag(v bool) *bool {
	return &v
}

// Event type tags.
const (
	EventMeta  = "meta"
	EventChunk = "chunk"
	EventDone  = "done"
	EventStale = "stale"
	EventError = "error"
)

// Report is the synchronous outcome. Stale reports carry both the cached
// text and the error that prevented fresh generation.
type Report struct {
	Text   string
	Cached bool
	Stale  bool
	Error  string
}

// Options tune one request.
type Options struct {
	// Force regenerates even when a cached report exists; the cached copy
	// is still used as the stale fallback.
	Force bool
}

// Service runs coaching requests. One instance serves all requests; all
// cross-request state lives in the cache service.
type Service struct {
	cache     *cache.Service
	builder   *knowledge.Builder
	composer  *prompt.Composer
	client    *llm.Client
	knowledge bool
}

// New assembles the pipeline.
func New(c *cache.Service, builder *knowledge.Builder, composer *prompt.Composer, client *llm.Client, knowledgeEnabled bool) *Service {
	return &Service{
		cache:     c,
		builder:   builder,
		composer:  composer,
		client:    client,
		knowledge: knowledgeEnabled,
	}
}

func resultKey(input *match.AnalysisInput, lang prompt.Language) string {
	return fmt.Sprintf("coach:result:%s:%s:%s", input.MatchID, input.PlayerPUUID, lang)
}

// Analyze runs the synchronous path and returns the full report.
func (s *Service) Analyze(ctx context.Context, input *match.AnalysisInput, lang prompt.Language, opts Options) (*Report, error) {
	key := resultKey(input, lang)
	if !opts.Force {
		if text, ok := s.cache.Get(ctx, key); ok {
			return &Report{Text: text, Cached: true}, nil
		}
	}

	kc := s.builder.Build(ctx, input)
	pair := s.composer.Compose(input, kc, lang)

	result, err := s.client.Complete(ctx, pair.System, pair.User)
	if err != nil {
		if text, ok := s.cache.Get(ctx, key); ok {
			logx.Warn().Err(err).Str("match", input.MatchID).Msg("generation failed, serving stale report")
			return &Report{Text: text, Cached: true, Stale: true, Error: err.Error()}, nil
		}
		return nil, err
	}

	s.cache.Set(ctx, key, result.Text, resultTTL)
	return &Report{Text: result.Text}, nil
}

// Stream runs the streaming path. Events arrive on a bounded channel that
// closes after the terminal event; the caller cancels by ctx.
func (s *Service) Stream(ctx context.Context, input *match.AnalysisInput, lang prompt.Language, opts Options) <-chan Event {
	ch := make(chan Event, 16)
	go func() {
		defer close(ch)
		s.streamInto(ctx, input, lang, opts, ch)
	}()
	return ch
}

func (s *Service) streamInto(ctx context.Context, input *match.AnalysisInput, lang prompt.Language, opts Options, ch chan<- Event) {
	emit := func(ev Event) bool {
		select {
		case ch <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	key := resultKey(input, lang)
	cached, hasCached := s.cache.Get(ctx, key)

	if hasCached && !opts.Force {
		if !emit(Event{Type: EventMeta, Cached: cachedFlag(true), Language: string(lang), Knowledge: s.knowledge}) {
			return
		}
		emit(Event{Type: EventDone, Analysis: cached, Cached: cachedFlag(true)})
		return
	}

	if !emit(Event{Type: EventMeta, Cached: cachedFlag(false), Language: string(lang), Knowledge: s.knowledge}) {
		return
	}

	kc := s.builder.Build(ctx, input)
	pair := s.composer.Compose(input, kc, lang)

	for ev := range s.client.Stream(ctx, pair.System, pair.User) {
		switch ev.Type {
		case llm.StreamChunk:
			if !emit(Event{Type: EventChunk, Delta: ev.Delta}) {
				return
			}
		case llm.StreamDone:
			s.cache.Set(ctx, key, ev.Text, resultTTL)
			emit(Event{Type: EventDone, Analysis: ev.Text, Cached: cachedFlag(false)})
			return
		case llm.StreamError:
			if hasCached {
				logx.Warn().Str("match", input.MatchID).Str("error", ev.Err.Message).Msg("stream failed, serving stale report")
				emit(Event{Type: EventStale, Analysis: cached, Error: ev.Err.Message})
				return
			}
			emit(Event{Type: EventError, Error: ev.Err.Message, Status: ev.Err.Status})
			return
		}
	}
}

// WriteEvents relays a stream as newline-delimited JSON to w.
func WriteEvents(w io.Writer, events <-chan Event) error {
	enc := json.NewEncoder(w)
	for ev := range events {
		if err := enc.Encode(ev); err != nil {
			return err
		}
		if f, ok := w.(interface{ Flush() }); ok {
			f.Flush()
		}
	}
	return nil
}
