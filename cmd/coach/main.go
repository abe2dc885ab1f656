// coach - bilingual LLM coaching reports for League of Legends matches.
//
// Reads a parsed match-analysis record (JSON) and emits either a full
// report or the newline-delimited JSON event stream.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/yd1008/lol-analyzer/internal/cache"
	"github.com/yd1008/lol-analyzer/internal/coach"
	"github.com/yd1008/lol-analyzer/internal/config"
	"github.com/yd1008/lol-analyzer/internal/knowledge"
	"github.com/yd1008/lol-analyzer/internal/llm"
	"github.com/yd1008/lol-analyzer/internal/lookup"
	"github.com/yd1008/lol-analyzer/internal/match"
	"github.com/yd1008/lol-analyzer/internal/prompt"
	"github.com/yd1008/lol-analyzer/pkg/logx"
)

func main() {
	inputPath := flag.String("input", "-", "match analysis JSON file, - for stdin")
	langFlag := flag.String("lang", "en", "report language (en or zh)")
	streamFlag := flag.Bool("stream", true, "emit the NDJSON event stream instead of plain text")
	forceFlag := flag.Bool("force", false, "regenerate even when a cached report exists")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logx.Init(logx.Environment(cfg.Env))

	input, err := readInput(*inputPath)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to read match analysis input")
	}
	if input.LaneOpponent == nil {
		input.LaneOpponent = match.DeriveLaneOpponent(input.Participants)
	}

	settings, serr := llm.ResolveSettings(cfg.LLM)
	if serr != nil {
		logx.Fatal().Str("error", serr.Message).Msg("provider settings invalid")
	}

	cacheSvc := cache.New(cfg.Cache)
	adapter := llm.SelectAdapter(settings.APIURL, cacheSvc)
	client := llm.NewClient(settings, adapter)

	local := knowledge.NewLocalKnowledge(cfg.Knowledge.File)
	builder := knowledge.NewBuilder(
		lookup.NewDataDragon(cacheSvc),
		lookup.NewLeagueClient(cfg.Riot.APIKey, cacheSvc),
		lookup.NewPatchNotes(cacheSvc),
		local,
		cfg.Knowledge.External,
	)
	composer := prompt.NewComposer(cfg.LLM.ResponseTokenTarget)
	service := coach.New(cacheSvc, builder, composer, client, cfg.Knowledge.External)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lang := prompt.ParseLanguage(*langFlag)
	opts := coach.Options{Force: *forceFlag}

	if *streamFlag {
		if err := coach.WriteEvents(os.Stdout, service.Stream(ctx, input, lang, opts)); err != nil {
			logx.Fatal().Err(err).Msg("event stream write failed")
		}
		return
	}

	report, err := service.Analyze(ctx, input, lang, opts)
	if err != nil {
		logx.Fatal().Err(err).Msg("analysis failed")
	}
	if report.Stale {
		logx.Warn().Str("error", report.Error).Msg("serving stale report")
	}
	fmt.Println(report.Text)
}

func readInput(path string) (*match.AnalysisInput, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var input match.AnalysisInput
	if err := json.NewDecoder(r).Decode(&input); err != nil {
		return nil, fmt.Errorf("invalid analysis JSON: %w", err)
	}
	return &input, nil
}
