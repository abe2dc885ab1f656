package knowledge

import (
	"context"

	"github.com/yd1008/lol-analyzer/internal/lookup"
	"github.com/yd1008/lol-analyzer/internal/match"
	"github.com/yd1008/lol-analyzer/pkg/logx"
)

// Builder produces a knowledge Context for one match-analysis record. All
// remote lookups are best-effort: a failed enrichment degrades its
// sub-object to an empty or defaulted value and never aborts the build.
type Builder struct {
	ref      lookup.ReferenceData
	league   lookup.LeagueEntriesFetcher
	patch    lookup.PatchNotesFetcher
	local    *LocalKnowledge
	external bool
	weights  GrowthWeights
}

// NewBuilder creates a knowledge builder. When external is false, no
// remote calls are made and only locally derivable signals are produced.
func NewBuilder(ref lookup.ReferenceData, league lookup.LeagueEntriesFetcher, patch lookup.PatchNotesFetcher, local *LocalKnowledge, external bool) *Builder {
	if local == nil {
		local = NewLocalKnowledge("")
	}
	return &Builder{
		ref:      ref,
		league:   league,
		patch:    patch,
		local:    local,
		external: external,
		weights:  DefaultGrowthWeights,
	}
}

// Build assembles the knowledge context for input. It never returns an
// error; unavailable signals come back empty with their reason recorded
// where the data model provides one.
func (b *Builder) Build(ctx context.Context, input *match.AnalysisInput) *Context {
	kc := &Context{
		Performance: buildPerformance(input),
	}
	kc.Patch.Notes = b.local.PatchNotes()

	if !b.external {
		// Remote enrichment is off: overrides still apply, everything else
		// stays at its default.
		kc.Champions.Player = b.profileFor(input.Champion, nil)
		if opp := input.LaneOpponent; opp != nil {
			kc.Champions.Opponent = b.profileFor(opp.Champion, nil)
		}
		kc.Rank = unavailable(ReasonExternalDisabled, "")
		return kc
	}

	version, err := b.ref.LatestVersion(ctx)
	if err != nil {
		logx.Warn().Err(err).Msg("reference version unavailable, knowledge degraded")
	}
	kc.Patch.Version = version

	if version != "" {
		if len(kc.Patch.Notes) == 0 && b.patch != nil {
			if notes, err := b.patch.Headlines(ctx, version); err == nil {
				kc.Patch.Notes = notes
			} else {
				logx.Debug().Err(err).Msg("patch notes unavailable")
			}
		}

		recs := b.resolveChampions(ctx, version, input)
		kc.Champions.Player = b.profileFor(input.Champion, recs[input.Champion])
		if opp := input.LaneOpponent; opp != nil {
			kc.Champions.Opponent = b.profileFor(opp.Champion, recs[opp.Champion])
		}
		kc.TeamComp = b.buildTeamComp(input, recs)

		if items, err := b.ref.Items(ctx, version, input.ItemIDs); err == nil {
			kc.Items = items
		} else {
			logx.Debug().Err(err).Msg("item enrichment unavailable")
		}
	} else {
		kc.Champions.Player = b.profileFor(input.Champion, nil)
		if opp := input.LaneOpponent; opp != nil {
			kc.Champions.Opponent = b.profileFor(opp.Champion, nil)
		}
	}

	kc.Rank = b.buildRank(ctx, input)
	return kc
}

// resolveChampions fetches reference records for every distinct champion in
// the lobby. Failed lookups leave nil entries, which downstream consumers
// skip.
func (b *Builder) resolveChampions(ctx context.Context, version string, input *match.AnalysisInput) map[string]*lookup.ChampionRecord {
	recs := make(map[string]*lookup.ChampionRecord)

	resolve := func(name string) {
		if name == "" {
			return
		}
		if _, done := recs[name]; done {
			return
		}
		rec, err := b.ref.Champion(ctx, version, name)
		if err != nil {
			logx.Debug().Err(err).Str("champion", name).Msg("champion lookup failed")
			recs[name] = nil
			return
		}
		recs[name] = rec
	}

	resolve(input.Champion)
	if input.LaneOpponent != nil {
		resolve(input.LaneOpponent.Champion)
	}
	for _, p := range input.Participants {
		resolve(p.Champion)
	}
	return recs
}
