package knowledge

import (
	"context"
	"strings"

	"github.com/yd1008/lol-analyzer/internal/lookup"
	"github.com/yd1008/lol-analyzer/internal/match"
	"github.com/yd1008/lol-analyzer/pkg/logx"
)

// Rank-unavailable reasons surfaced verbatim in the prompt.
const (
	ReasonQueueNotRanked    = "queue is not ranked"
	ReasonMissingRegion     = "platform region unknown"
	ReasonMissingIdentifier = "player identifier missing"
	ReasonPeerDataAbsent    = "rank data for lobby peers unavailable"
	ReasonExternalDisabled  = "external knowledge disabled"
)

// peerScoreRadius is the maximum rank-score distance for a participant to
// count as a rank-similar peer.
const peerScoreRadius = 300

var tierOrder = []string{
	"IRON", "BRONZE", "SILVER", "GOLD", "PLATINUM",
	"EMERALD", "DIAMOND", "MASTER", "GRANDMASTER", "CHALLENGER",
}

var divisionValue = map[string]int{"IV": 0, "III": 100, "II": 200, "I": 300}

// rankScore linearizes tier/division/LP onto a single ladder. Unknown
// tiers return -1.
func rankScore(e lookup.LeagueEntry) int {
	tier := strings.ToUpper(e.Tier)
	for i, t := range tierOrder {
		if t == tier {
			return i*400 + divisionValue[strings.ToUpper(e.Rank)] + e.LeaguePoints
		}
	}
	return -1
}

func unavailable(reason, queue string) RankBenchmark {
	return RankBenchmark{Available: false, Reason: reason, Queue: queue}
}

// buildRank benchmarks the player's per-minute rates against the median of
// rank-similar lobby peers. Every failure mode reports an explicit reason
// instead of guessing.
func (b *Builder) buildRank(ctx context.Context, input *match.AnalysisInput) RankBenchmark {
	queue := match.RankedQueueType(input.QueueType)
	if queue == "" {
		return unavailable(ReasonQueueNotRanked, "")
	}
	if !lookup.ValidRegion(input.Region) {
		return unavailable(ReasonMissingRegion, queue)
	}

	player := input.Player()
	if player == nil || player.SummonerID == "" {
		return unavailable(ReasonMissingIdentifier, queue)
	}

	// One lookup per participant; each individually cache-protected, so
	// repeat requests for the same match are cheap.
	scores := make(map[string]int, len(input.Participants))
	var playerEntry *lookup.LeagueEntry
	for _, p := range input.Participants {
		if p.SummonerID == "" {
			continue
		}
		entries, err := b.league.EntriesBySummoner(ctx, input.Region, p.SummonerID)
		if err != nil {
			logx.Debug().Err(err).Str("summoner", p.SummonerName).Msg("league lookup failed")
			continue
		}
		for _, e := range entries {
			if e.QueueType != queue {
				continue
			}
			if score := rankScore(e); score >= 0 {
				scores[p.PUUID] = score
				if p.IsPlayer {
					entry := e
					playerEntry = &entry
				}
			}
			break
		}
	}

	playerScore, ok := scores[player.PUUID]
	if !ok {
		return unavailable(ReasonPeerDataAbsent, queue)
	}

	var peers []match.Rates
	for _, p := range input.Participants {
		if p.IsPlayer {
			continue
		}
		score, ok := scores[p.PUUID]
		if !ok {
			continue
		}
		if abs(score-playerScore) <= peerScoreRadius {
			peers = append(peers, p.RatesFor(input.GameDuration))
		}
	}

	if len(peers) < 2 {
		return unavailable(ReasonPeerDataAbsent, queue)
	}

	bench := RankBenchmark{
		Available:  true,
		Queue:      queue,
		PeerCount:  len(peers),
		Benchmarks: deltasAgainst(input.PlayerRates(), peers),
	}
	if playerEntry != nil {
		bench.PlayerTier = playerEntry.Tier + " " + playerEntry.Rank
	}
	return bench
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
