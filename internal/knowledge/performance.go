package knowledge

import (
	"math"
	"sort"

	"github.com/yd1008/lol-analyzer/internal/match"
)

// Metric names used across performance deltas and rank benchmarks.
const (
	MetricGoldPerMin   = "gold_per_min"
	MetricDamagePerMin = "damage_per_min"
	MetricCSPerMin     = "cs_per_min"
	MetricVisionPerMin = "vision_per_min"
)

// buildPerformance computes the player's per-minute deltas against the
// full lobby, the own team, and the role counterpart, plus the lane
// matchup when an opponent is present. Pure computation over the input.
func buildPerformance(input *match.AnalysisInput) RelativePerformance {
	player := input.Player()
	if player == nil {
		return RelativePerformance{}
	}

	playerRates := input.PlayerRates()
	duration := input.GameDuration

	var lobby, team, role []match.Rates
	for _, p := range input.Participants {
		r := p.RatesFor(duration)
		lobby = append(lobby, r)
		if p.TeamID == player.TeamID {
			team = append(team, r)
		}
		if p.Position != "" && p.Position == player.Position && !p.IsPlayer {
			role = append(role, r)
		}
	}

	perf := RelativePerformance{
		Lobby: deltasAgainst(playerRates, lobby),
		Team:  deltasAgainst(playerRates, team),
		Role:  deltasAgainst(playerRates, role),
	}

	if opp := input.LaneOpponent; opp != nil {
		oppRates := opp.RatesFor(duration)
		perf.Lane = &LaneMatchup{
			OpponentChampion: opp.Champion,
			OpponentName:     opp.SummonerName,
			GoldDiffPerMin:   round1(playerRates.GoldPerMin - oppRates.GoldPerMin),
			CSDiffPerMin:     round1(playerRates.CSPerMin - oppRates.CSPerMin),
			DamageDiffPerMin: round1(playerRates.DamagePerMin - oppRates.DamagePerMin),
			KDADiff:          round1(input.KDA - opp.KDARatio()),
		}
	}

	return perf
}

// deltasAgainst compares the player's rates to the cohort median for every
// metric. An empty cohort yields no deltas.
func deltasAgainst(player match.Rates, cohort []match.Rates) []Delta {
	if len(cohort) == 0 {
		return nil
	}

	metrics := []struct {
		name   string
		player float64
		pick   func(match.Rates) float64
	}{
		{MetricGoldPerMin, player.GoldPerMin, func(r match.Rates) float64 { return r.GoldPerMin }},
		{MetricDamagePerMin, player.DamagePerMin, func(r match.Rates) float64 { return r.DamagePerMin }},
		{MetricCSPerMin, player.CSPerMin, func(r match.Rates) float64 { return r.CSPerMin }},
		{MetricVisionPerMin, player.VisionPerMin, func(r match.Rates) float64 { return r.VisionPerMin }},
	}

	deltas := make([]Delta, 0, len(metrics))
	for _, m := range metrics {
		values := make([]float64, 0, len(cohort))
		for _, r := range cohort {
			values = append(values, m.pick(r))
		}
		baseline := median(values)
		deltas = append(deltas, Delta{
			Metric:   m.name,
			Player:   round1(m.player),
			Baseline: round1(baseline),
			Diff:     round1(m.player - baseline),
		})
	}
	return deltas
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
