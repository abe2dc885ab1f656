// Package knowledge derives the non-raw coaching signals injected into the
// prompt: phase profiles, team-comp notes, relative-performance deltas and
// rank benchmarks.
package knowledge

import "github.com/yd1008/lol-analyzer/internal/lookup"

// PhaseLabel is a qualitative power label for one game phase.
type PhaseLabel string

const (
	Weak    PhaseLabel = "weak"
	Average PhaseLabel = "average"
	Strong  PhaseLabel = "strong"
)

// Profile sources, recorded for transparency in the rendered prompt.
const (
	SourceOverride  = "override"
	SourceHeuristic = "heuristic"
)

// PhaseProfile is a champion's early/mid/late power labeling.
type PhaseProfile struct {
	Champion string     `json:"champion"`
	Early    PhaseLabel `json:"early"`
	Mid      PhaseLabel `json:"mid"`
	Late     PhaseLabel `json:"late"`
	Source   string     `json:"source"`
}

// PatchInfo carries the current reference-data version and patch headlines.
type PatchInfo struct {
	Version string   `json:"version"`
	Notes   []string `json:"notes"`
}

// ChampionProfiles holds phase profiles for the player and, when present,
// the lane opponent.
type ChampionProfiles struct {
	Player   *PhaseProfile `json:"player"`
	Opponent *PhaseProfile `json:"opponent"`
}

// SideComp summarizes one team side's composition.
type SideComp struct {
	TagCounts  map[string]int `json:"tag_counts"`
	Notes      []string       `json:"notes"`
	SpikePhase string         `json:"spike_phase"`
}

// TeamComp holds comp summaries for both sides plus detected ally
// synergies.
type TeamComp struct {
	Ally      SideComp `json:"ally"`
	Enemy     SideComp `json:"enemy"`
	Synergies []string `json:"synergies"`
}

// Delta is one signed comparison of a player's per-minute rate against a
// cohort baseline.
type Delta struct {
	Metric   string  `json:"metric"`
	Player   float64 `json:"player"`
	Baseline float64 `json:"baseline"`
	Diff     float64 `json:"diff"`
}

// LaneMatchup is the head-to-head comparison against the lane opponent.
type LaneMatchup struct {
	OpponentChampion string  `json:"opponent_champion"`
	OpponentName     string  `json:"opponent_name"`
	GoldDiffPerMin   float64 `json:"gold_diff_per_min"`
	CSDiffPerMin     float64 `json:"cs_diff_per_min"`
	DamageDiffPerMin float64 `json:"damage_diff_per_min"`
	KDADiff          float64 `json:"kda_diff"`
}

// RelativePerformance holds the player's deltas against the comparison
// cohorts. Lane is nil when no lane opponent is present.
type RelativePerformance struct {
	Lobby []Delta      `json:"lobby"`
	Team  []Delta      `json:"team"`
	Role  []Delta      `json:"role"`
	Lane  *LaneMatchup `json:"lane"`
}

// RankBenchmark compares the player against rank-similar lobby peers. When
// the benchmark cannot be computed, Available is false and Reason says why.
type RankBenchmark struct {
	Available  bool    `json:"available"`
	Reason     string  `json:"reason"`
	Queue      string  `json:"queue"`
	PlayerTier string  `json:"player_tier"`
	PeerCount  int     `json:"peer_count"`
	Benchmarks []Delta `json:"benchmarks"`
}

// Context is the aggregated, read-only knowledge bundle for one match.
// Built fresh per request; never mutated after construction.
type Context struct {
	Patch       PatchInfo           `json:"patch"`
	Champions   ChampionProfiles    `json:"champions"`
	Items       []lookup.Item       `json:"items"`
	TeamComp    TeamComp            `json:"team_comp"`
	Performance RelativePerformance `json:"relative_performance"`
	Rank        RankBenchmark       `json:"rank"`
}
