package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yd1008/lol-analyzer/internal/match"
)

func perfInput() *match.AnalysisInput {
	opponent := &match.Participant{
		Champion: "Zed", SummonerName: "Shadow", TeamID: 200, Position: "MIDDLE",
		Kills: 2, Deaths: 2, Assists: 2,
		GoldEarned: 9000, TotalDamage: 15000, CS: 180, VisionScore: 15,
	}
	return &match.AnalysisInput{
		Champion:     "Ahri",
		KDA:          4.0,
		GoldPerMin:   400,
		DamagePerMin: 700,
		CSTotal:      240,
		VisionScore:  30,
		GameDuration: 30,
		Participants: []match.Participant{
			{Champion: "Ahri", TeamID: 100, Position: "MIDDLE", IsPlayer: true,
				GoldEarned: 12000, TotalDamage: 21000, CS: 240, VisionScore: 30},
			{Champion: "Jinx", TeamID: 100, Position: "BOTTOM",
				GoldEarned: 9000, TotalDamage: 18000, CS: 210, VisionScore: 12},
			*opponent,
			{Champion: "Caitlyn", TeamID: 200, Position: "BOTTOM",
				GoldEarned: 10500, TotalDamage: 16500, CS: 225, VisionScore: 18},
		},
		LaneOpponent: opponent,
	}
}

func deltaFor(t *testing.T, deltas []Delta, metric string) Delta {
	t.Helper()
	for _, d := range deltas {
		if d.Metric == metric {
			return d
		}
	}
	t.Fatalf("no delta for metric %s", metric)
	return Delta{}
}

func TestBuildPerformanceLobbyMedian(t *testing.T) {
	perf := buildPerformance(perfInput())

	// Lobby gold/min: 400, 300, 300, 350 -> median 325.
	gold := deltaFor(t, perf.Lobby, MetricGoldPerMin)
	assert.Equal(t, 400.0, gold.Player)
	assert.Equal(t, 325.0, gold.Baseline)
	assert.Equal(t, 75.0, gold.Diff)
}

func TestBuildPerformanceTeamCohort(t *testing.T) {
	perf := buildPerformance(perfInput())

	// Team gold/min: 400 (self), 300 -> median 350.
	gold := deltaFor(t, perf.Team, MetricGoldPerMin)
	assert.Equal(t, 350.0, gold.Baseline)
	assert.Equal(t, 50.0, gold.Diff)
}

func TestBuildPerformanceRoleCohort(t *testing.T) {
	perf := buildPerformance(perfInput())

	// Only the enemy mid shares the position.
	gold := deltaFor(t, perf.Role, MetricGoldPerMin)
	assert.Equal(t, 300.0, gold.Baseline)
	assert.Equal(t, 100.0, gold.Diff)
}

func TestBuildPerformanceLaneMatchup(t *testing.T) {
	perf := buildPerformance(perfInput())

	require.NotNil(t, perf.Lane)
	assert.Equal(t, "Zed", perf.Lane.OpponentChampion)
	assert.Equal(t, "Shadow", perf.Lane.OpponentName)
	assert.Equal(t, 100.0, perf.Lane.GoldDiffPerMin)
	assert.Equal(t, 2.0, perf.Lane.CSDiffPerMin)
	assert.Equal(t, 2.0, perf.Lane.KDADiff)
}

func TestBuildPerformanceNoOpponent(t *testing.T) {
	input := perfInput()
	input.LaneOpponent = nil

	perf := buildPerformance(input)
	assert.Nil(t, perf.Lane)
	assert.NotEmpty(t, perf.Lobby)
}

func TestBuildPerformanceNoPlayer(t *testing.T) {
	perf := buildPerformance(&match.AnalysisInput{GameDuration: 30})
	assert.Empty(t, perf.Lobby)
	assert.Nil(t, perf.Lane)
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 3.0, median([]float64{5, 1, 3}))
	assert.Equal(t, 2.5, median([]float64{4, 1, 2, 3}))
	assert.Equal(t, 0.0, median(nil))
}
