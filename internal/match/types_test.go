package match

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKDARatioZeroDeaths(t *testing.T) {
	p := Participant{Kills: 8, Deaths: 0, Assists: 12}
	assert.Equal(t, 20.0, p.KDARatio(), "denominator must be floored at 1")
}

func TestKDARatio(t *testing.T) {
	p := Participant{Kills: 6, Deaths: 3, Assists: 6}
	assert.Equal(t, 4.0, p.KDARatio())
}

func TestRatesForShortGame(t *testing.T) {
	p := Participant{GoldEarned: 500, TotalDamage: 1000, CS: 10, VisionScore: 2}

	r := p.RatesFor(0)
	assert.Equal(t, 500.0, r.GoldPerMin, "sub-minute durations are floored at 1")
}

func TestRatesFor(t *testing.T) {
	p := Participant{GoldEarned: 12000, TotalDamage: 24000, CS: 240, VisionScore: 30}

	r := p.RatesFor(30)
	assert.Equal(t, 400.0, r.GoldPerMin)
	assert.Equal(t, 800.0, r.DamagePerMin)
	assert.Equal(t, 8.0, r.CSPerMin)
	assert.Equal(t, 1.0, r.VisionPerMin)
}

func TestDeriveLaneOpponent(t *testing.T) {
	participants := []Participant{
		{Champion: "Ahri", Position: "MIDDLE", TeamID: 100, IsPlayer: true},
		{Champion: "Zed", Position: "MIDDLE", TeamID: 200},
		{Champion: "Jinx", Position: "BOTTOM", TeamID: 200},
	}

	opp := DeriveLaneOpponent(participants)
	require.NotNil(t, opp)
	assert.Equal(t, "Zed", opp.Champion)
}

func TestDeriveLaneOpponentMissingPosition(t *testing.T) {
	participants := []Participant{
		{Champion: "Ahri", TeamID: 100, IsPlayer: true},
		{Champion: "Zed", Position: "MIDDLE", TeamID: 200},
	}

	assert.Nil(t, DeriveLaneOpponent(participants))
}

func TestPlayerFallbackToPUUID(t *testing.T) {
	input := AnalysisInput{
		PlayerPUUID: "p1",
		Participants: []Participant{
			{PUUID: "p0"},
			{PUUID: "p1", Champion: "Ahri"},
		},
	}

	player := input.Player()
	require.NotNil(t, player)
	assert.Equal(t, "Ahri", player.Champion)
}

func TestAnalysisInputRegionWireName(t *testing.T) {
	var input AnalysisInput
	require.NoError(t, json.Unmarshal([]byte(`{"platform_region":"na1","match_id":"NA1_1"}`), &input))
	assert.Equal(t, "na1", input.Region, "the wire field carries the platform region")
}

func TestQueueLabel(t *testing.T) {
	assert.Equal(t, "Ranked Solo", QueueLabel(420))
	assert.Equal(t, "Other", QueueLabel(99999))
}

func TestRankedQueueType(t *testing.T) {
	assert.Equal(t, "RANKED_SOLO_5x5", RankedQueueType("Ranked Solo"))
	assert.Equal(t, "RANKED_FLEX_SR", RankedQueueType("Ranked Flex"))
	assert.Empty(t, RankedQueueType("ARAM"))
}
