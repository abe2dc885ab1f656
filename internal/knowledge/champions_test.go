package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yd1008/lol-analyzer/internal/lookup"
)

// Stats tuned to land the growth ratio in a specific band.
var (
	lateScalingStats = lookup.ChampionStats{
		HP: 500, HPPerLevel: 100, AD: 50, ADPerLevel: 4,
		Armor: 20, ArmorPerLevel: 4, MR: 30, MRPerLevel: 2,
	} // ratio ≈ 3.7
	earlyScalingStats = lookup.ChampionStats{
		HP: 700, HPPerLevel: 40, AD: 70, ADPerLevel: 1,
		Armor: 40, ArmorPerLevel: 0.5, MR: 35, MRPerLevel: 0.5,
	} // ratio ≈ 1.6
	neutralStats = lookup.ChampionStats{
		HP: 1000, HPPerLevel: 80, AD: 100, ADPerLevel: 2,
		Armor: 50, ArmorPerLevel: 1, MR: 50, MRPerLevel: 1,
	} // ratio ≈ 1.9
)

func TestGrowthRatioBands(t *testing.T) {
	w := DefaultGrowthWeights
	assert.GreaterOrEqual(t, growthRatio(lateScalingStats, w), w.LateThreshold)
	assert.LessOrEqual(t, growthRatio(earlyScalingStats, w), w.EarlyThreshold)

	neutral := growthRatio(neutralStats, w)
	assert.Greater(t, neutral, w.EarlyThreshold)
	assert.Less(t, neutral, w.LateThreshold)
}

func TestGrowthRatioZeroBase(t *testing.T) {
	assert.Equal(t, 1.0, growthRatio(lookup.ChampionStats{}, DefaultGrowthWeights))
}

func TestDeriveProfileMarksman(t *testing.T) {
	rec := &lookup.ChampionRecord{Name: "Jinx", Tags: []string{"Marksman"}, Stats: neutralStats}

	p := deriveProfile("Jinx", rec, DefaultGrowthWeights)
	assert.Equal(t, Weak, p.Early)
	assert.Equal(t, Average, p.Mid)
	assert.Equal(t, Strong, p.Late)
	assert.Equal(t, SourceHeuristic, p.Source)
}

func TestDeriveProfileLateGrowth(t *testing.T) {
	rec := &lookup.ChampionRecord{Name: "Kayle", Tags: []string{"Fighter"}, Stats: lateScalingStats}

	p := deriveProfile("Kayle", rec, DefaultGrowthWeights)
	assert.Equal(t, Weak, p.Early)
	assert.Equal(t, Strong, p.Late)
}

func TestDeriveProfileEarlyGrowth(t *testing.T) {
	rec := &lookup.ChampionRecord{Name: "Renekton", Tags: []string{"Tank"}, Stats: earlyScalingStats}

	p := deriveProfile("Renekton", rec, DefaultGrowthWeights)
	assert.Equal(t, Strong, p.Early)
	assert.Equal(t, Weak, p.Late)
}

func TestDeriveProfileLabelsAlwaysValid(t *testing.T) {
	valid := map[PhaseLabel]bool{Weak: true, Average: true, Strong: true}

	tagSets := [][]string{
		nil, {"Marksman"}, {"Assassin"}, {"Mage", "Support"},
		{"Tank", "Fighter"}, {"Fighter", "Marksman", "Assassin"},
	}
	for _, stats := range []lookup.ChampionStats{lateScalingStats, earlyScalingStats, neutralStats, {}} {
		for _, tags := range tagSets {
			rec := &lookup.ChampionRecord{Name: "X", Tags: tags, Stats: stats}
			p := deriveProfile("X", rec, DefaultGrowthWeights)
			assert.True(t, valid[p.Early], "early label %q", p.Early)
			assert.True(t, valid[p.Mid], "mid label %q", p.Mid)
			assert.True(t, valid[p.Late], "late label %q", p.Late)
		}
	}
}

func TestOverrideWinsOverHeuristic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knowledge.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"phase_overrides": {"Kai'Sa": {"early": "weak", "mid": "average", "late": "strong"}}
	}`), 0o644))

	b := NewBuilder(nil, nil, nil, NewLocalKnowledge(path), false)

	// Punctuation and case insensitive match, no reference record needed.
	p := b.profileFor("kaisa", nil)
	require.NotNil(t, p)
	assert.Equal(t, SourceOverride, p.Source)
	assert.Equal(t, Weak, p.Early)
	assert.Equal(t, Strong, p.Late)
}

func TestNoOverrideNoRecord(t *testing.T) {
	b := NewBuilder(nil, nil, nil, nil, false)
	assert.Nil(t, b.profileFor("Ahri", nil))
}
