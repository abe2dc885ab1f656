package knowledge

import (
	"strings"

	"github.com/yd1008/lol-analyzer/internal/lookup"
)

// GrowthWeights are the coefficients of the champion power-growth
// heuristic. They are configuration, not logic: recalibrating the profile
// never requires touching deriveProfile.
type GrowthWeights struct {
	ADWeight       float64
	ResistWeight   float64
	MaxLevel       int
	LateThreshold  float64 // growth ratio at or above this biases late-game
	EarlyThreshold float64 // growth ratio at or below this biases early-game
}

// DefaultGrowthWeights mirrors the original tuning.
var DefaultGrowthWeights = GrowthWeights{
	ADWeight:       1.5,
	ResistWeight:   8,
	MaxLevel:       18,
	LateThreshold:  2.2,
	EarlyThreshold: 1.8,
}

// effectivePower computes HP + ADWeight*AD + ResistWeight*(Armor+MR) at the
// given level, extrapolating base stats linearly by per-level growth.
func effectivePower(s lookup.ChampionStats, level int, w GrowthWeights) float64 {
	lv := float64(level - 1)
	hp := s.HP + s.HPPerLevel*lv
	ad := s.AD + s.ADPerLevel*lv
	armor := s.Armor + s.ArmorPerLevel*lv
	mr := s.MR + s.MRPerLevel*lv
	return hp + w.ADWeight*ad + w.ResistWeight*(armor+mr)
}

func growthRatio(s lookup.ChampionStats, w GrowthWeights) float64 {
	base := effectivePower(s, 1, w)
	if base <= 0 {
		return 1
	}
	return effectivePower(s, w.MaxLevel, w) / base
}

// profileFor resolves a champion's phase profile: a local override wins,
// otherwise the profile is derived from role tags and the growth ratio.
func (b *Builder) profileFor(champion string, rec *lookup.ChampionRecord) *PhaseProfile {
	if ov, ok := b.local.Override(champion); ok {
		p := &PhaseProfile{
			Champion: champion,
			Early:    orAverage(ov.Early),
			Mid:      orAverage(ov.Mid),
			Late:     orAverage(ov.Late),
			Source:   SourceOverride,
		}
		return p
	}
	if rec == nil {
		return nil
	}
	return deriveProfile(champion, rec, b.weights)
}

// deriveProfile labels each phase from declared role tags, then lets the
// growth ratio shift the early/late balance.
func deriveProfile(champion string, rec *lookup.ChampionRecord, w GrowthWeights) *PhaseProfile {
	early, mid, late := Average, Average, Average

	for _, tag := range rec.Tags {
		switch tag {
		case "Marksman":
			early, late = Weak, Strong
		case "Assassin", "Mage":
			mid = Strong
		case "Tank":
			early = Strong
		}
	}

	ratio := growthRatio(rec.Stats, w)
	switch {
	case ratio >= w.LateThreshold:
		late = Strong
		if early == Strong {
			early = Average
		} else {
			early = Weak
		}
	case ratio <= w.EarlyThreshold:
		early = Strong
		if late == Strong {
			late = Average
		} else {
			late = Weak
		}
	}

	return &PhaseProfile{
		Champion: champion,
		Early:    early,
		Mid:      mid,
		Late:     late,
		Source:   SourceHeuristic,
	}
}

func orAverage(l PhaseLabel) PhaseLabel {
	switch l {
	case Weak, Average, Strong:
		return l
	default:
		return Average
	}
}

// normalizeChampionName lowercases and strips punctuation so override and
// synergy lookups are spelling-tolerant.
func normalizeChampionName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
