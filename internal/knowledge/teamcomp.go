package knowledge

import (
	"github.com/yd1008/lol-analyzer/internal/lookup"
	"github.com/yd1008/lol-analyzer/internal/match"
)

// Comp-note thresholds.
const (
	frontlineFloor    = 1 // at most this many frontline tags reads as thin
	physicalStackRisk = 4 // at least this many physical tags invites armor stacking
	magicStackRisk    = 3
)

// buildTeamComp tallies role tags per side and derives qualitative notes
// plus ally synergy callouts. recs maps champion name to its reference
// record; absent entries are skipped.
func (b *Builder) buildTeamComp(input *match.AnalysisInput, recs map[string]*lookup.ChampionRecord) TeamComp {
	player := input.Player()
	if player == nil {
		return TeamComp{}
	}

	var allies, enemies []match.Participant
	for _, p := range input.Participants {
		if p.TeamID == player.TeamID {
			allies = append(allies, p)
		} else {
			enemies = append(enemies, p)
		}
	}

	comp := TeamComp{
		Ally:  b.sideComp(allies, recs),
		Enemy: b.sideComp(enemies, recs),
	}

	allySet := make(map[string]bool, len(allies))
	for _, a := range allies {
		allySet[normalizeChampionName(a.Champion)] = true
	}
	for _, rule := range b.local.Synergies() {
		if len(rule.Champions) == 0 {
			continue
		}
		present := true
		for _, c := range rule.Champions {
			if !allySet[normalizeChampionName(c)] {
				present = false
				break
			}
		}
		if present {
			comp.Synergies = append(comp.Synergies, rule.Name)
		}
	}

	return comp
}

func (b *Builder) sideComp(side []match.Participant, recs map[string]*lookup.ChampionRecord) SideComp {
	tagCounts := make(map[string]int)
	spikes := map[string]int{"early": 0, "mid": 0, "late": 0}

	for _, p := range side {
		rec := recs[p.Champion]
		if rec == nil {
			continue
		}
		for _, tag := range rec.Tags {
			tagCounts[tag]++
		}
		if prof := b.profileFor(p.Champion, rec); prof != nil {
			if prof.Early == Strong {
				spikes["early"]++
			}
			if prof.Mid == Strong {
				spikes["mid"]++
			}
			if prof.Late == Strong {
				spikes["late"]++
			}
		}
	}

	var notes []string
	if len(tagCounts) > 0 {
		if tagCounts["Tank"]+tagCounts["Fighter"] <= frontlineFloor {
			notes = append(notes, "limited frontline")
		}
		if tagCounts["Marksman"]+tagCounts["Fighter"]+tagCounts["Assassin"] >= physicalStackRisk {
			notes = append(notes, "armor-stacking risk")
		}
		if tagCounts["Mage"] >= magicStackRisk {
			notes = append(notes, "magic-resist-stacking risk")
		}
	}

	return SideComp{
		TagCounts:  tagCounts,
		Notes:      notes,
		SpikePhase: dominantSpike(spikes),
	}
}

func dominantSpike(spikes map[string]int) string {
	best, bestCount := "", 0
	// Fixed order keeps ties deterministic.
	for _, phase := range []string{"early", "mid", "late"} {
		if spikes[phase] > bestCount {
			best, bestCount = phase, spikes[phase]
		}
	}
	return best
}
