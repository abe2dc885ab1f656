package prompt

import (
	"fmt"
	"strings"

	"github.com/yd1008/lol-analyzer/internal/knowledge"
	"github.com/yd1008/lol-analyzer/internal/match"
)

// Pair is the composed system/user prompt. Purely derived from its inputs.
type Pair struct {
	System string
	User   string
}

// Composer renders prompt pairs. ResponseTokenTarget, when positive, adds a
// soft length instruction.
type Composer struct {
	ResponseTokenTarget int
}

// NewComposer creates a composer with the given soft response-length target
// in tokens (0 disables the instruction).
func NewComposer(responseTokenTarget int) *Composer {
	return &Composer{ResponseTokenTarget: responseTokenTarget}
}

// Compose merges the match record, knowledge context and language into a
// prompt pair.
func (c *Composer) Compose(input *match.AnalysisInput, kc *knowledge.Context, lang Language) Pair {
	return Pair{
		System: c.systemPrompt(lang),
		User:   c.userPrompt(input, kc, lang),
	}
}

func (c *Composer) systemPrompt(lang Language) string {
	return tr(lang, "system.persona") + " " + tr(lang, "system.policy") + " " + tr(lang, "system.answer")
}

func (c *Composer) userPrompt(input *match.AnalysisInput, kc *knowledge.Context, lang Language) string {
	var sb strings.Builder

	c.writeMatchBlock(&sb, input, lang)
	c.writeOpponentBlock(&sb, input, lang)
	c.writeRosterBlock(&sb, input, lang)
	if kc != nil {
		c.writeKnowledgeBlock(&sb, kc, lang)
	}
	c.writeSchemaBlock(&sb, lang)

	return sb.String()
}

func (c *Composer) writeMatchBlock(sb *strings.Builder, input *match.AnalysisInput, lang Language) {
	result := tr(lang, "match.defeat")
	if input.Win {
		result = tr(lang, "match.victory")
	}

	sb.WriteString(tr(lang, "match.header") + "\n")
	fmt.Fprintf(sb, "- %s: %s\n", tr(lang, "match.champion"), input.Champion)
	fmt.Fprintf(sb, "- %s: %s\n", tr(lang, "match.result"), result)
	fmt.Fprintf(sb, "- %s: %d/%d/%d (%s: %.2f)\n",
		tr(lang, "match.kda"), input.Kills, input.Deaths, input.Assists, tr(lang, "match.ratio"), input.KDA)
	fmt.Fprintf(sb, "- %s: %d %s (%.1f/min)\n",
		tr(lang, "match.gold"), input.GoldEarned, tr(lang, "match.total"), input.GoldPerMin)
	fmt.Fprintf(sb, "- %s: %d %s (%.1f/min)\n",
		tr(lang, "match.damage"), input.TotalDamage, tr(lang, "match.total"), input.DamagePerMin)
	fmt.Fprintf(sb, "- %s: %d\n", tr(lang, "match.vision"), input.VisionScore)
	fmt.Fprintf(sb, "- %s: %d\n", tr(lang, "match.cs"), input.CSTotal)
	fmt.Fprintf(sb, "- %s: %.1f %s\n", tr(lang, "match.duration"), input.GameDuration, tr(lang, "match.minutes"))
	fmt.Fprintf(sb, "- %s: %s\n", tr(lang, "match.queue"), input.QueueType)
	if input.PlayerPosition != "" {
		fmt.Fprintf(sb, "- %s: %s\n", tr(lang, "match.role"), input.PlayerPosition)
	}
	if input.CoachingMode != "" {
		fmt.Fprintf(sb, "- %s: %s\n", tr(lang, "match.mode"), input.CoachingMode)
	}
}

func (c *Composer) writeOpponentBlock(sb *strings.Builder, input *match.AnalysisInput, lang Language) {
	opp := input.LaneOpponent
	if opp == nil {
		return
	}
	sb.WriteString("\n" + tr(lang, "opponent.header") + "\n")
	fmt.Fprintf(sb, "- %s (%s): %d/%d/%d, %s %d, %s %d\n",
		opp.Champion, opp.SummonerName,
		opp.Kills, opp.Deaths, opp.Assists,
		tr(lang, "match.gold"), opp.GoldEarned,
		tr(lang, "match.cs"), opp.CS)
}

func (c *Composer) writeRosterBlock(sb *strings.Builder, input *match.AnalysisInput, lang Language) {
	player := input.Player()
	if player == nil || len(input.Participants) == 0 {
		return
	}

	sb.WriteString("\n" + tr(lang, "roster.header") + "\n")
	writeSide := func(label string, teamID int) {
		fmt.Fprintf(sb, "%s:\n", label)
		for _, p := range input.Participants {
			if p.TeamID != teamID {
				continue
			}
			fmt.Fprintf(sb, "- %s (%s) %d/%d/%d\n", p.Champion, p.Position, p.Kills, p.Deaths, p.Assists)
		}
	}
	writeSide(tr(lang, "roster.ally"), player.TeamID)
	enemyTeam := 100
	if player.TeamID == 100 {
		enemyTeam = 200
	}
	writeSide(tr(lang, "roster.enemy"), enemyTeam)
}

func (c *Composer) writeKnowledgeBlock(sb *strings.Builder, kc *knowledge.Context, lang Language) {
	sb.WriteString("\n" + tr(lang, "knowledge.header") + "\n")

	if kc.Patch.Version != "" {
		fmt.Fprintf(sb, "- %s: %s\n", tr(lang, "knowledge.patch"), kc.Patch.Version)
	}
	for _, note := range kc.Patch.Notes {
		fmt.Fprintf(sb, "- %s: %s\n", tr(lang, "knowledge.notes"), note)
	}

	writeProfile := func(p *knowledge.PhaseProfile) {
		if p == nil {
			return
		}
		fmt.Fprintf(sb, "- %s %s: %s %s / %s %s / %s %s (%s: %s)\n",
			tr(lang, "knowledge.profile"), p.Champion,
			tr(lang, "knowledge.early"), phase(lang, p.Early),
			tr(lang, "knowledge.mid"), phase(lang, p.Mid),
			tr(lang, "knowledge.late"), phase(lang, p.Late),
			tr(lang, "knowledge.source"), p.Source)
	}
	writeProfile(kc.Champions.Player)
	writeProfile(kc.Champions.Opponent)

	if len(kc.Items) > 0 {
		names := make([]string, 0, len(kc.Items))
		for _, it := range kc.Items {
			names = append(names, it.Name)
		}
		fmt.Fprintf(sb, "- %s: %s\n", tr(lang, "knowledge.items"), strings.Join(names, ", "))
	}

	writeComp := func(labelKey string, side knowledge.SideComp) {
		if len(side.TagCounts) == 0 && side.SpikePhase == "" {
			return
		}
		parts := side.Notes
		if side.SpikePhase != "" {
			parts = append(parts, tr(lang, "knowledge.spike")+": "+tr(lang, "knowledge."+side.SpikePhase))
		}
		if len(parts) == 0 {
			return
		}
		fmt.Fprintf(sb, "- %s: %s\n", tr(lang, labelKey), strings.Join(parts, "; "))
	}
	writeComp("knowledge.comp.ally", kc.TeamComp.Ally)
	writeComp("knowledge.comp.enemy", kc.TeamComp.Enemy)
	if len(kc.TeamComp.Synergies) > 0 {
		fmt.Fprintf(sb, "- %s: %s\n", tr(lang, "knowledge.synergy"), strings.Join(kc.TeamComp.Synergies, ", "))
	}

	writeDeltas := func(labelKey string, deltas []knowledge.Delta) {
		for _, d := range deltas {
			fmt.Fprintf(sb, "- %s (%s): %.1f vs %.1f (%+.1f, %s)\n",
				metric(lang, d.Metric), tr(lang, labelKey),
				d.Player, d.Baseline, d.Diff, direction(lang, d.Diff))
		}
	}
	if len(kc.Performance.Lobby)+len(kc.Performance.Team)+len(kc.Performance.Role) > 0 {
		fmt.Fprintf(sb, "- %s:\n", tr(lang, "knowledge.perf"))
		writeDeltas("knowledge.lobby", kc.Performance.Lobby)
		writeDeltas("knowledge.team", kc.Performance.Team)
		writeDeltas("knowledge.rolepeer", kc.Performance.Role)
	}
	if lane := kc.Performance.Lane; lane != nil {
		fmt.Fprintf(sb, "- %s %s (%s): %s %+.1f/min, %s %+.1f/min, %s %+.1f/min\n",
			tr(lang, "knowledge.lane"), lane.OpponentChampion, lane.OpponentName,
			tr(lang, "match.gold"), lane.GoldDiffPerMin,
			tr(lang, "match.cs"), lane.CSDiffPerMin,
			tr(lang, "match.damage"), lane.DamageDiffPerMin)
	}

	if kc.Rank.Available {
		fmt.Fprintf(sb, "- %s (%s, %d %s):\n",
			tr(lang, "knowledge.rank"), kc.Rank.Queue, kc.Rank.PeerCount, tr(lang, "knowledge.peers"))
		writeDeltas("knowledge.rank", kc.Rank.Benchmarks)
	} else {
		fmt.Fprintf(sb, "- %s: %s (%s)\n",
			tr(lang, "knowledge.rank"), tr(lang, "knowledge.unavail"), kc.Rank.Reason)
	}
}

func (c *Composer) writeSchemaBlock(sb *strings.Builder, lang Language) {
	sb.WriteString("\n" + tr(lang, "schema.instruction") + "\n")
	for i, key := range []string{"schema.summary", "schema.issues", "schema.evidence", "schema.mission", "schema.drills"} {
		fmt.Fprintf(sb, "%d. %s\n", i+1, tr(lang, key))
	}
	if c.ResponseTokenTarget > 0 {
		fmt.Fprintf(sb, tr(lang, "schema.length")+"\n", c.ResponseTokenTarget)
	}
}

func phase(lang Language, l knowledge.PhaseLabel) string {
	return tr(lang, "knowledge."+string(l))
}

func metric(lang Language, name string) string {
	return tr(lang, "metric."+name)
}

func direction(lang Language, diff float64) string {
	switch {
	case diff > 0:
		return tr(lang, "knowledge.above")
	case diff < 0:
		return tr(lang, "knowledge.below")
	default:
		return tr(lang, "knowledge.even")
	}
}
