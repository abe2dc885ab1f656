package knowledge

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/yd1008/lol-analyzer/pkg/logx"
)

// SynergyRule names a champion pairing worth calling out when every member
// is on the ally roster.
type SynergyRule struct {
	Name      string   `json:"name"`
	Champions []string `json:"champions"`
}

// PhaseOverride is a hand-curated phase profile for one champion.
type PhaseOverride struct {
	Early PhaseLabel `json:"early"`
	Mid   PhaseLabel `json:"mid"`
	Late  PhaseLabel `json:"late"`
}

// LocalFile is the optional local knowledge file: synergy rules, phase
// overrides and patch-note lines. All fields are optional.
type LocalFile struct {
	Synergies      []SynergyRule            `json:"synergies"`
	PhaseOverrides map[string]PhaseOverride `json:"phase_overrides"`
	PatchNotes     []string                 `json:"patch_notes"`
}

// LocalKnowledge loads the knowledge file once and serves lookups from it.
type LocalKnowledge struct {
	path string
	once sync.Once
	file LocalFile
}

// NewLocalKnowledge creates a loader for the given path. An empty path
// yields an empty knowledge set.
func NewLocalKnowledge(path string) *LocalKnowledge {
	return &LocalKnowledge{path: path}
}

func (l *LocalKnowledge) load() {
	l.once.Do(func() {
		if l.path == "" {
			return
		}
		data, err := os.ReadFile(l.path)
		if err != nil {
			logx.Warn().Err(err).Str("path", l.path).Msg("knowledge file unreadable")
			return
		}
		if err := json.Unmarshal(data, &l.file); err != nil {
			logx.Warn().Err(err).Str("path", l.path).Msg("knowledge file invalid")
			return
		}
		logx.Info().
			Int("synergies", len(l.file.Synergies)).
			Int("overrides", len(l.file.PhaseOverrides)).
			Msg("knowledge file loaded")
	})
}

// Override returns the phase override for a champion, matched case and
// punctuation insensitively.
func (l *LocalKnowledge) Override(champion string) (PhaseOverride, bool) {
	l.load()
	want := normalizeChampionName(champion)
	for name, ov := range l.file.PhaseOverrides {
		if normalizeChampionName(name) == want {
			return ov, true
		}
	}
	return PhaseOverride{}, false
}

// Synergies returns the configured synergy rules.
func (l *LocalKnowledge) Synergies() []SynergyRule {
	l.load()
	return l.file.Synergies
}

// PatchNotes returns patch-note lines from the local file.
func (l *LocalKnowledge) PatchNotes() []string {
	l.load()
	return l.file.PatchNotes
}
