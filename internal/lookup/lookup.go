// Package lookup provides read-only reference-data collaborators: Data
// Dragon assets, league standings, and patch notes. The knowledge builder
// depends only on the interfaces defined here.
package lookup

import "context"

// ChampionStats holds the base/per-level stats used for growth profiling.
type ChampionStats struct {
	HP            float64 `json:"hp"`
	HPPerLevel    float64 `json:"hpperlevel"`
	AD            float64 `json:"attackdamage"`
	ADPerLevel    float64 `json:"attackdamageperlevel"`
	Armor         float64 `json:"armor"`
	ArmorPerLevel float64 `json:"armorperlevel"`
	MR            float64 `json:"spellblock"`
	MRPerLevel    float64 `json:"spellblockperlevel"`
}

// ChampionRecord is a resolved champion reference entry.
type ChampionRecord struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Tags  []string      `json:"tags"`
	Stats ChampionStats `json:"stats"`
}

// Item is a resolved build item.
type Item struct {
	ID   int      `json:"id"`
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

// LeagueEntry is one ranked-queue standing for a summoner.
type LeagueEntry struct {
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

// ReferenceData resolves Data Dragon reference data. Implementations handle
// their own caching; callers treat the methods as pure functions.
type ReferenceData interface {
	LatestVersion(ctx context.Context) (string, error)
	Champion(ctx context.Context, version, name string) (*ChampionRecord, error)
	Items(ctx context.Context, version string, ids []int) ([]Item, error)
}

// LeagueEntriesFetcher resolves ranked standings for a summoner on a
// platform region.
type LeagueEntriesFetcher interface {
	EntriesBySummoner(ctx context.Context, region, summonerID string) ([]LeagueEntry, error)
}

// PatchNotesFetcher resolves headline strings from the current patch notes.
type PatchNotesFetcher interface {
	Headlines(ctx context.Context, version string) ([]string, error)
}
