// Package match defines the parsed match-analysis record consumed by the
// coaching pipeline.
package match

// Participant is one roster member of an analyzed match.
type Participant struct {
	PUUID              string `json:"puuid"`
	SummonerID         string `json:"summoner_id"`
	Champion           string `json:"champion"`
	ChampionID         int    `json:"champion_id"`
	SummonerName       string `json:"summoner_name"`
	Tagline            string `json:"tagline"`
	TeamID             int    `json:"team_id"`
	Kills              int    `json:"kills"`
	Deaths             int    `json:"deaths"`
	Assists            int    `json:"assists"`
	Win                bool   `json:"win"`
	IsPlayer           bool   `json:"is_player"`
	Position           string `json:"position"`
	GoldEarned         int    `json:"gold_earned"`
	TotalDamage        int    `json:"total_damage"`
	CS                 int    `json:"cs"`
	VisionScore        int    `json:"vision_score"`
	Level              int    `json:"level"`
	ItemIDs            []int  `json:"item_ids"`
	PrimaryRuneID      int    `json:"primary_rune_id"`
	SecondaryRuneStyle int    `json:"secondary_rune_style_id"`
}

// Rates holds per-minute rates for one participant.
type Rates struct {
	GoldPerMin   float64
	DamagePerMin float64
	CSPerMin     float64
	VisionPerMin float64
}

// RatesFor computes per-minute rates over the given game duration in
// minutes. Durations below one minute are floored at 1 to keep the rates
// finite.
func (p Participant) RatesFor(durationMinutes float64) Rates {
	if durationMinutes < 1 {
		durationMinutes = 1
	}
	return Rates{
		GoldPerMin:   float64(p.GoldEarned) / durationMinutes,
		DamagePerMin: float64(p.TotalDamage) / durationMinutes,
		CSPerMin:     float64(p.CS) / durationMinutes,
		VisionPerMin: float64(p.VisionScore) / durationMinutes,
	}
}

// KDARatio returns (kills+assists)/deaths with the denominator floored at 1.
func (p Participant) KDARatio() float64 {
	deaths := p.Deaths
	if deaths < 1 {
		deaths = 1
	}
	return float64(p.Kills+p.Assists) / float64(deaths)
}

// AnalysisInput is the immutable match record supplied by the caller. It is
// owned exclusively by the request that constructed it. Region is the
// platform region ("na1", "euw1"), not the continental routing value.
type AnalysisInput struct {
	MatchID        string        `json:"match_id"`
	Champion       string        `json:"champion"`
	Win            bool          `json:"win"`
	Kills          int           `json:"kills"`
	Deaths         int           `json:"deaths"`
	Assists        int           `json:"assists"`
	KDA            float64       `json:"kda"`
	GoldEarned     int           `json:"gold_earned"`
	GoldPerMin     float64       `json:"gold_per_min"`
	TotalDamage    int           `json:"total_damage"`
	DamagePerMin   float64       `json:"damage_per_min"`
	VisionScore    int           `json:"vision_score"`
	CSTotal        int           `json:"cs_total"`
	GameDuration   float64       `json:"game_duration"` // minutes
	QueueType      string        `json:"queue_type"`
	QueueID        int           `json:"queue_id"`
	Region         string        `json:"platform_region"`
	PlayerPUUID    string        `json:"player_puuid"`
	PlayerPosition string        `json:"player_position"`
	ItemIDs        []int         `json:"item_ids"`
	Participants   []Participant `json:"participants"`
	LaneOpponent   *Participant  `json:"lane_opponent"`
	CoachingMode   string        `json:"coaching_mode"`
}

// Player returns the participant flagged as the analyzed player, falling
// back to PUUID matching.
func (a *AnalysisInput) Player() *Participant {
	for i := range a.Participants {
		if a.Participants[i].IsPlayer {
			return &a.Participants[i]
		}
	}
	for i := range a.Participants {
		if a.PlayerPUUID != "" && a.Participants[i].PUUID == a.PlayerPUUID {
			return &a.Participants[i]
		}
	}
	return nil
}

// PlayerRates returns the analyzed player's per-minute rates, preferring
// the precomputed fields on the record.
func (a *AnalysisInput) PlayerRates() Rates {
	duration := a.GameDuration
	if duration < 1 {
		duration = 1
	}
	r := Rates{
		GoldPerMin:   a.GoldPerMin,
		DamagePerMin: a.DamagePerMin,
		CSPerMin:     float64(a.CSTotal) / duration,
		VisionPerMin: float64(a.VisionScore) / duration,
	}
	if r.GoldPerMin == 0 && a.GoldEarned > 0 {
		r.GoldPerMin = float64(a.GoldEarned) / duration
	}
	if r.DamagePerMin == 0 && a.TotalDamage > 0 {
		r.DamagePerMin = float64(a.TotalDamage) / duration
	}
	return r
}

// DeriveLaneOpponent finds the enemy participant sharing the player's
// position. Returns nil when position data is missing.
func DeriveLaneOpponent(participants []Participant) *Participant {
	var player *Participant
	for i := range participants {
		if participants[i].IsPlayer {
			player = &participants[i]
			break
		}
	}
	if player == nil || player.Position == "" {
		return nil
	}
	for i := range participants {
		p := &participants[i]
		if p.TeamID != player.TeamID && p.Position == player.Position {
			return p
		}
	}
	return nil
}
