package match

// QueueTypes maps Riot queue ids to display labels.
var QueueTypes = map[int]string{
	400:  "Normal Draft",
	420:  "Ranked Solo",
	430:  "Normal Blind",
	440:  "Ranked Flex",
	450:  "ARAM",
	700:  "Clash",
	900:  "ARURF",
	1020: "One for All",
	1300: "Nexus Blitz",
	1400: "Ultimate Spellbook",
}

// QueueLabel returns the display label for a queue id, or "Other".
func QueueLabel(queueID int) string {
	if label, ok := QueueTypes[queueID]; ok {
		return label
	}
	return "Other"
}

// RankedQueueType maps an observed queue label to the league-entry queue
// type used by the rank benchmark. Empty for unranked queues.
func RankedQueueType(queueLabel string) string {
	switch queueLabel {
	case "Ranked Solo":
		return "RANKED_SOLO_5x5"
	case "Ranked Flex":
		return "RANKED_FLEX_SR"
	default:
		return ""
	}
}
