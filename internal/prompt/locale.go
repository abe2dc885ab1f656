// Package prompt composes the bilingual system/user prompt pair from a
// match record and its knowledge context.
package prompt

// Language selects the fixed rendering of every prompt label. No machine
// translation happens at this layer.
type Language string

const (
	English Language = "en"
	Chinese Language = "zh"
)

// ParseLanguage normalizes a language tag, defaulting to English.
func ParseLanguage(v string) Language {
	switch v {
	case "zh", "zh-CN", "zh-Hans":
		return Chinese
	default:
		return English
	}
}

var labels = map[Language]map[string]string{
	English: {
		"system.persona": "You are a concise, expert League of Legends performance coach. Give specific, data-driven advice grounded in the numbers provided.",
		"system.policy":  "If any knowledge field below is marked unavailable, say so plainly in your analysis. Never invent data that is not in the prompt.",
		"system.answer":  "Answer in English.",

		"match.header":   "Match Data:",
		"match.champion": "Champion",
		"match.result":   "Result",
		"match.victory":  "Victory",
		"match.defeat":   "Defeat",
		"match.kda":      "KDA",
		"match.ratio":    "Ratio",
		"match.gold":     "Gold",
		"match.damage":   "Damage",
		"match.vision":   "Vision Score",
		"match.cs":       "CS",
		"match.duration": "Game Duration",
		"match.minutes":  "minutes",
		"match.queue":    "Queue",
		"match.role":     "Role",
		"match.mode":     "Coaching focus",
		"match.total":    "total",

		"opponent.header": "Lane Opponent:",
		"roster.header":   "Lobby Roster:",
		"roster.ally":     "Allies",
		"roster.enemy":    "Enemies",

		"knowledge.header":     "Knowledge Context:",
		"knowledge.patch":      "Patch",
		"knowledge.notes":      "Patch notes",
		"knowledge.profile":    "Phase profile",
		"knowledge.early":      "early",
		"knowledge.mid":        "mid",
		"knowledge.late":       "late",
		"knowledge.weak":       "weak",
		"knowledge.average":    "average",
		"knowledge.strong":     "strong",
		"knowledge.source":     "source",
		"knowledge.items":      "Final build",
		"knowledge.comp.ally":  "Ally composition",
		"knowledge.comp.enemy": "Enemy composition",
		"knowledge.spike":      "power spike",
		"knowledge.synergy":    "Ally synergies",
		"knowledge.perf":       "Relative performance",
		"knowledge.lobby":      "vs lobby median",
		"knowledge.team":       "vs team median",
		"knowledge.rolepeer":   "vs role counterpart",
		"knowledge.lane":       "Lane matchup",
		"knowledge.above":      "above baseline",
		"knowledge.below":      "below baseline",
		"knowledge.even":       "at baseline",
		"knowledge.rank":       "Rank benchmark",
		"knowledge.peers":      "rank-similar peers",
		"knowledge.unavail":    "unavailable",

		"metric.gold_per_min":   "Gold/min",
		"metric.damage_per_min": "Damage/min",
		"metric.cs_per_min":     "CS/min",
		"metric.vision_per_min": "Vision/min",

		"schema.instruction": "Structure your answer with exactly these section headers, in this order:",
		"schema.summary":     "Summary",
		"schema.issues":      "Top Issues",
		"schema.evidence":    "Evidence",
		"schema.mission":     "Next-Game Mission",
		"schema.drills":      "Drills",
		"schema.length":      "Aim for roughly %d tokens overall; this is a soft target, still cover every section fully.",
	},
	Chinese: {
		"system.persona": "你是一位简洁、专业的英雄联盟教练。请基于给出的数据提供具体、可执行的建议。",
		"system.policy":  "如果下面任何知识字段标注为不可用，请在分析中如实说明。绝不编造提示中不存在的数据。",
		"system.answer":  "请用中文回答。",

		"match.header":   "对局数据：",
		"match.champion": "英雄",
		"match.result":   "结果",
		"match.victory":  "胜利",
		"match.defeat":   "失败",
		"match.kda":      "KDA",
		"match.ratio":    "比值",
		"match.gold":     "经济",
		"match.damage":   "伤害",
		"match.vision":   "视野得分",
		"match.cs":       "补刀",
		"match.duration": "对局时长",
		"match.minutes":  "分钟",
		"match.queue":    "队列",
		"match.role":     "位置",
		"match.mode":     "教练重点",
		"match.total":    "总计",

		"opponent.header": "对线对手：",
		"roster.header":   "对局名单：",
		"roster.ally":     "我方",
		"roster.enemy":    "敌方",

		"knowledge.header":     "知识背景：",
		"knowledge.patch":      "版本",
		"knowledge.notes":      "版本要点",
		"knowledge.profile":    "强势期画像",
		"knowledge.early":      "前期",
		"knowledge.mid":        "中期",
		"knowledge.late":       "后期",
		"knowledge.weak":       "弱势",
		"knowledge.average":    "均衡",
		"knowledge.strong":     "强势",
		"knowledge.source":     "来源",
		"knowledge.items":      "最终出装",
		"knowledge.comp.ally":  "我方阵容",
		"knowledge.comp.enemy": "敌方阵容",
		"knowledge.spike":      "强势期",
		"knowledge.synergy":    "我方联动",
		"knowledge.perf":       "相对表现",
		"knowledge.lobby":      "对比全场中位数",
		"knowledge.team":       "对比本队中位数",
		"knowledge.rolepeer":   "对比同位置对手",
		"knowledge.lane":       "对线对比",
		"knowledge.above":      "高于基准",
		"knowledge.below":      "低于基准",
		"knowledge.even":       "持平基准",
		"knowledge.rank":       "段位对比",
		"knowledge.peers":      "段位相近的玩家",
		"knowledge.unavail":    "不可用",

		"metric.gold_per_min":   "每分钟经济",
		"metric.damage_per_min": "每分钟伤害",
		"metric.cs_per_min":     "每分钟补刀",
		"metric.vision_per_min": "每分钟视野",

		"schema.instruction": "请严格按以下顺序使用这些小节标题组织回答：",
		"schema.summary":     "总结",
		"schema.issues":      "主要问题",
		"schema.evidence":    "数据依据",
		"schema.mission":     "下局任务",
		"schema.drills":      "训练建议",
		"schema.length":      "整体长度以约 %d token 为目标；这只是软目标，仍需完整覆盖每个小节。",
	},
}

// tr returns the fixed rendering of key in lang, falling back to English.
func tr(lang Language, key string) string {
	if table, ok := labels[lang]; ok {
		if v, ok := table[key]; ok {
			return v
		}
	}
	return labels[English][key]
}
