package category

import (
	"context"
	"strings"
)

// categoryKeywords 是 LLM 不可用时的本地兜底关键词表。
// 命中词数最多的分类胜出；一个都没命中则交给后续策略。
var categoryKeywords = map[string][]string{
	"Politics":       {"election", "president", "congress", "senate", "government", "politician", "vote", "policy"},
	"Sports":         {"nfl", "nba", "mlb", "nhl", "soccer", "football", "basketball", "baseball", "championship", "team", "player"},
	"Entertainment":  {"movie", "celebrity", "actor", "actress", "hollywood", "show", "series", "streaming"},
	"Music":          {"singer", "album", "song", "concert", "band", "musician", "grammy"},
	"Technology":     {"tech", "ai", "software", "apple", "google", "microsoft", "app", "smartphone", "computer"},
	"Business":       {"company", "ceo", "stock", "market", "economy", "trade", "business", "corporation"},
	"Science":        {"research", "study", "scientist", "space", "nasa", "discovery", "vaccine"},
	"Medicine":       {"health", "doctor", "hospital", "disease", "medical", "treatment", "patient"},
	"Film":           {"film", "director", "cinema", "oscar", "box office"},
	"Geography":      {"country", "city", "island", "mountain", "river", "continent"},
	"History":        {"war", "historical", "ancient", "century", "era"},
	"Food":           {"restaurant", "chef", "recipe", "cooking", "cuisine"},
	"Fashion":        {"fashion", "designer", "model", "clothing", "style"},
	"Environment":    {"climate", "environment", "pollution", "nature", "wildlife"},
	"Arts":           {"art", "artist", "painting", "sculpture", "gallery", "museum"},
	"Literature":     {"author", "book", "novel", "writer", "poetry"},
	"Religion":       {"church", "religious", "faith", "christian", "islam", "buddhist"},
	"Education":      {"school", "university", "college", "education", "student", "teacher"},
	"Transportation": {"car", "automobile", "flight", "train", "transportation", "vehicle"},
}

// KeywordResolver 基于关键词表做确定性分类，无任何外部调用
type KeywordResolver struct{}

func (k *KeywordResolver) Name() string {
	return "keywords"
}

func (k *KeywordResolver) Resolve(_ context.Context, topic, summary string) (string, bool, error) {
	combined := strings.ToLower(topic) + " " + strings.ToLower(summary)

	best := ""
	bestScore := 0
	// 遍历固定顺序的分类表，保证同分时结果稳定
	for _, cat := range All {
		keywords, ok := categoryKeywords[cat]
		if !ok {
			continue
		}
		score := 0
		for _, kw := range keywords {
			if strings.Contains(combined, kw) {
				score++
			}
		}
		if score > bestScore {
			best = cat
			bestScore = score
		}
	}

	if bestScore == 0 {
		return "", false, nil
	}
	return best, true, nil
}
