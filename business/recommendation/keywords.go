package recommendation

import (
	"strings"

	"ashiato/domain"
)

// placeKeywords is the static vocabulary used for content matching between
// a user's own spots and a candidate. This is a heuristic substring rule
// table, not a similarity model.
var placeKeywords = []string{
	"カフェ",
	"レストラン",
	"公園",
	"美術館",
	"博物館",
	"ラーメン",
	"寿司",
	"居酒屋",
	"バー",
	"パン",
	"ケーキ",
	"神社",
	"寺",
	"温泉",
	"海",
	"山",
	"夜景",
	"焼肉",
	"うどん",
	"そば",
	"コーヒー",
}

// keywordsFromText returns the vocabulary entries present in text,
// matched case-insensitively as substrings.
func keywordsFromText(text string) map[string]struct{} {
	found := make(map[string]struct{})
	lowered := strings.ToLower(text)

	for _, keyword := range placeKeywords {
		if strings.Contains(lowered, strings.ToLower(keyword)) {
			found[keyword] = struct{}{}
		}
	}

	return found
}

// keywordsFromSpots unions the keywords of every spot's comment and place
// name into one set.
func keywordsFromSpots(spots []domain.Spot) map[string]struct{} {
	found := make(map[string]struct{})

	for _, spot := range spots {
		for keyword := range keywordsFromText(spot.Comment + " " + spot.PlaceName) {
			found[keyword] = struct{}{}
		}
	}

	return found
}
