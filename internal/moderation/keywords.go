package moderation

import "strings"

// harmfulKeywords is the first-layer lexical taxonomy. Matching is
// case-insensitive substring; the first hit wins.
var harmfulKeywords = []keywordGroup{
	{"violence", []string{"bomb", "kill", "murder", "shoot", "attack", "destroy", "harm", "hurt", "violence", "weapon", "gun", "knife", "explosive"}},
	{"threats", []string{"threat", "threaten", "intimidate", "scare", "terrorize", "menace"}},
	{"inappropriate", []string{"hate", "racism", "sexism", "harassment", "bully", "abuse"}},
	{"illegal", []string{"drugs", "steal", "robbery", "crime", "illegal", "cheat"}},
	{"sexual", []string{"sex", "sexual", "nude", "porn", "inappropriate touching"}},
}

type keywordGroup struct {
	category string
	keywords []string
}

// matchKeyword returns the matched keyword and its category, or ok=false
// when the text contains no banned term.
func matchKeyword(text string) (keyword, category string, ok bool) {
	lower := strings.ToLower(text)
	for _, group := range harmfulKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return kw, group.category, true
			}
		}
	}
	return "", "", false
}
