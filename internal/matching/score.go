// Package matching estimates how well a candidate's declared skills overlap
// with a job description.
package matching

import (
	"math"
	"strings"
)

// Score returns an integer in [0,100]. The description is lower-cased and
// split on whitespace; a skill counts as matched when any token contains it
// or it contains any token. Blank skills are ignored and no skills scores 0.
//
// Containment runs both ways, so short skills over-match ("go" hits "going").
func Score(skills []string, description string) int {
	tokens := strings.Fields(strings.ToLower(description))

	total, matches := 0, 0
	for _, raw := range skills {
		skill := strings.ToLower(strings.TrimSpace(raw))
		if skill == "" {
			continue
		}
		total++
		for _, tok := range tokens {
			if strings.Contains(tok, skill) || strings.Contains(skill, tok) {
				matches++
				break
			}
		}
	}
	if total == 0 {
		return 0
	}

	score := int(math.Round(float64(matches) / float64(total) * 100))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
