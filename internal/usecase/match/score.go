package match

import (
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/gtmquest/agencymatch/internal/domain/agency"
	"github.com/gtmquest/agencymatch/internal/domain/match/criteria"
	"github.com/gtmquest/agencymatch/internal/domain/match/result"
)

// Component weights. They sum to MaxScore.
const (
	specializationPerTag = 15
	specializationCap    = 40
	categoryWeight       = 25
	regionWeight         = 20
	budgetWeight         = 15

	MaxScore = specializationCap + categoryWeight + regionWeight + budgetWeight
)

// reasonTagLimit is how many matching specializations are named in a reason.
const reasonTagLimit = 2

// Score computes the relevance of one agency for the criteria.
// Components are independent and add up:
//   - specializations: 15 per matching agency tag, capped at 40
//   - category tags: flat 25 on any match
//   - service areas: flat 20 on any match
//   - budget: flat 15 when the agency has no floor or the floor fits the ceiling
//
// Tags match when either contains the other, ignoring case, so an empty
// agency tag matches any requested tag.
func Score(a agency.Agency, c criteria.Criteria) result.Scored {
	score := 0
	reasons := make([]string, 0, 4)

	if specs := matchingTags(a.Specializations, c.Specializations()); len(specs) > 0 {
		score += min(specializationCap, len(specs)*specializationPerTag)
		named := specs[:min(len(specs), reasonTagLimit)]
		reasons = append(reasons, "Specializes in: "+strings.Join(named, ", "))
	}

	if len(matchingTags(a.CategoryTags, c.CategoryTags())) > 0 {
		score += categoryWeight
		reasons = append(reasons, "Matches your business type")
	}

	if len(matchingTags(a.ServiceAreas, c.ServiceAreas())) > 0 {
		score += regionWeight
		reasons = append(reasons, "Serves your target regions")
	}

	if !a.HasBudgetFloor() {
		score += budgetWeight
	} else if ceiling, ok := c.MaxBudget(); ok && *a.MinBudget <= ceiling {
		score += budgetWeight
		reasons = append(reasons, "Budget from $"+humanize.Comma(*a.MinBudget)+"/mo")
	}

	return result.Scored{Agency: a, Score: score, Reasons: reasons}
}

// Rank scores every candidate and orders them by score, highest first.
// Equal scores keep their incoming order.
func Rank(candidates []agency.Agency, c criteria.Criteria) []result.Scored {
	ranked := make([]result.Scored, len(candidates))
	for i, a := range candidates {
		ranked[i] = Score(a, c)
	}
	sortByScore(ranked)
	return ranked
}

func sortByScore(ranked []result.Scored) {
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
}

// matchingTags returns the distinct agency tags that overlap any wanted tag,
// in agency order.
func matchingTags(have, want []string) []string {
	if len(have) == 0 || len(want) == 0 {
		return nil
	}

	wantLower := make([]string, len(want))
	for i, w := range want {
		wantLower[i] = strings.ToLower(w)
	}

	var matched []string
	seen := make(map[string]struct{}, len(have))
	for _, tag := range have {
		if _, dup := seen[tag]; dup {
			continue
		}
		lower := strings.ToLower(tag)
		for _, w := range wantLower {
			if strings.Contains(lower, w) || strings.Contains(w, lower) {
				seen[tag] = struct{}{}
				matched = append(matched, tag)
				break
			}
		}
	}
	return matched
}
