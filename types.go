package agencymatch

import (
	"github.com/gtmquest/agencymatch/internal/domain/agency"
	"github.com/gtmquest/agencymatch/internal/domain/match/result"
)

// Agency is a published directory entry.
type Agency = agency.Agency

// Profile is an agency with its long-form page fields.
type Profile = agency.Profile

// Criteria describes what a buyer is looking for. Empty lists don't filter;
// a nil MaxBudget leaves the budget unconstrained. Limit <= 0 returns 5 results,
// and at most 50 are returned.
type Criteria struct {
	Specializations []string
	CategoryTags    []string
	ServiceAreas    []string
	MaxBudget       *int64
	Limit           int
}

// Budget returns a pointer to a monthly budget, for Criteria.MaxBudget.
func Budget(usd int64) *int64 { return &usd }

// Match is a ranked agency. Score is 0 to 100; Reasons explain the
// components that contributed, in scoring order.
type Match struct {
	Agency  Agency
	Score   int
	Reasons []string
}

func matchesFromDomain(in []result.Scored) []Match {
	out := make([]Match, len(in))
	for i, s := range in {
		reasons := s.Reasons
		if reasons == nil {
			reasons = []string{}
		}
		out[i] = Match{Agency: s.Agency, Score: s.Score, Reasons: reasons}
	}
	return out
}
