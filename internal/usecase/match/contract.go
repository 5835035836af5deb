package match

import (
	"context"

	"github.com/gtmquest/agencymatch/internal/domain/agency"
	"github.com/gtmquest/agencymatch/internal/domain/match/criteria"
	"github.com/gtmquest/agencymatch/internal/domain/match/result"
)

// Repository fetches candidate agencies for a search.
// Implementations must honour the tag-overlap and budget-ceiling filters and
// return at most c.Limit() rows ordered by global rank, nulls last.
type Repository interface {
	Candidates(ctx context.Context, c criteria.Criteria) ([]agency.Agency, error)
}

// Cache stores ranked results keyed by the canonical criteria.
// A failed lookup is reported as a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]result.Scored, bool)
	Put(ctx context.Context, key string, results []result.Scored)
}
