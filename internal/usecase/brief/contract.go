package brief

import (
	"context"

	"github.com/gtmquest/agencymatch/internal/domain/match/result"
	"github.com/gtmquest/agencymatch/internal/usecase/match"
)

// Extractor reads requirements out of a brief.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, message string) (Requirements, error)
}

// Matcher ranks agencies for search terms in user vocabulary.
type Matcher interface {
	SearchTerms(ctx context.Context, t match.Terms) ([]result.Scored, error)
}
