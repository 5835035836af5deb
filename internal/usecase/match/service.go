package match

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gtmquest/agencymatch/internal/domain"
	"github.com/gtmquest/agencymatch/internal/domain/match/criteria"
	"github.com/gtmquest/agencymatch/internal/domain/match/result"
	"github.com/gtmquest/agencymatch/internal/domain/vocabulary"
	"github.com/gtmquest/agencymatch/internal/metrics"
)

// Terms is a search expressed in user vocabulary, before normalization.
type Terms struct {
	Specializations []string
	CategoryTags    []string
	ServiceAreas    []string
	MaxBudget       *int64
	Limit           int
}

// Service fetches candidate agencies and ranks them against search criteria.
type Service struct {
	repo   Repository
	cache  Cache
	vocab  vocabulary.Set
	logger *zap.Logger
}

// New creates a match service using the built-in vocabularies.
func New(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, vocab: vocabulary.Default(), logger: logger}
}

// WithCache enables result caching. A nil cache disables it.
func (s *Service) WithCache(c Cache) *Service {
	s.cache = c
	return s
}

// WithVocabulary replaces the term normalization tables.
func (s *Service) WithVocabulary(v vocabulary.Set) *Service {
	s.vocab = v
	return s
}

// Vocabulary returns the normalization tables in use.
func (s *Service) Vocabulary() vocabulary.Set { return s.vocab }

// Search returns up to c.Limit() agencies ranked by match score.
// A failed fetch returns ErrStoreUnavailable and no partial ranking.
func (s *Service) Search(ctx context.Context, c criteria.Criteria) ([]result.Scored, error) {
	key := c.CacheKey()
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			metrics.MatchCacheTotal.WithLabelValues("hit").Inc()
			metrics.MatchRequestsTotal.WithLabelValues("cached").Inc()
			return cached, nil
		}
		metrics.MatchCacheTotal.WithLabelValues("miss").Inc()
	}

	candidates, err := s.repo.Candidates(ctx, c)
	if err != nil {
		metrics.MatchRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("fetch candidates: %w: %w", domain.ErrStoreUnavailable, err)
	}
	metrics.MatchCandidates.Observe(float64(len(candidates)))

	ranked := Rank(candidates, c)
	if len(ranked) > c.Limit() {
		ranked = ranked[:c.Limit()]
	}

	for i := range ranked {
		metrics.MatchScore.Observe(float64(ranked[i].Score))
	}
	metrics.MatchRequestsTotal.WithLabelValues("ok").Inc()

	s.logger.Debug("agencies ranked",
		zap.Int("candidates", len(candidates)),
		zap.Int("returned", len(ranked)),
		zap.Bool("empty_criteria", c.IsEmpty()),
	)

	if s.cache != nil {
		s.cache.Put(ctx, key, ranked)
	}
	return ranked, nil
}

// Criteria normalizes user terms into canonical search criteria.
func (s *Service) Criteria(t Terms) (criteria.Criteria, error) {
	c, err := criteria.New(
		vocabulary.NormalizeAll(t.Specializations, s.vocab.Specializations),
		vocabulary.NormalizeAll(t.CategoryTags, s.vocab.Categories),
		vocabulary.NormalizeAll(t.ServiceAreas, s.vocab.Regions),
		t.MaxBudget,
		t.Limit,
	)
	if err != nil {
		return criteria.Criteria{}, fmt.Errorf("build criteria: %w", err)
	}
	return c, nil
}

// SearchTerms normalizes user terms and runs Search.
func (s *Service) SearchTerms(ctx context.Context, t Terms) ([]result.Scored, error) {
	c, err := s.Criteria(t)
	if err != nil {
		return nil, err
	}
	return s.Search(ctx, c)
}
