package brief

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/gtmquest/agencymatch/internal/domain"
	"github.com/gtmquest/agencymatch/internal/domain/match/result"
	"github.com/gtmquest/agencymatch/internal/metrics"
	"github.com/gtmquest/agencymatch/internal/usecase/match"
)

// Match is the outcome of matching a brief.
type Match struct {
	Requirements Requirements    `json:"requirements"`
	Agencies     []result.Scored `json:"agencies"`
}

// Service extracts requirements from a brief and ranks agencies for them.
type Service struct {
	matcher  Matcher
	primary  Extractor
	fallback Extractor
	logger   *zap.Logger
}

// New creates a brief service that extracts with the rule tables.
func New(matcher Matcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	rules := NewRuleExtractor()
	return &Service{matcher: matcher, primary: rules, fallback: rules, logger: logger}
}

// WithExtractor makes e the primary extractor. Provider failures fall back to the rules.
func (s *Service) WithExtractor(e Extractor) *Service {
	if e != nil {
		s.primary = e
	}
	return s
}

// Extract reads requirements from message, falling back to the rule tables
// when the primary extractor reports a provider error.
func (s *Service) Extract(ctx context.Context, message string) (Requirements, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Requirements{}, domain.ErrEmptyBrief
	}

	req, err := s.primary.Extract(ctx, message)
	if err == nil {
		metrics.BriefExtractionsTotal.WithLabelValues(s.primary.Name(), "success").Inc()
		return req, nil
	}
	metrics.BriefExtractionsTotal.WithLabelValues(s.primary.Name(), "error").Inc()

	if s.primary == s.fallback || !errors.Is(err, domain.ErrBriefProviderError) {
		return Requirements{}, fmt.Errorf("extract brief: %w", err)
	}

	s.logger.Warn("Brief provider failed, falling back to rules",
		zap.String("extractor", s.primary.Name()), zap.Error(err))

	req, err = s.fallback.Extract(ctx, message)
	if err != nil {
		metrics.BriefExtractionsTotal.WithLabelValues(s.fallback.Name(), "error").Inc()
		return Requirements{}, fmt.Errorf("extract brief: %w", err)
	}
	metrics.BriefExtractionsTotal.WithLabelValues(s.fallback.Name(), "fallback").Inc()
	return req, nil
}

// Match extracts requirements from message and returns up to limit ranked agencies.
func (s *Service) Match(ctx context.Context, message string, limit int) (Match, error) {
	req, err := s.Extract(ctx, message)
	if err != nil {
		return Match{}, err
	}

	agencies, err := s.matcher.SearchTerms(ctx, Terms(req, limit))
	if err != nil {
		return Match{}, fmt.Errorf("match brief: %w", err)
	}

	s.logger.Debug("brief matched",
		zap.Stringer("requirements", req),
		zap.Int("agencies", len(agencies)),
	)
	return Match{Requirements: req, Agencies: agencies}, nil
}

// Terms converts requirements into matcher search terms.
// A B2B SaaS brief with no specialization searches for general B2B marketing.
func Terms(req Requirements, limit int) match.Terms {
	specs := req.Specializations
	if len(specs) == 0 && req.Category == CategoryB2BSaaS {
		specs = b2bSaaSFallback
	}
	var cats []string
	if term, ok := categoryTerms[req.Category]; ok {
		cats = []string{term}
	}
	return match.Terms{
		Specializations: specs,
		CategoryTags:    cats,
		ServiceAreas:    req.Regions,
		MaxBudget:       req.Budget,
		Limit:           limit,
	}
}
