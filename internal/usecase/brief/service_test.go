package brief

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gtmquest/agencymatch/internal/domain"
	"github.com/gtmquest/agencymatch/internal/domain/agency"
	"github.com/gtmquest/agencymatch/internal/domain/match/result"
	"github.com/gtmquest/agencymatch/internal/usecase/match"
)

// --- Mocks ---

type mockMatcher struct {
	results []result.Scored
	err     error
	last    match.Terms
	calls   int
}

func (m *mockMatcher) SearchTerms(_ context.Context, t match.Terms) ([]result.Scored, error) {
	m.calls++
	m.last = t
	return m.results, m.err
}

type mockExtractor struct {
	req   Requirements
	err   error
	calls int
}

func (m *mockExtractor) Name() string { return "mock" }

func (m *mockExtractor) Extract(context.Context, string) (Requirements, error) {
	m.calls++
	return m.req, m.err
}

// --- Tests ---

func TestMatch_RulesEndToEnd(t *testing.T) {
	matcher := &mockMatcher{results: []result.Scored{{Agency: agency.Agency{Slug: "alpha"}, Score: 55}}}
	svc := New(matcher, nil)

	got, err := svc.Match(context.Background(), "Need demand gen for our startup in the US, $30k", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Agencies) != 1 || got.Agencies[0].Agency.Slug != "alpha" {
		t.Errorf("unexpected agencies: %+v", got.Agencies)
	}

	if diff := cmp.Diff([]string{"demand gen"}, matcher.last.Specializations); diff != "" {
		t.Errorf("specializations (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"US"}, matcher.last.ServiceAreas); diff != "" {
		t.Errorf("regions (-want +got):\n%s", diff)
	}
	if matcher.last.MaxBudget == nil || *matcher.last.MaxBudget != 30000 {
		t.Errorf("MaxBudget = %v", matcher.last.MaxBudget)
	}
	if matcher.last.Limit != 3 {
		t.Errorf("Limit = %d", matcher.last.Limit)
	}
}

func TestMatch_EmptyBrief(t *testing.T) {
	matcher := &mockMatcher{}
	svc := New(matcher, nil)

	_, err := svc.Match(context.Background(), "  \n ", 5)
	if !errors.Is(err, domain.ErrEmptyBrief) {
		t.Fatalf("expected ErrEmptyBrief, got %v", err)
	}
	if matcher.calls != 0 {
		t.Error("matcher must not run for an empty brief")
	}
}

func TestMatch_MatcherError(t *testing.T) {
	svc := New(&mockMatcher{err: domain.ErrStoreUnavailable}, nil)

	_, err := svc.Match(context.Background(), "ABM please", 5)
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestExtract_PrimarySucceeds(t *testing.T) {
	primary := &mockExtractor{req: Requirements{Specializations: []string{"plg"}}}
	svc := New(&mockMatcher{}, nil).WithExtractor(primary)

	got, err := svc.Extract(context.Background(), "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"plg"}, got.Specializations); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_ProviderErrorFallsBack(t *testing.T) {
	primary := &mockExtractor{err: fmt.Errorf("timeout: %w", domain.ErrBriefProviderError)}
	svc := New(&mockMatcher{}, nil).WithExtractor(primary)

	got, err := svc.Extract(context.Background(), "We need SEO")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if primary.calls != 1 {
		t.Errorf("primary calls = %d", primary.calls)
	}
	if diff := cmp.Diff([]string{"seo"}, got.Specializations); diff != "" {
		t.Errorf("fallback mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_OtherErrorsDoNotFallBack(t *testing.T) {
	primary := &mockExtractor{err: errors.New("bad response schema")}
	svc := New(&mockMatcher{}, nil).WithExtractor(primary)

	if _, err := svc.Extract(context.Background(), "We need SEO"); err == nil {
		t.Fatal("expected error")
	}
}

func TestTerms_B2BSaaSFallback(t *testing.T) {
	terms := Terms(Requirements{Category: CategoryB2BSaaS}, 5)

	if diff := cmp.Diff([]string{"B2B Marketing", "GTM"}, terms.Specializations); diff != "" {
		t.Errorf("specializations (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b2b saas"}, terms.CategoryTags); diff != "" {
		t.Errorf("categories (-want +got):\n%s", diff)
	}
}

func TestTerms_ExplicitSpecializationsWin(t *testing.T) {
	terms := Terms(Requirements{Category: CategoryB2BSaaS, Specializations: []string{"abm"}}, 5)
	if diff := cmp.Diff([]string{"abm"}, terms.Specializations); diff != "" {
		t.Errorf("specializations (-want +got):\n%s", diff)
	}
}

func TestTerms_MarketplaceHasNoCategory(t *testing.T) {
	terms := Terms(Requirements{Category: CategoryMarketplace}, 5)
	if terms.CategoryTags != nil {
		t.Errorf("expected no category tags, got %v", terms.CategoryTags)
	}
}
