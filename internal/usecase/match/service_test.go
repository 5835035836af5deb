package match

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gtmquest/agencymatch/internal/domain"
	"github.com/gtmquest/agencymatch/internal/domain/agency"
	"github.com/gtmquest/agencymatch/internal/domain/match/criteria"
	"github.com/gtmquest/agencymatch/internal/domain/match/result"
)

// --- Mocks ---

type mockRepo struct {
	candidates []agency.Agency
	err        error
	calls      int
	last       criteria.Criteria
}

func (m *mockRepo) Candidates(_ context.Context, c criteria.Criteria) ([]agency.Agency, error) {
	m.calls++
	m.last = c
	return m.candidates, m.err
}

type mockCache struct {
	entries map[string][]result.Scored
	puts    int
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string][]result.Scored)}
}

func (m *mockCache) Get(_ context.Context, key string) ([]result.Scored, bool) {
	r, ok := m.entries[key]
	return r, ok
}

func (m *mockCache) Put(_ context.Context, key string, results []result.Scored) {
	m.puts++
	m.entries[key] = results
}

func slugs(rs []result.Scored) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Agency.Slug
	}
	return out
}

// --- Tests ---

func TestSearch_RanksCandidates(t *testing.T) {
	repo := &mockRepo{candidates: []agency.Agency{
		{Slug: "seo-only", Specializations: []string{"SEO"}},
		{Slug: "demand", Specializations: []string{"Demand Generation", "ABM"}, MinBudget: i64(5000)},
	}}
	svc := New(repo, nil)

	c := mustCriteria(t, []string{"Demand Generation"}, nil, nil, i64(10000))
	got, err := svc.Search(context.Background(), c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"demand", "seo-only"}, slugs(got)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if got[0].Score != 30 || got[1].Score != 15 {
		t.Errorf("scores = [%d %d], want [30 15]", got[0].Score, got[1].Score)
	}
}

func TestSearch_TruncatesToLimit(t *testing.T) {
	repo := &mockRepo{candidates: []agency.Agency{
		{Slug: "a"}, {Slug: "b"}, {Slug: "c", Specializations: []string{"SEO"}},
	}}
	svc := New(repo, nil)

	c, err := criteria.New([]string{"SEO"}, nil, nil, nil, 2)
	if err != nil {
		t.Fatalf("criteria.New: %v", err)
	}
	got, err := svc.Search(context.Background(), c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"c", "a"}, slugs(got)); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch_StoreError(t *testing.T) {
	repo := &mockRepo{err: errors.New("connection refused")}
	cache := newMockCache()
	svc := New(repo, nil).WithCache(cache)

	got, err := svc.Search(context.Background(), mustCriteria(t, nil, nil, nil, nil))
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if got != nil {
		t.Errorf("expected no results on error, got %d", len(got))
	}
	if cache.puts != 0 {
		t.Error("failed searches must not be cached")
	}
}

func TestSearch_CacheHitSkipsStore(t *testing.T) {
	repo := &mockRepo{candidates: []agency.Agency{{Slug: "fresh"}}}
	cache := newMockCache()
	svc := New(repo, nil).WithCache(cache)

	c := mustCriteria(t, []string{"SEO"}, nil, nil, nil)
	cache.entries[c.CacheKey()] = []result.Scored{{Agency: agency.Agency{Slug: "cached"}, Score: 40}}

	got, err := svc.Search(context.Background(), c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.calls != 0 {
		t.Errorf("store called %d times on cache hit", repo.calls)
	}
	if diff := cmp.Diff([]string{"cached"}, slugs(got)); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch_CacheMissStores(t *testing.T) {
	repo := &mockRepo{candidates: []agency.Agency{{Slug: "fresh"}}}
	cache := newMockCache()
	svc := New(repo, nil).WithCache(cache)

	c := mustCriteria(t, []string{"SEO"}, nil, nil, nil)
	if _, err := svc.Search(context.Background(), c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.puts != 1 {
		t.Fatalf("expected 1 cache put, got %d", cache.puts)
	}
	if diff := cmp.Diff([]string{"fresh"}, slugs(cache.entries[c.CacheKey()])); diff != "" {
		t.Errorf("cached mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchTerms_NormalizesVocabulary(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, nil)

	_, err := svc.SearchTerms(context.Background(), Terms{
		Specializations: []string{"demand gen", "Webflow"},
		CategoryTags:    []string{"b2b"},
		ServiceAreas:    []string{"UK"},
		MaxBudget:       i64(8000),
		Limit:           3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Demand Generation", "B2B Demand Generation", "Webflow"}
	if diff := cmp.Diff(want, repo.last.Specializations()); diff != "" {
		t.Errorf("specializations mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"B2B Marketing Agency", "GTM Agency"}, repo.last.CategoryTags()); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"United Kingdom", "UK", "London", "Europe"}, repo.last.ServiceAreas()); diff != "" {
		t.Errorf("regions mismatch (-want +got):\n%s", diff)
	}
	if v, ok := repo.last.MaxBudget(); !ok || v != 8000 {
		t.Errorf("MaxBudget() = (%d, %v)", v, ok)
	}
	if repo.last.Limit() != 3 {
		t.Errorf("Limit() = %d", repo.last.Limit())
	}
}

func TestSearchTerms_DefaultLimit(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, nil)

	if _, err := svc.SearchTerms(context.Background(), Terms{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.last.Limit() != criteria.DefaultLimit {
		t.Errorf("Limit() = %d, want %d", repo.last.Limit(), criteria.DefaultLimit)
	}
}

func TestSearchTerms_InvalidBudget(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, nil)

	_, err := svc.SearchTerms(context.Background(), Terms{MaxBudget: i64(-10)})
	if !errors.Is(err, domain.ErrInvalidCriteria) {
		t.Fatalf("expected ErrInvalidCriteria, got %v", err)
	}
	if repo.calls != 0 {
		t.Error("store must not be queried for invalid criteria")
	}
}
