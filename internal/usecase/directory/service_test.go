package directory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gtmquest/agencymatch/internal/domain"
	"github.com/gtmquest/agencymatch/internal/domain/agency"
)

// --- Mocks ---

type mockRepo struct {
	mu sync.Mutex

	agencies  []agency.Agency
	profile   agency.Profile
	err       error
	byCountry map[string][]agency.Agency // keyed by first store value
	countryFn func(values []string) error
	specs     []string
	cats      []string
	specCalls int

	lastLimit int
	lastSpec  string
}

func (m *mockRepo) List(context.Context) ([]agency.Agency, error) { return m.agencies, m.err }

func (m *mockRepo) GetBySlug(_ context.Context, slug string) (agency.Profile, error) {
	if m.err != nil {
		return agency.Profile{}, m.err
	}
	if slug != m.profile.Slug {
		return agency.Profile{}, fmt.Errorf("%w: %q", domain.ErrAgencyNotFound, slug)
	}
	return m.profile, nil
}

func (m *mockRepo) Related(_ context.Context, _ string, limit int) ([]agency.Agency, error) {
	m.lastLimit = limit
	return m.agencies, m.err
}

func (m *mockRepo) ByCountry(_ context.Context, values []string, limit int) ([]agency.Agency, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastLimit = limit
	if m.countryFn != nil {
		if err := m.countryFn(values); err != nil {
			return nil, err
		}
	}
	return m.byCountry[values[0]], m.err
}

func (m *mockRepo) BySpecialization(_ context.Context, spec string) ([]agency.Agency, error) {
	m.lastSpec = spec
	return m.agencies, m.err
}

func (m *mockRepo) Specializations(context.Context) ([]string, error) {
	m.specCalls++
	return m.specs, m.err
}

func (m *mockRepo) CategoryTags(context.Context) ([]string, error) { return m.cats, m.err }

type mockFacetCache struct {
	values map[string][]string
}

func (m *mockFacetCache) GetFacet(_ context.Context, name string) ([]string, bool) {
	v, ok := m.values[name]
	return v, ok
}

func (m *mockFacetCache) PutFacet(_ context.Context, name string, values []string) {
	m.values[name] = values
}

// --- Tests ---

func TestGet_Found(t *testing.T) {
	repo := &mockRepo{profile: agency.Profile{Agency: agency.Agency{Slug: "alpha"}}}
	svc := New(repo, nil)

	p, err := svc.Get(context.Background(), " alpha ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Slug != "alpha" {
		t.Errorf("Slug = %q", p.Slug)
	}
}

func TestGet_NotFoundIsNotStoreError(t *testing.T) {
	svc := New(&mockRepo{}, nil)

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrAgencyNotFound) {
		t.Fatalf("expected ErrAgencyNotFound, got %v", err)
	}
	if errors.Is(err, domain.ErrStoreUnavailable) {
		t.Error("not-found must not be reported as store failure")
	}
}

func TestGet_EmptySlug(t *testing.T) {
	svc := New(&mockRepo{}, nil)
	if _, err := svc.Get(context.Background(), "  "); !errors.Is(err, domain.ErrAgencyNotFound) {
		t.Fatalf("expected ErrAgencyNotFound, got %v", err)
	}
}

func TestList_StoreError(t *testing.T) {
	svc := New(&mockRepo{err: errors.New("conn reset")}, nil)
	if _, err := svc.List(context.Background()); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestRelated_DefaultLimit(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, nil)

	if _, err := svc.Related(context.Background(), "alpha", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastLimit != DefaultRelatedLimit {
		t.Errorf("limit = %d, want %d", repo.lastLimit, DefaultRelatedLimit)
	}
}

func TestByCountry(t *testing.T) {
	repo := &mockRepo{byCountry: map[string][]agency.Agency{
		"Ireland": {{Slug: "dublin-growth"}},
	}}
	svc := New(repo, nil)

	got, err := svc.ByCountry(context.Background(), "ie", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "dublin-growth" {
		t.Errorf("unexpected agencies: %+v", got)
	}
}

func TestByCountry_Unknown(t *testing.T) {
	svc := New(&mockRepo{}, nil)
	if _, err := svc.ByCountry(context.Background(), "FR", 0); !errors.Is(err, domain.ErrUnknownCountry) {
		t.Fatalf("expected ErrUnknownCountry, got %v", err)
	}
}

func TestFeatured_AllCountries(t *testing.T) {
	repo := &mockRepo{byCountry: map[string][]agency.Agency{
		"United States":  {{Slug: "us-1"}, {Slug: "us-2"}},
		"United Kingdom": {{Slug: "uk-1"}},
	}}
	svc := New(repo, nil)

	got, err := svc.Featured(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 6 {
		t.Fatalf("expected 6 countries, got %d", len(got))
	}
	if diff := cmp.Diff([]agency.Agency{{Slug: "us-1"}, {Slug: "us-2"}}, got["US"]); diff != "" {
		t.Errorf("US mismatch (-want +got):\n%s", diff)
	}
	if got["NZ"] == nil || len(got["NZ"]) != 0 {
		t.Errorf("empty country should be an empty list, got %#v", got["NZ"])
	}
	if repo.lastLimit != FeaturedPerCountry {
		t.Errorf("limit = %d, want %d", repo.lastLimit, FeaturedPerCountry)
	}
}

func TestFeatured_OneCountryFails(t *testing.T) {
	repo := &mockRepo{countryFn: func(values []string) error {
		if values[0] == "Canada" {
			return errors.New("statement timeout")
		}
		return nil
	}}
	svc := New(repo, nil)

	got, err := svc.Featured(context.Background())
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if got != nil {
		t.Error("expected no partial result")
	}
}

func TestBySpecialization_Blank(t *testing.T) {
	repo := &mockRepo{agencies: []agency.Agency{{Slug: "x"}}}
	svc := New(repo, nil)

	got, err := svc.BySpecialization(context.Background(), " ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 || repo.lastSpec != "" {
		t.Errorf("blank spec must not query the store")
	}
}

func TestSpecializations_CacheThrough(t *testing.T) {
	repo := &mockRepo{specs: []string{"ABM", "SEO"}}
	cache := &mockFacetCache{values: map[string][]string{}}
	svc := New(repo, nil).WithFacetCache(cache)
	ctx := context.Background()

	for range 2 {
		got, err := svc.Specializations(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{"ABM", "SEO"}, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	}
	if repo.specCalls != 1 {
		t.Errorf("expected 1 store call, got %d", repo.specCalls)
	}
}

func TestCategoryTags_NoCacheEmpty(t *testing.T) {
	svc := New(&mockRepo{}, nil)

	got, err := svc.CategoryTags(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", got)
	}
}

func TestWarmFacets(t *testing.T) {
	repo := &mockRepo{specs: []string{"PLG"}, cats: []string{"GTM Agency"}}
	cache := &mockFacetCache{values: map[string][]string{FacetSpecializations: {"stale"}}}
	svc := New(repo, nil).WithFacetCache(cache)

	if err := svc.WarmFacets(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"PLG"}, cache.values[FacetSpecializations]); diff != "" {
		t.Errorf("specializations (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"GTM Agency"}, cache.values[FacetCategoryTags]); diff != "" {
		t.Errorf("category tags (-want +got):\n%s", diff)
	}
}

func TestWarmFacets_StoreError(t *testing.T) {
	repo := &mockRepo{err: errors.New("down")}
	svc := New(repo, nil).WithFacetCache(&mockFacetCache{values: map[string][]string{}})

	if err := svc.WarmFacets(context.Background()); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestWarmFacets_NoCache(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, nil)

	if err := svc.WarmFacets(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.specCalls != 0 {
		t.Error("store must not be queried without a cache")
	}
}
