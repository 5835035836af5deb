// Package directory serves agency listings, profiles and facet lists.
package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gtmquest/agencymatch/internal/domain"
	"github.com/gtmquest/agencymatch/internal/domain/agency"
)

// Facet names.
const (
	FacetSpecializations = "specializations"
	FacetCategoryTags    = "category_tags"
)

// Listing sizes.
const (
	DefaultRelatedLimit = 4
	FeaturedPerCountry  = 4
)

// Service coordinates directory reads.
type Service struct {
	repo   Repository
	facets FacetCache
	logger *zap.Logger
}

// New creates a directory service.
func New(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// WithFacetCache enables facet caching. A nil cache disables it.
func (s *Service) WithFacetCache(c FacetCache) *Service {
	s.facets = c
	return s
}

// List returns every published agency, best ranked first.
func (s *Service) List(ctx context.Context) ([]agency.Agency, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeErr("list agencies", err)
	}
	return out, nil
}

// Get returns an agency profile by slug.
func (s *Service) Get(ctx context.Context, slug string) (agency.Profile, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return agency.Profile{}, fmt.Errorf("%w: empty slug", domain.ErrAgencyNotFound)
	}
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return agency.Profile{}, storeErr("get agency", err)
	}
	return p, nil
}

// Related returns agencies sharing a specialization with slug.
// limit <= 0 means DefaultRelatedLimit.
func (s *Service) Related(ctx context.Context, slug string, limit int) ([]agency.Agency, error) {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	out, err := s.repo.Related(ctx, slug, limit)
	if err != nil {
		return nil, storeErr("related agencies", err)
	}
	return out, nil
}

// ByCountry returns agencies headquartered in a country section.
// limit <= 0 returns all of them.
func (s *Service) ByCountry(ctx context.Context, code string, limit int) ([]agency.Agency, error) {
	country, err := agency.LookupCountry(code)
	if err != nil {
		return nil, err
	}
	out, err := s.repo.ByCountry(ctx, country.StoreValues, limit)
	if err != nil {
		return nil, storeErr("agencies by country", err)
	}
	return out, nil
}

// Featured returns the top agencies of every country section, keyed by country code.
// Countries are fetched concurrently; any failure fails the whole call.
func (s *Service) Featured(ctx context.Context) (map[string][]agency.Agency, error) {
	countries := agency.Countries()

	var mu sync.Mutex
	out := make(map[string][]agency.Agency, len(countries))

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range countries {
		g.Go(func() error {
			list, err := s.repo.ByCountry(gctx, c.StoreValues, FeaturedPerCountry)
			if err != nil {
				return fmt.Errorf("country %s: %w", c.Code, err)
			}
			if list == nil {
				list = []agency.Agency{}
			}
			mu.Lock()
			out[c.Code] = list
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, storeErr("featured agencies", err)
	}
	return out, nil
}

// BySpecialization returns agencies with a matching specialization.
func (s *Service) BySpecialization(ctx context.Context, spec string) ([]agency.Agency, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return []agency.Agency{}, nil
	}
	out, err := s.repo.BySpecialization(ctx, spec)
	if err != nil {
		return nil, storeErr("agencies by specialization", err)
	}
	return out, nil
}

// Specializations returns the distinct specialization tags in use.
func (s *Service) Specializations(ctx context.Context) ([]string, error) {
	return s.facet(ctx, FacetSpecializations, s.repo.Specializations)
}

// CategoryTags returns the distinct category tags in use.
func (s *Service) CategoryTags(ctx context.Context) ([]string, error) {
	return s.facet(ctx, FacetCategoryTags, s.repo.CategoryTags)
}

// WarmFacets reloads both facet lists from the store into the cache.
func (s *Service) WarmFacets(ctx context.Context) error {
	if s.facets == nil {
		return nil
	}
	loaders := map[string]func(context.Context) ([]string, error){
		FacetSpecializations: s.repo.Specializations,
		FacetCategoryTags:    s.repo.CategoryTags,
	}
	var errs []error
	for name, load := range loaders {
		values, err := load(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("warm %s: %w", name, err))
			continue
		}
		s.facets.PutFacet(ctx, name, values)
		s.logger.Debug("facet warmed", zap.String("facet", name), zap.Int("values", len(values)))
	}
	if len(errs) > 0 {
		return storeErr("warm facets", errors.Join(errs...))
	}
	return nil
}

func (s *Service) facet(
	ctx context.Context,
	name string,
	load func(context.Context) ([]string, error),
) ([]string, error) {
	if s.facets != nil {
		if values, ok := s.facets.GetFacet(ctx, name); ok {
			return values, nil
		}
	}
	values, err := load(ctx)
	if err != nil {
		return nil, storeErr(name, err)
	}
	if values == nil {
		values = []string{}
	}
	if s.facets != nil {
		s.facets.PutFacet(ctx, name, values)
	}
	return values, nil
}

// storeErr marks repository failures as ErrStoreUnavailable, leaving
// not-found errors as they are.
func storeErr(op string, err error) error {
	if errors.Is(err, domain.ErrAgencyNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}
