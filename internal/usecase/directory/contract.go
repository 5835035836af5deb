package directory

import (
	"context"

	"github.com/gtmquest/agencymatch/internal/domain/agency"
)

// Repository defines the read contract for the agency directory.
type Repository interface {
	List(ctx context.Context) ([]agency.Agency, error)
	GetBySlug(ctx context.Context, slug string) (agency.Profile, error)
	Related(ctx context.Context, slug string, limit int) ([]agency.Agency, error)
	ByCountry(ctx context.Context, values []string, limit int) ([]agency.Agency, error)
	BySpecialization(ctx context.Context, spec string) ([]agency.Agency, error)
	Specializations(ctx context.Context) ([]string, error)
	CategoryTags(ctx context.Context) ([]string, error)
}

// FacetCache stores facet lists between refreshes.
type FacetCache interface {
	GetFacet(ctx context.Context, name string) ([]string, bool)
	PutFacet(ctx context.Context, name string, values []string)
}
