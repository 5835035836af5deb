// Package agency reads published agencies from Postgres.
package agency

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gtmquest/agencymatch/internal/db"
	"github.com/gtmquest/agencymatch/internal/domain"
	domagency "github.com/gtmquest/agencymatch/internal/domain/agency"
	"github.com/gtmquest/agencymatch/internal/domain/match/criteria"
)

// querier is the consumer interface for the pool (ISP). *pgxpool.Pool satisfies it.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repo implements the agency read contracts of the match and directory use cases.
type Repo struct {
	db           querier
	queryTimeout time.Duration
}

// New creates an agency repository.
func New(q querier) *Repo {
	return &Repo{db: q}
}

// WithQueryTimeout bounds every query. Zero disables the bound.
func (r *Repo) WithQueryTimeout(d time.Duration) *Repo {
	r.queryTimeout = d
	return r
}

// Candidates returns published agencies passing the coarse filters, best ranked first.
// Each non-empty tag set must overlap the agency's; the budget ceiling excludes
// agencies whose stated floor exceeds it. At most c.Limit() rows are returned.
func (r *Repo) Candidates(ctx context.Context, c criteria.Criteria) ([]domagency.Agency, error) {
	var ceiling *int64
	if v, ok := c.MaxBudget(); ok {
		ceiling = &v
	}
	return r.list(ctx, "candidates", candidatesSQL,
		textArray(c.Specializations()),
		textArray(c.CategoryTags()),
		textArray(c.ServiceAreas()),
		ceiling,
		c.Limit(),
	)
}

// List returns every published agency.
func (r *Repo) List(ctx context.Context) ([]domagency.Agency, error) {
	return r.list(ctx, "list", listSQL)
}

// GetBySlug returns the full profile of a published agency.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (domagency.Profile, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, profileSQL, slug)
	if err != nil {
		return domagency.Profile{}, queryErr("profile", err)
	}
	p, err := pgx.CollectOneRow(rows, scanProfile)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domagency.Profile{}, fmt.Errorf("%w: %q", domain.ErrAgencyNotFound, slug)
		}
		return domagency.Profile{}, fmt.Errorf("get agency %q: %w", slug, err)
	}
	return p, nil
}

// Related returns agencies sharing a specialization with slug, excluding it.
func (r *Repo) Related(ctx context.Context, slug string, limit int) ([]domagency.Agency, error) {
	return r.list(ctx, "related", relatedSQL, slug, limit)
}

// ByCountry returns agencies whose primary country is one of values.
// limit <= 0 returns all of them.
func (r *Repo) ByCountry(ctx context.Context, values []string, limit int) ([]domagency.Agency, error) {
	var lim *int
	if limit > 0 {
		lim = &limit
	}
	return r.list(ctx, "by country", byCountrySQL, textArray(values), lim)
}

// BySpecialization returns agencies with a specialization containing spec.
// Hyphens in spec stand for spaces, so URL slugs can be passed directly.
func (r *Repo) BySpecialization(ctx context.Context, spec string) ([]domagency.Agency, error) {
	pattern := "%" + strings.ReplaceAll(spec, "-", " ") + "%"
	return r.list(ctx, "by specialization", bySpecializationSQL, pattern)
}

// Specializations returns the distinct specialization tags in use, sorted.
func (r *Repo) Specializations(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "specializations", specializationsSQL)
}

// CategoryTags returns the distinct category tags in use, sorted.
func (r *Repo) CategoryTags(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "category tags", categoryTagsSQL)
}

func (r *Repo) list(ctx context.Context, op, sql string, args ...any) ([]domagency.Agency, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, queryErr(op, err)
	}
	out, err := pgx.CollectRows(rows, scanAgency)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", op, err)
	}
	return out, nil
}

func (r *Repo) distinct(ctx context.Context, op, sql string) ([]string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, queryErr(op, err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", op, err)
	}
	return out, nil
}

func (r *Repo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

// queryErr tags a failed round trip so callers can tell it from a scan error.
func queryErr(op string, err error) error {
	return &db.Error{Op: db.OpQuery, Err: fmt.Errorf("%s: %w", op, err)}
}

// textArray keeps empty filters as '{}' rather than NULL, which would
// turn the cardinality check into NULL and drop every row.
func textArray(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
