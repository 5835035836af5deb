package agencymatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gtmquest/agencymatch/internal/db/postgres"
	dbRedis "github.com/gtmquest/agencymatch/internal/db/redis"
	"github.com/gtmquest/agencymatch/internal/domain/agency"
	"github.com/gtmquest/agencymatch/internal/domain/match/criteria"
	"github.com/gtmquest/agencymatch/internal/domain/match/result"
	"github.com/gtmquest/agencymatch/internal/domain/vocabulary"
	agencyrepo "github.com/gtmquest/agencymatch/internal/repository/agency"
	"github.com/gtmquest/agencymatch/internal/repository/matchcache"
	directoryuc "github.com/gtmquest/agencymatch/internal/usecase/directory"
	matchuc "github.com/gtmquest/agencymatch/internal/usecase/match"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultQueryTimeout     = 5 * time.Second
	defaultCacheTTL         = 5 * time.Minute
)

// Internal interfaces so tests can swap the use cases.
type matchUseCase interface {
	Search(ctx context.Context, c criteria.Criteria) ([]result.Scored, error)
	SearchTerms(ctx context.Context, t matchuc.Terms) ([]result.Scored, error)
}

type directoryUseCase interface {
	Get(ctx context.Context, slug string) (agency.Profile, error)
	Specializations(ctx context.Context) ([]string, error)
}

// closer releases a connection pool.
type closer interface {
	Close()
}

// Client is the agencymatch entry point.
type Client struct {
	closers   []closer
	pool      *postgres.Pool
	matcher   matchUseCase
	directory directoryUseCase
	vocab     vocabulary.Set
	obs       *observer
}

// New creates a Client and connects to the agency store.
// The provided context bounds the initial readiness checks.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		queryTimeout: defaultQueryTimeout,
		cacheTTL:     defaultCacheTTL,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.dsn == "" {
		return nil, errors.New("agencymatch: postgres dsn required (use WithPostgres)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	pool, err := postgres.New(ctx, postgres.Config{DSN: cfg.dsn, MaxConns: cfg.maxConns})
	if err != nil {
		return nil, fmt.Errorf("agencymatch: %w", err)
	}
	if err := pool.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		pool.Close()
		return nil, fmt.Errorf("agencymatch: database not ready: %w", err)
	}

	repo := agencyrepo.New(pool.Pgx()).WithQueryTimeout(cfg.queryTimeout)
	matchSvc := matchuc.New(repo, nil)
	dirSvc := directoryuc.New(repo, nil)

	c := &Client{
		closers:   []closer{pool},
		pool:      pool,
		matcher:   matchSvc,
		directory: dirSvc,
		vocab:     matchSvc.Vocabulary(),
		obs:       obs,
	}

	if len(cfg.cacheAddrs) > 0 {
		store, err := dbRedis.NewStore(dbRedis.Config{Addrs: cfg.cacheAddrs, Password: cfg.cachePassword})
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("agencymatch: %w", err)
		}
		c.closers = append(c.closers, store)
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			c.Close()
			return nil, fmt.Errorf("agencymatch: cache not ready: %w", err)
		}
		cache := matchcache.New(store, cfg.cacheTTL, zap.NewNop())
		matchSvc.WithCache(cache)
		dirSvc.WithFacetCache(cache)
	}

	return c, nil
}

// Close releases all connections.
func (c *Client) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i].Close()
	}
	c.closers = nil
}

// Ping checks agency store connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, -1, err) }()

	if c.pool == nil {
		return errors.New("agencymatch: client is not connected")
	}
	if err = c.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search ranks agencies against canonical store tags, best match first.
func (c *Client) Search(ctx context.Context, q Criteria) (matches []Match, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, len(matches), err) }()

	crit, err := criteria.New(q.Specializations, q.CategoryTags, q.ServiceAreas, q.MaxBudget, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	ranked, err := c.matcher.Search(ctx, crit)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return matchesFromDomain(ranked), nil
}

// SearchTerms normalizes free-text terms onto store tags and ranks agencies.
func (c *Client) SearchTerms(ctx context.Context, q Criteria) (matches []Match, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search_terms", start, len(matches), err) }()

	ranked, err := c.matcher.SearchTerms(ctx, matchuc.Terms{
		Specializations: q.Specializations,
		CategoryTags:    q.CategoryTags,
		ServiceAreas:    q.ServiceAreas,
		MaxBudget:       q.MaxBudget,
		Limit:           q.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search terms: %w", err)
	}
	return matchesFromDomain(ranked), nil
}

// Agency returns a published agency profile by slug.
func (c *Client) Agency(ctx context.Context, slug string) (p Profile, err error) {
	start := time.Now()
	defer func() { c.obs.observe("agency", start, -1, err) }()

	p, err = c.directory.Get(ctx, slug)
	if err != nil {
		return Profile{}, fmt.Errorf("agency: %w", err)
	}
	return p, nil
}

// Specializations returns the distinct specialization tags in use, sorted.
func (c *Client) Specializations(ctx context.Context) (tags []string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("specializations", start, -1, err) }()

	tags, err = c.directory.Specializations(ctx)
	if err != nil {
		return nil, fmt.Errorf("specializations: %w", err)
	}
	return tags, nil
}

// Normalize maps one free-text term onto canonical tags with the vocabulary
// the client searches with. See the package-level Normalize.
func (c *Client) Normalize(topic, term string) ([]string, error) {
	return normalize(c.vocab, topic, term)
}

// Normalize maps one free-text term onto canonical tags using the built-in
// vocabularies. topic is "specialization", "category" or "region".
// Unknown terms come back unchanged.
func Normalize(topic, term string) ([]string, error) {
	return normalize(vocabulary.Default(), topic, term)
}

func normalize(vocab vocabulary.Set, topic, term string) ([]string, error) {
	table, ok := vocab.Lookup(topic)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTopic, topic)
	}
	return vocabulary.Normalize(term, table), nil
}
