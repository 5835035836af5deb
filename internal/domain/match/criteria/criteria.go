// Package criteria holds validated agency search constraints.
package criteria

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gtmquest/agencymatch/internal/domain"
)

// Result count limits.
const (
	DefaultLimit = 5
	MaxLimit     = 50
)

// Criteria is a normalized agency search request. Empty tag sets mean "no filter".
type Criteria struct {
	specializations []string
	categoryTags    []string
	serviceAreas    []string
	maxBudget       int64
	hasMaxBudget    bool
	limit           int
}

// New trims and compacts tag lists and applies limit defaults.
// A nil maxBudget leaves the ceiling unconstrained; limit <= 0 means DefaultLimit.
func New(specializations, categoryTags, serviceAreas []string, maxBudget *int64, limit int) (Criteria, error) {
	c := Criteria{
		specializations: compact(specializations),
		categoryTags:    compact(categoryTags),
		serviceAreas:    compact(serviceAreas),
		limit:           limit,
	}
	if maxBudget != nil {
		if *maxBudget < 0 {
			return Criteria{}, fmt.Errorf("%w: max_budget must not be negative", domain.ErrInvalidCriteria)
		}
		c.maxBudget = *maxBudget
		c.hasMaxBudget = true
	}
	if c.limit <= 0 {
		c.limit = DefaultLimit
	}
	if c.limit > MaxLimit {
		c.limit = MaxLimit
	}
	return c, nil
}

// Specializations returns the requested capability tags.
func (c *Criteria) Specializations() []string { return c.specializations }

// CategoryTags returns the requested business-type tags.
func (c *Criteria) CategoryTags() []string { return c.categoryTags }

// ServiceAreas returns the requested region tags.
func (c *Criteria) ServiceAreas() []string { return c.serviceAreas }

// MaxBudget returns the monthly ceiling and whether one was supplied.
func (c *Criteria) MaxBudget() (int64, bool) { return c.maxBudget, c.hasMaxBudget }

// Limit returns the maximum number of ranked results.
func (c *Criteria) Limit() int { return c.limit }

// IsEmpty reports whether no tag or budget constraint was supplied.
func (c *Criteria) IsEmpty() bool {
	return len(c.specializations) == 0 && len(c.categoryTags) == 0 &&
		len(c.serviceAreas) == 0 && !c.hasMaxBudget
}

// cacheKey is the JSON shape hashed into result cache keys.
// Field order is fixed by the struct, and tags are escaped by the encoder.
type cacheKey struct {
	Specializations []string `json:"s"`
	CategoryTags    []string `json:"c"`
	ServiceAreas    []string `json:"r"`
	MaxBudget       *int64   `json:"b"`
	Limit           int      `json:"l"`
}

// CacheKey returns a canonical representation for result caching.
// Distinct criteria always produce distinct keys.
func (c *Criteria) CacheKey() string {
	k := cacheKey{
		Specializations: nonNil(c.specializations),
		CategoryTags:    nonNil(c.categoryTags),
		ServiceAreas:    nonNil(c.serviceAreas),
		Limit:           c.limit,
	}
	if c.hasMaxBudget {
		v := c.maxBudget
		k.MaxBudget = &v
	}
	// Marshalling strings, ints and slices of them cannot fail.
	data, _ := json.Marshal(k)
	return string(data)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
