package chi

import (
	"github.com/gtmquest/agencymatch/internal/domain/agency"
	"github.com/gtmquest/agencymatch/internal/domain/match/result"
)

// ErrorCode is the machine-readable error identifier returned to clients.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest         ErrorCode = "bad_request"
	ErrorCodeUnauthorized       ErrorCode = "unauthorized"
	ErrorCodeValidationFailed   ErrorCode = "validation_failed"
	ErrorCodeUnknownCountry     ErrorCode = "unknown_country"
	ErrorCodeEmptyBrief         ErrorCode = "empty_brief"
	ErrorCodeAgencyNotFound     ErrorCode = "agency_not_found"
	ErrorCodeStoreUnavailable   ErrorCode = "store_unavailable"
	ErrorCodeBriefProviderError ErrorCode = "brief_provider_error"
	ErrorCodeInternalError      ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// SearchRequest is the body of POST /api/v1/agencies/search.
// max_budget is a JSON number; fractional values are truncated.
type SearchRequest struct {
	Specializations []string `json:"specializations"`
	CategoryTags    []string `json:"category_tags"`
	ServiceAreas    []string `json:"service_areas"`
	MaxBudget       *float64 `json:"max_budget"`
	Limit           *int     `json:"limit"`
}

// MatchBriefRequest is the body of POST /api/v1/agencies/match-brief.
type MatchBriefRequest struct {
	Message string `json:"message"`
	Limit   *int   `json:"limit"`
}

// SearchResponse is the ranked agency list.
type SearchResponse []result.Scored

// AgencyListResponse is a plain agency list.
type AgencyListResponse []agency.Agency

// FeaturedResponse maps country codes to their featured agencies.
type FeaturedResponse map[string][]agency.Agency

// FacetResponse is a sorted list of distinct tag values.
type FacetResponse []string

// HealthResponse reports component health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
}
