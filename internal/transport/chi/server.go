package chi

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/gtmquest/agencymatch/internal/domain"
	"github.com/gtmquest/agencymatch/internal/domain/agency"
	"github.com/gtmquest/agencymatch/internal/domain/match/criteria"
	"github.com/gtmquest/agencymatch/internal/logger"
	"github.com/gtmquest/agencymatch/internal/version"
	briefuc "github.com/gtmquest/agencymatch/internal/usecase/brief"
	directoryuc "github.com/gtmquest/agencymatch/internal/usecase/directory"
	healthuc "github.com/gtmquest/agencymatch/internal/usecase/health"
	matchuc "github.com/gtmquest/agencymatch/internal/usecase/match"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the agency matching HTTP API.
type Server struct {
	matcher       *matchuc.Service
	directory     *directoryuc.Service
	briefs        *briefuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	defaultLimit  int
	maxLimit      int
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	matcher *matchuc.Service,
	directory *directoryuc.Service,
	briefs *briefuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		matcher:      matcher,
		directory:    directory,
		briefs:       briefs,
		health:       health,
		logger:       logger,
		defaultLimit: criteria.DefaultLimit,
		maxLimit:     criteria.MaxLimit,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidCriteria, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrUnknownCountry, http.StatusBadRequest, ErrorCodeUnknownCountry),
		sentinelHandler(domain.ErrEmptyBrief, http.StatusBadRequest, ErrorCodeEmptyBrief),
		sentinelHandler(domain.ErrAgencyNotFound, http.StatusNotFound, ErrorCodeAgencyNotFound),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, ErrorCodeStoreUnavailable),
		sentinelHandler(domain.ErrBriefProviderError, http.StatusBadGateway, ErrorCodeBriefProviderError),
	}
	return s
}

// WithLimits sets the result count applied when a request omits limit,
// and the ceiling applied when it asks for more.
func (s *Server) WithLimits(defaultLimit, maxLimit int) *Server {
	if maxLimit > 0 {
		s.maxLimit = maxLimit
	}
	if defaultLimit > 0 {
		s.defaultLimit = min(defaultLimit, s.maxLimit)
	}
	return s
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r gochi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r gochi.Router) {
		r.Post("/agencies/search", s.SearchAgencies)
		r.Post("/agencies/match-brief", s.MatchBrief)
		r.Get("/agencies", s.ListAgencies)
		r.Get("/agencies/featured", s.FeaturedAgencies)
		r.Get("/agencies/by-specialization/{spec}", s.AgenciesBySpecialization)
		r.Get("/agencies/{slug}", s.GetAgency)
		r.Get("/agencies/{slug}/related", s.RelatedAgencies)
		r.Get("/specializations", s.ListSpecializations)
		r.Get("/category-tags", s.ListCategoryTags)
	})
}

// SearchAgencies handles POST /api/v1/agencies/search.
func (s *Server) SearchAgencies(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	terms := matchuc.Terms{
		Specializations: req.Specializations,
		CategoryTags:    req.CategoryTags,
		ServiceAreas:    req.ServiceAreas,
		Limit:           s.limit(req.Limit),
	}
	if req.MaxBudget != nil {
		if math.IsNaN(*req.MaxBudget) || math.IsInf(*req.MaxBudget, 0) || math.Abs(*req.MaxBudget) >= math.MaxInt64 {
			writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "max_budget must be a finite number")
			return
		}
		b := int64(*req.MaxBudget)
		terms.MaxBudget = &b
	}

	ranked, err := s.matcher.SearchTerms(r.Context(), terms)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if ranked == nil {
		ranked = SearchResponse{}
	}

	writeJSON(w, http.StatusOK, SearchResponse(ranked))
}

// MatchBrief handles POST /api/v1/agencies/match-brief.
func (s *Server) MatchBrief(w http.ResponseWriter, r *http.Request) {
	var req MatchBriefRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	m, err := s.briefs.Match(r.Context(), req.Message, s.limit(req.Limit))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if m.Agencies == nil {
		m.Agencies = SearchResponse{}
	}

	writeJSON(w, http.StatusOK, m)
}

// ListAgencies handles GET /api/v1/agencies with an optional country filter.
func (s *Server) ListAgencies(w http.ResponseWriter, r *http.Request) {
	var country *string
	if err := runtime.BindQueryParameter("form", true, false, "country", r.URL.Query(), &country); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid format for parameter country")
		return
	}

	var (
		list []agency.Agency
		err  error
	)
	if country != nil && *country != "" {
		list, err = s.directory.ByCountry(r.Context(), *country, 0)
	} else {
		list, err = s.directory.List(r.Context())
	}
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, agencyList(list))
}

// FeaturedAgencies handles GET /api/v1/agencies/featured.
func (s *Server) FeaturedAgencies(w http.ResponseWriter, r *http.Request) {
	featured, err := s.directory.Featured(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, FeaturedResponse(featured))
}

// GetAgency handles GET /api/v1/agencies/{slug}.
func (s *Server) GetAgency(w http.ResponseWriter, r *http.Request) {
	slug, ok := pathParam(w, r, "slug")
	if !ok {
		return
	}

	profile, err := s.directory.Get(r.Context(), slug)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// RelatedAgencies handles GET /api/v1/agencies/{slug}/related.
func (s *Server) RelatedAgencies(w http.ResponseWriter, r *http.Request) {
	slug, ok := pathParam(w, r, "slug")
	if !ok {
		return
	}

	var limit *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid format for parameter limit")
		return
	}
	n := 0
	if limit != nil {
		n = min(*limit, s.maxLimit)
	}

	list, err := s.directory.Related(r.Context(), slug, n)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, agencyList(list))
}

// AgenciesBySpecialization handles GET /api/v1/agencies/by-specialization/{spec}.
func (s *Server) AgenciesBySpecialization(w http.ResponseWriter, r *http.Request) {
	spec, ok := pathParam(w, r, "spec")
	if !ok {
		return
	}

	list, err := s.directory.BySpecialization(r.Context(), spec)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, agencyList(list))
}

// ListSpecializations handles GET /api/v1/specializations.
func (s *Server) ListSpecializations(w http.ResponseWriter, r *http.Request) {
	values, err := s.directory.Specializations(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, facetList(values))
}

// ListCategoryTags handles GET /api/v1/category-tags.
func (s *Server) ListCategoryTags(w http.ResponseWriter, r *http.Request) {
	values, err := s.directory.CategoryTags(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, facetList(values))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:  string(report.Status),
		Version: version.Version,
		Checks:  checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// limit resolves a requested result count against the configured bounds.
func (s *Server) limit(requested *int) int {
	if requested == nil || *requested <= 0 {
		return s.defaultLimit
	}
	return min(*requested, s.maxLimit)
}

// pathParam binds a required simple-style path parameter, writing a 400 on failure.
func pathParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	var v string
	err := runtime.BindStyledParameterWithOptions("simple", name, gochi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid format for parameter "+name)
		return "", false
	}
	return v, true
}

func agencyList(list []agency.Agency) AgencyListResponse {
	if list == nil {
		return AgencyListResponse{}
	}
	return list
}

func facetList(values []string) FacetResponse {
	if values == nil {
		return FacetResponse{}
	}
	return values
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidCriteria,
		domain.ErrUnknownCountry,
		domain.ErrEmptyBrief,
		domain.ErrAgencyNotFound,
		domain.ErrStoreUnavailable,
		domain.ErrBriefProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContextOr(r.Context(), s.logger)
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
