package agencymatch

import (
	"errors"

	"github.com/gtmquest/agencymatch/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrAgencyNotFound   = domain.ErrAgencyNotFound
	ErrInvalidCriteria  = domain.ErrInvalidCriteria
	ErrStoreUnavailable = domain.ErrStoreUnavailable
	ErrUnknownCountry   = domain.ErrUnknownCountry
	// ErrUnknownTopic is returned by Normalize for a topic other than
	// specialization, category or region.
	ErrUnknownTopic = errors.New("agencymatch: unknown vocabulary topic")
)
