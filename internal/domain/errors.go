package domain

import "errors"

var (
	// ErrAgencyNotFound signals a missing or unpublished agency.
	ErrAgencyNotFound = errors.New("agency not found")
	// ErrInvalidCriteria signals search criteria that failed validation.
	ErrInvalidCriteria = errors.New("invalid search criteria")
	// ErrStoreUnavailable signals a failed candidate fetch from the relational store.
	ErrStoreUnavailable = errors.New("agency store unavailable")
	// ErrUnknownCountry signals a country code outside the directory's sections.
	ErrUnknownCountry = errors.New("unknown country")

	// ErrEmptyBrief signals a brief with no usable text.
	ErrEmptyBrief = errors.New("brief is empty")
	// ErrBriefProviderError signals an LLM provider failure during brief extraction.
	ErrBriefProviderError = errors.New("brief provider error")
)
