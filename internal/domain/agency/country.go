package agency

import (
	"fmt"
	"strings"

	"github.com/gtmquest/agencymatch/internal/domain"
)

// Country describes one of the directory's country sections.
type Country struct {
	Code   string `json:"code"`
	Locale string `json:"locale"`
	Name   string `json:"name"`
	// StoreValues are the primary_country values that identify the country in the store.
	StoreValues []string `json:"-"`
}

var countries = []Country{
	{Code: "US", Locale: "en-US", Name: "United States", StoreValues: []string{"United States", "USA"}},
	{Code: "UK", Locale: "en-GB", Name: "United Kingdom", StoreValues: []string{"United Kingdom", "UK"}},
	{Code: "AU", Locale: "en-AU", Name: "Australia", StoreValues: []string{"Australia"}},
	{Code: "CA", Locale: "en-CA", Name: "Canada", StoreValues: []string{"Canada"}},
	{Code: "NZ", Locale: "en-NZ", Name: "New Zealand", StoreValues: []string{"New Zealand"}},
	{Code: "IE", Locale: "en-IE", Name: "Ireland", StoreValues: []string{"Ireland"}},
}

// Countries returns the country sections in display order.
func Countries() []Country {
	out := make([]Country, len(countries))
	for i, c := range countries {
		c.StoreValues = append([]string(nil), c.StoreValues...)
		out[i] = c
	}
	return out
}

// LookupCountry resolves a country code case-insensitively.
func LookupCountry(code string) (Country, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range countries {
		if c.Code == code {
			c.StoreValues = append([]string(nil), c.StoreValues...)
			return c, nil
		}
	}
	return Country{}, fmt.Errorf("%w: %q", domain.ErrUnknownCountry, code)
}
