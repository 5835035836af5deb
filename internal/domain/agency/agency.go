// Package agency holds the read-only agency records served by the directory.
package agency

// Agency is a published directory entry as projected from the store.
// Only the tag sets and MinBudget take part in scoring; the rest is passthrough.
type Agency struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Slug            string   `json:"slug"`
	Description     string   `json:"description"`
	Headquarters    string   `json:"headquarters"`
	Specializations []string `json:"specializations"`
	CategoryTags    []string `json:"category_tags"`
	ServiceAreas    []string `json:"service_areas"`
	// MinBudget is the monthly floor in USD. Nil means no stated floor.
	MinBudget   *int64   `json:"min_budget"`
	AvgRating   *float64 `json:"avg_rating"`
	ReviewCount *int     `json:"review_count"`
	// GlobalRank orders the directory; lower is better, nil sorts last.
	GlobalRank *int    `json:"global_rank"`
	Website    *string `json:"website"`
	LogoURL    *string `json:"logo_url"`
}

// HasBudgetFloor reports whether the agency states a positive monthly minimum.
// A zero floor is treated the same as an absent one.
func (a *Agency) HasBudgetFloor() bool {
	return a.MinBudget != nil && *a.MinBudget > 0
}

// Profile is the extended record rendered on an agency's own page.
type Profile struct {
	Agency
	KeyServices    []string       `json:"key_services"`
	B2BDescription *string        `json:"b2b_description"`
	Overview       *string        `json:"overview"`
	FoundedYear    *int           `json:"founded_year"`
	EmployeeCount  *int           `json:"employee_count"`
	KeyFacts       map[string]any `json:"key_facts"`
	PricingModel   *string        `json:"pricing_model"`
	CaseStudyURL   *string        `json:"case_study_url"`
	Tags           []string       `json:"tags"`
	PrimaryColor   *string        `json:"primary_color"`
}
