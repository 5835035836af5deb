// Package brief turns a free-text project brief into search terms and matches agencies.
package brief

import (
	"fmt"
	"strconv"
)

// Business categories recognised in a brief.
const (
	CategoryB2BSaaS     = "b2b_saas"
	CategoryDTC         = "dtc"
	CategoryEnterprise  = "enterprise"
	CategoryMarketplace = "marketplace"
	CategoryConsumer    = "consumer"
)

// Company stages recognised in a brief, earliest first.
const (
	StageIdea      = "idea"
	StagePreLaunch = "pre_launch"
	StageEarly     = "early"
	StageGrowth    = "growth"
	StageScale     = "scale"
)

// ValidStage reports whether s is one of the Stage constants.
func ValidStage(s string) bool {
	switch s {
	case StageIdea, StagePreLaunch, StageEarly, StageGrowth, StageScale:
		return true
	}
	return false
}

// Requirements is what a brief says about the engagement it is looking for.
// Specializations and Regions hold user vocabulary, normalized later by the matcher.
type Requirements struct {
	Industry        string   `json:"industry,omitempty"`
	Category        string   `json:"category,omitempty"`
	Stage           string   `json:"stage,omitempty"`
	Specializations []string `json:"specializations"`
	Regions         []string `json:"regions"`
	Budget          *int64   `json:"budget,omitempty"`
	Tools           []string `json:"tools,omitempty"`
}

// categoryTerms maps a category to the business-type vocabulary it searches for.
var categoryTerms = map[string]string{
	CategoryB2BSaaS:    "b2b saas",
	CategoryDTC:        "dtc",
	CategoryEnterprise: "enterprise",
	CategoryConsumer:   "consumer",
}

// b2bSaaSFallback is searched when a B2B SaaS brief names no specialization.
var b2bSaaSFallback = []string{"B2B Marketing", "GTM"}

// String renders the requirements for logs.
func (r Requirements) String() string {
	budget := "none"
	if r.Budget != nil {
		budget = strconv.FormatInt(*r.Budget, 10)
	}
	return fmt.Sprintf("industry=%q category=%q stage=%q specs=%v regions=%v budget=%s",
		r.Industry, r.Category, r.Stage, r.Specializations, r.Regions, budget)
}
