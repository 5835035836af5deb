package brief

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/gtmquest/agencymatch/internal/domain"
)

type keywordGroup struct {
	name     string
	keywords []*regexp.Regexp
}

func group(name string, keywords ...string) keywordGroup {
	g := keywordGroup{name: name, keywords: make([]*regexp.Regexp, len(keywords))}
	for i, kw := range keywords {
		g.keywords[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
	}
	return g
}

func (g keywordGroup) matches(s string) bool {
	for _, re := range g.keywords {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// Keyword groups are checked in order; industry, category and stage take the first hit.
// "b2b saas" precedes "saas" so the more specific industry wins.
var (
	industryGroups = []keywordGroup{
		group("b2b saas", "b2b saas"),
		group("gaming", "gaming", "games"),
		group("fintech", "fintech"),
		group("healthtech", "healthtech", "healthcare"),
		group("edtech", "edtech"),
		group("saas", "saas"),
		group("ecommerce", "ecommerce", "e-commerce"),
		group("ai", "ai"),
	}

	stageGroups = []keywordGroup{
		group(StageIdea, "idea", "concept", "thinking about"),
		group(StagePreLaunch, "pre-launch", "pre launch", "about to launch", "launching soon"),
		group(StageEarly, "early stage", "just launched", "seed", "pre-seed"),
		group(StageGrowth, "growth", "series a", "series b", "scaling"),
		group(StageScale, "scale", "enterprise", "series c", "mature"),
	}

	specializationGroups = []keywordGroup{
		group("demand gen", "demand gen", "demand generation", "lead gen"),
		group("abm", "abm", "account based", "account-based"),
		group("content", "content", "content marketing", "blog"),
		group("plg", "plg", "product led", "product-led", "self-serve"),
		group("brand", "brand", "branding", "positioning"),
		group("seo", "seo", "search engine", "organic search"),
		group("paid", "paid", "ppc", "ads", "advertising"),
	}

	regionGroups = []keywordGroup{
		group("US", "us", "usa", "united states", "america"),
		group("UK", "uk", "united kingdom", "britain"),
		group("EUROPE", "europe", "eu", "emea"),
		group("APAC", "apac", "asia", "pacific"),
		group("GLOBAL", "global", "worldwide", "international"),
	}

	toolGroups = []keywordGroup{
		group("HubSpot", "hubspot"),
		group("Salesforce", "salesforce"),
		group("Pipedrive", "pipedrive"),
		group("Clay", "clay"),
		group("Apollo.io", "apollo", "apollo.io"),
		group("ZoomInfo", "zoominfo"),
		group("LinkedIn Sales Navigator", "sales navigator"),
		group("Instantly", "instantly"),
		group("Lemlist", "lemlist"),
		group("Outreach", "outreach.io"),
		group("SalesLoft", "salesloft"),
		group("Mailchimp", "mailchimp"),
		group("Klaviyo", "klaviyo"),
		group("Marketo", "marketo"),
		group("Pardot", "pardot"),
		group("Mixpanel", "mixpanel"),
		group("Amplitude", "amplitude"),
		group("Segment", "segment.io", "segment cdp"),
		group("Heap", "heap analytics"),
		group("6sense", "6sense"),
		group("Demandbase", "demandbase"),
		group("Terminus", "terminus"),
	}
)

// Budget forms: "$50k", "$50,000", "budget of 50k", "50k/month".
// The first form that matches decides.
var budgetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$(\d{1,3}(?:,\d{3})+|\d+)\s*(k\b)?`),
	regexp.MustCompile(`budget\s*(?:of|is|:)?\s*\$?(\d{1,3}(?:,\d{3})+|\d+)\s*(k\b)?`),
	regexp.MustCompile(`(\d{1,3}(?:,\d{3})+|\d+)\s*(k)\s*(?:per|/|a)?\s*(?:month|mo)\b`),
}

// minRawBudget is the smallest amount accepted without a k suffix.
const minRawBudget = 1000

// RuleExtractor reads requirements from a brief with keyword tables and budget patterns.
type RuleExtractor struct{}

// NewRuleExtractor creates a rule-based extractor.
func NewRuleExtractor() *RuleExtractor { return &RuleExtractor{} }

// Name identifies the extractor in metrics and logs.
func (*RuleExtractor) Name() string { return "rules" }

// Extract implements Extractor. It never fails on non-empty input.
func (*RuleExtractor) Extract(_ context.Context, message string) (Requirements, error) {
	if strings.TrimSpace(message) == "" {
		return Requirements{}, domain.ErrEmptyBrief
	}

	req := Requirements{
		Industry:        firstMatch(industryGroups, message),
		Category:        detectCategory(message),
		Stage:           firstMatch(stageGroups, message),
		Specializations: allMatches(specializationGroups, message),
		Regions:         allMatches(regionGroups, message),
		Tools:           allMatches(toolGroups, message),
		Budget:          detectBudget(message),
	}
	return req, nil
}

func firstMatch(groups []keywordGroup, s string) string {
	for _, g := range groups {
		if g.matches(s) {
			return g.name
		}
	}
	return ""
}

func allMatches(groups []keywordGroup, s string) []string {
	out := []string{}
	for _, g := range groups {
		if g.matches(s) {
			out = append(out, g.name)
		}
	}
	return out
}

var (
	reB2B         = regexp.MustCompile(`(?i)\bb2b\b`)
	reSaaS        = regexp.MustCompile(`(?i)\bsaas\b`)
	reDTC         = regexp.MustCompile(`(?i)\bdtc\b|direct to consumer|direct-to-consumer`)
	reEnterprise  = regexp.MustCompile(`(?i)\benterprise\b`)
	reMarketplace = regexp.MustCompile(`(?i)\bmarketplace\b`)
	reConsumer    = regexp.MustCompile(`(?i)\bconsumer\b`)
)

func detectCategory(s string) string {
	switch {
	case reB2B.MatchString(s) && reSaaS.MatchString(s):
		return CategoryB2BSaaS
	case reDTC.MatchString(s):
		return CategoryDTC
	case reEnterprise.MatchString(s):
		return CategoryEnterprise
	case reMarketplace.MatchString(s):
		return CategoryMarketplace
	case reConsumer.MatchString(s):
		return CategoryConsumer
	default:
		return ""
	}
}

func detectBudget(s string) *int64 {
	lower := strings.ToLower(s)
	for _, re := range budgetPatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		amount, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
		if err != nil {
			return nil
		}
		switch {
		case m[2] != "":
			amount *= 1000
		case amount < minRawBudget:
			return nil
		}
		return &amount
	}
	return nil
}

// Compile-time check: RuleExtractor implements Extractor.
var _ Extractor = (*RuleExtractor)(nil)
