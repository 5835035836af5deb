package vocabulary

// Specializations returns the capability vocabulary.
func Specializations() *Table {
	return NewTable(
		Entry{"demand gen", []string{"Demand Generation", "B2B Demand Generation"}},
		Entry{"demand generation", []string{"Demand Generation", "B2B Demand Generation"}},
		Entry{"abm", []string{"ABM", "Account-Based Marketing", "ABM strategy"}},
		Entry{"account based", []string{"ABM", "Account-Based Marketing"}},
		Entry{"content", []string{"Content Marketing", "B2B Content Marketing"}},
		Entry{"content marketing", []string{"Content Marketing", "B2B Content Marketing"}},
		Entry{"plg", []string{"Product-Led Growth", "PLG"}},
		Entry{"product led", []string{"Product-Led Growth", "PLG"}},
		Entry{"brand", []string{"B2B Branding", "Brand Strategy"}},
		Entry{"branding", []string{"B2B Branding", "Brand Strategy"}},
		Entry{"seo", []string{"SEO", "B2B SEO"}},
		Entry{"paid media", []string{"Paid Media", "Performance Marketing"}},
		Entry{"social", []string{"Social Media Marketing", "LinkedIn Marketing"}},
		Entry{"linkedin", []string{"LinkedIn Marketing", "Social Media Marketing"}},
		Entry{"email", []string{"Email Marketing", "Marketing Automation"}},
		Entry{"automation", []string{"Marketing Automation", "Email Marketing"}},
		Entry{"analytics", []string{"Marketing Analytics", "Growth Analytics"}},
		Entry{"growth", []string{"Growth Marketing", "B2B Growth"}},
	)
}

// Categories returns the business-type vocabulary.
func Categories() *Table {
	return NewTable(
		Entry{"b2b saas", []string{"B2B Marketing Agency", "GTM Agency", "SaaS Marketing Agency"}},
		Entry{"saas", []string{"B2B Marketing Agency", "GTM Agency", "SaaS Marketing Agency"}},
		Entry{"b2b", []string{"B2B Marketing Agency", "GTM Agency"}},
		Entry{"dtc", []string{"DTC Marketing Agency", "Growth Marketing Agency"}},
		Entry{"consumer", []string{"DTC Marketing Agency", "Growth Marketing Agency"}},
		Entry{"enterprise", []string{"B2B Marketing Agency", "Account-Based Marketing Agency"}},
		Entry{"startup", []string{"Growth Marketing Agency", "GTM Agency"}},
		Entry{"fintech", []string{"B2B Marketing Agency", "FinTech Marketing Agency"}},
		Entry{"healthtech", []string{"B2B Marketing Agency", "Healthcare Marketing Agency"}},
	)
}

// Regions returns the service-area vocabulary.
func Regions() *Table {
	return NewTable(
		Entry{"us", []string{"United States", "USA", "North America"}},
		Entry{"usa", []string{"United States", "USA", "North America"}},
		Entry{"uk", []string{"United Kingdom", "UK", "London", "Europe"}},
		Entry{"europe", []string{"Europe", "EMEA", "UK", "Germany"}},
		Entry{"apac", []string{"APAC", "Asia Pacific", "Singapore", "Australia"}},
		Entry{"global", []string{"Global", "Worldwide"}},
		Entry{"remote", []string{"Global", "Remote"}},
	)
}

// Set bundles the three vocabularies used to normalize a search.
type Set struct {
	Specializations *Table
	Categories      *Table
	Regions         *Table
}

// Default returns the built-in vocabularies.
func Default() Set {
	return Set{
		Specializations: Specializations(),
		Categories:      Categories(),
		Regions:         Regions(),
	}
}

// Lookup returns the table for a topic name: specialization, category or region.
func (s Set) Lookup(topic string) (*Table, bool) {
	switch topic {
	case "specialization", "specializations":
		return s.Specializations, true
	case "category", "categories":
		return s.Categories, true
	case "region", "regions":
		return s.Regions, true
	default:
		return nil, false
	}
}
