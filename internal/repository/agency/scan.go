package agency

import (
	"github.com/jackc/pgx/v5"

	domagency "github.com/gtmquest/agencymatch/internal/domain/agency"
)

func agencyDest(a *domagency.Agency) []any {
	return []any{
		&a.ID, &a.Name, &a.Slug,
		&a.Description, &a.Headquarters,
		&a.Specializations, &a.CategoryTags, &a.ServiceAreas,
		&a.MinBudget, &a.AvgRating, &a.ReviewCount, &a.GlobalRank,
		&a.Website, &a.LogoURL,
	}
}

func scanAgency(row pgx.CollectableRow) (domagency.Agency, error) {
	var a domagency.Agency
	err := row.Scan(agencyDest(&a)...)
	return a, err
}

func scanProfile(row pgx.CollectableRow) (domagency.Profile, error) {
	var p domagency.Profile
	dest := append(agencyDest(&p.Agency),
		&p.KeyServices, &p.B2BDescription, &p.Overview,
		&p.FoundedYear, &p.EmployeeCount, &p.KeyFacts,
		&p.PricingModel, &p.CaseStudyURL, &p.Tags, &p.PrimaryColor,
	)
	err := row.Scan(dest...)
	return p, err
}
