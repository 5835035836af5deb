package agency

const published = `app = 'gtm' AND status = 'published'`

// agencyColumns is the projection shared by every list query; scanAgency reads it in order.
const agencyColumns = `id, name, slug,
	COALESCE(description, ''), COALESCE(headquarters, ''),
	COALESCE(specializations, '{}'), COALESCE(category_tags, '{}'), COALESCE(service_areas, '{}'),
	min_budget, avg_rating, review_count, global_rank,
	website, logo_url`

const candidatesSQL = `SELECT ` + agencyColumns + `
FROM companies
WHERE ` + published + `
	AND (cardinality($1::text[]) = 0 OR specializations && $1::text[])
	AND (cardinality($2::text[]) = 0 OR category_tags && $2::text[])
	AND (cardinality($3::text[]) = 0 OR service_areas && $3::text[])
	AND ($4::bigint IS NULL OR min_budget IS NULL OR min_budget <= $4::bigint)
ORDER BY global_rank NULLS LAST
LIMIT $5`

const listSQL = `SELECT ` + agencyColumns + `
FROM companies
WHERE ` + published + `
ORDER BY global_rank NULLS LAST, name`

const profileSQL = `SELECT ` + agencyColumns + `,
	COALESCE(key_services, '{}'), b2b_description, overview,
	founded_year, employee_count, key_facts,
	pricing_model, case_study_url, COALESCE(tags, '{}'), primary_color
FROM companies
WHERE ` + published + ` AND slug = $1
LIMIT 1`

const relatedSQL = `SELECT ` + agencyColumns + `
FROM companies
WHERE ` + published + `
	AND slug <> $1
	AND specializations && (SELECT specializations FROM companies WHERE slug = $1 LIMIT 1)
ORDER BY global_rank NULLS LAST
LIMIT $2`

const byCountrySQL = `SELECT ` + agencyColumns + `
FROM companies
WHERE ` + published + `
	AND primary_country = ANY($1::text[])
ORDER BY global_rank NULLS LAST, name
LIMIT $2`

const bySpecializationSQL = `SELECT ` + agencyColumns + `
FROM companies
WHERE ` + published + `
	AND EXISTS (SELECT 1 FROM unnest(specializations) AS s WHERE s ILIKE $1)
ORDER BY global_rank NULLS LAST, name`

const specializationsSQL = `SELECT DISTINCT unnest(specializations) AS spec
FROM companies
WHERE ` + published + `
ORDER BY spec`

const categoryTagsSQL = `SELECT DISTINCT unnest(category_tags) AS tag
FROM companies
WHERE ` + published + `
ORDER BY tag`
