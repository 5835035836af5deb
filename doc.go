// Package agencymatch ranks go-to-market agencies against a buyer's
// requirements: specializations, business category, target regions and
// monthly budget.
//
// The client reads published agencies from Postgres and can cache ranked
// results in Redis.
//
//	client, _ := agencymatch.New(ctx,
//	    agencymatch.WithPostgres(os.Getenv("DATABASE_URL")),
//	    agencymatch.WithRedisCache("localhost:6379", "", 5*time.Minute),
//	)
//	defer client.Close()
//
//	matches, _ := client.SearchTerms(ctx, agencymatch.Criteria{
//	    Specializations: []string{"demand gen", "abm"},
//	    ServiceAreas:    []string{"UK"},
//	    MaxBudget:       agencymatch.Budget(10000),
//	})
//	for _, m := range matches {
//	    fmt.Println(m.Agency.Name, m.Score, m.Reasons)
//	}
//
// Search expects canonical store tags; SearchTerms first maps free-text
// terms such as "demand gen" onto them. Normalize exposes that mapping.
package agencymatch
