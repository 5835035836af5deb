package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gtmquest/agencymatch"
)

func newSearchCmd(g *globals) *cobra.Command {
	var (
		q         agencymatch.Criteria
		maxBudget int64
		canonical bool
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Rank agencies against buyer requirements",
		Example: `  agencyctl search --spec "demand gen" --spec abm --region uk --max-budget 10000
  agencyctl search --canonical --spec "Demand Generation" --limit 10 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("max-budget") {
				q.MaxBudget = agencymatch.Budget(maxBudget)
			}

			ctx, cancel := g.withTimeout(cmd)
			defer cancel()

			dir, err := g.open(ctx)
			if err != nil {
				return err
			}
			defer dir.Close()

			search := dir.SearchTerms
			if canonical {
				search = dir.Search
			}
			matches, err := search(ctx, q)
			if err != nil {
				return err
			}

			if g.asJSON {
				return writeMatchesJSON(cmd.OutOrStdout(), matches)
			}
			return writeMatchesTable(cmd.OutOrStdout(), matches)
		},
	}

	cmd.Flags().StringArrayVar(&q.Specializations, "spec", nil, "Specialization, repeatable")
	cmd.Flags().StringArrayVar(&q.CategoryTags, "category", nil, "Business category, repeatable")
	cmd.Flags().StringArrayVar(&q.ServiceAreas, "region", nil, "Target region, repeatable")
	cmd.Flags().Int64Var(&maxBudget, "max-budget", 0, "Monthly budget ceiling in USD")
	cmd.Flags().IntVar(&q.Limit, "limit", 5, "Maximum number of agencies")
	cmd.Flags().BoolVar(&canonical, "canonical", false, "Treat terms as exact store tags and skip normalization")
	return cmd
}

type matchJSON struct {
	Slug    string   `json:"slug"`
	Name    string   `json:"name"`
	Score   int      `json:"match_score"`
	Reasons []string `json:"match_reasons"`
}

func writeMatchesJSON(w io.Writer, matches []agencymatch.Match) error {
	out := make([]matchJSON, len(matches))
	for i, m := range matches {
		out[i] = matchJSON{Slug: m.Agency.Slug, Name: m.Agency.Name, Score: m.Score, Reasons: m.Reasons}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeMatchesTable(w io.Writer, matches []agencymatch.Match) error {
	if len(matches) == 0 {
		_, err := fmt.Fprintln(w, "No agencies matched.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tAGENCY\tMIN BUDGET\tREASONS")
	for _, m := range matches {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			m.Score, m.Agency.Name, budget(m.Agency.MinBudget), strings.Join(m.Reasons, "; "))
	}
	return tw.Flush()
}

func budget(v *int64) string {
	if v == nil || *v <= 0 {
		return "-"
	}
	return "$" + humanize.Comma(*v) + "/mo"
}
