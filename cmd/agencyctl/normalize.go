package main

import (
	"github.com/spf13/cobra"

	"github.com/gtmquest/agencymatch"
)

func newNormalizeCmd(g *globals) *cobra.Command {
	var table string

	cmd := &cobra.Command{
		Use:   "normalize <term>...",
		Short: "Show the store tags a search term maps to",
		Example: `  agencyctl normalize "demand gen"
  agencyctl normalize --table region uk emea`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var tags []string
			seen := make(map[string]struct{})
			for _, term := range args {
				out, err := agencymatch.Normalize(table, term)
				if err != nil {
					return err
				}
				for _, t := range out {
					if _, dup := seen[t]; !dup {
						seen[t] = struct{}{}
						tags = append(tags, t)
					}
				}
			}
			return printList(cmd, g, tags)
		},
	}

	cmd.Flags().StringVar(&table, "table", "specialization", "Vocabulary: specialization, category or region")
	return cmd
}
