package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAgencyCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "agency <slug>",
		Short: "Show one agency's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := g.withTimeout(cmd)
			defer cancel()

			dir, err := g.open(ctx)
			if err != nil {
				return err
			}
			defer dir.Close()

			p, err := dir.Agency(ctx, args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if g.asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			}

			fmt.Fprintf(w, "%s (%s)\n", p.Name, p.Slug)
			if p.Headquarters != "" {
				fmt.Fprintf(w, "  Headquarters:    %s\n", p.Headquarters)
			}
			fmt.Fprintf(w, "  Min budget:      %s\n", budget(p.MinBudget))
			fmt.Fprintf(w, "  Specializations: %s\n", strings.Join(p.Specializations, ", "))
			fmt.Fprintf(w, "  Categories:      %s\n", strings.Join(p.CategoryTags, ", "))
			fmt.Fprintf(w, "  Service areas:   %s\n", strings.Join(p.ServiceAreas, ", "))
			if p.Website != nil {
				fmt.Fprintf(w, "  Website:         %s\n", *p.Website)
			}
			if p.Description != "" {
				fmt.Fprintf(w, "\n%s\n", p.Description)
			}
			return nil
		},
	}
}

func newSpecializationsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "specializations",
		Short: "List the specialization tags in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := g.withTimeout(cmd)
			defer cancel()

			dir, err := g.open(ctx)
			if err != nil {
				return err
			}
			defer dir.Close()

			tags, err := dir.Specializations(ctx)
			if err != nil {
				return err
			}
			return printList(cmd, g, tags)
		},
	}
}

func printList(cmd *cobra.Command, g *globals, values []string) error {
	w := cmd.OutOrStdout()
	if g.asJSON {
		return json.NewEncoder(w).Encode(values)
	}
	for _, v := range values {
		fmt.Fprintln(w, v)
	}
	return nil
}
