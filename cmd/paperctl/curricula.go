package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCurriculaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "curricula",
		Short: "List every curriculum in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-12s  %-10s  %-20s  %5s  %-10s  %5s  %s\n",
				"Board", "Class", "Subject", "Marks", "Duration", "Units", "Sections")
			fmt.Fprintln(out, strings.Repeat("─", 82))

			for _, k := range rt.Catalog.Keys() {
				e, err := rt.Catalog.Lookup(k.Board, k.ClassLevel, k.Subject)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-12s  %-10s  %-20s  %5d  %-10s  %5d  %d\n",
					k.Board, k.ClassLevel, k.Subject, e.TotalMarks, e.Duration, len(e.Units), len(e.Pattern))
			}

			fmt.Fprintf(out, "\n%d curricula\n", rt.Catalog.Len())
			return nil
		},
	}
}
