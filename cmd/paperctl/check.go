package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/pai-paper/internal/curriculum"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <path>...",
		Short: "Validate curriculum documents and report every problem",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			total, checked := 0, 0
			for _, path := range args {
				problems, n, err := curriculum.Check(path)
				if err != nil {
					return err
				}
				checked += n
				total += len(problems)
				for _, p := range problems {
					fmt.Fprintln(out, p)
				}
			}

			fmt.Fprintf(out, "%d documents checked, %d problems\n", checked, total)
			if total > 0 {
				return fmt.Errorf("%d problems found", total)
			}
			return nil
		},
	}
}
