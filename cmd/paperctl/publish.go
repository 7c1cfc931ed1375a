package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/pai-paper/internal/app"
	"github.com/p-n-ai/pai-paper/internal/curriculum"
)

func newPublishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish <path>...",
		Short: "Store curriculum documents in the database",
		Long:  "publish checks every document first and stores nothing if any of them has a problem.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if !cfg.Database.Enabled() {
				return fmt.Errorf("publish needs a database: set PAPER_DATABASE_URL or --database-url")
			}

			var files []string
			for _, path := range args {
				problems, _, err := curriculum.Check(path)
				if err != nil {
					return err
				}
				if len(problems) > 0 {
					for _, p := range problems {
						fmt.Fprintln(cmd.ErrOrStderr(), p)
					}
					return fmt.Errorf("%s: %d problems, nothing published", path, len(problems))
				}
				found, err := curriculum.DocumentFiles(path)
				if err != nil {
					return err
				}
				files = append(files, found...)
			}

			db, src, err := app.OpenPostgresSource(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			published := 0
			for _, path := range files {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				if !curriculum.IsDocument(data) {
					continue
				}
				key, err := src.Put(cmd.Context(), data)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				slog.Debug("curriculum published", "key", key.String(), "path", path)
				fmt.Fprintf(cmd.OutOrStdout(), "published %s\n", key)
				published++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d curricula published\n", published)
			return nil
		},
	}
}
