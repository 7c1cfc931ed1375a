package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/pai-paper/internal/app"
	"github.com/p-n-ai/pai-paper/internal/platform/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "paperctl",
		Short:         "Plan exam papers from curriculum weightage",
		Long:          "paperctl lists curricula, checks curriculum documents and builds paper blueprints.",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("curricula", "", "Directory of curriculum documents (overrides PAPER_CURRICULUM_PATH)")
	root.PersistentFlags().String("database-url", "", "PostgreSQL URL for stored curricula (overrides PAPER_DATABASE_URL)")

	root.AddCommand(newCurriculaCmd())
	root.AddCommand(newBlueprintCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newPublishCmd())
	return root
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("curricula"); p != "" {
		cfg.CurriculumPath = p
	}
	if u, _ := cmd.Flags().GetString("database-url"); u != "" {
		cfg.Database.URL = u
	}
	cfg.Log.Format = "text"
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.SetDefault(app.NewLogger(cfg.Log, cmd.ErrOrStderr()))
	return cfg, nil
}

// loadRuntime builds the catalog and engine the same way the server does.
func loadRuntime(cmd *cobra.Command) (*app.Runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return app.New(cmd.Context(), cfg)
}
