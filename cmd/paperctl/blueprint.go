package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/pai-paper/internal/curriculum"
	"github.com/p-n-ai/pai-paper/internal/export"
	"github.com/p-n-ai/pai-paper/internal/paper"
)

func newBlueprintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blueprint",
		Short: "Build a paper blueprint",
		Example: `  paperctl blueprint --board CBSE --class class_10 --subject Mathematics --marks 80
  paperctl blueprint --board CBSE --class class_10 --subject Mathematics --marks 50 --mode optimal --xlsx plan.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := blueprintRequest(cmd)
			if err != nil {
				return err
			}

			rt, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			bp, err := rt.Engine.Blueprint(cmd.Context(), req)
			if err != nil {
				return err
			}

			if path, _ := cmd.Flags().GetString("xlsx"); path != "" {
				return writeWorkbookFile(cmd, path, bp)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(bp)
		},
	}

	f := cmd.Flags()
	f.String("board", "", "Examination board (e.g. CBSE)")
	f.String("class", "", "Class level (e.g. class_10)")
	f.String("subject", "", "Subject name")
	f.Int("marks", 0, "Total marks of the paper")
	f.String("duration", "", "Paper duration (defaults to the curriculum's)")
	f.StringArray("topic", nil, "Unit to include; repeat for several (default all units)")
	f.StringToString("mix", nil, "Difficulty mix, e.g. easy=0.3,medium=0.5,hard=0.2")
	f.String("mode", "", "Section fitting: greedy or optimal (default from PAPER_DISTRIBUTION_MODE)")
	f.Bool("redistribute", false, "Hand marks lost to rounding back to units")
	f.String("xlsx", "", "Write the blueprint as a workbook to this path instead of printing JSON")
	return cmd
}

func blueprintRequest(cmd *cobra.Command) (paper.Request, error) {
	f := cmd.Flags()
	board, _ := f.GetString("board")
	classLevel, _ := f.GetString("class")
	subject, _ := f.GetString("subject")
	marks, _ := f.GetInt("marks")
	duration, _ := f.GetString("duration")
	topics, _ := f.GetStringArray("topic")
	rawMix, _ := f.GetStringToString("mix")
	mode, _ := f.GetString("mode")
	redistribute, _ := f.GetBool("redistribute")

	mix, err := parseMix(rawMix)
	if err != nil {
		return paper.Request{}, err
	}
	return paper.Request{
		Board:                 board,
		ClassLevel:            classLevel,
		Subject:               subject,
		TotalMarks:            marks,
		Duration:              duration,
		TopicPreferences:      topics,
		DifficultyMix:         mix,
		Mode:                  paper.Mode(mode),
		RedistributeRemainder: redistribute,
	}, nil
}

func parseMix(raw map[string]string) (paper.DifficultyMix, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	mix := make(paper.DifficultyMix, len(raw))
	for name, value := range raw {
		tier, err := curriculum.ParseDifficulty(name)
		if err != nil {
			return nil, err
		}
		share, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("--mix %s: %w", name, err)
		}
		mix[tier] = share
	}
	return mix, nil
}

func writeWorkbookFile(cmd *cobra.Command, path string, bp *paper.Blueprint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteWorkbook(f, bp); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote blueprint %s to %s\n", bp.ID, path)
	return nil
}
