package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"godilemma/adapters/dilemmafile"
	"godilemma/adapters/precedentdb"
	"godilemma/adapters/report"
	"godilemma/domain/dilemma"
	"godilemma/internal/config"
	"godilemma/internal/container"
	"godilemma/internal/logging"
	"godilemma/internal/precedent"
	"godilemma/internal/validation"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "godilemma",
		Short:         "Evaluate decision dilemmas across competing ethical frameworks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newEvaluateCmd(),
		newValidateCmd(),
		newTemplatesCmd(),
		newPrecedentsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Init(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Format)
	return cfg, nil
}

// readDilemma loads the file argument, or the named template when no file
// is given.
func readDilemma(args []string, template string) (*dilemma.Dilemma, error) {
	switch {
	case len(args) == 1 && template != "":
		return nil, fmt.Errorf("pass either a file or --template, not both")
	case len(args) == 1:
		return dilemmafile.Load(args[0])
	case template != "":
		return dilemmafile.LoadTemplate(template)
	default:
		return nil, fmt.Errorf("a dilemma file or --template is required")
	}
}

func newEvaluateCmd() *cobra.Command {
	var format, out, template, precedentDSN string
	var workers int

	cmd := &cobra.Command{
		Use:   "evaluate [dilemma-file]",
		Short: "Evaluate a dilemma and print the recommendation",
		Long: `Evaluate a dilemma file (YAML or JSON) against its frameworks, detect and
resolve conflicts, and report the final recommendation.

Engine settings are read from the environment (DILEMMA_WORKERS, WEIGHT_FLOOR,
SENSITIVITY_CUTOFF, PRECEDENT_DSN, ...); flags override them.

Example:
  godilemma evaluate clinic.yaml --format html --out clinic.html
  godilemma evaluate --template vaccine-allocation --precedent-dsn precedents.db`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if workers > 0 {
				cfg.Engine.Workers = workers
			}
			if precedentDSN != "" {
				cfg.Precedent.DSN = precedentDSN
			}
			d, err := readDilemma(args, template)
			if err != nil {
				return err
			}
			return runEvaluate(cmd.Context(), cfg, d, format, out, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&format, "format", report.FormatText, "Output format: "+strings.Join(report.Formats, "|"))
	cmd.Flags().StringVar(&out, "out", "", "Write the report to this path instead of stdout")
	cmd.Flags().StringVar(&template, "template", "", "Evaluate a built-in template instead of a file")
	cmd.Flags().IntVar(&workers, "workers", 0, "Worker pool size (default: DILEMMA_WORKERS or GOMAXPROCS)")
	cmd.Flags().StringVar(&precedentDSN, "precedent-dsn", "", "SQLite path or postgres:// URL of a precedent database")
	return cmd
}

func runEvaluate(ctx context.Context, cfg *config.Config, d *dilemma.Dilemma, format, out string, stdout io.Writer) error {
	writer, err := report.New(format)
	if err != nil {
		return err
	}
	if format == report.FormatXLSX && out == "" {
		return fmt.Errorf("--out is required for xlsx output")
	}

	c, err := container.New(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if cfg.Precedent.DSN != "" {
		if err := c.AttachDatabase(ctx, cfg.Precedent.DSN); err != nil {
			return err
		}
	}

	result, err := c.EvaluationService.Evaluate(ctx, d)
	if err != nil {
		return err
	}

	if out == "" {
		return writer.Write(stdout, result)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	if err := writer.Write(f, result); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %s report to %s (action: %s, confidence %.2f)\n", format, out, result.Final.Action, result.Final.Confidence)
	return nil
}

func newValidateCmd() *cobra.Command {
	var template string

	cmd := &cobra.Command{
		Use:   "validate [dilemma-file]",
		Short: "Check a dilemma for structural issues without evaluating it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			d, err := readDilemma(args, template)
			if err != nil {
				return err
			}
			c, err := container.New(cfg)
			if err != nil {
				return err
			}

			_, issues := c.EvaluationService.Validate(d)
			w := cmd.OutOrStdout()
			if len(issues) == 0 {
				fmt.Fprintln(w, "OK: no issues found")
				return nil
			}
			for _, is := range issues {
				level := "warning"
				if is.Critical {
					level = "critical"
				}
				fmt.Fprintf(w, "%-8s %s: %s\n", level, is.Field, is.Message)
			}
			return validation.Err(issues)
		},
	}

	cmd.Flags().StringVar(&template, "template", "", "Validate a built-in template instead of a file")
	return cmd
}

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the built-in dilemma templates",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range dilemmafile.ListTemplates() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

func newPrecedentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "precedents",
		Short: "Manage the precedent database",
	}

	var dsn string
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the precedent table and load the built-in cases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dsn == "" {
				return fmt.Errorf("--dsn is required")
			}
			db, err := precedentdb.Open(dsn)
			if err != nil {
				return err
			}
			defer db.Close()

			cfg := config.Default().Precedent
			store := precedentdb.NewStore(db, cfg.TopK, cfg.ScanBudget)
			if err := store.Migrate(cmd.Context()); err != nil {
				return err
			}
			if err := store.Seed(cmd.Context(), precedent.StaticCases()); err != nil {
				return err
			}
			n, err := store.Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded precedent database (%d cases)\n", n)
			return nil
		},
	}
	seedCmd.Flags().StringVar(&dsn, "dsn", "", "SQLite path or postgres:// URL")

	cmd.AddCommand(seedCmd)
	return cmd
}
