package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"watchlist/adapters/delimited"
	"watchlist/adapters/excel"
	"watchlist/adapters/postgres"
	"watchlist/app"
	"watchlist/domain/core"
	"watchlist/domain/watchlist"
	"watchlist/internal"
	"watchlist/internal/config"
	"watchlist/internal/errors"
	"watchlist/ports"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints usage mistakes as the bare message plus a help hint;
// everything else carries its error code.
func reportError(w io.Writer, err error) {
	if core.IsUsageError(err) {
		fmt.Fprintln(w, err)
		fmt.Fprintln(w, "Run 'watchlist --help' for usage.")
		return
	}
	fmt.Fprintf(w, "%v [%s]\n", err, errors.GetCode(err))
}

type options struct {
	inputSheet  string
	outputSheet string
	databaseURL string
	logLevel    string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "watchlist <input-file> <output-base>",
		Short: "Normalize a watchlist spreadsheet into Excel and CSV exports",
		Long: `Normalize a single-sheet watchlist (columns Nama, Terduga, WN, Alamat,
Tpt Lahir, Tgl Lahir, Kode Densus). Names are split on "alias", birth dates
on "atau", and every combination becomes one output row.

Writes <output-base>.xlsx (sheet "Data") and <output-base>.csv. When
DATABASE_URL or --database-url is set the rows are also inserted into
DB_TABLE (default watchlist_records).

Example: watchlist daftar.xlsx hasil`,
		Args:          cobra.MaximumNArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, outputBase, err := validateArgs(args)
			if err != nil {
				return err
			}
			return run(cmd.Context(), stdout, stderr, input, outputBase, opts)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.Flags().StringVar(&opts.inputSheet, "sheet", "", "Input sheet name (default: first sheet, or INPUT_SHEET)")
	cmd.Flags().StringVar(&opts.outputSheet, "output-sheet", "", "Sheet name of the exported workbook (default: Data, or OUTPUT_SHEET)")
	cmd.Flags().StringVar(&opts.databaseURL, "database-url", "", "Also insert rows into this Postgres database (default: DATABASE_URL)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "ERROR, WARN, INFO, DEBUG or TRACE (default: LOG_LEVEL or INFO)")

	return cmd
}

// validateArgs runs before anything is read or written
func validateArgs(args []string) (string, string, error) {
	if len(args) < 1 || strings.TrimSpace(args[0]) == "" {
		return "", "", errors.WithCode(errors.CodeInvalidInput, core.ErrInputMissing)
	}
	input := args[0]
	if _, err := os.Stat(input); err != nil {
		if os.IsNotExist(err) {
			return "", "", errors.WithCode(errors.CodeNotFound, core.NewInputNotFoundError(input))
		}
		return "", "", errors.InputUnreadable(err)
	}
	if len(args) < 2 || strings.TrimSpace(args[1]) == "" {
		return "", "", errors.WithCode(errors.CodeInvalidInput, core.ErrOutputMissing)
	}
	return input, args[1], nil
}

func run(ctx context.Context, stdout, stderr io.Writer, input, outputBase string, opts options) error {
	cfg := config.Load()
	if err := applyFlags(cfg, opts); err != nil {
		return err
	}

	logger := internal.NewLoggerTo(stderr, cfg.Log.Level)
	runID := core.NewRunID()

	source := excel.NewDataReader(input, cfg.Sheets.InputSheet, logger)
	sinks := []ports.RecordSink{
		excel.NewWriter(outputBase+".xlsx", cfg.Sheets.OutputSheet),
		delimited.NewWriter(outputBase + ".csv"),
	}
	if cfg.Database.Enabled() {
		sinks = append(sinks, postgres.NewSink(cfg.Database.URL, cfg.Database.Table, runID))
	}

	expander := watchlist.NewExpander(watchlist.NewDateParser(watchlist.Indonesian))
	summary, runErr := app.NewNormalizeService(runID, source, expander, sinks, logger).Run(ctx)
	if summary != nil {
		for _, outcome := range summary.Sinks {
			if outcome.OK() {
				fmt.Fprintf(stdout, "Export to %s %s successfully\n", outcome.Sink, outcome.Target)
			}
		}
	}
	return runErr
}

// applyFlags lets explicit flags override environment configuration
func applyFlags(cfg *config.Config, opts options) error {
	if opts.inputSheet != "" {
		cfg.Sheets.InputSheet = opts.inputSheet
	}
	if opts.outputSheet != "" {
		cfg.Sheets.OutputSheet = opts.outputSheet
	}
	if opts.databaseURL != "" {
		cfg.Database.URL = opts.databaseURL
	}
	if opts.logLevel != "" {
		cfg.Log.LevelName = opts.logLevel
	}
	return cfg.Validate()
}
