// Command colmap compiles a declarative mapping document and applies
// it to a columnar input file, writing a transformed output file and
// printing a job summary.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/colmap/colmap/internal/runner"
	"github.com/colmap/colmap/internal/writer"
)

type config struct {
	inputPath   string
	mappingPath string
	outputPath  string
	format      string
	logDir      string
	concurrency int
	verbose     bool
	fieldWidths []string
	xmlRoot     string
	xmlRow      string
}

func main() {
	cfg := &config{}

	rootCmd := &cobra.Command{
		Use:           "colmap",
		Short:         "Apply a declarative mapping document to a columnar input file",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(cfg)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&cfg.inputPath, "input", "", "path to the input file (required)")
	flags.StringVar(&cfg.mappingPath, "mapping", "", "path to the mapping document, JSON or YAML (required)")
	flags.StringVar(&cfg.outputPath, "output", "", "output path without extension (required)")
	flags.StringVar(&cfg.format, "format", "delimited", "output_format: delimited, ndjson, json_array, spreadsheet, markup, fixed_width")
	flags.StringVar(&cfg.logDir, "log-dir", "logs", "directory for the per-run log file")
	flags.IntVar(&cfg.concurrency, "concurrency", 0, "projection-phase column concurrency limit (0 = sequential)")
	flags.BoolVarP(&cfg.verbose, "verbose", "v", false, "enable debug logging, including input-column sampling")
	flags.StringArrayVar(&cfg.fieldWidths, "field-width", nil, "target:length pair for fixed_width output, repeatable")
	flags.StringVar(&cfg.xmlRoot, "xml-root", "", "root tag for markup output")
	flags.StringVar(&cfg.xmlRow, "xml-row", "", "row tag for markup output")

	_ = rootCmd.MarkFlagRequired("input")
	_ = rootCmd.MarkFlagRequired("mapping")
	_ = rootCmd.MarkFlagRequired("output")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config) error {
	runID := uuid.NewString()

	log, logFile, err := newLogger(cfg.logDir, runID, cfg.verbose)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	widths, err := parseFieldWidths(cfg.fieldWidths)
	if err != nil {
		return err
	}

	summary, err := runner.Run(context.Background(), runID, runner.Options{
		InputPath:   cfg.inputPath,
		MappingPath: cfg.mappingPath,
		OutputBase:  cfg.outputPath,
		Format:      writer.Format(cfg.format),
		Widths:      widths,
		XMLConfig:   writer.XMLConfig{RootTag: cfg.xmlRoot, RowTag: cfg.xmlRow},
		Concurrency: cfg.concurrency,
		Log:         log,
	})
	if err != nil {
		log.WithError(err).Error("run failed")
		return err
	}

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// newLogger builds a per-run logger writing to both stderr and
// logs/etl_<run_id>.log, recovering the original's get_logger(run_id).
func newLogger(logDir, runID string, verbose bool) (*logrus.Logger, *os.File, error) {
	log := logrus.New()
	log.SetLevel(logrus.InfoLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, nil, err
	}
	logPath := logDir + string(os.PathSeparator) + "etl_" + runID + ".log"
	f, err := os.Create(logPath)
	if err != nil {
		return nil, nil, err
	}
	log.SetOutput(io.MultiWriter(os.Stderr, f))
	log.WithField("run_id", runID).Info("starting run")
	return log, f, nil
}

func parseFieldWidths(pairs []string) ([]writer.FieldWidth, error) {
	out := make([]writer.FieldWidth, 0, len(pairs))
	for _, p := range pairs {
		target, lenStr, ok := strings.Cut(p, ":")
		if !ok {
			return nil, fmt.Errorf("invalid --field-width %q: want target:length", p)
		}
		n, err := strconv.Atoi(lenStr)
		if err != nil {
			return nil, fmt.Errorf("invalid --field-width %q: %w", p, err)
		}
		out = append(out, writer.FieldWidth{Target: target, Length: n})
	}
	return out, nil
}
