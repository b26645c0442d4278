// Package runner wires the five core components together into one
// end-to-end invocation: load mapping, read input, compile, execute,
// write output. Both cmd/colmap and internal/httpapi call into it so
// the two external surfaces share one code path.
package runner

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/colmap/colmap/internal/compile"
	"github.com/colmap/colmap/internal/coltable"
	"github.com/colmap/colmap/internal/exec"
	"github.com/colmap/colmap/internal/reader"
	"github.com/colmap/colmap/internal/writer"
)

// Options configures one run.
type Options struct {
	InputPath   string
	MappingPath string
	OutputBase  string
	Format      writer.Format
	Widths      []writer.FieldWidth
	XMLConfig   writer.XMLConfig
	Concurrency int
	Log         *logrus.Logger
}

// Summary is the job summary shape shared by cmd/colmap and
// internal/httpapi.
type Summary struct {
	Status               string  `json:"status"`
	RunID                string  `json:"run_id"`
	InputRows            int     `json:"input_rows"`
	OutputRows           int     `json:"output_rows"`
	ProcessingTimeMS     int64   `json:"processing_time_ms"`
	ThroughputRowsPerSec float64 `json:"throughput_rows_per_sec"`
	OutputPath           string  `json:"output_path"`
}

// Run executes one full pipeline invocation and returns its summary,
// stamping runID into the result (caller generates it so cmd/colmap
// and internal/httpapi can pick their own identifier source).
func Run(ctx context.Context, runID string, opts Options) (*Summary, error) {
	start := time.Now()

	mappingData, err := os.ReadFile(opts.MappingPath)
	if err != nil {
		return nil, err
	}
	records, err := compile.LoadMappings(opts.MappingPath, mappingData)
	if err != nil {
		return nil, err
	}

	input, err := reader.New().Read(opts.InputPath)
	if err != nil {
		return nil, err
	}

	if opts.Log != nil {
		opts.Log.WithField("run_id", runID).Debugf("loaded input: %d rows, %d columns", input.Height(), input.Width())
		logSample(opts.Log, input)
	}

	plan, err := compile.Compile(records, schemaOf(input))
	if err != nil {
		return nil, err
	}

	output, err := exec.Execute(ctx, plan, input, exec.Options{ConcurrencyLimit: opts.Concurrency})
	if err != nil {
		return nil, err
	}

	outPath, err := writer.Write(output, opts.OutputBase, opts.Format, opts.Widths, opts.XMLConfig, opts.Log)
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	return &Summary{
		Status:               "ok",
		RunID:                runID,
		InputRows:            input.Height(),
		OutputRows:           output.Height(),
		ProcessingTimeMS:     elapsed.Milliseconds(),
		ThroughputRowsPerSec: throughput(output.Height(), elapsed),
		OutputPath:           outPath,
	}, nil
}

func schemaOf(tbl *coltable.Table) compile.Schema {
	schema := make(compile.Schema, tbl.Width())
	for _, c := range tbl.Columns() {
		schema[c.Name] = c.Typ
	}
	return schema
}

func throughput(rows int, elapsed time.Duration) float64 {
	seconds := elapsed.Seconds()
	if seconds <= 0 {
		return 0
	}
	return float64(rows) / seconds
}

// logSample debug-logs the first 3 values of every input column,
// recovering the original's per-column sampling before transforming.
func logSample(log *logrus.Logger, tbl *coltable.Table) {
	for _, col := range tbl.Columns() {
		n := col.Len()
		if n > 3 {
			n = 3
		}
		sample := make([]string, n)
		for i := 0; i < n; i++ {
			sample[i] = sampleCell(col, i)
		}
		log.WithField("column", col.Name).Debugf("sample: %v", sample)
	}
}

func sampleCell(col *coltable.Column, row int) string {
	if col.IsNull(row) {
		return "<null>"
	}
	switch col.Typ {
	case coltable.TypeInt:
		return strconv.FormatInt(col.Ints[row], 10)
	case coltable.TypeFloat:
		return strconv.FormatFloat(col.Floats[row], 'g', -1, 64)
	case coltable.TypeBool:
		return strconv.FormatBool(col.Bools[row])
	case coltable.TypeText:
		return col.Texts[row]
	case coltable.TypeDate:
		return col.Dates[row].Format("2006-01-02")
	case coltable.TypeDatetime:
		return col.Datetimes[row].Format(time.RFC3339)
	case coltable.TypeListText:
		return strings.Join(col.Lists[row], ",")
	default:
		return fmt.Sprintf("%v", nil)
	}
}
