// Package writer implements the output-boundary collaborators: one
// writer per output_format, each dispatching a coltable.Table to a
// concrete file format.
package writer

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/colmap/colmap/internal/colerr"
	"github.com/colmap/colmap/internal/coltable"
)

// Format names an output_format from the writer dispatch table.
type Format string

const (
	Delimited   Format = "delimited"
	NDJSON      Format = "ndjson"
	JSONArray   Format = "json_array"
	Spreadsheet Format = "spreadsheet"
	Markup      Format = "markup"
	FixedWidth  Format = "fixed_width"
)

var extensions = map[Format]string{
	Delimited:   ".csv",
	NDJSON:      ".jsonl",
	JSONArray:   ".json",
	Spreadsheet: ".xlsx",
	Markup:      ".xml",
	FixedWidth:  ".txt",
}

// FieldWidth gives the fixed_width writer a target column's width, in
// mapping order. A declared length gives the field its width.
type FieldWidth struct {
	Target string
	Length int // 0 means "no declared width: use the value's own length"
}

// XMLConfig configures the markup writer's root and row tag names.
type XMLConfig struct {
	RootTag string
	RowTag  string
}

// Write dispatches tbl to basePath+extension according to format,
// returning the path actually written.
func Write(tbl *coltable.Table, basePath string, format Format, widths []FieldWidth, xmlCfg XMLConfig, log *logrus.Logger) (string, error) {
	ext, ok := extensions[format]
	if !ok {
		return "", colerr.NewWriter("unsupported output_format %q", format)
	}
	outPath := basePath + ext
	if err := ensureParent(outPath); err != nil {
		return "", colerr.WrapWriter(err, "failed to create output directory")
	}

	var err error
	switch format {
	case Delimited:
		err = writeCSV(tbl, outPath)
	case NDJSON:
		err = writeNDJSON(tbl, outPath)
	case JSONArray:
		err = writeJSONArray(tbl, outPath)
	case Spreadsheet:
		err = writeXLSX(tbl, outPath)
	case Markup:
		err = writeXML(tbl, outPath, xmlCfg)
	case FixedWidth:
		err = writeFixedWidth(tbl, outPath, widths, log)
	}
	if err != nil {
		return "", err
	}
	return outPath, nil
}

func ensureParent(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
