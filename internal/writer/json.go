package writer

import (
	"bufio"
	"encoding/json"
	"os"

	"github.com/colmap/colmap/internal/colerr"
	"github.com/colmap/colmap/internal/coltable"
)

func writeNDJSON(tbl *coltable.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return colerr.WrapWriter(err, "failed to create ndjson file")
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	enc := json.NewEncoder(bw)
	names := tbl.Names()
	cols := tbl.Columns()
	for r := 0; r < tbl.Height(); r++ {
		record := make(map[string]any, len(cols))
		for c, col := range cols {
			record[names[c]] = cellValue(col, r)
		}
		if err := enc.Encode(record); err != nil {
			return colerr.WrapWriter(err, "failed to write ndjson row")
		}
	}
	if err := bw.Flush(); err != nil {
		return colerr.WrapWriter(err, "failed to flush ndjson file")
	}
	return nil
}

func writeJSONArray(tbl *coltable.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return colerr.WrapWriter(err, "failed to create json file")
	}
	defer f.Close()

	names := tbl.Names()
	cols := tbl.Columns()
	records := make([]map[string]any, tbl.Height())
	for r := 0; r < tbl.Height(); r++ {
		record := make(map[string]any, len(cols))
		for c, col := range cols {
			record[names[c]] = cellValue(col, r)
		}
		records[r] = record
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return colerr.WrapWriter(err, "failed to write json array")
	}
	return nil
}
