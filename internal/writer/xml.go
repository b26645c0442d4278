package writer

import (
	"bufio"
	"fmt"
	"html"
	"os"

	"github.com/colmap/colmap/internal/colerr"
	"github.com/colmap/colmap/internal/coltable"
)

// writeXML renders tbl as a flat XML document, one row element per
// row, values text-escaped.
func writeXML(tbl *coltable.Table, path string, cfg XMLConfig) error {
	rootTag := cfg.RootTag
	if rootTag == "" {
		rootTag = "records"
	}
	rowTag := cfg.RowTag
	if rowTag == "" {
		rowTag = "record"
	}

	f, err := os.Create(path)
	if err != nil {
		return colerr.WrapWriter(err, "failed to create xml file")
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "<%s>\n", rootTag)

	names := tbl.Names()
	cols := tbl.Columns()
	for r := 0; r < tbl.Height(); r++ {
		fmt.Fprintf(w, "  <%s>", rowTag)
		for c, col := range cols {
			fmt.Fprintf(w, "<%s>%s</%s>", names[c], html.EscapeString(cellText(col, r)), names[c])
		}
		fmt.Fprintf(w, "</%s>\n", rowTag)
	}
	fmt.Fprintf(w, "</%s>\n", rootTag)

	if err := w.Flush(); err != nil {
		return colerr.WrapWriter(err, "failed to flush xml file")
	}
	return nil
}
