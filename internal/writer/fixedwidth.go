package writer

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/colmap/colmap/internal/colerr"
	"github.com/colmap/colmap/internal/coltable"
)

// writeFixedWidth renders tbl as one fixed-width line per row, widths
// taken from widths in column order; numeric-looking values are
// right-aligned, others left-aligned, and overflow truncates with a
// warning.
func writeFixedWidth(tbl *coltable.Table, path string, widths []FieldWidth, log *logrus.Logger) error {
	f, err := os.Create(path)
	if err != nil {
		return colerr.WrapWriter(err, "failed to create fixed-width file")
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	byName := make(map[string]*coltable.Column, tbl.Width())
	for _, c := range tbl.Columns() {
		byName[c.Name] = c
	}

	for r := 0; r < tbl.Height(); r++ {
		var line strings.Builder
		for _, fw := range widths {
			col := byName[fw.Target]
			s := ""
			if col != nil {
				s = cellText(col, r)
			}
			width := fw.Length
			if width == 0 {
				width = len(s)
			}
			if len(s) > width {
				if log != nil {
					log.Warnf("truncating column %q at row %d: %q -> width %d", fw.Target, r, s, width)
				}
				s = s[:width]
			}
			if isNumericLooking(s) {
				line.WriteString(padLeft(s, width))
			} else {
				line.WriteString(padRight(s, width))
			}
		}
		line.WriteByte('\n')
		if _, err := w.WriteString(line.String()); err != nil {
			return colerr.WrapWriter(err, "failed to write row %d", r)
		}
	}
	if err := w.Flush(); err != nil {
		return colerr.WrapWriter(err, "failed to flush fixed-width file")
	}
	return nil
}

func isNumericLooking(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
