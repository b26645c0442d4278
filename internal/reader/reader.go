// Package reader implements the input-boundary collaborator: it
// produces an input coltable.Table from a columnar file. The reader
// is CSV-backed, with columns type-inferred from their values.
package reader

import (
	"os"

	"github.com/colmap/colmap/internal/coltable"
)

// Reader turns a file at path into an in-memory Table.
type Reader interface {
	Read(path string) (*coltable.Table, error)
}

// New returns the default reader: CSV-backed, typed by per-column
// inference over the full column.
func New() Reader {
	return csvReader{}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
