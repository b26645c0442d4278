package writer

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colmap/colmap/internal/coltable"
)

func mustTable(t *testing.T, cols ...*coltable.Column) *coltable.Table {
	t.Helper()
	tbl, err := coltable.New(cols)
	require.NoError(t, err)
	return tbl
}

func TestWrite_DelimitedRoundTrip(t *testing.T) {
	tbl := mustTable(t,
		&coltable.Column{Name: "id", Typ: coltable.TypeInt, Ints: []int64{1, 2}},
		&coltable.Column{Name: "name", Typ: coltable.TypeText, Texts: []string{"Ada", "Bo"}},
	)

	base := filepath.Join(t.TempDir(), "out")
	path, err := Write(tbl, base, Delimited, nil, XMLConfig{}, nil)
	require.NoError(t, err)
	assert.Equal(t, base+".csv", path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, records[0])
	assert.Equal(t, []string{"1", "Ada"}, records[1])
	assert.Equal(t, []string{"2", "Bo"}, records[2])
}

func TestWrite_UnsupportedFormatErrors(t *testing.T) {
	tbl := mustTable(t, &coltable.Column{Name: "a", Typ: coltable.TypeInt, Ints: []int64{1}})
	_, err := Write(tbl, filepath.Join(t.TempDir(), "out"), Format("bogus"), nil, XMLConfig{}, nil)
	assert.Error(t, err)
}

func TestWrite_FixedWidthPadsAndAligns(t *testing.T) {
	tbl := mustTable(t,
		&coltable.Column{Name: "id", Typ: coltable.TypeInt, Ints: []int64{7}},
		&coltable.Column{Name: "name", Typ: coltable.TypeText, Texts: []string{"Ada"}},
	)
	widths := []FieldWidth{{Target: "id", Length: 3}, {Target: "name", Length: 5}}

	base := filepath.Join(t.TempDir(), "out")
	path, err := Write(tbl, base, FixedWidth, widths, XMLConfig{}, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "  7Ada  \n", string(data))
}

func TestWrite_MarkupEscapesText(t *testing.T) {
	tbl := mustTable(t, &coltable.Column{Name: "note", Typ: coltable.TypeText, Texts: []string{"a & b"}})

	base := filepath.Join(t.TempDir(), "out")
	path, err := Write(tbl, base, Markup, nil, XMLConfig{RootTag: "rows", RowTag: "row"}, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "a &amp; b")
	assert.Contains(t, string(data), "<rows>")
	assert.Contains(t, string(data), "<row>")
}
