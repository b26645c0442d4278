package writer

import (
	"strconv"
	"strings"
	"time"

	"github.com/colmap/colmap/internal/coltable"
)

// cellText renders row i of col to the text form every row-oriented
// writer uses, treating a null cell as the empty string.
func cellText(col *coltable.Column, i int) string {
	if col.IsNull(i) {
		return ""
	}
	switch col.Typ {
	case coltable.TypeInt:
		return strconv.FormatInt(col.Ints[i], 10)
	case coltable.TypeFloat:
		return strconv.FormatFloat(col.Floats[i], 'f', -1, 64)
	case coltable.TypeBool:
		return strconv.FormatBool(col.Bools[i])
	case coltable.TypeText:
		return col.Texts[i]
	case coltable.TypeDate:
		return col.Dates[i].Format("2006-01-02")
	case coltable.TypeDatetime:
		return col.Datetimes[i].Format(time.RFC3339)
	case coltable.TypeListText:
		return strings.Join(col.Lists[i], ",")
	default:
		return ""
	}
}

// cellValue renders row i of col to a native Go value suitable for
// JSON/XLSX cell encoding, preserving numeric and boolean types
// instead of flattening everything to text.
func cellValue(col *coltable.Column, i int) any {
	if col.IsNull(i) {
		return nil
	}
	switch col.Typ {
	case coltable.TypeInt:
		return col.Ints[i]
	case coltable.TypeFloat:
		return col.Floats[i]
	case coltable.TypeBool:
		return col.Bools[i]
	case coltable.TypeText:
		return col.Texts[i]
	case coltable.TypeDate:
		return col.Dates[i].Format("2006-01-02")
	case coltable.TypeDatetime:
		return col.Datetimes[i].Format(time.RFC3339)
	case coltable.TypeListText:
		return strings.Join(col.Lists[i], ",")
	default:
		return nil
	}
}
