package reader

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/colmap/colmap/internal/colerr"
	"github.com/colmap/colmap/internal/coltable"
)

var dateLayouts = []string{"2006-01-02", "01/02/2006", "01022006"}

type csvReader struct{}

func (csvReader) Read(path string) (*coltable.Table, error) {
	if !fileExists(path) {
		return nil, colerr.NewMapping("", "input file not found: %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, colerr.WrapMapping("", err, "failed to open input file %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return coltable.Empty(), nil
		}
		return nil, colerr.WrapMapping("", err, "failed to read CSV header from %s", path)
	}

	rawCols := make([][]string, len(header))
	nullCols := make([][]bool, len(header))
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, colerr.WrapMapping("", err, "failed to read CSV row from %s", path)
		}
		for i := range header {
			var val string
			isNull := i >= len(record)
			if !isNull {
				val = record[i]
				isNull = val == ""
			}
			rawCols[i] = append(rawCols[i], val)
			nullCols[i] = append(nullCols[i], isNull)
		}
	}

	columns := make([]*coltable.Column, len(header))
	for i, name := range header {
		columns[i] = inferColumn(name, rawCols[i], nullCols[i])
	}
	return coltable.New(columns)
}

// inferColumn picks the narrowest type every non-null value in values
// parses as, in the order int, float, bool, date, text.
func inferColumn(name string, values []string, nulls []bool) *coltable.Column {
	typ := inferType(values, nulls)
	col := &coltable.Column{Name: name, Typ: typ}

	anyNull := false
	for _, n := range nulls {
		if n {
			anyNull = true
			break
		}
	}
	if anyNull {
		col.Nulls = nulls
	}

	switch typ {
	case coltable.TypeInt:
		col.Ints = make([]int64, len(values))
		for i, v := range values {
			if !nulls[i] {
				col.Ints[i], _ = strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			}
		}
	case coltable.TypeFloat:
		col.Floats = make([]float64, len(values))
		for i, v := range values {
			if !nulls[i] {
				col.Floats[i], _ = strconv.ParseFloat(strings.TrimSpace(v), 64)
			}
		}
	case coltable.TypeBool:
		col.Bools = make([]bool, len(values))
		for i, v := range values {
			if !nulls[i] {
				col.Bools[i] = strings.EqualFold(strings.TrimSpace(v), "true")
			}
		}
	case coltable.TypeDate:
		layout := detectLayout(values, nulls)
		col.Dates = make([]time.Time, len(values))
		for i, v := range values {
			if !nulls[i] {
				col.Dates[i], _ = time.Parse(layout, strings.TrimSpace(v))
			}
		}
	default:
		col.Texts = make([]string, len(values))
		copy(col.Texts, values)
	}
	return col
}

func inferType(values []string, nulls []bool) coltable.Type {
	hasValue := false
	allInt, allFloat, allBool, allDate := true, true, true, true
	for i, v := range values {
		if nulls[i] {
			continue
		}
		hasValue = true
		t := strings.TrimSpace(v)
		if allInt {
			if _, err := strconv.ParseInt(t, 10, 64); err != nil {
				allInt = false
			}
		}
		if allFloat {
			if _, err := strconv.ParseFloat(t, 64); err != nil {
				allFloat = false
			}
		}
		if allBool {
			low := strings.ToLower(t)
			if low != "true" && low != "false" {
				allBool = false
			}
		}
		if allDate {
			if detectLayout([]string{t}, []bool{false}) == "" {
				allDate = false
			}
		}
	}
	switch {
	case !hasValue:
		return coltable.TypeText
	case allInt:
		return coltable.TypeInt
	case allFloat:
		return coltable.TypeFloat
	case allBool:
		return coltable.TypeBool
	case allDate:
		return coltable.TypeDate
	default:
		return coltable.TypeText
	}
}

// detectLayout returns the first layout in dateLayouts under which
// every non-null value parses, or "" if none does.
func detectLayout(values []string, nulls []bool) string {
	for _, layout := range dateLayouts {
		ok := true
		for i, v := range values {
			if nulls[i] {
				continue
			}
			if _, err := time.Parse(layout, strings.TrimSpace(v)); err != nil {
				ok = false
				break
			}
		}
		if ok {
			return layout
		}
	}
	return ""
}
