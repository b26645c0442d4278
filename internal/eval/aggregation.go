package eval

import (
	"github.com/colmap/colmap/internal/ast"
	"github.com/colmap/colmap/internal/colerr"
	"github.com/colmap/colmap/internal/coltable"
)

// evalAggregation implements the AGGREGATION family: a row-wise
// reduction across the elements of a list-text column (spec's ARRAY
// counterpart, not a cross-row aggregation).
func evalAggregation(call *ast.Call, tbl *coltable.Table, row int) (Value, error) {
	arg, err := evalRow(call.Args[0], tbl, row)
	if err != nil {
		return Value{}, err
	}
	if call.Method == "COUNT" {
		if arg.Null {
			return nullV(ast.Int), nil
		}
		return intV(int64(len(arg.List))), nil
	}
	if arg.Null || len(arg.List) == 0 {
		return nullV(ast.Float), nil
	}

	nums := make([]float64, 0, len(arg.List))
	for _, s := range arg.List {
		f, err := asFloat(textV(s))
		if err != nil {
			return Value{}, colerr.NewTransform("", s, "%s", err.Error())
		}
		nums = append(nums, f)
	}

	switch call.Method {
	case "SUM":
		var sum float64
		for _, f := range nums {
			sum += f
		}
		return floatV(sum), nil
	case "AVG":
		var sum float64
		for _, f := range nums {
			sum += f
		}
		return floatV(sum / float64(len(nums))), nil
	case "MIN":
		m := nums[0]
		for _, f := range nums[1:] {
			if f < m {
				m = f
			}
		}
		return floatV(m), nil
	case "MAX":
		m := nums[0]
		for _, f := range nums[1:] {
			if f > m {
				m = f
			}
		}
		return floatV(m), nil
	}
	return Value{}, colerr.NewTransform("", call.Method, "unsupported AGGREGATION method %q", call.Method)
}
