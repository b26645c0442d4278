package eval

import (
	"time"

	"github.com/colmap/colmap/internal/ast"
	"github.com/colmap/colmap/internal/colerr"
	"github.com/colmap/colmap/internal/coltable"
)

func evalDate(call *ast.Call, tbl *coltable.Table, row int) (Value, error) {
	args, err := evalArgs(call.Args, tbl, row)
	if err != nil {
		return Value{}, err
	}

	switch call.Method {
	case "CURRENT_DATE":
		return dateV(time.Now()), nil

	case "FORMAT":
		if args[0].Null {
			return nullV(ast.Text), nil
		}
		fmtStr := stripQuotes(asText(args[1]))
		goLayout, err := strftimeToGoLayout(fmtStr)
		if err != nil {
			return Value{}, colerr.NewTransform("", fmtStr, "%s", err.Error())
		}
		t, err := asTime(args[0], fmtStr)
		if err != nil {
			return Value{}, colerr.NewTransform("", asText(args[0]), "%s", err.Error())
		}
		return textV(t.Format(goLayout)), nil

	case "PARSE":
		if args[0].Null {
			return nullV(ast.Date), nil
		}
		format := defaultDateFormat
		if len(args) > 1 && !args[1].Null {
			format = stripQuotes(asText(args[1]))
		}
		t, err := asTime(args[0], format)
		if err != nil {
			return Value{}, colerr.NewTransform("", asText(args[0]), "%s", err.Error())
		}
		return dateV(t), nil

	case "ADD_DAYS", "SUB_DAYS":
		if args[0].Null {
			return nullV(ast.Datetime), nil
		}
		t, err := asTime(args[0], "")
		if err != nil {
			return Value{}, colerr.NewTransform("", asText(args[0]), "%s", err.Error())
		}
		n, err := asFloat(args[1])
		if err != nil {
			return Value{}, colerr.NewTransform("", "", "%s", err.Error())
		}
		days := int(n)
		if call.Method == "SUB_DAYS" {
			days = -days
		}
		return dtV(t.AddDate(0, 0, days)), nil

	case "DIFF_DAYS", "DIFF":
		if args[0].Null || args[1].Null {
			return nullV(ast.Int), nil
		}
		unit := "days"
		if call.Method == "DIFF" && len(args) > 2 && !args[2].Null {
			unit = stripQuotes(asText(args[2]))
		}
		if unit != "days" {
			return Value{}, colerr.NewTransform("", unit, "unsupported DATE DIFF unit %q", unit)
		}
		t1, err := asTime(args[0], "")
		if err != nil {
			return Value{}, colerr.NewTransform("", asText(args[0]), "%s", err.Error())
		}
		t2, err := asTime(args[1], "")
		if err != nil {
			return Value{}, colerr.NewTransform("", asText(args[1]), "%s", err.Error())
		}
		return intV(int64(t1.Sub(t2).Hours() / 24)), nil

	case "EXTRACT":
		if args[0].Null {
			return nullV(ast.Int), nil
		}
		t, err := asTime(args[0], "")
		if err != nil {
			return Value{}, colerr.NewTransform("", asText(args[0]), "%s", err.Error())
		}
		part := stripQuotes(asText(args[1]))
		switch part {
		case "year":
			return intV(int64(t.Year())), nil
		case "month":
			return intV(int64(t.Month())), nil
		case "day":
			return intV(int64(t.Day())), nil
		}
		return Value{}, colerr.NewTransform("", part, "unsupported DATE EXTRACT part %q", part)
	}
	return Value{}, colerr.NewTransform("", call.Method, "unsupported DATE method %q", call.Method)
}
