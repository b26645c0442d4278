// Package exec implements the pipeline executor: it runs a compiled
// Plan's filter phase then its projection phase against an input
// table, producing the output table.
package exec

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/colmap/colmap/internal/ast"
	"github.com/colmap/colmap/internal/colerr"
	"github.com/colmap/colmap/internal/compile"
	"github.com/colmap/colmap/internal/coltable"
	"github.com/colmap/colmap/internal/eval"
)

// Options controls the executor's resource usage.
type Options struct {
	// ConcurrencyLimit bounds how many projection columns are evaluated
	// in parallel. 0 or 1 means sequential; parallelism here is purely
	// an implementation-quality concern with no observable effect on
	// the result.
	ConcurrencyLimit int
}

// Execute runs plan against input, applying the filter phase and then
// the projection phase.
func Execute(ctx context.Context, plan *compile.Plan, input *coltable.Table, opts Options) (*coltable.Table, error) {
	filtered, err := applyFilters(plan.Filters, input)
	if err != nil {
		return nil, err
	}
	return project(ctx, plan.Projections, filtered, opts)
}

// applyFilters runs the filter phase: each action composes
// sequentially over the table produced by the previous one.
func applyFilters(actions []compile.FilterAction, tbl *coltable.Table) (*coltable.Table, error) {
	out := tbl
	for _, a := range actions {
		var err error
		out, err = applyFilter(a, out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func applyFilter(a compile.FilterAction, tbl *coltable.Table) (*coltable.Table, error) {
	switch a.Method {
	case ast.Include, ast.IncludeIf:
		mask, err := eval.EvalBool(a.Cond, tbl)
		if err != nil {
			return nil, err
		}
		return tbl.Take(rowsWhere(mask, true)), nil

	case ast.ExcludeIf:
		mask, err := eval.EvalBool(a.Cond, tbl)
		if err != nil {
			return nil, err
		}
		return tbl.Take(rowsWhere(mask, false)), nil

	case ast.Limit:
		n := a.N
		if n < 0 {
			n = 0
		}
		if n > tbl.Height() {
			n = tbl.Height()
		}
		return tbl.Take(coltable.RowRange(n)), nil

	case ast.Offset:
		n := a.N
		if n < 0 {
			n = 0
		}
		if n >= tbl.Height() {
			return tbl.Take(nil), nil
		}
		idx := make([]int, tbl.Height()-n)
		for i := range idx {
			idx[i] = n + i
		}
		return tbl.Take(idx), nil
	}
	return nil, colerr.NewTransform("", a.Method.String(), "unsupported filter action %q", a.Method.String())
}

func rowsWhere(mask []bool, want bool) []int {
	idx := make([]int, 0, len(mask))
	for i, b := range mask {
		if b == want {
			idx = append(idx, i)
		}
	}
	return idx
}

// project runs the projection phase, optionally parallelizing across
// columns while preserving mapping order in the result.
func project(ctx context.Context, projections []compile.Projection, tbl *coltable.Table, opts Options) (*coltable.Table, error) {
	columns := make([]*coltable.Column, len(projections))

	limit := opts.ConcurrencyLimit
	if limit <= 1 {
		for i, p := range projections {
			col, err := eval.EvalColumn(p.Target, p.Expr, tbl)
			if err != nil {
				return nil, err
			}
			columns[i] = col
		}
		return coltable.New(columns)
	}

	group, _ := errgroup.WithContext(ctx)
	group.SetLimit(limit)
	for i, p := range projections {
		i, p := i, p
		group.Go(func() error {
			col, err := eval.EvalColumn(p.Target, p.Expr, tbl)
			if err != nil {
				return err
			}
			columns[i] = col
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return coltable.New(columns)
}
