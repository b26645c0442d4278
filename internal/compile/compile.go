package compile

import (
	"strings"

	"github.com/colmap/colmap/internal/ast"
	"github.com/colmap/colmap/internal/colerr"
	"github.com/colmap/colmap/internal/coltable"
	"github.com/colmap/colmap/internal/dsl"
)

// Schema is the set of column names and types available to a
// compilation, typically the input table's schema.
type Schema map[string]coltable.Type

// Projection is one compiled `(output_name, expression)` pair.
type Projection struct {
	Target string
	Expr   ast.Expr
}

// FilterAction is one compiled `(method, args)` table-level action.
type FilterAction struct {
	Method ast.FilterMethod
	Cond   ast.Expr
	N      int
}

// Plan is the compiled output of a whole mapping document: filter
// actions and projections, both kept in declaration order.
type Plan struct {
	Filters     []FilterAction
	Projections []Projection
}

// Compile lowers mapping records against schema into a Plan,
// implementing the six lowering rules of the mapping document format.
func Compile(records []MappingRecord, schema Schema) (*Plan, error) {
	plan := &Plan{}
	for _, rec := range records {
		if err := compileOne(rec, schema, plan); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

func compileOne(rec MappingRecord, schema Schema, plan *Plan) error {
	sourceExpr, primarySource, err := bindSource(rec, schema)
	if err != nil {
		return err
	}

	// Rule 4: no transform, a default, and no source: constant literal
	// projection, regardless of what bindSource computed.
	if rec.Transform == nil && rec.Source == nil && rec.Default != nil {
		lit, err := dsl.ParseValue(*rec.Default)
		if err != nil {
			return colerr.WrapMapping(rec.Target, err, "invalid default literal")
		}
		return addProjection(plan, rec.Target, lit)
	}

	if rec.Transform != nil {
		return compileTransform(rec, *rec.Transform, sourceExpr, primarySource, schema, plan)
	}

	// Rule 5: no transform, source present: projection is the bound
	// source expression.
	if rec.Source != nil {
		return addProjection(plan, rec.Target, sourceExpr)
	}

	return colerr.NewMapping(rec.Target, "mapping for target %q requires at least one of source/transform/default", rec.Target)
}

// bindSource resolves rec's source column(s) against schema, falling
// back to its default literal when a source column is missing.
func bindSource(rec MappingRecord, schema Schema) (expr ast.Expr, primaryName string, err error) {
	if rec.Source == nil {
		return nil, "", nil
	}
	parts := strings.Split(*rec.Source, ",")
	names := make([]string, 0, len(parts))
	var missing []string
	for _, p := range parts {
		name := strings.TrimSpace(p)
		names = append(names, name)
		if _, ok := schema[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		if rec.Default == nil {
			return nil, "", colerr.NewMapping(rec.Target, "source column(s) %v not found and no default provided", missing)
		}
		lit, err := dsl.ParseValue(*rec.Default)
		if err != nil {
			return nil, "", colerr.WrapMapping(rec.Target, err, "invalid default literal")
		}
		return lit, names[0], nil
	}
	col := &ast.Column{Name: names[0], ResolvedType: schema[names[0]]}
	return col, names[0], nil
}

// compileTransform implements lowering rule 3: parse the transform,
// emitting either a filter action or a substituted projection
// expression.
func compileTransform(rec MappingRecord, transform string, sourceExpr ast.Expr, primarySource string, schema Schema, plan *Plan) error {
	transform = strings.TrimSpace(transform)

	if isOpForm(transform) {
		expr, filter, err := dsl.ParseTransform(transform)
		if err != nil {
			return colerr.WrapTransform(rec.Target, transform, err, "failed to apply transform for target %q", rec.Target)
		}
		if filter != nil {
			if err := checkLiteralDivisors(rec.Target, filter.Cond); err != nil {
				return err
			}
			plan.Filters = append(plan.Filters, FilterAction{Method: filter.Method, Cond: filter.Cond, N: filter.N})
			return nil
		}
		expr = substituteColumn(expr, primarySource, sourceExpr, schema)
		return addProjection(plan, rec.Target, expr)
	}

	if sourceExpr == nil {
		return colerr.NewMapping(rec.Target, "simple transform %q requires a bound source", transform)
	}
	expr, err := applyShorthand(transform, sourceExpr, rec.Target)
	if err != nil {
		return colerr.WrapTransform(rec.Target, transform, err, "failed to apply transform for target %q", rec.Target)
	}
	return addProjection(plan, rec.Target, expr)
}

func addProjection(plan *Plan, target string, expr ast.Expr) error {
	if target == "" {
		return colerr.NewMapping(target, "projection requires a target name")
	}
	if err := checkLiteralDivisors(target, expr); err != nil {
		return err
	}
	plan.Projections = append(plan.Projections, Projection{Target: target, Expr: expr})
	return nil
}

// divisorVisitor walks an expression tree looking for a MATH
// DIV/MOD call whose divisor is a literal zero, which is rejected as
// a compile-time error rather than left to run time.
type divisorVisitor struct {
	target string
	err    error
}

func (v *divisorVisitor) Visit(e ast.Expr) ast.Visitor {
	if v.err != nil {
		return nil
	}
	if call, ok := e.(*ast.Call); ok && call.Op == "MATH" && len(call.Args) == 2 {
		if (call.Method == "DIV" || call.Method == "MOD") && isZeroLiteral(call.Args[1]) {
			v.err = colerr.NewMapping(v.target, "MATH[%s] by a literal zero", call.Method)
			return nil
		}
	}
	return v
}

func checkLiteralDivisors(target string, expr ast.Expr) error {
	v := &divisorVisitor{target: target}
	ast.Walk(v, expr)
	return v.err
}

func isZeroLiteral(expr ast.Expr) bool {
	lit, ok := expr.(*ast.Literal)
	if !ok {
		return false
	}
	switch lit.Val {
	case ast.Int:
		return lit.IntV == 0
	case ast.Float:
		return lit.FltV == 0
	default:
		return false
	}
}

// substituteColumn implements the backward-compatibility shim named
// in lowering rule 3: wherever the transform references an unqualified
// column name that does not resolve to a real schema column and
// equals the mapping's primary source name, that leaf is replaced
// with the already-bound source expression.
func substituteColumn(expr ast.Expr, primarySource string, replacement ast.Expr, schema Schema) ast.Expr {
	if expr == nil || replacement == nil || primarySource == "" {
		return expr
	}
	switch e := expr.(type) {
	case *ast.Column:
		if _, real := schema[e.Name]; !real && e.Name == primarySource {
			return replacement
		}
		return e
	case *ast.Call:
		newArgs := make([]ast.Expr, len(e.Args))
		for i, a := range e.Args {
			newArgs[i] = substituteColumn(a, primarySource, replacement, schema)
		}
		e.Args = newArgs
		return e
	case *ast.Cast:
		e.Child = substituteColumn(e.Child, primarySource, replacement, schema)
		return e
	default:
		return expr
	}
}
