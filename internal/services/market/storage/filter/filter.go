// Package filter translates AIP-160 filter expressions over journal events
// into SQL conditions.
package filter

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/nftmarket/internal/platform/errors"
	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// SQLCondition represents a SQL WHERE clause fragment with parameters.
type SQLCondition struct {
	Clause string
	Params []any
}

// Empty reports whether the condition matches everything.
func (c SQLCondition) Empty() bool {
	return c.Clause == ""
}

// column maps a filter identifier to its SQL column.
type column struct {
	name string
	kind *expr.Type
}

var columns = map[string]column{
	"type":       {"event_type", filtering.TypeString},
	"asset_id":   {"asset_id", filtering.TypeInt},
	"actor_id":   {"actor_id", filtering.TypeString},
	"request_id": {"request_id", filtering.TypeString},
	"ts":         {"ts", filtering.TypeTimestamp},
}

// aliases folds the CEL spellings of operators onto the AIP names.
var aliases = map[string]string{
	"_&&_": filtering.FunctionAnd,
	"_||_": filtering.FunctionOr,
	"!_":   filtering.FunctionNot,
	"_==_": filtering.FunctionEquals,
	"_!=_": filtering.FunctionNotEquals,
	"_<_":  filtering.FunctionLessThan,
	"_<=_": filtering.FunctionLessEquals,
	"_>_":  filtering.FunctionGreaterThan,
	"_>=_": filtering.FunctionGreaterEquals,
}

var operators = map[string]string{
	filtering.FunctionEquals:        "=",
	filtering.FunctionNotEquals:     "!=",
	filtering.FunctionLessThan:      "<",
	filtering.FunctionLessEquals:    "<=",
	filtering.FunctionGreaterThan:   ">",
	filtering.FunctionGreaterEquals: ">=",
}

// Declarations returns the identifiers a journal filter may reference.
func Declarations() (*filtering.Declarations, error) {
	opts := []filtering.DeclarationOption{filtering.DeclareStandardFunctions()}
	for name, col := range columns {
		opts = append(opts, filtering.DeclareIdent(name, col.kind))
	}
	return filtering.NewDeclarations(opts...)
}

// Parse parses filterStr and returns its SQL condition. A blank filter
// yields an empty condition.
func Parse(filterStr string) (SQLCondition, error) {
	if strings.TrimSpace(filterStr) == "" {
		return SQLCondition{}, nil
	}
	decls, err := Declarations()
	if err != nil {
		return SQLCondition{}, fmt.Errorf("create declarations: %w", err)
	}
	parsed, err := filtering.ParseFilterString(filterStr, decls)
	if err != nil {
		return SQLCondition{}, invalid(err.Error())
	}
	return translate(parsed.CheckedExpr.GetExpr())
}

func translate(e *expr.Expr) (SQLCondition, error) {
	call := e.GetCallExpr()
	if call == nil {
		return SQLCondition{}, invalid(fmt.Sprintf("unsupported expression %T", e.GetExprKind()))
	}
	function := call.GetFunction()
	if alias, ok := aliases[function]; ok {
		function = alias
	}
	switch function {
	case filtering.FunctionAnd, filtering.FunctionOr:
		return translateJunction(call, function)
	case filtering.FunctionNot:
		if len(call.GetArgs()) != 1 {
			return SQLCondition{}, invalid("NOT requires 1 argument")
		}
		inner, err := translate(call.GetArgs()[0])
		if err != nil {
			return SQLCondition{}, err
		}
		return SQLCondition{Clause: "NOT " + inner.Clause, Params: inner.Params}, nil
	}
	if op, ok := operators[function]; ok {
		return translateComparison(call.GetArgs(), op)
	}
	return SQLCondition{}, invalid("unsupported function " + function)
}

func translateJunction(call *expr.Expr_Call, function string) (SQLCondition, error) {
	joiner := " AND "
	if function == filtering.FunctionOr {
		joiner = " OR "
	}
	var parts []string
	var params []any
	for _, arg := range call.GetArgs() {
		cond, err := translate(arg)
		if err != nil {
			return SQLCondition{}, err
		}
		parts = append(parts, cond.Clause)
		params = append(params, cond.Params...)
	}
	if len(parts) < 2 {
		return SQLCondition{}, invalid(function + " requires 2 arguments")
	}
	return SQLCondition{Clause: "(" + strings.Join(parts, joiner) + ")", Params: params}, nil
}

func translateComparison(args []*expr.Expr, op string) (SQLCondition, error) {
	if len(args) != 2 {
		return SQLCondition{}, invalid("comparison requires 2 arguments")
	}
	ident := args[0].GetIdentExpr()
	if ident == nil {
		return SQLCondition{}, invalid("left side of a comparison must be a field")
	}
	col, ok := columns[ident.GetName()]
	if !ok {
		return SQLCondition{}, invalid("unknown field " + ident.GetName())
	}
	value, err := extractValue(args[1])
	if err != nil {
		return SQLCondition{}, err
	}
	return SQLCondition{
		Clause: fmt.Sprintf("%s %s ?", col.name, op),
		Params: []any{value},
	}, nil
}

func extractValue(e *expr.Expr) (any, error) {
	if c := e.GetConstExpr(); c != nil {
		switch kind := c.GetConstantKind().(type) {
		case *expr.Constant_StringValue:
			return kind.StringValue, nil
		case *expr.Constant_Int64Value:
			return kind.Int64Value, nil
		case *expr.Constant_Uint64Value:
			return int64(kind.Uint64Value), nil
		case *expr.Constant_BoolValue:
			return kind.BoolValue, nil
		default:
			return nil, invalid(fmt.Sprintf("unsupported constant %T", kind))
		}
	}
	if call := e.GetCallExpr(); call != nil && call.GetFunction() == filtering.FunctionTimestamp && len(call.GetArgs()) == 1 {
		raw := call.GetArgs()[0].GetConstExpr().GetStringValue()
		ts, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, invalid("invalid timestamp " + raw)
		}
		return ts.UTC().UnixMilli(), nil
	}
	return nil, invalid("right side of a comparison must be a constant or timestamp")
}

func invalid(message string) error {
	return apperrors.New(apperrors.CodeInvalidFilter, "filter: "+message)
}
