package query

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/angelmondragon/stockdesk/pkg/graphql"
)

const (
	KindQuery    = "query"
	KindMutation = "mutation"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// variableTypes is the closed set of variables a document may declare, in declaration order.
var variableTypes = []struct {
	name string
	typ  string
}{
	{"id", "ID"},
	{"page", "Int"},
	{"pageSize", "Int"},
	{"search", "String"},
	{"categoryId", "ID"},
	{"minPrice", "Int"},
	{"maxPrice", "Int"},
	{"sortField", "SortField"},
	{"sortDirection", "SortDirection"},
	{"fromDate", "Date"},
	{"toDate", "Date"},
	{"status", "OrderStatus"},
	{"isActive", "Boolean"},
	{"period", "ReportPeriod"},
	{"input", ""},
}

// Shape describes one document. Values in Params only ever travel as variables.
type Shape struct {
	Kind      string
	Operation string
	Field     string
	Params    Params
	// Required marks variables declared non-null. page and pageSize are always non-null.
	Required []string
	// InputType is the declared type of the "input" variable.
	InputType string
	Selection string
}

// Document builds a query over field with the given variables.
func Document(operation, field string, params Params, selection string) (graphql.Request, error) {
	return Build(Shape{Kind: KindQuery, Operation: operation, Field: field, Params: params, Selection: selection})
}

// Build renders shape into a request. Unknown variables are rejected rather than spliced.
func Build(shape Shape) (graphql.Request, error) {
	kind := shape.Kind
	if kind == "" {
		kind = KindQuery
	}
	if kind != KindQuery && kind != KindMutation {
		return graphql.Request{}, fmt.Errorf("unsupported document kind %q", kind)
	}
	if !identifier.MatchString(shape.Operation) {
		return graphql.Request{}, fmt.Errorf("invalid operation name %q", shape.Operation)
	}
	if !identifier.MatchString(shape.Field) {
		return graphql.Request{}, fmt.Errorf("invalid field name %q", shape.Field)
	}

	known := make(map[string]struct{}, len(variableTypes))
	for _, v := range variableTypes {
		known[v.name] = struct{}{}
	}
	for name := range shape.Params {
		if _, ok := known[name]; !ok {
			return graphql.Request{}, fmt.Errorf("undeclared variable %q", name)
		}
	}

	required := map[string]bool{"page": true, "pageSize": true}
	for _, name := range shape.Required {
		required[name] = true
	}

	var decls, args []string
	variables := make(map[string]any, len(shape.Params))
	for _, v := range variableTypes {
		value, ok := shape.Params[v.name]
		if !ok {
			continue
		}
		typ := v.typ
		if v.name == "input" {
			if !identifier.MatchString(shape.InputType) {
				return graphql.Request{}, fmt.Errorf("invalid input type %q", shape.InputType)
			}
			typ = shape.InputType
		}
		if required[v.name] {
			typ += "!"
		}
		decls = append(decls, fmt.Sprintf("$%s: %s", v.name, typ))
		args = append(args, fmt.Sprintf("%s: $%s", v.name, v.name))
		variables[v.name] = value
	}

	var b strings.Builder
	b.WriteString(kind)
	b.WriteString(" ")
	b.WriteString(shape.Operation)
	if len(decls) > 0 {
		b.WriteString("(" + strings.Join(decls, ", ") + ")")
	}
	b.WriteString(" { ")
	b.WriteString(shape.Field)
	if len(args) > 0 {
		b.WriteString("(" + strings.Join(args, ", ") + ")")
	}
	if sel := strings.TrimSpace(shape.Selection); sel != "" {
		b.WriteString(" { " + sel + " }")
	}
	b.WriteString(" }")

	req := graphql.Request{Operation: shape.Operation, Query: b.String()}
	if len(variables) > 0 {
		req.Variables = variables
	}
	return req, nil
}
