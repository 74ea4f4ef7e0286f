// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package inscription

import (
	"fmt"
	"strconv"
	"strings"
)

// # Predicate Compiler

// likeEscaper escapes the LIKE metacharacters; backslash is the default escape in PostgreSQL.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// sqlCompiler turns predicates into a WHERE fragment with positional arguments.
type sqlCompiler struct {
	args []any

	// direct evaluates related-field conditions against the row already in
	// scope instead of wrapping them in EXISTS. Used when streaming the related
	// rows themselves.
	direct bool
}

/*
Compile renders predicate as a PostgreSQL boolean expression over the
inscription (i) and panel (p) aliases.

Values are always bound as positional arguments ($1, $2, ...); only column
names from the field descriptors are ever interpolated. Conditions on related
fields become EXISTS sub-queries, so a record matches when at least one related
row does.

Returns:
  - string: The SQL condition
  - []any: The arguments, in placeholder order
*/
func Compile(predicate Predicate) (string, []any) {
	compiler := &sqlCompiler{}
	return compiler.compile(predicate), compiler.args
}

// CompileDirect is [Compile] for queries whose FROM clause already ranges over
// the related rows of the fields involved.
func CompileDirect(predicate Predicate) (string, []any) {
	compiler := &sqlCompiler{direct: true}
	return compiler.compile(predicate), compiler.args
}

// bind appends an argument and returns its placeholder.
func (compiler *sqlCompiler) bind(value any) string {
	compiler.args = append(compiler.args, value)
	return "$" + strconv.Itoa(len(compiler.args))
}

func (compiler *sqlCompiler) compile(predicate Predicate) string {
	switch typed := predicate.(type) {
	case nil:
		return "TRUE"

	case Nothing:
		return "FALSE"

	case Equals:
		return compiler.scope(typed.Field, fmt.Sprintf("%s = %s", typed.Field.Expr(), compiler.bind(typed.Value)))

	case StartsWith:
		condition := fmt.Sprintf("%s LIKE %s", typed.Field.Expr(), compiler.bind(likeEscaper.Replace(typed.Value)+"%"))
		return compiler.scope(typed.Field, condition)

	case Range:
		var bounds []string
		if typed.Min != nil {
			bounds = append(bounds, fmt.Sprintf("%s >= %s", typed.Field.Expr(), compiler.bind(*typed.Min)))
		}
		if typed.Max != nil {
			bounds = append(bounds, fmt.Sprintf("%s <= %s", typed.Field.Expr(), compiler.bind(*typed.Max)))
		}
		if len(bounds) == 0 {
			return "TRUE"
		}
		return compiler.scope(typed.Field, strings.Join(bounds, " AND "))

	case Contains:
		target := typed.Field.Expr()
		if typed.Clean {
			target = typed.Field.CleanExpr()
		}
		condition := fmt.Sprintf("%s ILIKE %s", target, compiler.bind("%"+likeEscaper.Replace(typed.Value)+"%"))
		return compiler.scope(typed.Field, condition)

	case Present:
		condition := fmt.Sprintf("COALESCE(%s, '') <> ''", typed.Field.Expr())
		return compiler.scope(typed.Field, condition)

	case Or:
		return compiler.join(typed, " OR ", "FALSE")

	case And:
		return compiler.join(typed, " AND ", "TRUE")
	}

	panic(fmt.Sprintf("inscription: unsupported predicate %T", predicate))
}

// join compiles members with op; an empty list yields identity.
func (compiler *sqlCompiler) join(members []Predicate, op, identity string) string {
	if len(members) == 0 {
		return identity
	}

	parts := make([]string, len(members))
	for i, member := range members {
		parts[i] = compiler.compile(member)
	}
	return "(" + strings.Join(parts, op) + ")"
}

// scope wraps a condition on a related field into an EXISTS over its relation.
func (compiler *sqlCompiler) scope(field *Field, condition string) string {
	if field.Related == nil || compiler.direct {
		return condition
	}

	return fmt.Sprintf("EXISTS (SELECT 1 FROM %s WHERE %s = %s.%s AND %s)",
		field.Related.From, field.Related.Link, aliasInscription, fieldID.Column, condition)
}
