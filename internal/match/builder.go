// Package match compiles query tokens into SQL LIKE predicates with uniquely
// named bind parameters. Tokens are ANDed against each other; within a token,
// all fields and spelling variants are ORed.
package match

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/iamerkut/search/internal/analyze"
)

// Mode selects the wildcard placement for a field.
type Mode int

const (
	// Substring matches anywhere in the field (%value%); for descriptive
	// fields such as names and search keywords.
	Substring Mode = iota
	// Prefix matches from the start (value%); for identifier-like fields
	// such as article numbers and slugs.
	Prefix
)

// Field is one store column (or SQL expression) to match against.
type Field struct {
	Expr string
	Mode Mode
}

// Condition is a WHERE fragment with its named bind arguments.
type Condition struct {
	Clause string
	Args   []any
}

// Tautology matches every row. Returned for empty token sets so that
// category/manufacturer searches degrade to "list top rows".
func Tautology() Condition {
	return Condition{Clause: "1=1"}
}

// Pattern builds a LIKE pattern for value in the given mode. A value that
// already carries a wildcard is passed through unwrapped: values travel as
// bind parameters, so this can only widen matching, never inject SQL.
func Pattern(value string, mode Mode) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "%"
	}
	if strings.ContainsAny(value, "%_") {
		return value
	}
	if mode == Prefix {
		return value + "%"
	}
	return "%" + value + "%"
}

// Build compiles tokens into one conjunctive condition over fields. Every
// token must match (AND); a token matches when any of its variants matches any
// field (OR). Parameter names are derived from paramPrefix plus token and
// variant indexes, so multiple Build calls per statement cannot clobber each
// other. An empty token set yields the tautology.
func Build(tokens []string, fields []Field, paramPrefix string) Condition {
	if len(tokens) == 0 || len(fields) == 0 {
		return Tautology()
	}

	var conjuncts []string
	var args []any
	for i, token := range tokens {
		variants := analyze.Variants(token)
		if len(variants) == 0 {
			variants = []string{token}
		}

		var variantConds []string
		for j, variant := range variants {
			name := fmt.Sprintf("%stoken%d_%d", paramPrefix, i, j)
			clause, variantArgs := fieldGroup(fields, variant, name)
			variantConds = append(variantConds, clause)
			args = append(args, variantArgs...)
		}
		conjuncts = append(conjuncts, "("+strings.Join(variantConds, " OR ")+")")
	}

	return Condition{Clause: strings.Join(conjuncts, " AND "), Args: args}
}

// fieldGroup ORs one variant across all fields. Substring and prefix fields
// need different patterns, so up to two parameters are bound per variant.
func fieldGroup(fields []Field, variant, baseName string) (string, []any) {
	prefixName := baseName + "_pfx"
	var conds []string
	var args []any
	boundSubstring, boundPrefix := false, false
	for _, f := range fields {
		switch f.Mode {
		case Prefix:
			conds = append(conds, f.Expr+" LIKE :"+prefixName)
			if !boundPrefix {
				args = append(args, sql.Named(prefixName, Pattern(variant, Prefix)))
				boundPrefix = true
			}
		default:
			conds = append(conds, f.Expr+" LIKE :"+baseName)
			if !boundSubstring {
				args = append(args, sql.Named(baseName, Pattern(variant, Substring)))
				boundSubstring = true
			}
		}
	}
	return "(" + strings.Join(conds, " OR ") + ")", args
}
