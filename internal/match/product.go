package match

import (
	"database/sql"
	"strconv"
	"strings"
)

// ProductFields names the store expressions a product match runs against.
// Name and Keywords are descriptive (substring), ArticleNumber and Slug are
// identifier-like (prefix).
type ProductFields struct {
	Name          string
	Keywords      string
	ArticleNumber string
	Slug          string
}

func (f ProductFields) fields() []Field {
	return []Field{
		{Expr: f.Name, Mode: Substring},
		{Expr: f.Keywords, Mode: Substring},
		{Expr: f.ArticleNumber, Mode: Prefix},
		{Expr: f.Slug, Mode: Prefix},
	}
}

// BuildProduct compiles the tiered product condition. Primary tokens are
// mandatory: each must match one of the product fields. With no primary
// tokens, a single substring match on the name field using the whole raw
// query takes their place. Secondary tokens, when present, are ANDed in as
// one OR-group over the name field; the group must match but no individual
// secondary token is required.
func BuildProduct(primary, secondary []string, rawQuery string, f ProductFields, paramPrefix string) Condition {
	base := Build(primary, f.fields(), paramPrefix+"primary_")
	if len(primary) == 0 {
		name := paramPrefix + "primary_fallback"
		base = Condition{
			Clause: "(" + f.Name + " LIKE :" + name + ")",
			Args:   []any{sql.Named(name, Pattern(rawQuery, Substring))},
		}
	}
	if len(secondary) == 0 {
		return base
	}

	var conds []string
	args := base.Args
	for i, token := range secondary {
		group := secondaryGroup(token, f.Name, paramPrefix, i)
		conds = append(conds, group.Clause)
		args = append(args, group.Args...)
	}
	clause := base.Clause + " AND (" + strings.Join(conds, " OR ") + ")"
	return Condition{Clause: clause, Args: args}
}

// secondaryGroup builds one secondary token's name-field match across its variants.
func secondaryGroup(token, nameField, paramPrefix string, idx int) Condition {
	cond := Build([]string{token}, []Field{{Expr: nameField, Mode: Substring}}, prefixFor(paramPrefix, idx))
	return cond
}

func prefixFor(paramPrefix string, idx int) string {
	// One prefix per secondary token keeps parameter names unique even though
	// Build restarts its own token index at zero.
	return paramPrefix + "secondary" + strconv.Itoa(idx) + "_"
}
