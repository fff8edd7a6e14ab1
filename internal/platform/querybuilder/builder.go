// Package querybuilder builds Postgres statements on top of squirrel.
package querybuilder

import (
	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func Select(columns ...string) sq.SelectBuilder {
	return psql.Select(columns...)
}

func InsertInto(table string) sq.InsertBuilder {
	return psql.Insert(table)
}

func Update(table string) sq.UpdateBuilder {
	return psql.Update(table)
}

func Eq(column string, value any) sq.Eq {
	return sq.Eq{column: value}
}

func IsNull(column string) sq.Eq {
	return sq.Eq{column: nil}
}

// Expr is a raw SQL fragment with ? placeholders.
func Expr(sql string, args ...any) sq.Sqlizer {
	return sq.Expr(sql, args...)
}
