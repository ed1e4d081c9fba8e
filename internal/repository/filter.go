package repository

import (
	"strconv"
	"strings"
)

// filter accumulates WHERE conditions and their positional arguments.
type filter struct {
	conds []string
	args  []any
}

// next returns the placeholder for the argument about to be appended.
func (f *filter) next() string {
	return "$" + strconv.Itoa(len(f.args)+1)
}

// eq adds "column = $n" unless value is empty or "all".
func (f *filter) eq(column, value string) {
	value = strings.TrimSpace(value)
	if value == "" || value == "all" {
		return
	}
	f.conds = append(f.conds, column+" = "+f.next())
	f.args = append(f.args, value)
}

// cmp adds "column <op> $n" when value is non-empty.
func (f *filter) cmp(column, op, value string) {
	if value == "" {
		return
	}
	f.conds = append(f.conds, column+" "+op+" "+f.next())
	f.args = append(f.args, value)
}

// search adds a case-insensitive substring match across columns.
func (f *filter) search(query string, columns ...string) {
	query = strings.TrimSpace(query)
	if query == "" || len(columns) == 0 {
		return
	}
	ph := f.next()
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = c + " ILIKE " + ph
	}
	f.conds = append(f.conds, "("+strings.Join(parts, " OR ")+")")
	f.args = append(f.args, "%"+escapeLike(query)+"%")
}

// raw adds a condition that takes one argument; the placeholder is
// substituted for "?".
func (f *filter) raw(cond string, arg any) {
	f.conds = append(f.conds, strings.Replace(cond, "?", f.next(), 1))
	f.args = append(f.args, arg)
}

// where renders the WHERE clause, or "" when there are no conditions.
func (f *filter) where() string {
	if len(f.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.conds, " AND ")
}

// page appends LIMIT/OFFSET placeholders and returns the clause.
func (f *filter) page(limit, offset int) string {
	limitPh := f.next()
	f.args = append(f.args, limit)
	offsetPh := f.next()
	f.args = append(f.args, offset)
	return " LIMIT " + limitPh + " OFFSET " + offsetPh
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
