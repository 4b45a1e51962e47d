package naming

import "strings"

// Plural returns the table name for a bare entity name. It lowercases s and
// appends "s" unless s already ends in "s". No irregular forms are known.
func Plural(s string) string {
	s = strings.ToLower(s)
	if strings.HasSuffix(s, "s") {
		return s
	}
	return s + "s"
}

// Singular reverses Plural by dropping one trailing "s" from the lowercased
// table name. It is used to locate the entity file behind a table.
func Singular(table string) string {
	table = strings.ToLower(table)
	if len(table) > 1 {
		return strings.TrimSuffix(table, "s")
	}
	return table
}
