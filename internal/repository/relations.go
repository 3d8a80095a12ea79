package repository

import "strings"

// relation declares a foreign key whose referenced row's name is denormalised
// into list and detail reads. All five entities share this one join shape, so
// the enrichment SQL is generated here instead of being repeated per table.
type relation struct {
	// table is the referenced table, always joined on its id column.
	table string
	// alias used for the join.
	alias string
	// fk is the referencing column on the owning table.
	fk string
	// nameAs is the output column carrying the referenced row's name.
	nameAs string
}

// selectEnriched builds the SELECT for an entity: its own columns plus one
// name column per declared relation. LEFT JOINs keep rows whose references
// are absent (nullable foreign keys, detached teachers).
func selectEnriched(table, alias string, columns []string, relations []relation) string {
	var b strings.Builder
	b.WriteString("SELECT ")
	for i, col := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(alias)
		b.WriteString(".")
		b.WriteString(col)
	}
	for _, rel := range relations {
		b.WriteString(", ")
		b.WriteString(rel.alias)
		b.WriteString(".name AS ")
		b.WriteString(rel.nameAs)
	}
	b.WriteString(" FROM ")
	b.WriteString(table)
	b.WriteString(" ")
	b.WriteString(alias)
	for _, rel := range relations {
		b.WriteString(" LEFT JOIN ")
		b.WriteString(rel.table)
		b.WriteString(" ")
		b.WriteString(rel.alias)
		b.WriteString(" ON ")
		b.WriteString(rel.alias)
		b.WriteString(".id = ")
		b.WriteString(alias)
		b.WriteString(".")
		b.WriteString(rel.fk)
	}
	return b.String()
}

// orderByNewest yields the deterministic listing order: newest first, id as
// the tie-break so rows created within the same timestamp keep a stable order.
func orderByNewest(alias string) string {
	return " ORDER BY " + alias + ".created_at DESC, " + alias + ".id DESC"
}
