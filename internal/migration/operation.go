package migration

import (
	"fmt"
	"strings"

	"github.com/nebulis-dev/nebulis/internal/naming"
)

// Operation is a schema change inferred from a migration name. Up and Down
// are rendered independently; Down is a best-effort inverse.
type Operation interface {
	Up() string
	Down() string
	// Kind names the variant for logs and output.
	Kind() string

	operation()
}

// Column is an entity field carried into a CreateTable migration.
// Type is the DSL type tag, mapped with naming.StorageType.
type Column struct {
	Name string
	Type string
}

// CreateTable defines a table with the entity's fields, system timestamps and
// default indexes.
type CreateTable struct {
	Table   string
	Columns []Column
}

// AddColumn adds one field. Type is a DSL type tag.
type AddColumn struct {
	Table  string
	Column string
	Type   string
}

// RemoveColumn drops one field. Its Down re-creates the field as string
// since the original type is not recorded.
type RemoveColumn struct {
	Table  string
	Column string
}

// RenameColumn copies Old into New and drops Old.
type RenameColumn struct {
	Table string
	Old   string
	New   string
}

// AddIndex indexes Columns on Table.
type AddIndex struct {
	Table   string
	Columns []string
}

// AddRelation adds a <to>_id record link from From to To.
type AddRelation struct {
	From string
	To   string
}

func (CreateTable) operation()  {}
func (AddColumn) operation()    {}
func (RemoveColumn) operation() {}
func (RenameColumn) operation() {}
func (AddIndex) operation()     {}
func (AddRelation) operation()  {}

func (CreateTable) Kind() string  { return "create_table" }
func (AddColumn) Kind() string    { return "add_column" }
func (RemoveColumn) Kind() string { return "remove_column" }
func (RenameColumn) Kind() string { return "rename_column" }
func (AddIndex) Kind() string     { return "add_index" }
func (AddRelation) Kind() string  { return "add_relation" }

var (
	systemTimestamps = []string{"created_at", "updated_at", "deleted_at"}
	systemIndexes    = []string{"created", "updated", "deleted"}
)

// Up renders the table definition. Duplicate field and index names are
// skipped, first occurrence wins.
func (op CreateTable) Up() string {
	t := strings.ToLower(op.Table)
	seenFields := map[string]bool{"id": true}
	seenIndexes := make(map[string]bool)

	lines := []string{
		fmt.Sprintf("DEFINE TABLE %s SCHEMAFULL;", t),
		"",
		"// System fields",
		fmt.Sprintf("DEFINE FIELD id ON %s TYPE ulid;", t),
	}

	var entity []string
	for _, c := range op.Columns {
		name := strings.ToLower(c.Name)
		if seenFields[name] {
			continue
		}
		seenFields[name] = true
		entity = append(entity, fmt.Sprintf("DEFINE FIELD %s ON %s TYPE %s;", name, t, naming.StorageType(c.Type)))
	}
	if len(entity) > 0 {
		lines = append(lines, "", "// Entity fields")
		lines = append(lines, entity...)
	}

	var stamps []string
	for _, f := range systemTimestamps {
		if seenFields[f] {
			continue
		}
		seenFields[f] = true
		stamps = append(stamps, fmt.Sprintf("DEFINE FIELD %s ON %s TYPE datetime VALUE $before OR time::now();", f, t))
	}
	if len(stamps) > 0 {
		lines = append(lines, "", "// Timestamps")
		lines = append(lines, stamps...)
	}

	lines = append(lines, "", "// Indexes")
	idIndex := fmt.Sprintf("idx_%s_id", t)
	seenIndexes[idIndex] = true
	lines = append(lines, fmt.Sprintf("DEFINE INDEX %s ON %s FIELDS id;", idIndex, t))
	for _, f := range systemIndexes {
		name := fmt.Sprintf("idx_%s_%s", t, f)
		if seenIndexes[name] {
			continue
		}
		seenIndexes[name] = true
		lines = append(lines, fmt.Sprintf("DEFINE INDEX %s ON %s FIELDS %s_at;", name, t, f))
	}

	return strings.Join(lines, "\n")
}

// Down removes the table regardless of its columns.
func (op CreateTable) Down() string {
	return fmt.Sprintf("REMOVE TABLE %s;", strings.ToLower(op.Table))
}

func (op AddColumn) Up() string {
	return fmt.Sprintf("DEFINE FIELD %s ON %s TYPE %s;",
		strings.ToLower(op.Column), strings.ToLower(op.Table), naming.StorageType(op.Type))
}

func (op AddColumn) Down() string {
	return fmt.Sprintf("REMOVE FIELD %s ON %s;", strings.ToLower(op.Column), strings.ToLower(op.Table))
}

func (op RemoveColumn) Up() string {
	return fmt.Sprintf("REMOVE FIELD %s ON %s;", strings.ToLower(op.Column), strings.ToLower(op.Table))
}

func (op RemoveColumn) Down() string {
	return fmt.Sprintf("DEFINE FIELD %s ON %s TYPE %s;",
		strings.ToLower(op.Column), strings.ToLower(op.Table), naming.StorageString)
}

func (op RenameColumn) Up() string {
	return renameStatements(op.Table, op.Old, op.New)
}

func (op RenameColumn) Down() string {
	return renameStatements(op.Table, op.New, op.Old)
}

func renameStatements(table, from, to string) string {
	table, from, to = strings.ToLower(table), strings.ToLower(from), strings.ToLower(to)
	return strings.Join([]string{
		fmt.Sprintf("DEFINE FIELD %s ON %s TYPE %s;", to, table, naming.StorageString),
		fmt.Sprintf("UPDATE %s SET %s = %s;", table, to, from),
		fmt.Sprintf("REMOVE FIELD %s ON %s;", from, table),
	}, "\n")
}

func (op AddIndex) columns() []string {
	cols := make([]string, len(op.Columns))
	for i, c := range op.Columns {
		cols[i] = strings.ToLower(c)
	}
	return cols
}

func (op AddIndex) indexName() string {
	return fmt.Sprintf("idx_%s_%s", strings.ToLower(op.Table), strings.Join(op.columns(), "_"))
}

func (op AddIndex) Up() string {
	return fmt.Sprintf("DEFINE INDEX %s ON %s FIELDS %s;", op.indexName(), strings.ToLower(op.Table), strings.Join(op.columns(), ", "))
}

func (op AddIndex) Down() string {
	return fmt.Sprintf("REMOVE INDEX %s ON %s;", op.indexName(), strings.ToLower(op.Table))
}

func (op AddRelation) Up() string {
	from, to := strings.ToLower(op.From), strings.ToLower(op.To)
	return fmt.Sprintf("DEFINE FIELD %[2]s_id ON %[1]s TYPE record(%[2]s);\nDEFINE INDEX idx_%[1]s_%[2]s ON %[1]s FIELDS %[2]s_id;", from, to)
}

func (op AddRelation) Down() string {
	from, to := strings.ToLower(op.From), strings.ToLower(op.To)
	return fmt.Sprintf("REMOVE FIELD %[2]s_id ON %[1]s;\nREMOVE INDEX idx_%[1]s_%[2]s ON %[1]s;", from, to)
}
