package migration

import (
	"fmt"
	"strings"

	"github.com/nebulis-dev/nebulis/internal/naming"
)

// DefaultColumnType is the type tag used by `add <field> to <table>`.
const DefaultColumnType = "String"

// Infer derives an Operation from a migration name. The name is normalized
// with naming.Snake and matched against these shapes, first match wins:
//
//	create <table>
//	add <field> to <table>
//	remove <field> from <table>
//	rename <old> to <new> on <table>
//	add index on <table> fields <field>...
//	add relation <from> to <to>
//	<table>                       (pluralized)
func Infer(name string) (Operation, error) {
	snake := naming.Snake(name)
	if snake == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMigrationName, name)
	}
	t := strings.Split(snake, "_")

	switch {
	case len(t) == 2 && t[0] == "create":
		return CreateTable{Table: t[1]}, nil
	case len(t) == 4 && t[0] == "add" && t[2] == "to":
		return AddColumn{Table: t[3], Column: t[1], Type: DefaultColumnType}, nil
	case len(t) == 4 && t[0] == "remove" && t[2] == "from":
		return RemoveColumn{Table: t[3], Column: t[1]}, nil
	case len(t) == 6 && t[0] == "rename" && t[2] == "to" && t[4] == "on":
		return RenameColumn{Table: t[5], Old: t[1], New: t[3]}, nil
	case len(t) >= 6 && t[0] == "add" && t[1] == "index" && t[2] == "on" && t[4] == "fields":
		return AddIndex{Table: t[3], Columns: append([]string(nil), t[5:]...)}, nil
	case len(t) == 5 && t[0] == "add" && t[1] == "relation" && t[3] == "to":
		return AddRelation{From: t[2], To: t[4]}, nil
	case len(t) == 1:
		return CreateTable{Table: naming.Plural(t[0])}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrInvalidMigrationName, name)
}
