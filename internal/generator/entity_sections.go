package generator

import (
	"fmt"
	"strings"

	"github.com/nebulis-dev/nebulis/internal/dsl"
	"github.com/nebulis-dev/nebulis/internal/naming"
)

const indent = "    "

// entityView is the data behind entity.rs.tmpl. Every slice holds
// pre-rendered lines or blocks in parse order.
type entityView struct {
	Name            string
	Imports         []string
	Fields          []string
	Relations       []string
	Inits           []string
	InputFields     []string
	FilterFields    []string
	RelationFilters []string
	SortFields      []string
}

func newEntityView(pascal string, def *dsl.Definition) entityView {
	v := entityView{Name: pascal}

	seenImports := make(map[string]bool)
	for _, r := range def.Relations {
		imp := relationImport(r)
		if !seenImports[imp] {
			seenImports[imp] = true
			v.Imports = append(v.Imports, imp)
		}
	}

	for _, f := range def.Fields {
		v.Fields = append(v.Fields, fieldBlock(f))
		v.Inits = append(v.Inits, f.Name+": Default::default()")
		v.InputFields = append(v.InputFields, inputField(f))
		v.FilterFields = append(v.FilterFields, filterField(f))
		v.SortFields = append(v.SortFields, naming.Pascal(f.Name))
	}

	for _, r := range def.Relations {
		v.Relations = append(v.Relations, relationField(r))
		v.Inits = append(v.Inits, relationInits(r)...)
		v.RelationFilters = append(v.RelationFilters, relationFilter(r))
	}

	return v
}

// validationAttrs renders one attribute per rule, in fixed order.
func validationAttrs(spec dsl.ValidationSpec) []string {
	var attrs []string
	if spec.Required {
		attrs = append(attrs, "#[validate(required)]")
	}
	if spec.Unique {
		attrs = append(attrs, `#[validate(custom = "validate_unique")]`)
	}
	if spec.Email {
		attrs = append(attrs, "#[validate(email)]")
	}
	if spec.URL {
		attrs = append(attrs, "#[validate(url)]")
	}
	if spec.Min != nil {
		attrs = append(attrs, fmt.Sprintf(`#[validate(range(min = "%s"))]`, *spec.Min))
	}
	if spec.Max != nil {
		attrs = append(attrs, fmt.Sprintf(`#[validate(range(max = "%s"))]`, *spec.Max))
	}
	if spec.MinLength != nil {
		attrs = append(attrs, fmt.Sprintf("#[validate(length(min = %d))]", *spec.MinLength))
	}
	if spec.MaxLength != nil {
		attrs = append(attrs, fmt.Sprintf("#[validate(length(max = %d))]", *spec.MaxLength))
	}
	if spec.Pattern != nil {
		attrs = append(attrs, fmt.Sprintf(`#[validate(regex(path = "%s"))]`, *spec.Pattern))
	}
	return attrs
}

func fieldBlock(f dsl.Field) string {
	var b strings.Builder
	for _, attr := range validationAttrs(f.Validation) {
		b.WriteString(indent + attr + "\n")
	}
	fmt.Fprintf(&b, "%spub %s: %s,", indent, f.Name, f.Type)
	return b.String()
}

// inputField carries over only the required rule.
func inputField(f dsl.Field) string {
	line := fmt.Sprintf("%spub %s: %s,", indent, f.Name, f.Type)
	if f.Validation.Required {
		return indent + "#[validate(required)]\n" + line
	}
	return line
}

func filterField(f dsl.Field) string {
	switch {
	case f.Type == "String":
		return fmt.Sprintf("%spub %s_contains: Option<String>,", indent, f.Name)
	case naming.IsInteger(f.Type):
		return fmt.Sprintf("%spub %s_min: Option<%s>,\n%spub %s_max: Option<%s>,",
			indent, f.Name, f.Type, indent, f.Name, f.Type)
	case f.Type == "bool":
		return fmt.Sprintf("%spub %s: Option<bool>,", indent, f.Name)
	default:
		return fmt.Sprintf("%spub %s: Option<%s>,", indent, f.Name, f.Type)
	}
}

// relationKey is the field and module name derived from a relation target.
func relationKey(r dsl.Relation) string {
	return naming.Snake(r.Target())
}

func relationImport(r dsl.Relation) string {
	return fmt.Sprintf("use crate::entities::%s::%s;", relationKey(r), r.Target())
}

func relationField(r dsl.Relation) string {
	key := relationKey(r)
	switch r := r.(type) {
	case dsl.HasOne:
		return fmt.Sprintf("%spub %s: Option<%s>,", indent, key, r.To)
	case dsl.HasMany:
		return fmt.Sprintf("%spub %s: Vec<%s>,", indent, key, r.To)
	case dsl.BelongsTo:
		return fmt.Sprintf("%spub %s_id: ID,\n%spub %s: Option<%s>,", indent, key, indent, key, r.To)
	default:
		panic(fmt.Sprintf("generator: unhandled relation %T", r))
	}
}

func relationInits(r dsl.Relation) []string {
	key := relationKey(r)
	switch r.(type) {
	case dsl.HasOne:
		return []string{key + ": None"}
	case dsl.HasMany:
		return []string{key + ": Vec::new()"}
	case dsl.BelongsTo:
		return []string{key + "_id: ID::default()", key + ": None"}
	default:
		panic(fmt.Sprintf("generator: unhandled relation %T", r))
	}
}

func relationFilter(r dsl.Relation) string {
	key := relationKey(r)
	switch r.(type) {
	case dsl.HasOne, dsl.BelongsTo:
		return fmt.Sprintf("%spub has_%s: Option<bool>,", indent, key)
	case dsl.HasMany:
		return fmt.Sprintf("%spub has_%s: Option<bool>,\n%spub %s_count_min: Option<i32>,\n%spub %s_count_max: Option<i32>,",
			indent, key, indent, key, indent, key)
	default:
		panic(fmt.Sprintf("generator: unhandled relation %T", r))
	}
}
