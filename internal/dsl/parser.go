package dsl

import (
	"strings"

	"github.com/nebulis-dev/nebulis/internal/naming"
)

const (
	relationSep = "->"
	fieldFormat = "Expected format: name:type|validation1 validation2"
)

// Parse parses field groups into a Definition. Each group may hold several
// comma-separated units. The first error aborts the parse and no partial
// Definition is returned.
func Parse(groups []string) (*Definition, error) {
	def := &Definition{}
	for _, group := range groups {
		for _, unit := range strings.Split(group, ",") {
			if strings.Contains(unit, relationSep) {
				rel, err := parseRelation(unit)
				if err != nil {
					return nil, err
				}
				def.Relations = append(def.Relations, rel)
				continue
			}

			field, err := parseField(unit)
			if err != nil {
				return nil, err
			}
			def.Fields = append(def.Fields, field)
		}
	}
	return def, nil
}

func parseRelation(unit string) (Relation, error) {
	parts := strings.Split(unit, relationSep)
	if len(parts) != 2 {
		return nil, syntaxErr(ErrInvalidRelationFormat, strings.TrimSpace(unit), "")
	}

	keyword := strings.TrimSpace(parts[0])
	target := strings.TrimSpace(parts[1])

	var rel Relation
	switch keyword {
	case "hasOne":
		rel = HasOne{To: target}
	case "hasMany":
		rel = HasMany{To: target}
	case "belongsTo":
		rel = BelongsTo{To: target}
	default:
		return nil, syntaxErr(ErrInvalidRelationType, keyword, "")
	}

	if naming.Snake(target) == "" {
		return nil, syntaxErr(ErrInvalidRelationFormat, strings.TrimSpace(unit),
			rel.Keyword()+" needs a target entity name with letters or digits")
	}
	return rel, nil
}

func parseField(unit string) (Field, error) {
	// Only the first ':' separates name from type. A later ':' stays in the
	// remainder: inside a rule value it is kept (pattern=^a:b$), before the
	// '|' it makes the type tag unknown.
	name, rest, ok := strings.Cut(unit, ":")
	if !ok {
		return Field{}, syntaxErr(ErrInvalidFieldFormat, strings.TrimSpace(unit), fieldFormat)
	}

	name = strings.TrimSpace(name)
	typ, rules, _ := strings.Cut(rest, "|")
	typ = strings.TrimSpace(typ)
	if !IsValidType(typ) {
		return Field{}, syntaxErr(ErrInvalidType, typ, "Valid types are: "+strings.Join(ValidTypes, ", "))
	}

	spec, err := CompileRules(strings.Fields(rules))
	if err != nil {
		return Field{}, err
	}
	return Field{Name: name, Type: typ, Validation: spec}, nil
}
