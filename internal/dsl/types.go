package dsl

import "slices"

// ValidTypes is the closed set of field type tags, in display order.
var ValidTypes = []string{
	"String", "i32", "i64", "f32", "f64", "bool", "DateTime",
	"Vec<String>", "Option<String>", "u32", "u64", "usize",
	"Email", "Phone", "Url", "Password", "Json", "Money", "Uuid", "Slug",
	"HasOne", "HasMany", "BelongsTo",
	"Status", "Role",
}

// IsValidType reports whether tag belongs to ValidTypes.
func IsValidType(tag string) bool {
	return slices.Contains(ValidTypes, tag)
}

// Field is one parsed `name:Type|rules` unit. Name and Type are kept verbatim.
type Field struct {
	Name       string
	Type       string
	Validation ValidationSpec
}

// ValidationSpec collects the rules attached to a field. The zero value has
// every rule absent. Rules are independent; contradictory combinations are
// accepted.
type ValidationSpec struct {
	Required bool
	Unique   bool
	Email    bool
	URL      bool

	MinLength *uint64
	MaxLength *uint64

	// Min, Max and Pattern hold the raw text after '='.
	Min     *string
	Max     *string
	Pattern *string
}

// Relation is one of HasOne, HasMany or BelongsTo.
type Relation interface {
	// Target returns the related entity name as written, trimmed.
	Target() string
	// Keyword returns the DSL keyword that produced the relation.
	Keyword() string

	relation()
}

// HasOne is an optional single reference to Target.
type HasOne struct{ To string }

// HasMany is an ordered collection of references to Target.
type HasMany struct{ To string }

// BelongsTo is a foreign key to Target plus an optional resolved reference.
type BelongsTo struct{ To string }

func (r HasOne) Target() string    { return r.To }
func (r HasMany) Target() string   { return r.To }
func (r BelongsTo) Target() string { return r.To }

func (HasOne) Keyword() string    { return "hasOne" }
func (HasMany) Keyword() string   { return "hasMany" }
func (BelongsTo) Keyword() string { return "belongsTo" }

func (HasOne) relation()    {}
func (HasMany) relation()   {}
func (BelongsTo) relation() {}

// Definition is the result of parsing every field group of one entity.
// Fields and Relations keep their textual order.
type Definition struct {
	Fields    []Field
	Relations []Relation
}
