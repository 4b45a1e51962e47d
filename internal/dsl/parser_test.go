package dsl

import (
	"errors"
	"strings"
	"testing"
)

func TestParse_Fields(t *testing.T) {
	def, err := Parse([]string{"title:String|required minLength=3, views:i64", "published:bool"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(def.Fields) != 3 {
		t.Fatalf("len(Fields) = %d, want 3", len(def.Fields))
	}
	if len(def.Relations) != 0 {
		t.Errorf("len(Relations) = %d, want 0", len(def.Relations))
	}

	wantNames := []string{"title", "views", "published"}
	wantTypes := []string{"String", "i64", "bool"}
	for i, f := range def.Fields {
		if f.Name != wantNames[i] || f.Type != wantTypes[i] {
			t.Errorf("Fields[%d] = %s:%s, want %s:%s", i, f.Name, f.Type, wantNames[i], wantTypes[i])
		}
	}

	title := def.Fields[0].Validation
	if !title.Required {
		t.Error("title should be required")
	}
	if title.MinLength == nil || *title.MinLength != 3 {
		t.Errorf("title MinLength = %v, want 3", title.MinLength)
	}
	if def.Fields[1].Validation != (ValidationSpec{}) {
		t.Error("views should carry no validation")
	}
}

func TestParse_Relations(t *testing.T) {
	def, err := Parse([]string{"hasMany->Comment, belongsTo -> User", "hasOne->Profile"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := []Relation{HasMany{To: "Comment"}, BelongsTo{To: "User"}, HasOne{To: "Profile"}}
	if len(def.Relations) != len(want) {
		t.Fatalf("len(Relations) = %d, want %d", len(def.Relations), len(want))
	}
	for i, r := range def.Relations {
		if r != want[i] {
			t.Errorf("Relations[%d] = %#v, want %#v", i, r, want[i])
		}
	}
}

func TestParse_RelationKeywordIsExact(t *testing.T) {
	for _, keyword := range []string{"HasMany", "hasmany", "many", "has_many"} {
		t.Run(keyword, func(t *testing.T) {
			_, err := Parse([]string{keyword + "->Comment"})
			if !errors.Is(err, ErrInvalidRelationType) {
				t.Fatalf("Parse() error = %v, want ErrInvalidRelationType", err)
			}
			if !strings.Contains(err.Error(), keyword) {
				t.Errorf("error %q does not name %q", err, keyword)
			}
		})
	}
}

func TestParse_RelationFormat(t *testing.T) {
	_, err := Parse([]string{"hasMany->Comment->Reply"})
	if !errors.Is(err, ErrInvalidRelationFormat) {
		t.Fatalf("Parse() error = %v, want ErrInvalidRelationFormat", err)
	}
}

func TestParse_InvalidType(t *testing.T) {
	for _, tag := range []string{"string", "Integer", "DateTime<Utc>", "Vec<i32>"} {
		t.Run(tag, func(t *testing.T) {
			_, err := Parse([]string{"field:" + tag})
			if !errors.Is(err, ErrInvalidType) {
				t.Fatalf("Parse() error = %v, want ErrInvalidType", err)
			}
			msg := err.Error()
			if !strings.Contains(msg, tag) {
				t.Errorf("error %q does not name %q", msg, tag)
			}
			for _, valid := range ValidTypes {
				if !strings.Contains(msg, valid) {
					t.Errorf("error does not list valid type %q", valid)
				}
			}
		})
	}
}

func TestParse_InvalidFieldFormat(t *testing.T) {
	_, err := Parse([]string{"title String"})
	if !errors.Is(err, ErrInvalidFieldFormat) {
		t.Fatalf("Parse() error = %v, want ErrInvalidFieldFormat", err)
	}
	if !strings.Contains(err.Error(), "name:type|validation1 validation2") {
		t.Errorf("error %q lacks the expected-format example", err)
	}

	var se *SyntaxError
	if !errors.As(err, &se) || se.Token != "title String" {
		t.Errorf("SyntaxError token = %v, want %q", se, "title String")
	}
}

func TestParse_FirstErrorAborts(t *testing.T) {
	def, err := Parse([]string{"title:String", "body:Text", "hasMany->Comment"})
	if err == nil {
		t.Fatal("Parse() expected error")
	}
	if def != nil {
		t.Errorf("Parse() returned partial definition %+v", def)
	}
}

func TestParse_UnknownRuleInFieldGroup(t *testing.T) {
	_, err := Parse([]string{"title:String|required title_length title:minLength=3"})
	if !errors.Is(err, ErrUnknownRule) {
		t.Fatalf("Parse() error = %v, want ErrUnknownRule", err)
	}
	if !strings.Contains(err.Error(), "title_length") {
		t.Errorf("error %q does not name title_length", err)
	}
}

func TestParse_EmptyGroups(t *testing.T) {
	def, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error = %v", err)
	}
	if len(def.Fields) != 0 || len(def.Relations) != 0 {
		t.Errorf("Parse(nil) = %+v, want empty", def)
	}
}

func TestParse_RelationMissingTarget(t *testing.T) {
	for _, unit := range []string{"hasMany->  ", "hasOne->!!", "belongsTo->-_-"} {
		t.Run(unit, func(t *testing.T) {
			_, err := Parse([]string{unit})
			if !errors.Is(err, ErrInvalidRelationFormat) {
				t.Fatalf("Parse(%q) error = %v, want ErrInvalidRelationFormat", unit, err)
			}
			keyword, _, _ := strings.Cut(unit, "->")
			if !strings.Contains(err.Error(), keyword+" needs a target entity name") {
				t.Errorf("error %q does not name the %s keyword", err, keyword)
			}
		})
	}
}

func TestParse_ColonAfterType(t *testing.T) {
	def, err := Parse([]string{"code:String|pattern=^a:b$"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if p := def.Fields[0].Validation.Pattern; p == nil || *p != "^a:b$" {
		t.Errorf("pattern = %v, want ^a:b$", p)
	}

	if _, err := Parse([]string{"a:String:x"}); !errors.Is(err, ErrInvalidType) {
		t.Errorf("Parse(a:String:x) error = %v, want ErrInvalidType", err)
	}
}
