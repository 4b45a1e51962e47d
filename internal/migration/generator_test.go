package migration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/nebulis-dev/nebulis/internal/defs"
	"github.com/nebulis-dev/nebulis/internal/template"
)

var fixedNow = func() time.Time {
	return time.Date(2024, 3, 9, 14, 5, 7, 0, time.FixedZone("CET", 3600))
}

type stubReader struct {
	cols  []Column
	calls []string
}

func (s *stubReader) Columns(table string) []Column {
	s.calls = append(s.calls, table)
	return s.cols
}

func newTestGenerator(t *testing.T, root string, opts ...Option) *Generator {
	t.Helper()
	r, err := template.NewGeneratorRenderer()
	if err != nil {
		t.Fatalf("NewGeneratorRenderer error: %v", err)
	}
	return NewGenerator(root, r, append([]Option{WithClock(fixedNow)}, opts...)...)
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, rel))
	if err != nil {
		t.Fatalf("ReadFile(%s) error: %v", rel, err)
	}
	return string(data)
}

func TestGenerate_AddColumn(t *testing.T) {
	root := t.TempDir()
	g := newTestGenerator(t, root)

	res, err := g.Generate(context.Background(), "add_email_to_users")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if res.Version != "20240309130507" {
		t.Errorf("Version = %q, want UTC stamp 20240309130507", res.Version)
	}
	wantFiles := []string{
		"database/schema/add_email_to_users.up.surql",
		"database/schema/add_email_to_users.down.surql",
		"backend/src/migrations/add_email_to_users.rs",
	}
	if !reflect.DeepEqual(res.Files, wantFiles) {
		t.Errorf("Files = %v, want %v", res.Files, wantFiles)
	}

	if got := readFile(t, root, wantFiles[0]); got != "DEFINE FIELD email ON users TYPE string;\n" {
		t.Errorf("up = %q", got)
	}
	if got := readFile(t, root, wantFiles[1]); got != "REMOVE FIELD email ON users;\n" {
		t.Errorf("down = %q", got)
	}

	wrapper := readFile(t, root, wantFiles[2])
	for _, want := range []string{
		"pub struct AddEmailToUsers;",
		"impl Migration for AddEmailToUsers {",
		`"20240309130507"`,
		`"add_email_to_users"`,
		`fs::read_to_string("database/schema/add_email_to_users.up.surql")`,
		`fs::read_to_string("database/schema/add_email_to_users.down.surql")`,
	} {
		if !strings.Contains(wrapper, want) {
			t.Errorf("wrapper missing %q:\n%s", want, wrapper)
		}
	}

	mod := readFile(t, root, "backend/src/migrations/mod.rs")
	if mod != "pub mod add_email_to_users;\npub use add_email_to_users::*;\n" {
		t.Errorf("mod.rs = %q", mod)
	}
	if !reflect.DeepEqual(res.Aggregators, []string{"backend/src/migrations/mod.rs"}) {
		t.Errorf("Aggregators = %v", res.Aggregators)
	}
}

func TestGenerate_CreateTableReadsEntity(t *testing.T) {
	root := t.TempDir()
	reader := &stubReader{cols: []Column{{Name: "title", Type: "String"}, {Name: "views", Type: "i64"}}}
	g := newTestGenerator(t, root, WithEntityReader(reader))

	res, err := g.Generate(context.Background(), "create_posts")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if !reflect.DeepEqual(reader.calls, []string{"posts"}) {
		t.Errorf("reader calls = %v, want [posts]", reader.calls)
	}
	ct, ok := res.Operation.(CreateTable)
	if !ok || len(ct.Columns) != 2 {
		t.Fatalf("Operation = %#v, want CreateTable with 2 columns", res.Operation)
	}

	up := readFile(t, root, "database/schema/create_posts.up.surql")
	if !strings.Contains(up, "DEFINE FIELD views ON posts TYPE int;") {
		t.Errorf("up missing entity field:\n%s", up)
	}
}

func TestGenerate_CreateTableWithoutEntity(t *testing.T) {
	root := t.TempDir()
	g := newTestGenerator(t, root)

	if _, err := g.Generate(context.Background(), "orders"); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	up := readFile(t, root, "database/schema/orders.up.surql")
	if strings.Contains(up, "// Entity fields") {
		t.Errorf("unexpected entity section:\n%s", up)
	}
	if got := readFile(t, root, "database/schema/orders.down.surql"); got != "REMOVE TABLE orders;\n" {
		t.Errorf("down = %q", got)
	}
}

func TestGenerate_SchemaExt(t *testing.T) {
	root := t.TempDir()
	g := newTestGenerator(t, root, WithSchemaExt(".sql"))

	res, err := g.Generate(context.Background(), "create_tags")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if res.Files[0] != "database/schema/create_tags.up.sql" {
		t.Errorf("up path = %q", res.Files[0])
	}
}

func TestGenerate_InvalidNameWritesNothing(t *testing.T) {
	root := t.TempDir()
	g := newTestGenerator(t, root)

	_, err := g.Generate(context.Background(), "do_something_odd")
	if !errors.Is(err, ErrInvalidMigrationName) {
		t.Fatalf("Generate() error = %v, want ErrInvalidMigrationName", err)
	}
	if _, statErr := os.Stat(filepath.Join(root, defs.SchemaDir)); statErr == nil {
		t.Error("schema directory created for an invalid name")
	}
}

func TestGenerate_Repeat(t *testing.T) {
	root := t.TempDir()
	g := newTestGenerator(t, root)
	ctx := context.Background()

	if _, err := g.Generate(ctx, "create_users"); err != nil {
		t.Fatal(err)
	}
	res, err := g.Generate(ctx, "create_users")
	if err != nil {
		t.Fatalf("second Generate() error: %v", err)
	}
	if len(res.Aggregators) != 0 {
		t.Errorf("Aggregators = %v, want none on repeat", res.Aggregators)
	}
	mod := readFile(t, root, "backend/src/migrations/mod.rs")
	if strings.Count(mod, "pub mod create_users;") != 1 {
		t.Errorf("mod.rs declares create_users more than once:\n%s", mod)
	}
}

func TestGenerate_Canceled(t *testing.T) {
	root := t.TempDir()
	g := newTestGenerator(t, root)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := g.Generate(ctx, "create_users"); !errors.Is(err, context.Canceled) {
		t.Fatalf("Generate() error = %v, want context.Canceled", err)
	}
}
