package naming

// Schema storage types emitted into migration files.
const (
	StorageString   = "string"
	StorageInt      = "int"
	StorageFloat    = "float"
	StorageBool     = "bool"
	StorageDatetime = "datetime"
)

var storageTypes = map[string]string{
	"String":   StorageString,
	"Email":    StorageString,
	"Phone":    StorageString,
	"i32":      StorageInt,
	"i64":      StorageInt,
	"u32":      StorageInt,
	"u64":      StorageInt,
	"usize":    StorageInt,
	"f32":      StorageFloat,
	"f64":      StorageFloat,
	"bool":     StorageBool,
	"DateTime": StorageDatetime,
}

// StorageType maps a DSL type tag to its schema storage type.
// Unknown tags fall back to "string"; the DSL parser is the strict gate.
func StorageType(tag string) string {
	if t, ok := storageTypes[tag]; ok {
		return t
	}
	return StorageString
}

// IsInteger reports whether tag is one of the integer type tags.
func IsInteger(tag string) bool {
	return storageTypes[tag] == StorageInt
}
