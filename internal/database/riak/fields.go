package riak

import (
	"strings"

	"github.com/docbridge/docbridge/pkg/docstore"
)

// Storage field names carry a type suffix so the search index routes each
// field to the correct typed clause.
const (
	suffixRegister = "_register"
	suffixMap      = "_map"
	suffixSet      = "_set"
	suffixCounter  = "_counter"
	suffixFlag     = "_flag"
)

// typeSuffixes is ordered longest-first so stripping is longest-match.
var typeSuffixes = []string{suffixRegister, suffixCounter, suffixFlag, suffixMap, suffixSet}

// stripFieldSuffix recovers a field name from its storage name. Stripping is
// anchored to the trailing suffix only; a suffix token appearing elsewhere in
// the name is a legitimate substring and stays untouched.
func stripFieldSuffix(name string) string {
	for _, suffix := range typeSuffixes {
		if strings.HasSuffix(name, suffix) && len(name) > len(suffix) {
			return name[:len(name)-len(suffix)]
		}
	}
	return name
}

// storageSuffix returns the suffix a declared field type stores under.
func storageSuffix(t docstore.FieldType) string {
	switch t {
	case docstore.FieldDoc:
		return suffixMap
	case docstore.FieldList:
		return suffixSet
	default:
		return suffixRegister
	}
}

// queryFieldPath translates a dotted field path into the search index's
// nested addressing: "a.b.c" becomes "a_map.b_map.c_register".
func queryFieldPath(path string) string {
	segments := strings.Split(path, ".")
	for i := range segments {
		if i == len(segments)-1 {
			segments[i] += suffixRegister
		} else {
			segments[i] += suffixMap
		}
	}
	return strings.Join(segments, ".")
}

// nameTable is the bidirectional field-name mapping for one schema: document
// field name to storage name and back. Unknown storage names fall back to
// anchored suffix stripping, so fields a schema stopped declaring still
// decode.
type nameTable struct {
	schema      *docstore.Schema
	toStorage   map[string]string
	fromStorage map[string]string
}

// newNameTable builds the mapping from the schema's declared fields.
func newNameTable(schema *docstore.Schema) *nameTable {
	t := &nameTable{
		schema:      schema,
		toStorage:   make(map[string]string, len(schema.Fields)),
		fromStorage: make(map[string]string, len(schema.Fields)),
	}
	for _, f := range schema.Fields {
		storage := f.Name + storageSuffix(f.Type)
		t.toStorage[f.Name] = storage
		t.fromStorage[storage] = f.Name
	}
	return t
}

// storageName returns the storage name for a document field.
func (t *nameTable) storageName(field string) string {
	if storage, ok := t.toStorage[field]; ok {
		return storage
	}
	return field + suffixRegister
}

// fieldName returns the document field name for a storage name.
func (t *nameTable) fieldName(storage string) string {
	if field, ok := t.fromStorage[storage]; ok {
		return field
	}
	return stripFieldSuffix(storage)
}
