package docstore

// FieldType enumerates the value types a schema can declare for a field.
type FieldType int

const (
	// FieldUndefined marks a field with no declared type; values pass
	// through the codec untouched.
	FieldUndefined FieldType = iota
	FieldInteger
	FieldFloat
	FieldString
	FieldBool
	FieldDate
	FieldDateTime
	FieldBinary
	// FieldDoc declares a nested document; the Field carries its own
	// sub-schema in Fields.
	FieldDoc
	// FieldList declares a list of scalars.
	FieldList
)

// Field declares one schema field: its name, its value type, and, for
// nested documents, the sub-schema of the nested fields.
type Field struct {
	Name string
	Type FieldType

	// Fields holds the sub-schema when Type is FieldDoc.
	Fields []Field
}

// Schema describes a named document type: its fields and which field is the
// document identifier. Exactly one field is the identifier per schema.
type Schema struct {
	Name    string
	IDField string
	Fields  []Field
}

// NewSchema creates a schema with the given name, identifier field and
// field declarations.
func NewSchema(name, idField string, fields []Field) *Schema {
	return &Schema{Name: name, IDField: idField, Fields: fields}
}

// FieldNamed returns the declaration for the named field, or nil if the
// schema does not declare it.
func (s *Schema) FieldNamed(name string) *Field {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

// Document is a transient, per-request value: a schema name plus a mapping
// of field name to value. Supported value types are int64, float64, string,
// bool, time.Time, []byte, map[string]interface{} (nested document) and
// []interface{} (list of scalars). A nil or absent entry means the field is
// unset.
type Document struct {
	SchemaName string
	Fields     map[string]interface{}
}

// NewDocument creates an empty document for the named schema.
func NewDocument(schemaName string) Document {
	return Document{SchemaName: schemaName, Fields: make(map[string]interface{})}
}

// ID returns the value of the identifier field according to schema, or nil
// if it is unset.
func (d Document) ID(schema *Schema) interface{} {
	if d.Fields == nil {
		return nil
	}
	return d.Fields[schema.IDField]
}

// Set assigns a field value and returns the document for chaining.
func (d Document) Set(name string, value interface{}) Document {
	if d.Fields == nil {
		d.Fields = make(map[string]interface{})
	}
	d.Fields[name] = value
	return d
}
