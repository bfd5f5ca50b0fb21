package riak

import (
	"fmt"
	"strconv"
	"time"

	"github.com/docbridge/docbridge/pkg/docstore"
)

// dateLayout is the textual form of date-only values ("sleep" transform).
const dateLayout = "2006-01-02"

// codec translates documents of one schema to and from the wide-column map
// representation. Values the storage engine cannot hold natively (dates,
// numbers, booleans, nulls) sleep as register text and wake up through the
// schema's declared types.
type codec struct {
	schema *docstore.Schema
	names  *nameTable
}

func newCodec(schema *docstore.Schema, names *nameTable) *codec {
	return &codec{schema: schema, names: names}
}

// Encode produces the map update that persists doc. Declared-but-unset
// fields become the null sentinel register; the identifier field is never
// sentineled.
func (c *codec) Encode(doc docstore.Document) (*MapUpdate, error) {
	update := NewMapUpdate()

	for _, field := range c.schema.Fields {
		var value interface{}
		if doc.Fields != nil {
			value = doc.Fields[field.Name]
		}

		if value == nil {
			if field.Name == c.schema.IDField {
				continue
			}
			// a sentinel is always a register, whatever the declared type
			update.SetRegister(field.Name+suffixRegister, []byte(nullSentinel))
			continue
		}

		if err := encodeField(update, field, value); err != nil {
			return nil, err
		}
	}

	return update, nil
}

func encodeField(update *MapUpdate, field docstore.Field, value interface{}) error {
	switch field.Type {
	case docstore.FieldDoc:
		nested, ok := value.(map[string]interface{})
		if !ok {
			return fmt.Errorf("field %s: expected nested document, got %T", field.Name, value)
		}
		child := update.Map(field.Name + suffixMap)
		for _, sub := range field.Fields {
			subValue := nested[sub.Name]
			if subValue == nil {
				child.SetRegister(sub.Name+suffixRegister, []byte(nullSentinel))
				continue
			}
			if err := encodeField(child, sub, subValue); err != nil {
				return err
			}
		}
		return nil

	case docstore.FieldList:
		items, ok := value.([]interface{})
		if !ok {
			return fmt.Errorf("field %s: expected list of scalars, got %T", field.Name, value)
		}
		name := field.Name + suffixSet
		for _, item := range items {
			update.AddToSet(name, []byte(scalarText(item)))
		}
		return nil

	default:
		update.SetRegister(field.Name+suffixRegister, sleepScalar(field.Type, value))
		return nil
	}
}

// sleepScalar serializes one scalar into register text.
func sleepScalar(t docstore.FieldType, value interface{}) []byte {
	switch t {
	case docstore.FieldDate:
		if tv, ok := value.(time.Time); ok {
			return []byte(tv.Format(dateLayout))
		}
	case docstore.FieldDateTime:
		if tv, ok := value.(time.Time); ok {
			return []byte(tv.UTC().Format(time.RFC3339))
		}
	case docstore.FieldBinary:
		if b, ok := value.([]byte); ok {
			return b
		}
	}
	return []byte(scalarText(value))
}

// Decode converts a fetched map value back into a document. The key the
// value was stored under becomes the identifier field.
func (c *codec) Decode(key string, value *MapValue) (docstore.Document, error) {
	doc := docstore.NewDocument(c.schema.Name)

	fields, err := c.decodeMap(value, c.schema.Fields)
	if err != nil {
		return doc, err
	}
	doc.Fields = fields

	if key != "" {
		doc.Fields[c.schema.IDField] = key
	}

	return doc, nil
}

// decodeMap walks one level of the map value, recovering field names from
// their storage names and waking scalar text back into declared types.
func (c *codec) decodeMap(value *MapValue, declared []docstore.Field) (map[string]interface{}, error) {
	out := make(map[string]interface{})

	for storage, raw := range value.Registers {
		field := c.names.fieldName(storage)
		text := string(raw)
		if text == nullSentinel {
			// explicit null sleeps as the sentinel; wake up as absent
			continue
		}
		woken, err := c.wakeupScalar(findField(declared, field), field, text)
		if err != nil {
			return nil, err
		}
		out[field] = woken
	}

	for storage, members := range value.Sets {
		field := c.names.fieldName(storage)
		items := make([]interface{}, 0, len(members))
		for _, member := range members {
			items = append(items, string(member))
		}
		out[field] = items
	}

	for storage, nested := range value.Maps {
		field := c.names.fieldName(storage)
		var subDeclared []docstore.Field
		if decl := findField(declared, field); decl != nil {
			subDeclared = decl.Fields
		}
		sub, err := c.decodeMap(nested, subDeclared)
		if err != nil {
			return nil, err
		}
		out[field] = sub
	}

	for storage, count := range value.Counters {
		field := c.names.fieldName(storage)
		if decl := findField(declared, field); decl != nil && decl.Type == docstore.FieldInteger {
			out[field] = count
			continue
		}
		out[field] = strconv.FormatInt(count, 10)
	}

	for storage, flag := range value.Flags {
		out[c.names.fieldName(storage)] = flag
	}

	return out, nil
}

// wakeupScalar coerces register text back into the declared field type.
// Text that does not parse as its declared type is a decode error, not a
// silent pass-through.
func (c *codec) wakeupScalar(declared *docstore.Field, name, text string) (interface{}, error) {
	if declared == nil {
		return text, nil
	}

	switch declared.Type {
	case docstore.FieldDate:
		if t, err := time.Parse(dateLayout, text); err == nil {
			return t, nil
		}
		// a datetime slept into a date field drops its time component
		t, err := time.Parse(time.RFC3339, text)
		if err != nil {
			return nil, docstore.NewDecodeError(c.schema.Name, name, err)
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil

	case docstore.FieldDateTime:
		t, err := time.Parse(time.RFC3339, text)
		if err != nil {
			return nil, docstore.NewDecodeError(c.schema.Name, name, err)
		}
		return t, nil

	case docstore.FieldInteger:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, docstore.NewDecodeError(c.schema.Name, name, err)
		}
		return n, nil

	case docstore.FieldFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, docstore.NewDecodeError(c.schema.Name, name, err)
		}
		return f, nil

	case docstore.FieldBool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, docstore.NewDecodeError(c.schema.Name, name, err)
		}
		return b, nil

	case docstore.FieldBinary:
		return []byte(text), nil
	}

	return text, nil
}

func findField(fields []docstore.Field, name string) *docstore.Field {
	for i := range fields {
		if fields[i].Name == name {
			return &fields[i]
		}
	}
	return nil
}
