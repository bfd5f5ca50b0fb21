package riak

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/docbridge/docbridge/pkg/docstore"
)

const (
	// matchAllQuery is the wildcard match-all token of the query grammar.
	matchAllQuery = "*:*"

	// nullSentinel stands in for an explicit null; registers have no
	// native null representation.
	nullSentinel = "$nil"

	// presentToken matches any indexed value of a field.
	presentToken = "[* TO *]"
)

// rawValue marks a query value as pre-escaped: the compiler emits it
// verbatim instead of quoting and escaping it. Used for values the
// compiler itself synthesized (wildcard patterns, presence ranges).
type rawValue string

// CompileConditions translates a condition list into query text for the
// search index. A list is an implicit AND; an empty list matches all
// documents. The translation is pure: identical trees always compile to
// identical text.
func CompileConditions(conditions []docstore.Condition) string {
	switch len(conditions) {
	case 0:
		return matchAllQuery
	case 1:
		return compileCondition(conditions[0])
	default:
		return compileGroup(conditions, " AND ")
	}
}

func compileGroup(conditions []docstore.Condition, separator string) string {
	parts := make([]string, len(conditions))
	for i, c := range conditions {
		parts[i] = compileCondition(c)
	}
	return "(" + strings.Join(parts, separator) + ")"
}

func compileCondition(cond docstore.Condition) string {
	switch c := cond.(type) {
	case docstore.And:
		if len(c) == 0 {
			return matchAllQuery
		}
		return compileGroup(c, " AND ")

	case docstore.Or:
		if len(c) == 0 {
			return matchAllQuery
		}
		return compileGroup(c, " OR ")

	case docstore.Not:
		return "(NOT " + compileCondition(c.Cond) + ")"

	case docstore.Eq:
		return compileEquality(queryFieldPath(c.Field), c.Value)

	case docstore.Compare:
		return compileCompare(c)

	case docstore.IsNull:
		// Absent fields have no indexed value at all, explicit nulls hold
		// the sentinel; match either.
		return compileCondition(docstore.Or{
			docstore.Eq{Field: c.Field, Value: nullSentinel},
			docstore.Not{Cond: docstore.Eq{Field: c.Field, Value: rawValue(presentToken)}},
		})

	case docstore.IsNotNull:
		return compileCondition(docstore.And{
			docstore.Eq{Field: c.Field, Value: rawValue(presentToken)},
			docstore.Compare{Field: c.Field, Op: docstore.OpNotEqual, Value: nullSentinel},
		})
	}

	// The condition grammar is closed; nothing else reaches here.
	return matchAllQuery
}

func compileCompare(c docstore.Compare) string {
	path := queryFieldPath(c.Field)

	switch c.Op {
	case docstore.OpLessThan:
		return path + ":{* TO " + escapeRange(scalarText(c.Value)) + "}"
	case docstore.OpLessOrEqual:
		return path + ":[* TO " + escapeRange(scalarText(c.Value)) + "]"
	case docstore.OpGreaterThan:
		return path + ":{" + escapeRange(scalarText(c.Value)) + " TO *}"
	case docstore.OpGreaterOrEqual:
		return path + ":[" + escapeRange(scalarText(c.Value)) + " TO *]"
	case docstore.OpEqual:
		return compileEquality(path, c.Value)
	case docstore.OpNotEqual:
		// Negated field address, not NOT(...). Bare negated clauses and
		// NOT over a compound clause differ for multi-valued fields;
		// callers depend on this exact form.
		return compileEquality("-"+path, c.Value)
	case docstore.OpLike:
		return path + ":" + escapeLike(scalarText(c.Value))
	}

	return compileEquality(path, c.Value)
}

// compileEquality emits a field address with a quoted, escaped literal, or
// the verbatim text for pre-escaped values.
func compileEquality(path string, value interface{}) string {
	if raw, ok := value.(rawValue); ok {
		return path + ":" + string(raw)
	}
	return path + ":" + quoteLiteral(scalarText(value))
}

// rangeReserved is the query grammar's reserved set for range boundaries.
const rangeReserved = `+-&|!(){}[]^"~*?:\`

// escapeRange backslash-escapes the grammar's reserved characters in a
// range boundary value.
func escapeRange(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(rangeReserved, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// quoteLiteral wraps a value in double quotes, backslash-escaping embedded
// quotes and backslashes.
func quoteLiteral(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

// escapeLike translates %-wildcards to engine wildcards and escapes only
// whitespace and backslashes. Wildcards must survive unescaped, so the
// result is emitted raw.
func escapeLike(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '%':
			b.WriteByte('*')
		case r == '\\':
			b.WriteString(`\\`)
		case unicode.IsSpace(r):
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// scalarText renders a scalar value in its canonical text form, shared by
// the query compiler and the codec's register serialization.
func scalarText(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return nullSentinel
	case string:
		return v
	case []byte:
		return string(v)
	case rawValue:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}
