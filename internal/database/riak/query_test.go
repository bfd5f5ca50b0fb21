package riak

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docbridge/docbridge/pkg/docstore"
)

func TestCompileConditions(t *testing.T) {
	tests := []struct {
		name       string
		conditions []docstore.Condition
		expected   string
	}{
		{
			name:       "empty list matches all",
			conditions: nil,
			expected:   "*:*",
		},
		{
			name:       "equality",
			conditions: []docstore.Condition{docstore.Eq{Field: "name", Value: "Alice"}},
			expected:   `name_register:"Alice"`,
		},
		{
			name:       "equality on nested path",
			conditions: []docstore.Condition{docstore.Eq{Field: "address.city", Value: "Oslo"}},
			expected:   `address_map.city_register:"Oslo"`,
		},
		{
			name:       "less than is an open range",
			conditions: []docstore.Condition{docstore.Compare{Field: "age", Op: docstore.OpLessThan, Value: 30}},
			expected:   `age_register:{* TO 30}`,
		},
		{
			name:       "less or equal is a closed range",
			conditions: []docstore.Condition{docstore.Compare{Field: "age", Op: docstore.OpLessOrEqual, Value: 30}},
			expected:   `age_register:[* TO 30]`,
		},
		{
			name:       "greater than is an open range",
			conditions: []docstore.Condition{docstore.Compare{Field: "age", Op: docstore.OpGreaterThan, Value: 30}},
			expected:   `age_register:{30 TO *}`,
		},
		{
			name:       "greater or equal is a closed range",
			conditions: []docstore.Condition{docstore.Compare{Field: "age", Op: docstore.OpGreaterOrEqual, Value: 30}},
			expected:   `age_register:[30 TO *]`,
		},
		{
			name:       "not equal negates the field address",
			conditions: []docstore.Condition{docstore.Compare{Field: "status", Op: docstore.OpNotEqual, Value: "archived"}},
			expected:   `-status_register:"archived"`,
		},
		{
			name:       "like translates percent wildcards",
			conditions: []docstore.Condition{docstore.Compare{Field: "name", Op: docstore.OpLike, Value: "jo%n"}},
			expected:   `name_register:jo*n`,
		},
		{
			name:       "like escapes whitespace",
			conditions: []docstore.Condition{docstore.Compare{Field: "name", Op: docstore.OpLike, Value: "jo doe%"}},
			expected:   `name_register:jo\ doe*`,
		},
		{
			name: "list is an implicit AND",
			conditions: []docstore.Condition{
				docstore.Eq{Field: "a", Value: "1"},
				docstore.Eq{Field: "b", Value: "2"},
			},
			expected: `(a_register:"1" AND b_register:"2")`,
		},
		{
			name: "or group",
			conditions: []docstore.Condition{docstore.Or{
				docstore.Eq{Field: "a", Value: "1"},
				docstore.Eq{Field: "b", Value: "2"},
			}},
			expected: `(a_register:"1" OR b_register:"2")`,
		},
		{
			name:       "not wraps its clause",
			conditions: []docstore.Condition{docstore.Not{Cond: docstore.Eq{Field: "a", Value: "1"}}},
			expected:   `(NOT a_register:"1")`,
		},
		{
			name:       "empty group matches all",
			conditions: []docstore.Condition{docstore.Or{}},
			expected:   "*:*",
		},
		{
			name:       "is null matches sentinel or absence",
			conditions: []docstore.Condition{docstore.IsNull{Field: "nickname"}},
			expected:   `(nickname_register:"$nil" OR (NOT nickname_register:[* TO *]))`,
		},
		{
			name:       "is not null requires presence without sentinel",
			conditions: []docstore.Condition{docstore.IsNotNull{Field: "nickname"}},
			expected:   `(nickname_register:[* TO *] AND -nickname_register:"$nil")`,
		},
		{
			name:       "equality against nil uses the sentinel",
			conditions: []docstore.Condition{docstore.Eq{Field: "nickname", Value: nil}},
			expected:   `nickname_register:"$nil"`,
		},
		{
			name:       "boolean value",
			conditions: []docstore.Condition{docstore.Eq{Field: "active", Value: true}},
			expected:   `active_register:"true"`,
		},
		{
			name:       "range boundaries escape reserved characters",
			conditions: []docstore.Condition{docstore.Compare{Field: "at", Op: docstore.OpGreaterOrEqual, Value: "2024-01-02T10:00:00Z"}},
			expected:   `at_register:[2024\-01\-02T10\:00\:00Z TO *]`,
		},
		{
			name:       "quoted literals escape embedded quotes",
			conditions: []docstore.Condition{docstore.Eq{Field: "name", Value: `say "hi"`}},
			expected:   `name_register:"say \"hi\""`,
		},
		{
			name: "nested groups compose",
			conditions: []docstore.Condition{
				docstore.Eq{Field: "kind", Value: "user"},
				docstore.Or{
					docstore.Compare{Field: "age", Op: docstore.OpLessThan, Value: 18},
					docstore.Compare{Field: "age", Op: docstore.OpGreaterThan, Value: 65},
				},
			},
			expected: `(kind_register:"user" AND (age_register:{* TO 18} OR age_register:{65 TO *}))`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CompileConditions(tt.conditions))
		})
	}
}

func TestCompileConditionsDeterministic(t *testing.T) {
	conditions := []docstore.Condition{
		docstore.Eq{Field: "a", Value: "1"},
		docstore.Not{Cond: docstore.IsNull{Field: "b"}},
	}
	first := CompileConditions(conditions)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, CompileConditions(conditions))
	}
}

func TestQueryFieldPath(t *testing.T) {
	assert.Equal(t, "age_register", queryFieldPath("age"))
	assert.Equal(t, "a_map.b_map.c_register", queryFieldPath("a.b.c"))
}

func TestStripFieldSuffix(t *testing.T) {
	assert.Equal(t, "age", stripFieldSuffix("age_register"))
	assert.Equal(t, "tags", stripFieldSuffix("tags_set"))
	// anchored: only the trailing suffix comes off
	assert.Equal(t, "the_map", stripFieldSuffix("the_map_register"))
	// a bare suffix token is a complete name
	assert.Equal(t, "_register", stripFieldSuffix("_register"))
	assert.Equal(t, "plain", stripFieldSuffix("plain"))
}

func TestNameTable(t *testing.T) {
	schema := docstore.NewSchema("users", "id", []docstore.Field{
		{Name: "id", Type: docstore.FieldString},
		{Name: "tags", Type: docstore.FieldList},
		{Name: "address", Type: docstore.FieldDoc},
	})
	table := newNameTable(schema)

	assert.Equal(t, "tags_set", table.storageName("tags"))
	assert.Equal(t, "address_map", table.storageName("address"))
	assert.Equal(t, "id_register", table.storageName("id"))
	// undeclared fields default to registers
	assert.Equal(t, "extra_register", table.storageName("extra"))

	assert.Equal(t, "tags", table.fieldName("tags_set"))
	assert.Equal(t, "address", table.fieldName("address_map"))
	// unknown storage names strip their trailing suffix
	assert.Equal(t, "legacy", table.fieldName("legacy_counter"))
}
