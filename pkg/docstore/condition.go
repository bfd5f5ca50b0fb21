package docstore

// CompareOp enumerates the comparison operators of Compare conditions.
type CompareOp string

const (
	OpLessThan       CompareOp = "<"
	OpLessOrEqual    CompareOp = "<="
	OpGreaterThan    CompareOp = ">"
	OpGreaterOrEqual CompareOp = ">="
	OpEqual          CompareOp = "=="
	OpNotEqual       CompareOp = "!="
	OpLike           CompareOp = "like"
)

// Condition is one node of a boolean condition tree. Trees are
// side-effect-free values constructed per request; compiling the same tree
// always yields the same backend query text.
//
// A slice of conditions passed to a store operation is an implicit AND;
// an empty slice matches everything.
type Condition interface {
	isCondition()
}

// And matches when every child condition matches. An empty And matches
// everything.
type And []Condition

// Or matches when at least one child condition matches.
type Or []Condition

// Not negates its child condition.
type Not struct {
	Cond Condition
}

// Compare matches documents whose field relates to Value under Op.
// For OpLike, Value is a pattern where '%' is the any-sequence wildcard.
type Compare struct {
	Field string
	Op    CompareOp
	Value interface{}
}

// Eq is the bare equality shorthand, equivalent to Compare with OpEqual.
type Eq struct {
	Field string
	Value interface{}
}

// IsNull matches documents where the field is absent or explicitly null.
type IsNull struct {
	Field string
}

// IsNotNull matches documents where the field is present and not null.
type IsNotNull struct {
	Field string
}

func (And) isCondition()       {}
func (Or) isCondition()        {}
func (Not) isCondition()       {}
func (Compare) isCondition()   {}
func (Eq) isCondition()        {}
func (IsNull) isCondition()    {}
func (IsNotNull) isCondition() {}
