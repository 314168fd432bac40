package framegate

// Config carries schema-level validation behavior.
type Config struct {
	// Strict rejects undeclared columns and, when the column sets match,
	// enforces declaration order.
	Strict bool
	// Filter drops undeclared columns from the validated output instead of
	// erroring; the output always carries the declared columns in declaration
	// order. Strict and Filter together are a definition error.
	Filter bool
	// Coerce is the schema-wide default for per-field coercion.
	Coerce bool
	// CheckIndexName requires each declared index level name to equal the
	// actual level name.
	CheckIndexName bool
	// IndexSorted requires a monotonic (ascending or descending) index.
	IndexSorted bool
	// IndexUnique requires composite index labels to be unique.
	IndexUnique bool
}

// GuardOpt bundles wrapper/inspector options.
type GuardOpt struct {
	// MaxDepth bounds container nesting during argument inspection;
	// DefaultMaxDepth when zero.
	MaxDepth int
}

// DefaultMaxDepth is the inspector recursion limit applied when GuardOpt
// leaves MaxDepth unset.
const DefaultMaxDepth = 32

// maxSample caps offending-row/value samples embedded in Issue params.
const maxSample = 5
