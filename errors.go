package framegate

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention).
//
// Structural: missing_column, unknown_column, column_order, index_mismatch,
// max_depth, cycle. Coercion: coercion. Type: invalid_dtype. Constraint:
// not_null, too_small, too_big, invalid_enum, pattern, uniqueness,
// custom_check, index_unsorted. Definition-time: definition.
const (
	CodeMissingColumn = "missing_column"
	CodeUnknownColumn = "unknown_column"
	CodeColumnOrder   = "column_order"
	CodeIndexMismatch = "index_mismatch"
	CodeIndexUnsorted = "index_unsorted"
	CodeMaxDepth      = "max_depth"
	CodeCycle         = "cycle"
	CodeCoercion      = "coercion"
	CodeInvalidDType  = "invalid_dtype"
	CodeNotNull       = "not_null"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeInvalidEnum   = "invalid_enum"
	CodePattern       = "pattern"
	CodeUniqueness    = "uniqueness"
	CodeCustomCheck   = "custom_check"
	CodeDefinition    = "definition"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // argument path plus column/level (for example: /frames/2/price).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
	// Params carries structured parameters (e.g., {"count":3, "rows":[0,4]})
	// for observability and message rendering. Offending-row samples are
	// capped; Params["count"] always holds the full count.
	Params map[string]any
	// Rule optionally records the custom check name that produced this issue.
	Rule string
}

// Issues is the aggregate validation error raised for one validated call; it
// collects every issue found in that pass and implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. missing_column at /df/col1
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// DefinitionError reports a malformed schema definition (duplicate names,
// constraints incompatible with the declared dtype, contradictory config).
// It is raised once at compile time; the schema is unusable until fixed.
type DefinitionError struct {
	Issues Issues
}

func (e *DefinitionError) Error() string {
	return "schema definition: " + e.Issues.Error()
}

func (e *DefinitionError) Unwrap() error { return e.Issues }

// AsDefinitionError extracts a DefinitionError from an error.
func AsDefinitionError(err error) (*DefinitionError, bool) {
	var de *DefinitionError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
