package frame

// DType identifies the semantic element type of a Series.
type DType int

const (
	Int DType = iota
	Float
	String
	Bool
	Datetime
	Categorical
)

// Numeric reports whether ordering bounds (gt/ge/lt/le) make sense for the dtype.
func (d DType) Numeric() bool { return d == Int || d == Float }

// Stringy reports whether the dtype stores string-valued elements.
func (d DType) Stringy() bool { return d == String || d == Categorical }

func (d DType) String() string {
	switch d {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Bool:
		return "bool"
	case Datetime:
		return "datetime"
	case Categorical:
		return "categorical"
	default:
		return "unknown"
	}
}

// ParseDType maps a dtype name (as used in schema documents) back to a DType.
func ParseDType(s string) (DType, bool) {
	switch s {
	case "int":
		return Int, true
	case "float":
		return Float, true
	case "string", "str":
		return String, true
	case "bool":
		return Bool, true
	case "datetime":
		return Datetime, true
	case "categorical", "category":
		return Categorical, true
	default:
		return 0, false
	}
}
