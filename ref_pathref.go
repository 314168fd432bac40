package framegate

import (
	"fmt"
	"strconv"
	"strings"
)

// PathRef builds traversal paths in a chain-safe way and creates Issues. It
// is the per-call validation context: each segment records the argument name
// or container position that led to the value being checked.
type PathRef interface {
	Field(name string) PathRef
	Index(i int) PathRef
	Pointer() string
	Issue(code, msg string, kv ...any) Issue
}

// Root returns the empty path ("/").
func Root() PathRef { return &pathRef{parts: nil} }

// At parses a pointer-style path ("/frames/2") into a PathRef.
func At(path string) PathRef {
	if path == "" || path == "/" {
		return Root()
	}
	parts := []string{}
	for _, p := range strings.Split(path, "/") {
		if p == "" {
			continue
		}
		parts = append(parts, p)
	}
	return &pathRef{parts: parts}
}

type pathRef struct {
	parts []string
}

func (p *pathRef) Field(name string) PathRef {
	if name == "" {
		return p
	}
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return &pathRef{parts: append(append([]string{}, p.parts...), esc)}
}

func (p *pathRef) Index(i int) PathRef {
	return &pathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

func (p *pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

func (p *pathRef) Issue(code, msg string, kv ...any) Issue {
	m := map[string]any{}
	for i := 0; i+1 < len(kv); i += 2 {
		m[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return Issue{Path: p.Pointer(), Code: code, Message: msg, Params: m}
}
