package walk

import (
	"errors"
	"strings"
	"testing"
)

func TestWalk_VisitsNestedContainers(t *testing.T) {
	v := map[string]any{
		"b": []any{1, 2},
		"a": "x",
	}
	var got []string
	err := Walk(v, Options{MaxDepth: 8}, func(path []string, _ any, _ Setter) (bool, error) {
		got = append(got, "/"+strings.Join(path, "/"))
		return true, nil
	})
	if err != nil {
		t.Fatalf("walk err: %v", err)
	}
	want := []string{"/", "/a", "/b", "/b/0", "/b/1"}
	if len(got) != len(want) {
		t.Fatalf("visited %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("visited %v want %v", got, want)
		}
	}
}

func TestWalk_ReplacesSliceAndMapElements(t *testing.T) {
	v := map[string]any{"xs": []any{1, 2, 3}}
	err := Walk(v, Options{MaxDepth: 8}, func(path []string, val any, set Setter) (bool, error) {
		if n, ok := val.(int); ok && set != nil {
			set(n * 10)
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		t.Fatalf("walk err: %v", err)
	}
	xs := v["xs"].([]any)
	if xs[0] != 10 || xs[1] != 20 || xs[2] != 30 {
		t.Fatalf("replacement failed: %v", xs)
	}
}

func TestWalk_MaxDepth(t *testing.T) {
	deep := []any{[]any{[]any{[]any{1}}}}
	err := Walk(deep, Options{MaxDepth: 2}, func([]string, any, Setter) (bool, error) { return true, nil })
	var le *LimitError
	if !errors.As(err, &le) || le.Cycle {
		t.Fatalf("expected depth LimitError, got %v", err)
	}
}

func TestWalk_Cycle(t *testing.T) {
	m := map[string]any{}
	m["self"] = m
	err := Walk(m, Options{MaxDepth: 64}, func([]string, any, Setter) (bool, error) { return true, nil })
	var le *LimitError
	if !errors.As(err, &le) || !le.Cycle {
		t.Fatalf("expected cycle LimitError, got %v", err)
	}
}
