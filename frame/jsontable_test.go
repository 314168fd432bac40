package frame_test

import (
	"strings"
	"testing"
	"time"

	"github.com/reoring/framegate/frame"
)

func TestFromJSONRecords_InferenceAndOrder(t *testing.T) {
	data := []byte(`[
		{"id": 1, "score": 0.5, "name": "a", "ok": true},
		{"id": 2, "score": 1.0, "name": "b", "ok": false}
	]`)
	f, err := frame.FromJSONRecords(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cols := f.Columns()
	want := []string{"id", "score", "name", "ok"}
	for i, n := range want {
		if cols[i] != n {
			t.Fatalf("column order lost: got %v want %v", cols, want)
		}
	}
	id, _ := f.Column("id")
	score, _ := f.Column("score")
	name, _ := f.Column("name")
	ok, _ := f.Column("ok")
	if id.DType() != frame.Int || score.DType() != frame.Float || name.DType() != frame.String || ok.DType() != frame.Bool {
		t.Fatalf("inferred dtypes wrong: %v %v %v %v", id.DType(), score.DType(), name.DType(), ok.DType())
	}
	if id.At(1) != int64(2) || score.At(0) != 0.5 {
		t.Fatalf("values wrong: %v %v", id.At(1), score.At(0))
	}
}

func TestFromJSONRecords_IntPromotesToFloat(t *testing.T) {
	f, err := frame.FromJSONRecords([]byte(`[{"v": 1}, {"v": 2.5}]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _ := f.Column("v")
	if v.DType() != frame.Float {
		t.Fatalf("expected promotion to Float, got %v", v.DType())
	}
	if v.At(0) != 1.0 {
		t.Fatalf("integral value not widened: %v", v.At(0))
	}
}

func TestFromJSONRecords_MissingAndNullBecomeNullRows(t *testing.T) {
	f, err := frame.FromJSONRecords([]byte(`[
		{"a": 1, "b": "x"},
		{"a": null},
		{"a": 3, "b": "z"}
	]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, _ := f.Column("a")
	b, _ := f.Column("b")
	if !a.IsNull(1) || a.IsNull(0) {
		t.Fatalf("explicit null not masked: %v", a.NullRows())
	}
	if !b.IsNull(1) || b.IsNull(2) {
		t.Fatalf("missing key not masked: %v", b.NullRows())
	}
}

func TestFromJSONRecords_RejectsMixedAndNested(t *testing.T) {
	_, err := frame.FromJSONRecords([]byte(`[{"v": 1}, {"v": "two"}]`))
	if err == nil || !strings.Contains(err.Error(), "mixes") {
		t.Fatalf("expected mixed-type rejection, got %v", err)
	}

	_, err = frame.FromJSONRecords([]byte(`[{"v": {"nested": 1}}]`))
	if err == nil || !strings.Contains(err.Error(), "flat") {
		t.Fatalf("expected nested-value rejection, got %v", err)
	}

	_, err = frame.FromJSONRecords([]byte(`[{"v": null}]`))
	if err == nil {
		t.Fatal("all-null column must fail inference")
	}
}

func TestFromJSONRecordsTyped_CastsDeclaredColumns(t *testing.T) {
	data := []byte(`[{"ts": "2024-01-02T03:04:05Z", "n": "7"}]`)
	f, err := frame.FromJSONRecordsTyped(data, map[string]frame.DType{
		"ts": frame.Datetime,
		"n":  frame.Int,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ts, _ := f.Column("ts")
	n, _ := f.Column("n")
	want := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := ts.At(0).(time.Time); !got.Equal(want) {
		t.Fatalf("datetime cast wrong: %v", got)
	}
	if n.DType() != frame.Int || n.At(0) != int64(7) {
		t.Fatalf("int cast wrong: %v", n.At(0))
	}
}

func TestFromJSONRecordsTyped_NullSurvivesCast(t *testing.T) {
	data := []byte(`[{"n": "1"}, {"n": null}]`)
	f, err := frame.FromJSONRecordsTyped(data, map[string]frame.DType{"n": frame.Int})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, _ := f.Column("n")
	if !n.IsNull(1) || n.At(0) != int64(1) {
		t.Fatalf("null handling wrong: %v / %v", n.NullRows(), n.At(0))
	}
}
