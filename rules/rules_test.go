package rules_test

import (
	"testing"

	framegate "github.com/reoring/framegate"
	"github.com/reoring/framegate/frame"
	"github.com/reoring/framegate/rules"
)

func TestCompare_RowwiseRelation(t *testing.T) {
	s := framegate.MustSchema(
		[]framegate.Field{
			{Name: "low", Type: frame.Int},
			{Name: "high", Type: frame.Int},
		},
		nil,
		framegate.Config{},
		rules.Compare("low", rules.Lt, "high"),
	)

	good := frame.MustNew(
		frame.NewInt("low", []int64{1, 2}),
		frame.NewInt("high", []int64{5, 6}),
	)
	if _, err := s.Validate(good); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := frame.MustNew(
		frame.NewInt("low", []int64{1, 9}),
		frame.NewInt("high", []int64{5, 6}),
	)
	_, err := s.Validate(bad)
	iss, _ := framegate.AsIssues(err)
	if len(iss) != 1 || iss[0].Rule != "low < high" {
		t.Fatalf("expected relation failure, got %v", iss)
	}
	rows := iss[0].Params["rows"].([]int)
	if len(rows) != 1 || rows[0] != 1 {
		t.Fatalf("expected row 1, got %v", rows)
	}
}

func TestCompare_NullRowsPass(t *testing.T) {
	s := framegate.MustSchema(
		[]framegate.Field{
			{Name: "a", Type: frame.Float, Nullable: true},
			{Name: "b", Type: frame.Float},
		},
		nil,
		framegate.Config{},
		rules.Compare("a", rules.Le, "b"),
	)
	f := frame.MustNew(
		frame.NewFloat("a", []float64{0, 99}).WithNulls(1),
		frame.NewFloat("b", []float64{1, 1}),
	)
	if _, err := s.Validate(f); err != nil {
		t.Fatalf("null rows must not trip the relation: %v", err)
	}
}

func TestCompareConst(t *testing.T) {
	s := framegate.MustSchema(
		[]framegate.Field{{Name: "pct", Type: frame.Float}},
		nil,
		framegate.Config{},
		rules.CompareConst("pct", rules.Le, 100),
	)
	f := frame.MustNew(frame.NewFloat("pct", []float64{99.5, 101}))
	_, err := s.Validate(f)
	iss, _ := framegate.AsIssues(err)
	if len(iss) != 1 || iss[0].Rule != "pct <= 100" {
		t.Fatalf("expected const relation failure, got %v", iss)
	}
}
