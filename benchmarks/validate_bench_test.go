package benchmarks

import (
	"fmt"
	"strings"
	"testing"

	framegate "github.com/reoring/framegate"
	"github.com/reoring/framegate/dsl"
	"github.com/reoring/framegate/frame"
)

// ---- Helpers ----

func ordersSchema(tb testing.TB) *framegate.Schema {
	tb.Helper()
	return dsl.Schema().
		Field("id", frame.Int, dsl.Unique()).
		Field("qty", frame.Int, dsl.Gt(0)).
		Field("price", frame.Float, dsl.Ge(0)).
		Field("status", frame.String, dsl.IsIn("open", "closed")).
		MustBuild()
}

func ordersFrame(tb testing.TB, n int) *frame.Frame {
	tb.Helper()
	ids := make([]int64, n)
	qty := make([]int64, n)
	price := make([]float64, n)
	status := make([]string, n)
	for i := 0; i < n; i++ {
		ids[i] = int64(i)
		qty[i] = int64(i%9 + 1)
		price[i] = float64(i) * 0.5
		if i%2 == 0 {
			status[i] = "open"
		} else {
			status[i] = "closed"
		}
	}
	return frame.MustNew(
		frame.NewInt("id", ids),
		frame.NewInt("qty", qty),
		frame.NewFloat("price", price),
		frame.NewString("status", status),
	)
}

func recordsJSON(tb testing.TB, n int) []byte {
	tb.Helper()
	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"id": %d, "qty": %d, "price": %g, "status": "open"}`, i, i%9+1, float64(i)*0.5)
	}
	b.WriteString("]")
	return []byte(b.String())
}

// ---- Benchmarks ----

func BenchmarkValidate(b *testing.B) {
	for _, n := range []int{100, 10000} {
		b.Run(fmt.Sprintf("rows=%d", n), func(b *testing.B) {
			s := ordersSchema(b)
			f := ordersFrame(b, n)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := s.Validate(f); err != nil {
					b.Fatalf("validate: %v", err)
				}
			}
		})
	}
}

func BenchmarkValidateCoerce(b *testing.B) {
	s := dsl.Schema().
		Field("v", frame.Int, dsl.Coerce()).
		MustBuild()
	vals := make([]string, 10000)
	for i := range vals {
		vals[i] = fmt.Sprint(i)
	}
	f := frame.MustNew(frame.NewString("v", vals))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Validate(f); err != nil {
			b.Fatalf("validate: %v", err)
		}
	}
}

func BenchmarkValidateFailing(b *testing.B) {
	s := ordersSchema(b)
	f := ordersFrame(b, 10000)
	zero := make([]int64, 10000)
	f = f.WithColumn(frame.NewInt("qty", zero))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Validate(f); err == nil {
			b.Fatal("expected issues")
		}
	}
}

func BenchmarkFromJSONRecords(b *testing.B) {
	data := recordsJSON(b, 1000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := frame.FromJSONRecords(data); err != nil {
			b.Fatalf("decode: %v", err)
		}
	}
}
