package convert

import (
	"errors"
	"testing"
)

func TestValueConvertsKnownShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  any
		want float64
	}{
		{name: "number passes through", raw: 120.0, want: 120},
		{name: "int passes through", raw: 42, want: 42},
		{name: "percentage", raw: "45%", want: 45},
		{name: "fractional percentage keeps integer part", raw: "45.7%", want: 45},
		{name: "minutes seconds", raw: "1:30", want: 90},
		{name: "hours minutes seconds", raw: "01:02:03", want: 3723},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Value(tc.raw)
			if err != nil {
				t.Fatalf("convert %v: %v", tc.raw, err)
			}
			if got != tc.want {
				t.Fatalf("convert %v: got %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestValueRejectsUnrecognizedStrings(t *testing.T) {
	for _, raw := range []any{"hello", "59", "", true, nil} {
		if _, err := Value(raw); !errors.Is(err, ErrUnrecognizedFormat) {
			t.Fatalf("expected ErrUnrecognizedFormat for %v, got %v", raw, err)
		}
	}
}

func TestDurationInUnits(t *testing.T) {
	cases := []struct {
		raw  string
		unit Unit
		want float64
	}{
		{raw: "01:02:03", unit: Seconds, want: 3723},
		{raw: "01:02:03", unit: Hours, want: 1.0},
		{raw: "1:30", unit: Seconds, want: 90},
		{raw: "1:30", unit: Minutes, want: 2}, // 90s rounds to the nearest minute
		{raw: "0:29", unit: Minutes, want: 0},
		{raw: "45", unit: Seconds, want: 45},
	}
	for _, tc := range cases {
		got, err := DurationIn(tc.raw, tc.unit)
		if err != nil {
			t.Fatalf("duration %q: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("duration %q unit %d: got %v, want %v", tc.raw, tc.unit, got, tc.want)
		}
	}
}

func TestDurationInRejectsBadShapes(t *testing.T) {
	for _, raw := range []string{"1:2:3:4", "a:b", ""} {
		if _, err := DurationIn(raw, Seconds); !errors.Is(err, ErrUnrecognizedFormat) {
			t.Fatalf("expected ErrUnrecognizedFormat for %q, got %v", raw, err)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		raw  any
		want Kind
	}{
		{raw: 1.5, want: KindNumber},
		{raw: "45%", want: KindPercent},
		{raw: "1:30", want: KindDuration},
		{raw: "oops", want: KindUnrecognized},
		{raw: []string{"x"}, want: KindUnrecognized},
	}
	for _, tc := range cases {
		if got := Classify(tc.raw); got != tc.want {
			t.Fatalf("classify %v: got %d, want %d", tc.raw, got, tc.want)
		}
	}
}
