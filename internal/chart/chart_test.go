package chart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/owstat/internal/model"
)

func sampleDataset() model.Dataset {
	return model.Dataset{
		Stat: "eliminationsAvgPer10Min",
		Rows: []model.Row{
			{Player: "Clovis", Hero: "Tracer", Color: "#D89442", GamesPlayed: 200, Value: 12.3},
			{Player: "Fara", Hero: "Tracer", Color: "#D89442", GamesPlayed: 10, BelowThreshold: true, Value: 0},
		},
	}
}

func TestRenderChart(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, sampleDataset(), 80); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "Overwatch Stats Comparison - eliminationsAvgPer10Min") {
		t.Fatalf("missing title in output:\n%s", out)
	}
	if !strings.Contains(out, "Tracer\n") {
		t.Fatalf("missing hero facet line in output:\n%s", out)
	}
	if !strings.Contains(out, "12.3 (200 games)") {
		t.Fatalf("missing value suffix in output:\n%s", out)
	}
	if !strings.Contains(out, string(barRune)) {
		t.Fatalf("expected at least one bar segment in output:\n%s", out)
	}
	if !strings.Contains(out, "0 (10 games) X") {
		t.Fatalf("expected the X marker on the below-threshold row:\n%s", out)
	}
	if !strings.Contains(out, string(emptyRune)) {
		t.Fatalf("expected a placeholder for the zero-value bar:\n%s", out)
	}
}

func TestRenderChartWarnings(t *testing.T) {
	ds := sampleDataset()
	ds.Warnings = []string{"Fara-2310 / Tracer: unrecognized value format"}

	var buf bytes.Buffer
	if err := Render(&buf, ds, 80); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "warning: Fara-2310 / Tracer") {
		t.Fatalf("expected the warning at the bottom of the chart:\n%s", buf.String())
	}
}

func TestRenderChartEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, model.Dataset{Stat: "x"}, 80); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if buf.String() != "No data to chart.\n" {
		t.Fatalf("unexpected empty-dataset output: %q", buf.String())
	}
}

func TestRenderTable(t *testing.T) {
	ds := sampleDataset()
	ds.Stat = "elims"

	var buf bytes.Buffer
	if err := RenderTable(&buf, ds); err != nil {
		t.Fatalf("render table failed: %v", err)
	}

	want := strings.Join([]string{
		"Player Hero   Games Played X elims",
		"Clovis Tracer          200    12.3",
		"Fara   Tracer           10 X     0",
	}, "\n") + "\n"
	if buf.String() != want {
		t.Fatalf("unexpected table output:\ngot:\n%swant:\n%s", buf.String(), want)
	}
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		value float64
		want  string
	}{
		{value: 0, want: "0"},
		{value: 12.3, want: "12.3"},
		{value: 190, want: "190"},
		{value: 22.61, want: "22.61"},
	}
	for _, tc := range cases {
		if got := FormatValue(tc.value); got != tc.want {
			t.Fatalf("format %v: got %q, want %q", tc.value, got, tc.want)
		}
	}
}
