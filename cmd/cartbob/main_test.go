package main

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/cartbob/internal/dynamo"
	"github.com/san-kum/cartbob/internal/sim"
	"github.com/san-kum/cartbob/internal/storage"
	"github.com/san-kum/cartbob/internal/vec"
	"github.com/san-kum/cartbob/internal/viz"
)

func TestParseGrid(t *testing.T) {
	names, ranges, err := parseGrid([]string{"kp=0:8", "kd=1:2"}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"kp", "kd"}, names); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]float64{{0, 4, 8}, {1, 1.5, 2}}, ranges); diff != "" {
		t.Errorf("ranges (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"kp", "kp=1", "kp=a:2", "kp=1:b"} {
		if _, _, err := parseGrid([]string{bad}, 3); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestUseTheme(t *testing.T) {
	defer viz.SetTheme(viz.ThemeNames()[0])

	for _, name := range viz.ThemeNames() {
		if err := useTheme(name); err != nil {
			t.Errorf("useTheme(%q): %v", name, err)
		}
		if viz.CurrentTheme.Name != name {
			t.Errorf("current theme = %q, want %q", viz.CurrentTheme.Name, name)
		}
	}
	if err := useTheme("plaid"); err == nil {
		t.Error("expected error for unknown theme")
	}
}

func TestRenderSVGStyles(t *testing.T) {
	meta := &storage.RunMetadata{Dt: 0.01, Duration: 0.02, Width: 1280, Height: 720, RestLength: 0.25, Damping: 0.99}
	result := &sim.Result{Snapshots: []dynamo.Snapshot{
		{CartPosition: vec.New(0.5, 0.5), BobPosition: vec.New(0.75, 0.5), Angle: 1.5},
		{Time: 0.01, CartPosition: vec.New(0.5, 0.5), BobPosition: vec.New(0.7, 0.4), Angle: 1.2, AngularVelocity: -30},
	}}
	defer func(style string, w, h, cols, rows int) {
		svgStyle, svgWidth, svgHeight, canvasCols, canvasRows = style, w, h, cols, rows
	}(svgStyle, svgWidth, svgHeight, canvasCols, canvasRows)
	svgWidth, svgHeight, canvasCols, canvasRows = 200, 100, 20, 10

	tests := []struct {
		style string
		want  string
	}{
		{"paths", `stroke="#4488ff"`},
		{"canvas", `<g fill="#00ff00">`},
		{"phase", `stroke="#00ccff"`},
	}
	for _, tt := range tests {
		svgStyle = tt.style
		doc, err := renderSVG(meta, result)
		if err != nil {
			t.Fatalf("%s: %v", tt.style, err)
		}
		if !strings.Contains(doc, tt.want) {
			t.Errorf("%s: missing %q", tt.style, tt.want)
		}
	}

	svgStyle = "oils"
	if _, err := renderSVG(meta, result); err == nil {
		t.Error("expected error for unknown style")
	}
}
