package chart

import (
	"strings"
	"testing"

	"github.com/huntiq/lightcharts/pkg/models"
)

func TestBuildLinePath_Exact(t *testing.T) {
	// min=0 max=10 range=10; stepX=(100-40)/1=60; scaleY=(100-40)/10=6.
	series := models.Series{
		{Name: "a", Value: 0},
		{Name: "b", Value: 10},
	}
	path := BuildLinePath(series, 100, 100, 20)
	if path != "M 20 80 L 80 20" {
		t.Errorf("BuildLinePath = %q, want %q", path, "M 20 80 L 80 20")
	}
}

func TestBuildLinePath_Degenerate(t *testing.T) {
	if path := BuildLinePath(nil, 100, 100, 20); path != "" {
		t.Errorf("expected empty path for nil series, got %q", path)
	}
	single := models.Series{{Name: "a", Value: 5}}
	if path := BuildLinePath(single, 100, 100, 20); path != "" {
		t.Errorf("expected empty path for single point, got %q", path)
	}
}

func TestBuildLinePath_TokenCount(t *testing.T) {
	series := models.Series{
		{Value: 3}, {Value: 7}, {Value: 1}, {Value: 9}, {Value: 4},
	}
	path := BuildLinePath(series, 400, 200, 20)
	if !strings.HasPrefix(path, "M ") {
		t.Fatalf("expected path to start with move command, got %q", path)
	}
	lines := strings.Count(path, "L ")
	if lines != len(series)-1 {
		t.Errorf("expected %d line commands, got %d", len(series)-1, lines)
	}
}

func TestBuildLinePath_FlatSeries(t *testing.T) {
	// Equal min/max: range floors to 1, all points on one horizontal line.
	series := models.Series{
		{Value: 5}, {Value: 5}, {Value: 5},
	}
	g := BuildLineGeometry(series, 300, 100, 20)
	if g.LinePath == "" {
		t.Fatal("expected non-empty path for flat series")
	}
	y := g.Points[0].Y
	for i, pt := range g.Points {
		if pt.Y != y {
			t.Errorf("point %d: y=%v, want flat line at %v", i, pt.Y, y)
		}
	}
	if y != 100-20 {
		t.Errorf("flat line at y=%v, want baseline %v", y, 100-20)
	}
}

func TestBuildAreaPath(t *testing.T) {
	series := models.Series{
		{Value: 0}, {Value: 10},
	}
	area := BuildAreaPath(series, 100, 100, 20)
	want := "M 20 80 L 80 20 L 80 80 L 20 80 Z"
	if area != want {
		t.Errorf("BuildAreaPath = %q, want %q", area, want)
	}

	if area := BuildAreaPath(nil, 100, 100, 20); area != "" {
		t.Errorf("expected empty area path for nil series, got %q", area)
	}
}

func TestBuildLineGeometry_Inverted(t *testing.T) {
	// Higher value must map to a smaller y.
	series := models.Series{
		{Value: 1}, {Value: 100},
	}
	g := BuildLineGeometry(series, 200, 200, 10)
	if g.Points[1].Y >= g.Points[0].Y {
		t.Errorf("expected inverted y axis: y(100)=%v should be < y(1)=%v",
			g.Points[1].Y, g.Points[0].Y)
	}
	if g.MinY != 1 || g.MaxY != 100 {
		t.Errorf("min/max = %v/%v, want 1/100", g.MinY, g.MaxY)
	}
}
