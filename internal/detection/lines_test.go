package detection

import (
	"math"
	"testing"

	"github.com/ironsheep/cemetery-detector/internal/imaging"
)

const oneDegree = math.Pi / 180

func TestHoughLines_SingleHorizontal(t *testing.T) {
	p := imaging.NewPlane(200, 100)
	for x := 0; x < 200; x++ {
		p.Set(x, 40, 255)
	}

	lines := HoughLines(p, 1, oneDegree, 100)
	if len(lines) == 0 {
		t.Fatal("expected at least one line")
	}

	best := lines[0]
	if best.Votes != 200 {
		t.Errorf("Votes: got %d, want 200", best.Votes)
	}
	if math.Abs(best.Theta-math.Pi/2) > 1e-9 {
		t.Errorf("Theta: got %f, want π/2", best.Theta)
	}
	if math.Abs(best.Rho-40) > 0.5 {
		t.Errorf("Rho: got %f, want 40", best.Rho)
	}
	if d := best.DirectionDegrees(); math.Abs(d-180) > 1e-9 && d > 1e-9 {
		t.Errorf("DirectionDegrees: got %f, want 0 or 180", d)
	}
}

func TestHoughLines_SingleVertical(t *testing.T) {
	p := imaging.NewPlane(100, 200)
	for y := 0; y < 200; y++ {
		p.Set(30, y, 255)
	}

	lines := HoughLines(p, 1, oneDegree, 100)
	if len(lines) == 0 {
		t.Fatal("expected at least one line")
	}
	if lines[0].Theta != 0 {
		t.Errorf("Theta: got %f, want 0", lines[0].Theta)
	}
	if math.Abs(lines[0].Rho-30) > 0.5 {
		t.Errorf("Rho: got %f, want 30", lines[0].Rho)
	}
	if d := lines[0].DirectionDegrees(); math.Abs(d-90) > 1e-9 {
		t.Errorf("DirectionDegrees: got %f, want 90", d)
	}
}

func TestHoughLines_SortedAndThresholded(t *testing.T) {
	p := imaging.NewPlane(300, 300)
	for x := 0; x < 300; x++ {
		p.Set(x, 50, 255)
	}
	for y := 0; y < 150; y++ {
		p.Set(200, y, 255)
	}

	lines := HoughLines(p, 1, oneDegree, 100)
	if len(lines) < 2 {
		t.Fatalf("expected two lines, got %d", len(lines))
	}
	for i := 1; i < len(lines); i++ {
		if lines[i].Votes > lines[i-1].Votes {
			t.Fatalf("lines not sorted by votes at %d", i)
		}
	}
	for _, l := range lines {
		if l.Votes <= 100 {
			t.Errorf("line with %d votes should be below threshold", l.Votes)
		}
	}

	// The 150-pixel segment is dropped at a higher threshold.
	strict := HoughLines(p, 1, oneDegree, 160)
	for _, l := range strict {
		if l.Theta == 0 {
			t.Errorf("vertical segment should not pass threshold 160: %+v", l)
		}
	}
}

func TestHoughLines_Empty(t *testing.T) {
	if lines := HoughLines(imaging.NewPlane(50, 50), 1, oneDegree, 10); len(lines) != 0 {
		t.Errorf("blank edge map: got %d lines", len(lines))
	}
	if lines := HoughLines(imaging.NewPlane(0, 0), 1, oneDegree, 10); lines != nil {
		t.Errorf("zero-area edge map: got %v", lines)
	}
}

func TestLine_DirectionDegrees(t *testing.T) {
	tests := []struct {
		theta float64
		want  float64
	}{
		{0, 90},
		{math.Pi / 2, 0},
		{math.Pi / 4, 135},
		{3 * math.Pi / 4, 45},
	}
	for _, tt := range tests {
		got := Line{Theta: tt.theta}.DirectionDegrees()
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("theta %f: got %f, want %f", tt.theta, got, tt.want)
		}
	}
}
