package export

import (
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/liquid/internal/dynamo"
)

func TestSnapshotToSVG(t *testing.T) {
	config := dynamo.Configuration{{0.5, 0.5, 0.5}, {1.5, 1.0, 1.9}}
	svg, err := SnapshotToSVG(config, 2, PlaneXY, 200)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("circles = %d, want 2", got)
	}
	if !strings.Contains(svg, `cx="50.0" cy="150.0" r="50.0"`) {
		t.Errorf("first particle misplaced:\n%s", svg)
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("unterminated svg")
	}
}

func TestSnapshotPlanes(t *testing.T) {
	config := dynamo.Configuration{{0.2, 0.4, 1.6}}
	tests := []struct {
		plane Plane
		want  string
	}{
		{PlaneXY, `cx="20.0" cy="160.0"`},
		{PlaneXZ, `cx="20.0" cy="40.0"`},
		{PlaneYZ, `cx="40.0" cy="40.0"`},
	}
	for _, tt := range tests {
		t.Run(string(tt.plane), func(t *testing.T) {
			svg, err := SnapshotToSVG(config, 2, tt.plane, 200)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(svg, tt.want) {
				t.Errorf("missing %s", tt.want)
			}
		})
	}
}

func TestSnapshotErrors(t *testing.T) {
	if _, err := SnapshotToSVG(nil, 2, "zz", 100); !errors.Is(err, dynamo.ErrUnknownMode) {
		t.Errorf("plane: err = %v", err)
	}
	if _, err := SnapshotToSVG(nil, 0, PlaneXY, 100); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("box: err = %v", err)
	}
}

func TestLineToSVG(t *testing.T) {
	trace := []dynamo.Record{{Step: 1, Energy: 5}, {Step: 2, Energy: 3}, {Step: 3, Energy: 4}}
	svg := LineToSVG(TracePoints(trace), 300, 100, "#ff0000")
	if !strings.Contains(svg, `stroke="#ff0000"`) {
		t.Error("stroke colour missing")
	}
	if got := strings.Count(svg, " L"); got != 2 {
		t.Errorf("segments = %d, want 2", got)
	}
	if LineToSVG(TracePoints(trace[:1]), 300, 100, "#fff") != "" {
		t.Error("single point should render nothing")
	}
}

func TestSeriesPointsTruncates(t *testing.T) {
	pts := SeriesPoints([]float64{1, 2, 3}, []float64{4, 5})
	if len(pts) != 2 || pts[1] != (Point{2, 5}) {
		t.Errorf("points = %v", pts)
	}
}
