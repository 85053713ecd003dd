package sim

import "testing"

func TestAdjust(t *testing.T) {
	tests := []struct {
		name      string
		accepted  int
		attempted int
		target    float64
		want      float64
	}{
		{"below target shrinks", 1, 10, 0.3, 0.1 * 0.95},
		{"at target grows", 3, 10, 0.3, 0.1 * 1.05},
		{"above target grows", 9, 10, 0.3, 0.1 * 1.05},
		{"nothing accepted", 0, 5, 0.3, 0.1 * 0.95},
		{"no attempts is a no-op", 0, 0, 0.3, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Adjust(0.1, tt.accepted, tt.attempted, tt.target); got != tt.want {
				t.Errorf("Adjust = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAdjust_StaysPositive(t *testing.T) {
	d := DefaultMaxDisplacement
	for i := 1; i <= 10000; i++ {
		d = Adjust(d, 0, i, 0.5)
		if d <= 0 {
			t.Fatalf("drmax reached %v after %d shrinks", d, i)
		}
	}
}

func TestCycles(t *testing.T) {
	tests := []struct {
		steps, n int
		target   float64
		want     int
	}{
		{1, 8, 0.3, 26},
		{100, 27, 0.3, 9000},
		{1, 1, 0.5, 2},
		{3, 64, 0.35, 548},
	}
	for _, tt := range tests {
		if got := Cycles(tt.steps, tt.n, tt.target); got != tt.want {
			t.Errorf("Cycles(%d, %d, %v) = %d, want %d", tt.steps, tt.n, tt.target, got, tt.want)
		}
	}
}
