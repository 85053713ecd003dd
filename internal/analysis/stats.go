package analysis

import (
	"math"

	"github.com/san-kum/liquid/internal/dynamo"
)

type Summary struct {
	Samples int
	Start   int // index of the first sample included
	Mean    float64
	StdDev  float64
	Min     float64
	Max     float64
}

// Summarize describes series after discarding the leading burnIn fraction.
func Summarize(series []float64, burnIn float64) Summary {
	burnIn = math.Max(0, math.Min(burnIn, 1))
	start := int(burnIn * float64(len(series)))
	tail := series[start:]
	s := Summary{Samples: len(tail), Start: start}
	if len(tail) == 0 {
		return s
	}

	s.Min, s.Max = tail[0], tail[0]
	for _, v := range tail {
		s.Mean += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Mean /= float64(len(tail))

	if len(tail) > 1 {
		var ss float64
		for _, v := range tail {
			d := v - s.Mean
			ss += d * d
		}
		s.StdDev = math.Sqrt(ss / float64(len(tail)-1))
	}
	return s
}

func Energies(trace []dynamo.Record) []float64 {
	out := make([]float64, len(trace))
	for i, r := range trace {
		out[i] = r.Energy
	}
	return out
}

func Displacements(trace []dynamo.Record) []float64 {
	out := make([]float64, len(trace))
	for i, r := range trace {
		out[i] = r.MaxDisplacement
	}
	return out
}
