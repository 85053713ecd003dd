package analysis

import "github.com/mjibson/go-dsp/fft"

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Autocorrelation returns the normalized autocorrelation of series for lags
// 0..len(series)-1. A constant series yields nil.
func Autocorrelation(series []float64) []float64 {
	n := len(series)
	if n == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(n)

	// zero padding to 2n removes the circular wraparound
	padded := make([]complex128, nextPow2(2*n))
	for i, v := range series {
		padded[i] = complex(v-mean, 0)
	}

	power := fft.FFT(padded)
	for i, v := range power {
		power[i] = complex(real(v)*real(v)+imag(v)*imag(v), 0)
	}
	raw := fft.IFFT(power)

	c0 := real(raw[0])
	if c0 <= 1e-12*float64(n) {
		return nil
	}
	acf := make([]float64, n)
	for k := range acf {
		acf[k] = real(raw[k]) / c0
	}
	return acf
}

// IntegratedTime sums the autocorrelation up to its first non-positive lag.
// It returns 1 for uncorrelated or constant series.
func IntegratedTime(series []float64) float64 {
	acf := Autocorrelation(series)
	tau := 1.0
	for k := 1; k < len(acf); k++ {
		if acf[k] <= 0 {
			break
		}
		tau += 2 * acf[k]
	}
	return tau
}
