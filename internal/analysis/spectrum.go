package analysis

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

// PowerSpectrum returns the magnitude of each real-FFT coefficient of the
// mean-removed series, with the frequency of each bin in cycles per unit of
// dt.
func PowerSpectrum(series []float64, dt float64) (freqs, power []float64) {
	n := len(series)
	if n < 2 {
		return nil, nil
	}
	mean := stat.Mean(series, nil)
	centred := make([]float64, n)
	for i, v := range series {
		centred[i] = v - mean
	}

	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(nil, centred)
	freqs = make([]float64, len(coeff))
	power = make([]float64, len(coeff))
	for i, c := range coeff {
		freqs[i] = fft.Freq(i) / dt
		power[i] = cmplx.Abs(c)
	}
	return freqs, power
}

// DominantPeriod returns the period of the strongest non-constant frequency
// in series sampled every dt. It returns 0 for series too short or too flat
// to oscillate.
func DominantPeriod(series []float64, dt float64) float64 {
	freqs, power := PowerSpectrum(series, dt)
	best := 0
	for k := 1; k < len(power); k++ {
		if power[k] > power[best] || best == 0 {
			best = k
		}
	}
	if best == 0 || power[best] == 0 {
		return 0
	}
	return 1 / freqs[best]
}
