package metrics

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/projshift/internal/sim"
)

// minSpectrumFrames is the fewest increments worth transforming.
const minSpectrumFrames = 8

// JitterEnergy is the share of spectral power in the upper half of the
// Hann-windowed spectrum of per-frame eased-factor increments, mean removed.
// A fixed-step run gives a smooth trend with almost all power in the lowest
// bins; uneven frame times add broadband noise that lifts the upper bins.
type JitterEnergy struct {
	prev       float64
	increments []float64
}

func NewJitterEnergy() *JitterEnergy { return &JitterEnergy{} }

func (j *JitterEnergy) Name() string { return "jitter_energy" }

func (j *JitterEnergy) Observe(f sim.Frame) {
	if f.Final {
		return
	}
	j.increments = append(j.increments, f.Eased-j.prev)
	j.prev = f.Eased
}

func (j *JitterEnergy) Value() float64 {
	n := len(j.increments)
	if n < minSpectrumFrames {
		return 0
	}

	mean := 0.0
	for _, v := range j.increments {
		mean += v
	}
	mean /= float64(n)

	x := make([]float64, n)
	for i, v := range j.increments {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		x[i] = (v - mean) * w
	}

	spectrum := fft.FFTReal(x)
	half := n / 2
	var total, high float64
	for k := 1; k <= half; k++ {
		p := cmplx.Abs(spectrum[k])
		p *= p
		total += p
		if k > half/2 {
			high += p
		}
	}
	if total == 0 {
		return 0
	}
	return high / total
}

func (j *JitterEnergy) Reset() {
	j.prev = 0
	j.increments = j.increments[:0]
}
