package pass

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-eeg/dsp/filter/biquad"
)

// ButterworthBP designs a band-pass Butterworth cascade from an analog
// lowpass prototype of the given order.
//
// The prototype is shifted to the band [lowHz, highHz] with the classic
// lowpass-to-bandpass substitution and mapped to z with a prewarped bilinear
// transform, so the result has 2*order poles packed into order biquads. This
// matches butter(order, [low, high]/nyquist, "band"). Gain is unity at the
// geometric band centre.
func ButterworthBP(order int, lowHz, highHz, sampleRate float64) ([]biquad.Coefficients, error) {
	if err := validateBand(order, lowHz, highHz, sampleRate); err != nil {
		return nil, err
	}

	wl := warp(lowHz, sampleRate)
	wh := warp(highHz, sampleRate)
	bw := wh - wl
	w0sq := wl * wh
	fs2 := 2 * sampleRate

	toZ := func(s complex128) complex128 {
		return (complex(fs2, 0) + s) / (complex(fs2, 0) - s)
	}

	sections := make([]biquad.Coefficients, 0, order)

	// Upper half-plane prototype poles. Each splits into two band-pass poles
	// whose conjugates come from the mirrored prototype pole.
	for k := 0; k < order/2; k++ {
		theta := math.Pi * float64(2*k+1+order) / float64(2*order)
		p := complex(math.Cos(theta), math.Sin(theta))

		q := p * complex(bw/2, 0)
		d := cmplx.Sqrt(q*q - complex(w0sq, 0))
		for _, s := range []complex128{q + d, q - d} {
			z := toZ(s)
			sections = append(sections, bandpassSection(-2*real(z), real(z)*real(z)+imag(z)*imag(z)))
		}
	}

	if order%2 != 0 {
		q := complex(-bw/2, 0)
		d := cmplx.Sqrt(q*q - complex(w0sq, 0))
		z1, z2 := toZ(q+d), toZ(q-d)
		sections = append(sections, bandpassSection(-real(z1+z2), real(z1*z2)))
	}

	mag := biquad.NewChain(sections).Magnitude(BandCentre(lowHz, highHz, sampleRate), sampleRate)
	if mag == 0 || math.IsNaN(mag) || math.IsInf(mag, 0) {
		return nil, ErrInvalidParams
	}

	g := 1 / mag
	sections[0].B0 *= g
	sections[0].B1 *= g
	sections[0].B2 *= g

	return sections, nil
}

// bandpassSection places one zero at DC and one at Nyquist.
func bandpassSection(a1, a2 float64) biquad.Coefficients {
	return biquad.Coefficients{B0: 1, B1: 0, B2: -1, A1: a1, A2: a2}
}

// BandCentre returns the frequency (Hz) at which ButterworthBP has unity gain.
func BandCentre(lowHz, highHz, sampleRate float64) float64 {
	w0 := math.Sqrt(warp(lowHz, sampleRate) * warp(highHz, sampleRate))
	return sampleRate / math.Pi * math.Atan(w0/(2*sampleRate))
}
