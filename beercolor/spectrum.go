package beercolor

import "math"

// Spectrum holds one transmittance value per reference wavelength.
type Spectrum [SampleCount]float64

// Weight selects a colour-matching function column of the reference table.
// Values other than WeightX, WeightY and WeightZ select no column and
// integrate to 0.
type Weight int

const (
	WeightX Weight = iota
	WeightY
	WeightZ
)

func (w Weight) of(s *Sample) float64 {
	switch w {
	case WeightX:
		return s.XBar
	case WeightY:
		return s.YBar
	case WeightZ:
		return s.ZBar
	}
	return 0
}

// decay models the average absorbance shape of beer relative to 430 nm as the
// sum of two exponentials.
func decay(wavelength float64) float64 {
	d := wavelength - 430.0
	return 0.02465*math.Exp(-d/17.591) + 0.97535*math.Exp(-d/82.122)
}

// Transmittance synthesizes the transmission spectrum of a sample with the
// given absorbance at 430 nm over a path of pathCm centimetres.
//
// Inputs are not validated. Negative values yield transmittance above 1.
func Transmittance(a430, pathCm float64) Spectrum {
	var s Spectrum
	for i := range referenceTable {
		absorbance := a430 * pathCm * decay(referenceTable[i].Wavelength)
		s[i] = math.Pow(10.0, -absorbance)
	}
	return s
}

// Integrate reduces the spectrum to a single tristimulus component. The sum is
// taken in ascending wavelength order so results are reproducible bit for bit.
func Integrate(s Spectrum, w Weight) float64 {
	var sum float64
	for i := range referenceTable {
		sum += referenceTable[i].Illuminant * s[i] * w.of(&referenceTable[i])
	}
	return k * sum
}

// Tristimulus integrates the spectrum against all three colour-matching functions.
func Tristimulus(s Spectrum) XYZ {
	return XYZ{
		X: Integrate(s, WeightX),
		Y: Integrate(s, WeightY),
		Z: Integrate(s, WeightZ),
	}
}
