// Package beercolor renders SRM and EBC beer color ratings as sRGB colors.
//
// The absorbance of the beer is modeled across the visible spectrum, the
// transmitted light is integrated against the CIE 1931 2° observer under
// illuminant D65, and the resulting XYZ value is transformed to gamma encoded
// sRGB. All functions are pure and safe for concurrent use.
package beercolor

import (
	"fmt"
	"strings"
)

// DefaultPath is the transmission path in cm of the sample glass width used
// by the BJCP color guide.
const DefaultPath = 5.0

const (
	srmPerA430 = 12.7
	ebcPerA430 = 25.0
)

// AbsorbanceToSRGB renders a sample with absorbance a430 at 430 nm seen
// through pathCm centimetres of beer.
func AbsorbanceToSRGB(a430, pathCm float64) RGB {
	return Tristimulus(Transmittance(a430, pathCm)).Linear().Encode()
}

// SRMToSRGB renders an SRM rating seen through pathCm centimetres of beer.
func SRMToSRGB(srm, pathCm float64) RGB {
	return AbsorbanceToSRGB(srm/srmPerA430, pathCm)
}

// EBCToSRGB renders an EBC rating seen through pathCm centimetres of beer.
func EBCToSRGB(ebc, pathCm float64) RGB {
	return AbsorbanceToSRGB(ebc/ebcPerA430, pathCm)
}

// SRMToEBC converts an SRM rating to the EBC rating with the same absorbance.
func SRMToEBC(srm float64) float64 {
	return srm / srmPerA430 * ebcPerA430
}

// EBCToSRM converts an EBC rating to the SRM rating with the same absorbance.
func EBCToSRM(ebc float64) float64 {
	return ebc / ebcPerA430 * srmPerA430
}

// Scale identifies a beer color rating scale.
type Scale int

// Supported rating scales. One SRM unit is 1/12.7 of the absorbance at
// 430 nm, one EBC unit 1/25 of it.
const (
	SRM Scale = iota
	EBC
)

// ParseScale accepts "srm" or "ebc" in any case.
func ParseScale(s string) (Scale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "srm":
		return SRM, nil
	case "ebc":
		return EBC, nil
	}
	return SRM, fmt.Errorf("unknown color scale %q: must be 'srm' or 'ebc'", s)
}

func (s Scale) String() string {
	switch s {
	case SRM:
		return "SRM"
	case EBC:
		return "EBC"
	}
	return fmt.Sprintf("Scale(%d)", int(s))
}

// Absorbance returns the absorbance at 430 nm for a rating on this scale.
func (s Scale) Absorbance(value float64) float64 {
	if s == EBC {
		return value / ebcPerA430
	}
	return value / srmPerA430
}

// ToSRGB renders a rating on this scale seen through pathCm centimetres of beer.
func (s Scale) ToSRGB(value, pathCm float64) RGB {
	if s == EBC {
		return EBCToSRGB(value, pathCm)
	}
	return SRMToSRGB(value, pathCm)
}
