// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package palette

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"

	"github.com/mlnoga/starcolor/internal/blackbody"
)

// A sampled point of the centrality to color mapping
type Entry struct {
	Centrality float64       `json:"centrality"`
	Kelvin     float64       `json:"kelvin"`
	Color      blackbody.RGB `json:"color"`
	Hex        string        `json:"hex"`
}

func NewEntry(p blackbody.Params, centrality float64) Entry {
	c := p.Color(centrality)
	return Entry{
		Centrality: centrality,
		Kelvin:     p.Temperature(centrality),
		Color:      c,
		Hex:        c.Hex(),
	}
}

// Samples n evenly spaced centralities from zero up to the start of the saturated plateau
func Sample(p blackbody.Params, n int) ([]Entry, error) {
	if n < 2 {
		return nil, fmt.Errorf("need at least 2 samples, got %d", n)
	}
	cs := floats.Span(make([]float64, n), 0, p.MaxExpectedCentrality)
	entries := make([]Entry, n)
	for i, c := range cs {
		entries[i] = NewEntry(p, c)
	}
	return entries, nil
}

// Converts an 8-bit color into go-colorful's representation
func ToColorful(c blackbody.RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Converts a go-colorful color to 8 bits per channel, clamping out-of-gamut values
func FromColorful(c colorful.Color) blackbody.RGB {
	r, g, b := c.Clamped().RGB255()
	return blackbody.RGB{R: r, G: g, B: b}
}

// Parses a #rrggbb or #rgb color
func ParseHex(s string) (blackbody.RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return blackbody.RGB{}, err
	}
	return FromColorful(c), nil
}

// Perceptual CIEDE2000 distance between two colors, on go-colorful's scale where
// black to white is 1. A just noticeable difference is about 0.01.
func Distance(a, b blackbody.RGB) float64 {
	return ToColorful(a).DistanceCIEDE2000(ToColorful(b))
}

// Result of inverting the color mapping
type Inversion struct {
	Centrality float64 `json:"centrality"`
	Kelvin     float64 `json:"kelvin"`
	Distance   float64 `json:"distance"` // CIEDE2000 from the requested color, black to white is 1
}

// Number of temperatures probed before refining the best one
const invertScanSteps = 64

// Finds the centrality in [0, MaxExpectedCentrality] whose color is perceptually nearest
// to the given color. Searches over the interpolation scalar, which is linear in Kelvin:
// a coarse scan seeds a Nelder-Mead refinement on the unrounded colors.
func Invert(p blackbody.Params, target blackbody.RGB) (Inversion, error) {
	if err := p.Validate(); err != nil {
		return Inversion{}, err
	}
	want := ToColorful(target)

	distance := func(scalar float64) float64 {
		scalar = math.Max(0, math.Min(scalar, 1))
		kelvin := p.MinTempKelvin + scalar*(p.MaxTempKelvin-p.MinTempKelvin)
		r, g, b := blackbody.KelvinToRGBFloat(kelvin)
		return colorful.Color{R: r / 255, G: g / 255, B: b / 255}.DistanceCIEDE2000(want)
	}

	bestS, bestD := 0.0, math.Inf(1)
	for _, s := range floats.Span(make([]float64, invertScanSteps+1), 0, 1) {
		if d := distance(s); d < bestD {
			bestS, bestD = s, d
		}
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 { return distance(x[0]) },
	}
	method := &optimize.NelderMead{SimplexSize: 1.0 / invertScanSteps}
	result, err := optimize.Minimize(problem, []float64{bestS}, nil, method)
	if err == nil && result != nil && result.F < bestD {
		bestS, bestD = math.Max(0, math.Min(result.X[0], 1)), result.F
	}

	// invert scalar = normalized^exponent
	centrality := p.MaxExpectedCentrality * math.Pow(bestS, 1/p.DistributionExponent)
	return Inversion{
		Centrality: centrality,
		Kelvin:     p.Temperature(centrality),
		Distance:   bestD,
	}, nil
}
