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

package blackbody

import (
	"fmt"
	"math"
)

// Coefficients of Tanner Helland's curve fit from color temperature to RGB,
// operating on temperature in hundreds of Kelvin
const (
	KelvinScale = 100.0 // curves work on kelvin/KelvinScale

	Crossover  = 66.0 // red saturates and blue saturates on either side
	BlueCutoff = 19.0 // no blue at or below
	BlueOffset = 10.0

	RedScale    = 329.698727446
	RedExponent = -0.1332047592

	GreenLogScale    = 99.4708025861
	GreenLogOffset   = -161.1195681661
	GreenPowScale    = 288.1221695283
	GreenPowExponent = -0.0755148492

	PowOffset = 60.0 // shift of the red and green power curves

	BlueLogScale  = 138.5177312231
	BlueLogOffset = -305.0447927307
)

// An 8-bit RGB color. Each channel is an integer in [0,255] by construction.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Implements color.Color, so an RGB can be drawn into any image
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Formats the color as #rrggbb
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Print RGB color as a human-readable string
func (c RGB) String() string {
	return fmt.Sprintf("RGB(%d, %d, %d)", c.R, c.G, c.B)
}

// Maps a centrality onto a color temperature in Kelvin, using the default parameters
func MapCentralityToKelvin(centrality float64) float64 {
	return DefaultParams().Temperature(centrality)
}

// Returns the color for a centrality, using the default parameters
func GetColor(centrality float64) RGB {
	return DefaultParams().Color(centrality)
}

// Maps a centrality onto a color temperature in Kelvin. Centralities are normalized to
// MaxExpectedCentrality, redistributed with the exponent and interpolated linearly
// between MinTempKelvin and MaxTempKelvin. Negative centralities map to MinTempKelvin,
// NaN propagates.
func (p Params) Temperature(centrality float64) float64 {
	normalized := math.Min(centrality/p.MaxExpectedCentrality, 1.0)
	if normalized < 0 {
		normalized = 0
	}
	scalar := math.Pow(normalized, p.DistributionExponent)
	return p.MinTempKelvin + scalar*(p.MaxTempKelvin-p.MinTempKelvin)
}

// Returns the blackbody color for a centrality
func (p Params) Color(centrality float64) RGB {
	return KelvinToRGB(p.Temperature(centrality))
}

// Returns the unrounded blackbody channels in [0,255] for a centrality
func (p Params) ColorFloat(centrality float64) (r, g, b float64) {
	return KelvinToRGBFloat(p.Temperature(centrality))
}

// Converts a color temperature in Kelvin to RGB, after Tanner Helland's approximation.
// Valid roughly in [1000, 40000], extrapolates outside. NaN yields black.
func KelvinToRGB(kelvin float64) RGB {
	r, g, b := KelvinToRGBFloat(kelvin)
	return RGB{uint8(math.Round(r)), uint8(math.Round(g)), uint8(math.Round(b))}
}

// Converts a color temperature in Kelvin to unrounded channel values in [0,255].
// For outputs with more than 8 bits per channel, and for numerical searches over color.
func KelvinToRGBFloat(kelvin float64) (r, g, b float64) {
	if math.IsNaN(kelvin) {
		return 0, 0, 0
	}
	t := kelvin / KelvinScale

	if t <= Crossover {
		r = 255
		g = GreenLogScale*math.Log(t) + GreenLogOffset
	} else {
		r = RedScale * math.Pow(t-PowOffset, RedExponent)
		g = GreenPowScale * math.Pow(t-PowOffset, GreenPowExponent)
	}

	if t >= Crossover {
		b = 255
	} else if t <= BlueCutoff {
		b = 0
	} else {
		b = BlueLogScale*math.Log(t-BlueOffset) + BlueLogOffset
	}

	return clampChannel(r), clampChannel(g), clampChannel(b)
}

// Clamps into [0,255]. NaN becomes 0. Rounding after clamping gives the same
// integers as rounding before
func clampChannel(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
