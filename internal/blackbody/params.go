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
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Default tuning constants for mapping centrality to color temperature
const (
	DefaultMaxExpectedCentrality = 0.5   // centralities at or above this share the hottest color
	DefaultMinTempKelvin         = 800   // deep red, cool stars and brown dwarfs
	DefaultMaxTempKelvin         = 30000 // blue giants, O-type stars
	DefaultDistributionExponent  = 0.4   // <1 spreads out the long tail of small centralities
)

// Tuning parameters for the centrality to temperature mapping. Immutable once constructed,
// pass by value.
type Params struct {
	MaxExpectedCentrality float64 `json:"maxExpectedCentrality" yaml:"maxExpectedCentrality"`
	MinTempKelvin         float64 `json:"minTempKelvin"         yaml:"minTempKelvin"`
	MaxTempKelvin         float64 `json:"maxTempKelvin"         yaml:"maxTempKelvin"`
	DistributionExponent  float64 `json:"distributionExponent"  yaml:"distributionExponent"`
}

func DefaultParams() Params {
	return Params{
		MaxExpectedCentrality: DefaultMaxExpectedCentrality,
		MinTempKelvin:         DefaultMinTempKelvin,
		MaxTempKelvin:         DefaultMaxTempKelvin,
		DistributionExponent:  DefaultDistributionExponent,
	}
}

// Checks the parameters describe a usable, increasing temperature range
func (p Params) Validate() error {
	if !isFinite(p.MaxExpectedCentrality) || p.MaxExpectedCentrality <= 0 {
		return fmt.Errorf("maxExpectedCentrality must be positive and finite, got %g", p.MaxExpectedCentrality)
	}
	if !isFinite(p.DistributionExponent) || p.DistributionExponent <= 0 {
		return fmt.Errorf("distributionExponent must be positive and finite, got %g", p.DistributionExponent)
	}
	if !isFinite(p.MinTempKelvin) || !isFinite(p.MaxTempKelvin) {
		return fmt.Errorf("temperature range [%g, %g] must be finite", p.MinTempKelvin, p.MaxTempKelvin)
	}
	if p.MinTempKelvin >= p.MaxTempKelvin {
		return fmt.Errorf("minTempKelvin %g must be below maxTempKelvin %g", p.MinTempKelvin, p.MaxTempKelvin)
	}
	return nil
}

// Print parameters as a human-readable string
func (p Params) String() string {
	return fmt.Sprintf("centrality [0, %g] -> [%gK, %gK] with exponent %g",
		p.MaxExpectedCentrality, p.MinTempKelvin, p.MaxTempKelvin, p.DistributionExponent)
}

// Reads tuning parameters from YAML or JSON. Fields not present keep their default values.
func LoadParams(r io.Reader) (Params, error) {
	p := DefaultParams()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && err != io.EOF {
		return Params{}, fmt.Errorf("decoding params: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Reads tuning parameters from the given YAML or JSON file
func LoadParamsFile(fileName string) (Params, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return Params{}, err
	}
	defer file.Close()

	p, err := LoadParams(file)
	if err != nil {
		return Params{}, fmt.Errorf("%s: %w", fileName, err)
	}
	return p, nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
