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
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultParamsAreValid(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Errorf("DefaultParams().Validate()=%v; want nil", err)
	}
}

func TestValidate(t *testing.T) {
	tcs := []struct {
		Name   string
		Modify func(p *Params)
	}{
		{"zero max centrality", func(p *Params) { p.MaxExpectedCentrality = 0 }},
		{"negative max centrality", func(p *Params) { p.MaxExpectedCentrality = -1 }},
		{"NaN exponent", func(p *Params) { p.DistributionExponent = math.NaN() }},
		{"zero exponent", func(p *Params) { p.DistributionExponent = 0 }},
		{"inverted range", func(p *Params) { p.MinTempKelvin, p.MaxTempKelvin = 30000, 800 }},
		{"empty range", func(p *Params) { p.MinTempKelvin = p.MaxTempKelvin }},
		{"infinite bound", func(p *Params) { p.MaxTempKelvin = math.Inf(1) }},
	}
	for _, tc := range tcs {
		p := DefaultParams()
		tc.Modify(&p)
		if err := p.Validate(); err == nil {
			t.Errorf("%s: Validate()=nil; want error", tc.Name)
		}
	}
}

func TestLoadParams(t *testing.T) {
	tcs := []struct {
		Name  string
		Input string
		Want  Params
	}{
		{"empty", "", DefaultParams()},
		{"yaml partial", "maxTempKelvin: 12000\ndistributionExponent: 0.5\n",
			Params{0.5, 800, 12000, 0.5}},
		{"json full", `{"maxExpectedCentrality": 1, "minTempKelvin": 1000, "maxTempKelvin": 40000, "distributionExponent": 1}`,
			Params{1, 1000, 40000, 1}},
	}
	for _, tc := range tcs {
		p, err := LoadParams(strings.NewReader(tc.Input))
		if err != nil {
			t.Errorf("%s: LoadParams error %v", tc.Name, err)
			continue
		}
		if p != tc.Want {
			t.Errorf("%s: LoadParams=%+v; want %+v", tc.Name, p, tc.Want)
		}
	}
}

func TestLoadParamsRejects(t *testing.T) {
	inputs := []string{
		"minTempKelvin: 40000\n",
		"unknownField: 1\n",
		"maxExpectedCentrality: [1, 2]\n",
	}
	for _, in := range inputs {
		if _, err := LoadParams(strings.NewReader(in)); err == nil {
			t.Errorf("LoadParams(%q)=nil error; want error", in)
		}
	}
}

func TestLoadParamsFile(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "params.yaml")
	if err := os.WriteFile(fileName, []byte("minTempKelvin: 1200\n"), 0666); err != nil {
		t.Fatal(err)
	}
	p, err := LoadParamsFile(fileName)
	if err != nil {
		t.Fatalf("LoadParamsFile error %v", err)
	}
	if p.MinTempKelvin != 1200 || p.MaxTempKelvin != DefaultMaxTempKelvin {
		t.Errorf("LoadParamsFile=%+v; want min 1200 and default max", p)
	}

	if _, err := LoadParamsFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("LoadParamsFile(missing)=nil error; want error")
	}
}
