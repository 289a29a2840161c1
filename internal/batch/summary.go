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

package batch

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/mlnoga/starcolor/internal/blackbody"
)

// Distribution of centralities in a batch, and the temperatures they map to
type Summary struct {
	Count     int     `json:"count"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Mean      float64 `json:"mean"`   // of centralities clamped to [0, MaxExpectedCentrality]
	StdDev    float64 `json:"stdDev"` // likewise clamped
	Median    float64 `json:"median"`
	P90       float64 `json:"p90"`
	Saturated float64 `json:"saturated"` // share of nodes at or above MaxExpectedCentrality
	Negative  float64 `json:"negative"`  // share of nodes below zero, shown as the coolest color

	MedianKelvin float64 `json:"medianKelvin"`
	P90Kelvin    float64 `json:"p90Kelvin"`

	Bands []Band `json:"bands"` // node counts per equal-width temperature band
}

// A temperature band and the number of nodes shown in its colors
type Band struct {
	MinKelvin float64       `json:"minKelvin"`
	MaxKelvin float64       `json:"maxKelvin"`
	Color     blackbody.RGB `json:"color"` // at the band center
	Count     int           `json:"count"`
}

// Number of temperature bands in a summary
const numBands = 10

// Counts the temperatures falling into equal-width bins between min and max.
// Values outside the range land in the outermost bins.
func Histogram(data []float64, min, max float64, bins []int) {
	for i := range bins {
		bins[i] = 0
	}
	scale := float64(len(bins)) / (max - min)
	for _, d := range data {
		index := int((d - min) * scale)
		if index < 0 || d != d {
			index = 0
		}
		if index >= len(bins) {
			index = len(bins) - 1
		}
		bins[index]++
	}
}

// Summarizes the centralities of the given nodes
func Summarize(nodes []Node, p blackbody.Params) (Summary, error) {
	if len(nodes) == 0 {
		return Summary{}, errors.New("no nodes to summarize")
	}
	xs := make([]float64, len(nodes))
	clamped := make([]float64, len(nodes))
	saturated, negative := 0, 0
	for i, n := range nodes {
		if math.IsNaN(n.Centrality) || math.IsInf(n.Centrality, 0) {
			return Summary{}, fmt.Errorf("node %s: centrality must be finite, got %g", n.ID, n.Centrality)
		}
		xs[i] = n.Centrality
		clamped[i] = math.Max(0, math.Min(n.Centrality, p.MaxExpectedCentrality))
		if n.Centrality >= p.MaxExpectedCentrality {
			saturated++
		}
		if n.Centrality < 0 {
			negative++
		}
	}
	sort.Float64s(xs)

	s := Summary{
		Count:     len(xs),
		Min:       floats.Min(xs),
		Max:       floats.Max(xs),
		Median:    stat.Quantile(0.5, stat.Empirical, xs, nil),
		P90:       stat.Quantile(0.9, stat.Empirical, xs, nil),
		Saturated: float64(saturated) / float64(len(xs)),
		Negative:  float64(negative) / float64(len(xs)),
	}
	s.Mean, s.StdDev = stat.MeanStdDev(clamped, nil)
	if len(xs) == 1 {
		s.StdDev = 0
	}
	s.MedianKelvin = p.Temperature(s.Median)
	s.P90Kelvin = p.Temperature(s.P90)

	kelvins := make([]float64, len(xs))
	for i, x := range xs {
		kelvins[i] = p.Temperature(x)
	}
	counts := make([]int, numBands)
	Histogram(kelvins, p.MinTempKelvin, p.MaxTempKelvin, counts)
	width := (p.MaxTempKelvin - p.MinTempKelvin) / numBands
	s.Bands = make([]Band, numBands)
	for i, count := range counts {
		lo := p.MinTempKelvin + float64(i)*width
		s.Bands[i] = Band{
			MinKelvin: lo,
			MaxKelvin: lo + width,
			Color:     blackbody.KelvinToRGB(lo + width/2),
			Count:     count,
		}
	}
	return s, nil
}

// Prints the summary in human-readable form
func (s Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "%d nodes, centrality min %.4g max %.4g mean %.4g stddev %.4g\n", s.Count, s.Min, s.Max, s.Mean, s.StdDev)
	fmt.Fprintf(w, "median %.4g (%.0fK), 90th percentile %.4g (%.0fK)\n", s.Median, s.MedianKelvin, s.P90, s.P90Kelvin)
	fmt.Fprintf(w, "%.1f%% on the saturated plateau, %.1f%% negative\n", s.Saturated*100, s.Negative*100)
	for _, b := range s.Bands {
		fmt.Fprintf(w, "%6.0fK-%6.0fK %s %7d %s\n", b.MinKelvin, b.MaxKelvin, b.Color.Hex(), b.Count,
			strings.Repeat("*", (b.Count*50+s.Count-1)/s.Count))
	}
}
