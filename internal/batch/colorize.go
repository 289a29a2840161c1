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
	"github.com/mlnoga/starcolor/internal/blackbody"
)

// Nodes colored per goroutine. Coloring a node takes well under a microsecond,
// so smaller chunks would be dominated by scheduling
const chunkSize = 4096

func colorNode(p blackbody.Params, n Node) Colored {
	k := p.Temperature(n.Centrality)
	c := blackbody.KelvinToRGB(k)
	return Colored{Node: n, Kelvin: k, Color: c, Hex: c.Hex()}
}

// Colors all nodes with the given parameters, using at most maxThreads goroutines.
// The output preserves the input order.
func Colorize(nodes []Node, p blackbody.Params, maxThreads int) []Colored {
	outs := make([]Colored, len(nodes))
	if len(nodes) == 0 {
		return outs
	}
	if maxThreads < 1 {
		maxThreads = 1
	}
	limiter := make(chan bool, maxThreads)
	for start := 0; start < len(nodes); start += chunkSize {
		end := start + chunkSize
		if end > len(nodes) {
			end = len(nodes)
		}
		limiter <- true
		go func(start, end int) {
			defer func() { <-limiter }()
			for i := start; i < end; i++ {
				outs[i] = colorNode(p, nodes[i])
			}
		}(start, end)
	}
	for i := 0; i < cap(limiter); i++ { // wait for goroutines to finish
		limiter <- true
	}
	return outs
}
