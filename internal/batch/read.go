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
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mlnoga/starcolor/internal/blackbody"
)

// A graph node with its centrality
type Node struct {
	ID         string  `json:"id"`
	Centrality float64 `json:"centrality"`
}

// A node with its temperature and color
type Colored struct {
	Node
	Kelvin float64       `json:"kelvin"`
	Color  blackbody.RGB `json:"color"`
	Hex    string        `json:"hex"`
}

// Reads nodes from lines of either "centrality" or "id,centrality". Blank lines,
// lines starting with # and a leading header are skipped. Nodes without an ID are
// named by their line number.
func ReadNodes(r io.Reader) (nodes []Node, err error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, fmt.Errorf("line %d: %w", parseErr.Line, parseErr.Err)
			}
			return nil, err
		}
		line, _ := reader.FieldPos(0)

		var node Node
		switch len(record) {
		case 1:
			node.ID = strconv.Itoa(line)
		case 2:
			node.ID = strings.TrimSpace(record[0])
		default:
			return nil, fmt.Errorf("line %d: want 1 or 2 fields, got %d", line, len(record))
		}
		value := strings.TrimSpace(record[len(record)-1])
		if len(nodes) == 0 && strings.EqualFold(value, "centrality") {
			continue // header
		}
		node.Centrality, err = strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid centrality %q", line, value)
		}
		if math.IsNaN(node.Centrality) || math.IsInf(node.Centrality, 0) {
			return nil, fmt.Errorf("line %d: centrality must be finite, got %s", line, value)
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}
