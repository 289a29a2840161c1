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
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Writes colored nodes as CSV with a header line
func WriteCSV(w io.Writer, colored []Colored) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "centrality", "kelvin", "r", "g", "b", "hex"}); err != nil {
		return err
	}
	for _, c := range colored {
		record := []string{
			c.ID,
			strconv.FormatFloat(c.Centrality, 'g', -1, 64),
			strconv.FormatFloat(c.Kelvin, 'f', 1, 64),
			strconv.Itoa(int(c.Color.R)),
			strconv.Itoa(int(c.Color.G)),
			strconv.Itoa(int(c.Color.B)),
			c.Hex,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// Writes colored nodes as an indented JSON array
func WriteJSON(w io.Writer, colored []Colored) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(colored)
}

// Writes colored nodes in the named format, csv or json
func Write(w io.Writer, colored []Colored, format string) error {
	switch format {
	case "csv", "":
		return WriteCSV(w, colored)
	case "json":
		return WriteJSON(w, colored)
	default:
		return fmt.Errorf("unknown output format '%s'", format)
	}
}
