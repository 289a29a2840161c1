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

package internal

import (
	"bytes"
	"strings"
	"testing"
)

func TestMaxBatchForMemory(t *testing.T) {
	tcs := []struct {
		MemoryMB int
		Want     int
	}{
		{0, 1 << 16},
		{100, 1 << 16},
		{16384, 16384 / 10 * 1024 * 1024 / bytesPerNode},
	}
	for _, tc := range tcs {
		if got := maxBatchForMemory(tc.MemoryMB); got != tc.Want {
			t.Errorf("maxBatchForMemory(%d)=%d; want %d", tc.MemoryMB, got, tc.Want)
		}
	}
}

func TestNewContext(t *testing.T) {
	var buf bytes.Buffer
	c := NewContext(&buf)
	if c.Log != &buf {
		t.Errorf("Log writer not kept")
	}
	if c.MaxThreads < 1 {
		t.Errorf("MaxThreads=%d; want >=1", c.MaxThreads)
	}
	if c.MaxBatch < 1<<16 {
		t.Errorf("MaxBatch=%d; want >=%d", c.MaxBatch, 1<<16)
	}
	if d := c.Describe(); !strings.Contains(d, "threads") {
		t.Errorf("Describe()=%q; want thread count", d)
	}
}
