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
	"fmt"
	"io"
	"runtime"

	"github.com/klauspost/cpuid"
	"github.com/pbnjay/memory"
)

// Bytes budgeted per colored node when sizing batches: input, output and encoding overhead
const bytesPerNode = 256

// An execution context for batch coloring and the REST server
type Context struct {
	Log        io.Writer
	MemoryMB   int    // memory.TotalMemory()/1024/1024
	MaxThreads int    `json:"maxThreads"`
	MaxBatch   int    `json:"maxBatch"` // largest number of nodes colored in one request
	CPU        string `json:"cpu"`
	Cores      int    `json:"cores"`
	AVX2       bool   `json:"avx2"`
}

func NewContext(log io.Writer) *Context {
	memoryMB := int(memory.TotalMemory() / 1024 / 1024)
	return &Context{
		Log:        log,
		MemoryMB:   memoryMB,
		MaxThreads: runtime.GOMAXPROCS(0),
		MaxBatch:   maxBatchForMemory(memoryMB),
		CPU:        cpuid.CPU.BrandName,
		Cores:      cpuid.CPU.PhysicalCores,
		AVX2:       cpuid.CPU.AVX2(),
	}
}

// Allows a tenth of physical memory for a single batch, with a floor for
// systems where the memory size cannot be determined
func maxBatchForMemory(memoryMB int) int {
	const minBatch = 1 << 16
	n := memoryMB / 10 * 1024 * 1024 / bytesPerNode
	if n < minBatch {
		return minBatch
	}
	return n
}

// Describes the execution environment in one line
func (c *Context) Describe() string {
	cpu := c.CPU
	if cpu == "" {
		cpu = "unknown CPU"
	}
	return fmt.Sprintf("%s with %d cores (AVX2 %v), %d MB memory, %d threads, batches up to %d nodes",
		cpu, c.Cores, c.AVX2, c.MemoryMB, c.MaxThreads, c.MaxBatch)
}
