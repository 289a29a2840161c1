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
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestLogWriter(t *testing.T) {
	var buf bytes.Buffer
	LogConsole(&buf)
	defer LogConsole(os.Stdout)

	fileName := filepath.Join(t.TempDir(), "test.log")
	if err := LogAlsoToFile(fileName); err != nil {
		t.Fatalf("LogAlsoToFile error %v", err)
	}
	LogPrintf("%d nodes\n", 3)
	fmt.Fprint(LogWriter(), "done\n")
	LogSync()

	if got, want := buf.String(), "3 nodes\ndone\n"; got != want {
		t.Errorf("console log %q; want %q", got, want)
	}
	data, err := os.ReadFile(fileName)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "3 nodes\ndone\n"; got != want {
		t.Errorf("file log %q; want %q", got, want)
	}
}
