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
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"
)

// Singleton log writer. Writes to stdout, and optionally to a file.
// Does not add prefixes, or force newlines. Safe for use from the batch
// workers and the HTTP handlers.

var logMu sync.Mutex

// The console stream, stdout unless data output goes there
var logConsole io.Writer = os.Stdout

// The optional additional file to log into
var logFile *bufio.Writer
var logFileOS *os.File

// Redirects console logging, e.g. to stderr when stdout carries data
func LogConsole(w io.Writer) {
	logMu.Lock()
	defer logMu.Unlock()
	logConsole = w
}

// Enables logging to file
func LogAlsoToFile(fileName string) (err error) {
	logMu.Lock()
	defer logMu.Unlock()
	if logFile != nil {
		if err = logFile.Flush(); err != nil {
			return err
		}
		if err = logFileOS.Close(); err != nil {
			return err
		}
		logFile, logFileOS = nil, nil
	}
	f, err := os.OpenFile(fileName, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0666)
	if err != nil {
		return err
	}
	logFileOS, logFile = f, bufio.NewWriter(f)
	return nil
}

func LogPrint(args ...interface{}) (n int, err error) {
	return logWrite(fmt.Sprint(args...))
}

func LogPrintln(args ...interface{}) (n int, err error) {
	return logWrite(fmt.Sprintln(args...))
}

func LogPrintf(format string, args ...interface{}) (n int, err error) {
	return logWrite(fmt.Sprintf(format, args...))
}

func logWrite(s string) (n int, err error) {
	logMu.Lock()
	defer logMu.Unlock()
	n, err = io.WriteString(logConsole, s)
	if err != nil || logFile == nil {
		return n, err
	}
	return logFile.WriteString(s)
}

// Returns an io.Writer which logs like LogPrint, for handing to other components
func LogWriter() io.Writer {
	return logWriterFunc(func(p []byte) (int, error) { return logWrite(string(p)) })
}

type logWriterFunc func(p []byte) (int, error)

func (f logWriterFunc) Write(p []byte) (int, error) { return f(p) }

func LogFatal(args ...interface{}) {
	logWrite(fmt.Sprintln(args...))
	LogSync()
	os.Exit(1)
}

func LogFatalf(format string, args ...interface{}) {
	logWrite(fmt.Sprintf(format, args...))
	LogSync()
	os.Exit(1)
}

// Flushes and closes the log file, if any
func LogSync() {
	logMu.Lock()
	defer logMu.Unlock()
	if logFile == nil {
		return
	}
	logFile.Flush()
	logFileOS.Sync()
}
