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

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	nl "github.com/mlnoga/starcolor/internal"
	"github.com/mlnoga/starcolor/internal/batch"
	"github.com/mlnoga/starcolor/internal/blackbody"
	"github.com/mlnoga/starcolor/internal/palette"
	"github.com/mlnoga/starcolor/internal/rest"
)

const version = "0.1.0"

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")

var params = flag.String("params", "", "load tuning parameters from YAML or JSON `file`, defaults for fields not given")
var log = flag.String("log", "", "save log output to `file` in addition to the console")
var out = flag.String("out", "", "write batch or palette output to `file`, or the legend image (.png, .jpg or .tiff). Empty means stdout")
var format = flag.String("format", "csv", "output format for batch and palette, csv or json")
var threads = flag.Int("threads", 0, "number of threads for batch coloring, 0=all available")

var samples = flag.Int("n", 16, "number of palette samples")
var width = flag.Int("width", 512, "legend width in pixels")
var height = flag.Int("height", 32, "legend height in pixels")

var addr = flag.String("addr", ":8080", "listen address for serve")
var chroot = flag.String("chroot", "", "serve: change filesystem root to `dir` before listening (requires root)")
var setuid = flag.Int("setuid", -1, "serve: switch to this user id before listening, -1=keep")

func main() {
	start := time.Now()
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Starcolor Copyright (c) 2020 Markus L. Noga
This program comes with ABSOLUTELY NO WARRANTY.
This is free software, and you are welcome to redistribute it under certain conditions.
Refer to https://www.gnu.org/licenses/gpl-3.0.en.html for details.

Usage: %s [-flag value] (color|kelvin|batch|stats|palette|legend|invert|serve|legal|version) (args)

Commands:
  color   Show temperature and color for each centrality argument
  kelvin  Show the color for each temperature argument in Kelvin
  batch   Color nodes read from files or stdin, lines of "centrality" or "id,centrality"
  stats   Summarize the centrality distribution of nodes read from files or stdin
  palette Sample the centrality to color mapping at -n points
  legend  Render the color bar to the -out image file
  invert  Estimate the centrality for each #rrggbb color argument
  serve   Serve colors over HTTP on -addr
  legal   Show license and attribution information
  version Show version information

Flags:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		return
	}

	// keep stdout clean when it carries data
	if *out == "" && (args[0] == "batch" || args[0] == "palette") {
		nl.LogConsole(os.Stderr)
	}
	if *log != "" {
		if err := nl.LogAlsoToFile(*log); err != nil {
			nl.LogFatalf("Unable to open logfile '%s': %s\n", *log, err)
		}
	}
	logWriter := nl.LogWriter()

	// Enable CPU profiling if flagged
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			nl.LogFatal("Could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			nl.LogFatal("Could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	p := blackbody.DefaultParams()
	if *params != "" {
		var err error
		if p, err = blackbody.LoadParamsFile(*params); err != nil {
			nl.LogFatalf("Error loading parameters: %s\n", err)
		}
		fmt.Fprintf(logWriter, "Using %s\n", p)
	}

	ctx := nl.NewContext(logWriter)
	if *threads > 0 {
		ctx.MaxThreads = *threads
	}

	var err error
	switch args[0] {
	case "color":
		err = cmdColor(args[1:], p, os.Stdout)

	case "kelvin":
		err = cmdKelvin(args[1:], os.Stdout)

	case "batch":
		err = cmdBatch(args[1:], p, ctx)

	case "stats":
		err = cmdStats(args[1:], p, ctx)

	case "palette":
		err = cmdPalette(p, ctx)

	case "legend":
		err = cmdLegend(p, ctx)

	case "invert":
		err = cmdInvert(args[1:], p, os.Stdout)

	case "serve":
		fmt.Fprintf(logWriter, "Running on %s\n", ctx.Describe())
		if err = rest.DropPrivileges(logWriter, *chroot, *setuid); err == nil {
			err = rest.Serve(ctx, p, *addr)
		}

	case "legal":
		nl.LogPrint(legal)

	case "version":
		fmt.Fprintf(logWriter, "Version %s\n", version)
		fmt.Fprintf(logWriter, "Running on %s\n", ctx.Describe())

	case "help", "?":
		flag.Usage()

	default:
		fmt.Fprintf(logWriter, "Unknown command '%s'\n\n", args[0])
		flag.Usage()
		return
	}

	if err != nil {
		fmt.Fprintf(logWriter, "Error: %s\n", err.Error())
		nl.LogSync()
		os.Exit(-1)
	}
	fmt.Fprintf(logWriter, "Done after %v\n", time.Since(start))
	nl.LogSync()
}

func cmdColor(args []string, p blackbody.Params, w io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("need at least one centrality")
	}
	for _, arg := range args {
		c, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("invalid centrality '%s'", arg)
		}
		k := p.Temperature(c)
		col := blackbody.KelvinToRGB(k)
		fmt.Fprintf(w, "%g\t%.0fK\t%d,%d,%d\t%s\n", c, k, col.R, col.G, col.B, col.Hex())
	}
	return nil
}

func cmdKelvin(args []string, w io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("need at least one temperature")
	}
	for _, arg := range args {
		k, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("invalid temperature '%s'", arg)
		}
		col := blackbody.KelvinToRGB(k)
		fmt.Fprintf(w, "%.0fK\t%d,%d,%d\t%s\n", k, col.R, col.G, col.B, col.Hex())
	}
	return nil
}

func cmdInvert(args []string, p blackbody.Params, w io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("need at least one color")
	}
	for _, arg := range args {
		target, err := palette.ParseHex(arg)
		if err != nil {
			return fmt.Errorf("invalid color '%s': %w", arg, err)
		}
		inv, err := palette.Invert(p, target)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%.6g\t%.0fK\tdistance %.3g\n", target.Hex(), inv.Centrality, inv.Kelvin, inv.Distance)
	}
	return nil
}

// Reads nodes from the given files, or from stdin if there are none or the name is "-"
func readNodes(fileNames []string, logWriter io.Writer) ([]batch.Node, error) {
	if len(fileNames) == 0 {
		fileNames = []string{"-"}
	}
	var nodes []batch.Node
	for _, fileName := range fileNames {
		ns, err := readNodesFile(fileName)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fileName, err)
		}
		fmt.Fprintf(logWriter, "Read %d nodes from %s\n", len(ns), fileName)
		nodes = append(nodes, ns...)
	}
	return nodes, nil
}

func readNodesFile(fileName string) ([]batch.Node, error) {
	if fileName == "-" {
		return batch.ReadNodes(bufio.NewReader(os.Stdin))
	}
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return batch.ReadNodes(bufio.NewReader(f))
}

// Runs fn on the -out file, or on stdout
func withOutput(fn func(w io.Writer) error) error {
	if *out == "" {
		w := bufio.NewWriter(os.Stdout)
		if err := fn(w); err != nil {
			return err
		}
		return w.Flush()
	}
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := fn(w); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

func cmdBatch(args []string, p blackbody.Params, ctx *nl.Context) error {
	nodes, err := readNodes(args, ctx.Log)
	if err != nil {
		return err
	}
	if len(nodes) > ctx.MaxBatch {
		return fmt.Errorf("%d nodes exceed the batch limit of %d", len(nodes), ctx.MaxBatch)
	}
	colored := batch.Colorize(nodes, p, ctx.MaxThreads)
	fmt.Fprintf(ctx.Log, "Colored %d nodes with %d threads\n", len(colored), ctx.MaxThreads)
	return withOutput(func(w io.Writer) error { return batch.Write(w, colored, *format) })
}

func cmdStats(args []string, p blackbody.Params, ctx *nl.Context) error {
	nodes, err := readNodes(args, ctx.Log)
	if err != nil {
		return err
	}
	s, err := batch.Summarize(nodes, p)
	if err != nil {
		return err
	}
	s.Print(ctx.Log)
	return nil
}

func cmdPalette(p blackbody.Params, ctx *nl.Context) error {
	entries, err := palette.Sample(p, *samples)
	if err != nil {
		return err
	}
	colored := make([]batch.Colored, len(entries))
	for i, e := range entries {
		node := batch.Node{ID: strconv.Itoa(i), Centrality: e.Centrality}
		colored[i] = batch.Colored{Node: node, Kelvin: e.Kelvin, Color: e.Color, Hex: e.Hex}
	}
	fmt.Fprintf(ctx.Log, "Sampled %d colors for %s\n", len(colored), p)
	return withOutput(func(w io.Writer) error { return batch.Write(w, colored, *format) })
}

func cmdLegend(p blackbody.Params, ctx *nl.Context) error {
	if *out == "" {
		return fmt.Errorf("legend needs an -out file name")
	}
	legend, err := palette.NewLegend(p, *width, *height)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Log, "Writing %dx%d legend to %s ...\n", *width, *height, *out)
	return legend.WriteFile(*out)
}
