// Command verbprobe renders reverb impulse responses and prints their
// measured decay characteristics.
//
// Usage:
//
//	verbprobe [flags] [mode-name ...]
//
// Without arguments it probes all reverb modes.
//
// Examples:
//
//	verbprobe hall
//	verbprobe -rate 96000 -size 0.8 hall cathedral
//	verbprobe -all
//	verbprobe -list
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/dusk-audio/algo-reverb/dsp/reverb"
	"github.com/dusk-audio/algo-reverb/measure/ir"
)

type modeEntry struct {
	name string
	mode reverb.Mode
}

var registry = []modeEntry{
	{"plate", reverb.ModePlate},
	{"room", reverb.ModeRoom},
	{"hall", reverb.ModeHall},
	{"chamber", reverb.ModeChamber},
	{"cathedral", reverb.ModeCathedral},
	{"ambience", reverb.ModeAmbience},
	{"bright-hall", reverb.ModeBrightHall},
	{"chorus-space", reverb.ModeChorusSpace},
	{"random-space", reverb.ModeRandomSpace},
	{"dirty-hall", reverb.ModeDirtyHall},
}

func main() {
	rate := flag.Float64("rate", 48000, "sample rate in Hz")
	size := flag.Float64("size", 0.5, "size control 0..1")
	damping := flag.Float64("damping", 0.5, "damping control 0..1")
	seconds := flag.Float64("seconds", 0, "render length in seconds (0 = 2x the model RT60)")
	all := flag.Bool("all", false, "probe all reverb modes")
	list := flag.Bool("list", false, "list available mode names")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: verbprobe [flags] [mode-name ...]\n\n")
		fmt.Fprintf(os.Stderr, "Renders reverb impulse responses and prints decay metrics.\n")
		fmt.Fprintf(os.Stderr, "Without arguments or with -all, probes every mode.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  verbprobe hall cathedral\n")
		fmt.Fprintf(os.Stderr, "  verbprobe -rate 96000 -size 0.8 hall\n")
		fmt.Fprintf(os.Stderr, "  verbprobe -all\n")
		fmt.Fprintf(os.Stderr, "  verbprobe -list\n")
	}
	flag.Parse()

	if *list {
		printList()
		return
	}

	names := flag.Args()
	if len(names) == 0 || *all {
		names = nil
		for _, e := range registry {
			names = append(names, e.name)
		}
	}

	entries := resolveEntries(names)
	if len(entries) == 0 {
		fmt.Fprintf(os.Stderr, "error: no matching reverb modes\n")
		os.Exit(1)
	}

	printAnalysis(entries, *rate, *size, *damping, *seconds)
}

func printList() {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.name
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Println(n)
	}
}

func resolveEntries(names []string) []modeEntry {
	byName := make(map[string]modeEntry, len(registry))
	for _, e := range registry {
		byName[e.name] = e
	}

	var result []modeEntry
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		e, ok := byName[name]
		if !ok {
			fmt.Fprintf(os.Stderr, "warning: unknown mode %q (use -list to see available)\n", name)
			continue
		}
		result = append(result, e)
	}
	return result
}

func printAnalysis(entries []modeEntry, rate, size, damping, seconds float64) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Mode\tModel RT60 [s]\tRT60 [s]\tEDT [s]\tT20 [s]\tT30 [s]\tPeak [ms]\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}
	if _, err := fmt.Fprintf(tw, "----\t--------------\t--------\t-------\t-------\t-------\t---------\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	analyzer := ir.NewAnalyzer(rate)

	for _, e := range entries {
		response, modelRT, err := renderIR(e.mode, rate, size, damping, seconds)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", e.name, err)
			continue
		}

		m, err := analyzer.Analyze(response)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", e.name, err)
			continue
		}

		if _, err := fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.1f\n",
			e.name,
			modelRT,
			m.RT60,
			m.EDT,
			m.T20,
			m.T30,
			float64(m.PeakIndex)/rate*1000,
		); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

// renderIR runs a unit impulse through a freshly prepared engine and returns
// the left-channel wet response plus the engine's own RT60 model value.
func renderIR(mode reverb.Mode, rate, size, damping, seconds float64) ([]float64, float64, error) {
	e := reverb.NewEngine()
	if err := e.Prepare(rate, 512); err != nil {
		return nil, 0, err
	}

	e.SetMode(mode)
	e.SetSize(size)
	e.SetDamping(damping)
	e.SetMix(1)

	modelRT := e.RT60()
	if seconds <= 0 {
		seconds = 2 * modelRT
	}

	n := int(math.Ceil(seconds * rate))
	out := make([]float64, n)
	for i := range out {
		x := 0.0
		if i == 0 {
			x = 1
		}
		out[i], _ = e.Process(x, x)
	}

	return out, modelRT, nil
}
