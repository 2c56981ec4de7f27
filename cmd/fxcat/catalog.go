package main

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-vecmath/cpu"

	"github.com/cwbudde/algo-fx/host"
	"github.com/cwbudde/algo-fx/plugin"
)

func (a *app) list(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(a.log.Out)

	err := fs.Parse(args)
	if err != nil {
		return flagError(err)
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "ID\tLabel\tMode\tControls\tName\n")
	_, _ = fmt.Fprintf(tw, "--\t-----\t----\t--------\t----\n")

	for _, d := range a.reg.Descriptors() {
		keys := make([]string, 0, len(d.Controls()))
		for _, p := range d.Controls() {
			keys = append(keys, host.ControlKey(p.Name))
		}

		controls := strings.Join(keys, ",")
		if controls == "" {
			controls = "-"
		}

		_, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", d.ID, d.Label, d.Mode, controls, d.Name)
		if err != nil {
			return fmt.Errorf("write output row: %w", err)
		}
	}

	return tw.Flush()
}

func (a *app) info(args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	fs.SetOutput(a.log.Out)

	err := fs.Parse(args)
	if err != nil {
		return flagError(err)
	}

	if fs.NArg() != 1 {
		return fmt.Errorf("%w: info takes exactly one plugin label", errUsage)
	}

	desc, err := a.lookup(fs.Arg(0))
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Label:\t%s\n", desc.Label)
	_, _ = fmt.Fprintf(tw, "Name:\t%s\n", desc.Name)
	_, _ = fmt.Fprintf(tw, "ID:\t%d\n", desc.ID)
	_, _ = fmt.Fprintf(tw, "Maker:\t%s\n", desc.Maker)
	_, _ = fmt.Fprintf(tw, "Copyright:\t%s\n", desc.Copyright)
	_, _ = fmt.Fprintf(tw, "Mode:\t%s\n", desc.Mode)
	_, _ = fmt.Fprintf(tw, "SIMD:\t%s\n", simdSummary(cpu.DetectFeatures()))

	err = tw.Flush()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(a.out)

	tw = tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "#\tPort\tKey\tKind\tMin\tMax\tDefault\n")
	_, _ = fmt.Fprintf(tw, "-\t----\t---\t----\t---\t---\t-------\n")

	for i, p := range desc.Ports {
		if p.IsAudio() {
			_, _ = fmt.Fprintf(tw, "%d\t%s\t-\t%s\t-\t-\t-\n", i, p.Name, p.Kind)
			continue
		}

		kind := p.Kind.String()
		if p.Hint.Integer {
			kind += " (int)"
		}

		_, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%g\t%g\t%g\n",
			i, p.Name, host.ControlKey(p.Name), kind, p.Hint.Min, p.Hint.Max, p.Hint.Default)
		if err != nil {
			return fmt.Errorf("write output row: %w", err)
		}
	}

	return tw.Flush()
}

// simdSummary names the widest SIMD level the host supports.
func simdSummary(f cpu.Features) string {
	levels := []cpu.SIMDLevel{cpu.SIMDAVX512, cpu.SIMDAVX2, cpu.SIMDAVX, cpu.SIMDSSE2, cpu.SIMDNEON}

	best := cpu.SIMDNone
	for _, l := range levels {
		if cpu.Supports(f, l) {
			best = l
			break
		}
	}

	return fmt.Sprintf("%s (%s)", best, f.Architecture)
}

func flagError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}

	return fmt.Errorf("%w: %w", errUsage, err)
}

func descriptorLabels(reg *plugin.Registry) string {
	descs := reg.Descriptors()
	labels := make([]string, len(descs))
	for i, d := range descs {
		labels[i] = d.Label
	}

	return strings.Join(labels, ", ")
}
