package main

import (
	"flag"
	"fmt"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/dither"
	"github.com/cwbudde/algo-fx/host"
	"github.com/cwbudde/algo-fx/internal/wavio"
	"github.com/cwbudde/algo-fx/measure/level"
)

// signalFlags describe the synthetic test tone shared by render and analyze.
type signalFlags struct {
	rate    *float64
	freq    *float64
	amp     *float64
	seconds *float64
}

func addSignalFlags(fs *flag.FlagSet, seconds float64) signalFlags {
	return signalFlags{
		rate:    fs.Float64("rate", core.ReferenceSampleRate, "sample rate of the synthetic signal in Hz"),
		freq:    fs.Float64("freq", 1000, "synthetic sine frequency in Hz"),
		amp:     fs.Float64("amp", 0.5, "synthetic sine amplitude (linear)"),
		seconds: fs.Float64("seconds", seconds, "synthetic signal duration"),
	}
}

func (f signalFlags) generate() (*wavio.Stereo, error) {
	if err := core.CheckSampleRate("fxcat", *f.rate); err != nil {
		return nil, err
	}

	if *f.seconds <= 0 || *f.seconds > 3600 {
		return nil, fmt.Errorf("seconds must be in (0, 3600]: %g", *f.seconds)
	}

	n := int(math.Round(*f.seconds * *f.rate))
	s := &wavio.Stereo{
		SampleRate: int(*f.rate),
		Left:       make([]float64, n),
		Right:      make([]float64, n),
	}

	w := 2 * math.Pi * *f.freq / *f.rate
	for i := range n {
		s.Left[i] = *f.amp * math.Sin(w*float64(i))
		s.Right[i] = s.Left[i]
	}

	return s, nil
}

func (a *app) render(args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(a.log.Out)

	in := fs.String("in", "", "input WAV file (default: synthetic sine)")
	out := fs.String("out", "", "output WAV file (required)")
	chain := fs.String("chain", "", "comma-separated plugin labels: "+descriptorLabels(a.reg))
	bits := fs.Int("bits", 24, "output word length: 8, 16, 24 or 32")
	shaper := fs.String("shaper", dither.Preset9FC.String(), "noise-shaping preset for PCM export: none, efb, 2sc, 3fc, 9fc, sbm")
	ditherName := fs.String("dither", "tpdf", "PCM export dither: none, rect, tpdf")
	block := fs.Int("block", 512, "processing block size in frames")
	seed := fs.Uint64("seed", 0, "seed for reproducible dither (0 draws from entropy)")
	verbose := fs.Bool("v", false, "log plugin lifecycle at debug level")

	var sets settingList
	fs.Var(&sets, "set", "control setting stage.key=value, stage is a label or index (repeatable)")

	sig := addSignalFlags(fs, 1)

	err := fs.Parse(args)
	if err != nil {
		return flagError(err)
	}

	a.verbose(*verbose)

	if *out == "" {
		return fmt.Errorf("%w: render needs -out", errUsage)
	}

	preset, err := dither.ParsePreset(*shaper)
	if err != nil {
		return err
	}

	ditherType, err := dither.ParseDitherType(*ditherName)
	if err != nil {
		return err
	}

	var s *wavio.Stereo
	if *in != "" {
		s, err = wavio.ReadFile(*in)
	} else {
		s, err = sig.generate()
	}

	if err != nil {
		return err
	}

	rackOpts := []host.Option{
		host.WithProcessorOptions(core.WithSampleRate(float64(s.SampleRate)), core.WithBlockSize(*block)),
		host.WithLogger(a.log),
	}

	exportOpts := []dither.Option{dither.WithPreset(preset), dither.WithDitherType(ditherType)}

	if *seed != 0 {
		rackOpts = append(rackOpts, host.WithSeed(*seed))
		exportOpts = append(exportOpts, dither.WithSource(dither.NewSeededSource(*seed)))
	}

	rack, err := host.NewRack(rackOpts...)
	if err != nil {
		return err
	}
	defer rack.Close()

	for label := range strings.SplitSeq(*chain, ",") {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}

		desc, err := a.lookup(label)
		if err != nil {
			return err
		}

		_, err = rack.Add(desc)
		if err != nil {
			return err
		}
	}

	for _, st := range sets {
		err := rack.Apply(st)
		if err != nil {
			return err
		}
	}

	a.log.WithFields(logrus.Fields{
		"stages":      len(rack.Stages()),
		"frames":      s.Frames(),
		"sample_rate": s.SampleRate,
	}).Info("Rendering")

	rack.Activate()
	rack.ProcessPlanar(s.Left, s.Right)
	rack.Deactivate()

	err = wavio.WriteFile(*out, s, *bits, exportOpts...)
	if err != nil {
		return err
	}

	a.log.WithFields(logrus.Fields{"path": *out, "bits": *bits, "shaper": preset}).Info("Wrote output")

	return a.printLevels(level.Measure(s.Left, s.Right))
}

func (a *app) printLevels(rep level.Report) error {
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Channel\tPeak [dBFS]\tRMS [dBFS]\tDC\n")
	_, _ = fmt.Fprintf(tw, "-------\t-----------\t----------\t--\n")

	rows := []struct {
		name string
		ch   level.Channel
	}{
		{"left", rep.Left},
		{"right", rep.Right},
	}

	for _, r := range rows {
		_, err := fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.3g\n", r.name, r.ch.PeakDB, r.ch.RMSDB, r.ch.DC)
		if err != nil {
			return fmt.Errorf("write output row: %w", err)
		}
	}

	err := tw.Flush()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(a.out, "\nframes: %d, correlation: %.4f\n", rep.Frames, rep.Correlation)

	return err
}
