package main

import (
	"flag"
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/dither"
	"github.com/cwbudde/algo-fx/host"
	"github.com/cwbudde/algo-fx/measure/level"
	"github.com/cwbudde/algo-fx/measure/noise"
	"github.com/cwbudde/algo-fx/measure/thd"
	"github.com/cwbudde/algo-fx/plugin"
)

func (a *app) analyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(a.log.Out)

	fftSize := fs.Int("fft", 8192, "FFT size (power of two)")
	seed := fs.Uint64("seed", 0, "seed for reproducible dither (0 draws from entropy)")
	verbose := fs.Bool("v", false, "log plugin lifecycle at debug level")
	sig := addSignalFlags(fs, 2)

	err := fs.Parse(args)
	if err != nil {
		return flagError(err)
	}

	a.verbose(*verbose)

	if fs.NArg() != 1 {
		return fmt.Errorf("%w: analyze takes exactly one plugin label", errUsage)
	}

	desc, err := a.lookup(fs.Arg(0))
	if err != nil {
		return err
	}

	s, err := sig.generate()
	if err != nil {
		return err
	}

	left := make([]float32, s.Frames())
	right := make([]float32, s.Frames())
	core.Narrow(left, s.Left)
	core.Narrow(right, s.Right)

	pluginOpts := []plugin.Option{plugin.WithLogger(a.log)}
	rackOpts := []host.Option{
		host.WithProcessorOptions(core.WithSampleRate(*sig.rate)),
		host.WithLogger(a.log),
	}

	if *seed != 0 {
		pluginOpts = append(pluginOpts, plugin.WithSource(dither.NewSeededSource(*seed)))
		rackOpts = append(rackOpts, host.WithSeed(*seed))
	}

	rep, err := noise.Analyze(desc, left, right, noise.Config{SampleRate: *sig.rate, FFTSize: *fftSize}, pluginOpts...)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Plugin:\t%s (%s)\n", rep.Label, rep.Mode)
	_, _ = fmt.Fprintf(tw, "FFT:\t%d points, %.2f Hz/bin\n", rep.Left.FFTSize, rep.Left.BinHz())

	err = tw.Flush()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(a.out)

	tw = tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Channel\tFloor [dB]\tPeak [dB]\tPeak [Hz]\tFlatness\tResidual RMS [dBFS]\n")
	_, _ = fmt.Fprintf(tw, "-------\t----------\t---------\t---------\t--------\t-------------------\n")

	rows := []struct {
		name string
		sp   noise.Spectrum
	}{
		{"left", rep.Left},
		{"right", rep.Right},
	}

	for _, r := range rows {
		_, err := fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.1f\t%.4f\t%.2f\n",
			r.name, r.sp.FloorDB, r.sp.PeakDB, r.sp.PeakHz, r.sp.Flatness, r.sp.RMSDB)
		if err != nil {
			return fmt.Errorf("write output row: %w", err)
		}
	}

	err = tw.Flush()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(a.out)

	rack, err := host.NewRack(rackOpts...)
	if err != nil {
		return err
	}
	defer rack.Close()

	_, err = rack.Add(desc)
	if err != nil {
		return err
	}

	rack.Activate()

	dist, err := thd.Measure(rack, *sig.amp, thd.Config{FFTSize: *fftSize, FundamentalHz: *sig.freq})
	if err != nil {
		return err
	}

	err = a.printDistortion(dist)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(a.out)

	outL := slices.Clone(s.Left)
	outR := slices.Clone(s.Right)

	rack.Activate()
	rack.ProcessPlanar(outL, outR)
	rack.Deactivate()

	return a.printLevels(level.Measure(outL, outR))
}

func (a *app) printDistortion(rep thd.Report) error {
	_, _ = fmt.Fprintf(a.out, "Tone: %.2f Hz at %.3f peak\n\n", rep.ToneHz, rep.Amplitude)

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Channel\tTHD [%%]\tTHD+N [dB]\tSINAD [dB]\tOdd [%%]\tEven [%%]\n")
	_, _ = fmt.Fprintf(tw, "-------\t-------\t----------\t----------\t-------\t--------\n")

	rows := []struct {
		name string
		res  thd.Result
	}{
		{"left", rep.Left},
		{"right", rep.Right},
	}

	for _, r := range rows {
		_, err := fmt.Fprintf(tw, "%s\t%.4f\t%.2f\t%.2f\t%.4f\t%.4f\n",
			r.name, 100*r.res.THD, r.res.THDNdB, r.res.SINAD, 100*r.res.OddHD, 100*r.res.EvenHD)
		if err != nil {
			return fmt.Errorf("write output row: %w", err)
		}
	}

	return tw.Flush()
}
