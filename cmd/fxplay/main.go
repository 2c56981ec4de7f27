//go:build !headless

// Command fxplay streams a sine through a plugin chain to the sound card.
//
// Usage:
//
//	fxplay [flags]
//
// Examples:
//
//	fxplay -chain softclip -set softclip.drive=12
//	fxplay -freq 220 -chain midside-encode,sidepass,midside-decode -seconds 10
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/host"
	"github.com/cwbudde/algo-fx/plugin"
)

type settingList []host.Setting

func (s *settingList) String() string {
	parts := make([]string, len(*s))
	for i, st := range *s {
		parts[i] = st.String()
	}

	return strings.Join(parts, ",")
}

func (s *settingList) Set(v string) error {
	st, err := host.ParseSetting(v)
	if err != nil {
		return err
	}

	*s = append(*s, st)

	return nil
}

func main() {
	chain := flag.String("chain", "", "comma-separated plugin labels")
	rate := flag.Int("rate", 48000, "output sample rate in Hz")
	freq := flag.Float64("freq", 440, "sine frequency in Hz")
	amp := flag.Float64("amp", 0.25, "sine amplitude (linear)")
	seconds := flag.Float64("seconds", 0, "play duration; 0 plays until interrupted")
	bufferMs := flag.Int("buffer", 40, "driver buffer length in milliseconds")
	verbose := flag.Bool("v", false, "log plugin lifecycle at debug level")

	var sets settingList
	flag.Var(&sets, "set", "control setting stage.key=value (repeatable)")
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	err := play(log, *chain, sets, *rate, *freq, *amp, *seconds, time.Duration(*bufferMs)*time.Millisecond)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func play(log *logrus.Logger, chain string, sets []host.Setting, rate int, freq, amp, seconds float64, buffer time.Duration) error {
	rack, err := buildRack(plugin.DefaultRegistry(), chain, sets,
		host.WithProcessorOptions(core.WithSampleRate(float64(rate)), core.WithBlockSize(1024)),
		host.WithLogger(log))
	if err != nil {
		return err
	}
	defer rack.Close()

	src, err := newStream(rack, freq, amp)
	if err != nil {
		return err
	}

	octx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   buffer,
	})
	if err != nil {
		return fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	player := octx.NewPlayer(src)
	defer player.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if seconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(seconds*float64(time.Second)))
		defer cancel()
	}

	log.WithFields(logrus.Fields{
		"stages":      len(rack.Stages()),
		"sample_rate": rate,
		"freq":        freq,
	}).Info("Playing")

	player.Play()
	<-ctx.Done()
	player.Pause()

	if err := octx.Err(); err != nil {
		return fmt.Errorf("audio device: %w", err)
	}

	log.Info("Stopped")

	return nil
}
