// Command fxcat lists, inspects and runs the plugin catalog offline.
//
// Usage:
//
//	fxcat <command> [flags] [args]
//
// Commands:
//
//	list               print the catalog
//	info <label>       print a plugin's ports and the host's SIMD level
//	render             run a signal through a plugin chain into a WAV file
//	analyze <label>    measure the dither noise floor of one plugin
//
// Examples:
//
//	fxcat list
//	fxcat info softclip
//	fxcat render -chain gain,softclip -set gain.gain=-6 -out out.wav
//	fxcat render -in in.wav -chain consolechannel,consolebuss -bits 16 -out out.wav
//	fxcat analyze -fft 16384 quantize
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-fx/host"
	"github.com/cwbudde/algo-fx/plugin"
)

var errUsage = errors.New("invalid usage")

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		if !errors.Is(err, errUsage) {
			_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}

		os.Exit(1)
	}
}

type app struct {
	out io.Writer
	log *logrus.Logger
	reg *plugin.Registry
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return errUsage
	}

	log := logrus.New()
	log.SetOutput(stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.InfoLevel)

	a := &app{out: stdout, log: log, reg: plugin.DefaultRegistry()}

	switch args[0] {
	case "list":
		return a.list(args[1:])
	case "info":
		return a.info(args[1:])
	case "render":
		return a.render(args[1:])
	case "analyze":
		return a.analyze(args[1:])
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return nil
	default:
		usage(stderr)
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

func usage(w io.Writer) {
	_, _ = fmt.Fprintf(w, "Usage: fxcat <command> [flags] [args]\n\n")
	_, _ = fmt.Fprintf(w, "Commands:\n")
	_, _ = fmt.Fprintf(w, "  list               print the catalog\n")
	_, _ = fmt.Fprintf(w, "  info <label>       print a plugin's ports and the host's SIMD level\n")
	_, _ = fmt.Fprintf(w, "  render             run a signal through a plugin chain into a WAV file\n")
	_, _ = fmt.Fprintf(w, "  analyze <label>    measure the dither noise floor of one plugin\n")
	_, _ = fmt.Fprintf(w, "\nRun 'fxcat <command> -h' for the flags of a command.\n")
}

// settingList collects repeated -set flags.
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

func (a *app) verbose(on bool) {
	if on {
		a.log.SetLevel(logrus.DebugLevel)
	}
}

func (a *app) lookup(label string) (*plugin.Descriptor, error) {
	desc, err := a.reg.Lookup(strings.ToLower(strings.TrimSpace(label)))
	if err != nil {
		return nil, fmt.Errorf("%w (use 'fxcat list' to see available)", err)
	}

	return desc, nil
}
