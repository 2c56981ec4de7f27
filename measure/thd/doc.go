// Package thd measures harmonic distortion.
//
// [AnalyzeSignal] reduces a windowed spectrum to THD, THD+N and SINAD
// figures. [Measure] drives a host.Rack with a bin-centred sine and
// analyzes what comes out, which is how the saturating plugins of the
// catalog are characterized.
package thd
