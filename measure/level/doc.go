// Package level provides peak, RMS and DC metering for stereo renders.
//
// Block reductions run on github.com/cwbudde/algo-vecmath, which selects a
// SIMD kernel for the host CPU on first use.
package level
