// Package effects provides the single-stage transform kernels of the
// plugin catalog.
//
// Subpackages:
//   - github.com/cwbudde/algo-fx/dsp/effects/dynamics
//   - github.com/cwbudde/algo-fx/dsp/effects/spatial
//
// Kernels in this package:
//   - Gain: Volume control applied as processor pre-gain.
//   - BitShiftGain: Exact power-of-two gain from a static table.
//   - DCVoltage: Constant offset.
//   - ConsoleChannel, ConsoleBuss: Sine / arcsine series console emulation.
//   - SoftClip: Cubic waveshaper with drive.
//   - Derivative: Clipped first difference.
//   - Quantize: Word-length reduction with quadratic dither.
//
// Every kernel implements processor.Kernel. ProcessFrame never allocates
// and never fails; setters clamp their argument into range while option
// constructors reject it.
package effects
