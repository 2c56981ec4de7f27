// Package dynamics provides the adaptive gain trackers of the plugin
// catalog.
//
// Included kernels:
//   - Curve: Leaky gain tracker bounded to [1/128, 1].
//   - Recurve: The same tracker bounded to [1/128, 2] with a final ±1
//     hard clip.
//
// Both share one gain across the stereo pair. The gain is updated after
// each channel, left first, so the order of evaluation is observable.
package dynamics
