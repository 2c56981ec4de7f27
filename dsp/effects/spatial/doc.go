// Package spatial provides the stereo-field kernels of the plugin catalog.
//
// Included kernels:
//   - MidSideEncoder, MidSideDecoder: Balance-weighted mid/side codec.
//   - Sidepass: Side-channel highpass with two alternating integrators.
//   - Flip: Eight-way polarity and channel-order router.
//   - LeftMono, RightMono, Swap: Fixed routings.
package spatial
