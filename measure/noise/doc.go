// Package noise measures the noise a plugin adds on top of its transform.
//
// [Analyze] compares two renders of the same input: the plugin as shipped
// and the same kernel with guard and dither switched off. The difference
// is the noise the pipeline contributes. It is windowed, transformed with
// github.com/MeKo-Christian/algo-fft and reduced to a power spectrum and a
// few summary figures.
package noise
