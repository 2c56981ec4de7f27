// Package host runs chains of plugin instances offline.
//
// A [Rack] owns one stereo working buffer. Every stage is bound to it for
// both input and output and runs in place, in insertion order, once per
// block. Signals longer than the block size are split into blocks.
package host
