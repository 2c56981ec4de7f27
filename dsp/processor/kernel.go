package processor

// Kernel is the per-frame transform of an effect.
//
// ProcessFrame receives guarded double-precision samples and returns the
// effect output before dithering. Kernels with memory must update it in
// call order; Reset restores the state a freshly activated instance has.
type Kernel interface {
	Reset()
	ProcessFrame(left, right float64) (float64, float64)
}

// PreGainer is implemented by kernels that want a linear gain applied to
// both channels after guarding and before ProcessFrame. PreGain is read
// once at the start of every block.
type PreGainer interface {
	PreGain() float64
}

// Mode selects which pipeline stages surround the kernel.
type Mode int

const (
	// ModeDither guards input and dithers output (the common case).
	ModeDither Mode = iota
	// ModeGuard guards input only; used by kernels that quantize themselves.
	ModeGuard
	// ModeRaw passes samples straight to the kernel; used by exact
	// routing and gain plugins.
	ModeRaw

	modeCount
)

var modeNames = [modeCount]string{"dither", "guard", "raw"}

// String returns the name of the mode.
func (m Mode) String() string {
	if m.Valid() {
		return modeNames[m]
	}
	return "invalid"
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m >= 0 && m < modeCount
}

// Guards reports whether input samples are guarded in this mode.
func (m Mode) Guards() bool { return m == ModeDither || m == ModeGuard }

// Dithers reports whether output samples are dithered in this mode.
func (m Mode) Dithers() bool { return m == ModeDither }
