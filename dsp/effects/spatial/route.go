package spatial

// LeftMono copies the left channel to both outputs.
type LeftMono struct{}

func (LeftMono) Reset() {}

func (LeftMono) ProcessFrame(left, _ float64) (float64, float64) { return left, left }

// RightMono copies the right channel to both outputs.
type RightMono struct{}

func (RightMono) Reset() {}

func (RightMono) ProcessFrame(_, right float64) (float64, float64) { return right, right }

// Swap exchanges the channels.
type Swap struct{}

func (Swap) Reset() {}

func (Swap) ProcessFrame(left, right float64) (float64, float64) { return right, left }
