package effects

import "math"

// Series coefficients. The channel stage is the Taylor series of sin(x)
// and the buss stage that of asin(x), both truncated after the ninth power,
// so a channel stage followed by a buss stage is close to transparent for
// moderate levels while summing many channels saturates gently.
const (
	sin3 = 1.0 / 6
	sin5 = 1.0 / 120
	sin7 = 1.0 / 5040
	sin9 = 1.0 / 362880

	asin3 = 1.0 / 6
	asin5 = 3.0 / 40
	asin7 = 15.0 / 336
	asin9 = 105.0 / 3456
)

// ConsoleChannel is the per-channel encode stage of a console emulation.
// Input is clamped to ±π/2, where the series peaks.
type ConsoleChannel struct{}

// NewConsoleChannel returns a console channel stage.
func NewConsoleChannel() *ConsoleChannel { return &ConsoleChannel{} }

func (c *ConsoleChannel) Reset() {}

func (c *ConsoleChannel) ProcessFrame(left, right float64) (float64, float64) {
	return consoleSin(left), consoleSin(right)
}

// ConsoleBuss is the summing-buss decode stage of a console emulation.
// Input is clamped to ±1.
type ConsoleBuss struct{}

// NewConsoleBuss returns a console buss stage.
func NewConsoleBuss() *ConsoleBuss { return &ConsoleBuss{} }

func (c *ConsoleBuss) Reset() {}

func (c *ConsoleBuss) ProcessFrame(left, right float64) (float64, float64) {
	return consoleAsin(left), consoleAsin(right)
}

func consoleSin(x float64) float64 {
	if x > math.Pi/2 {
		x = math.Pi / 2
	} else if x < -math.Pi/2 {
		x = -math.Pi / 2
	}

	x2 := x * x
	x3 := x2 * x
	x5 := x3 * x2
	x7 := x5 * x2
	x9 := x7 * x2

	return x - x3*sin3 + x5*sin5 - x7*sin7 + x9*sin9
}

func consoleAsin(x float64) float64 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	x2 := x * x
	x3 := x2 * x
	x5 := x3 * x2
	x7 := x5 * x2
	x9 := x7 * x2

	return x + x3*asin3 + x5*asin5 + x7*asin7 + x9*asin9
}
