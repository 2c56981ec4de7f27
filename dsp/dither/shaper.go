package dither

// NoiseShaper applies spectral shaping to quantization error via feedback
// filtering. Per sample, [Quantizer] calls Shape, quantizes the shaped
// value, then hands the resulting error to RecordError.
type NoiseShaper interface {
	Shape(input float64) float64
	RecordError(quantizationError float64)
	Reset()
}

// FIRShaper implements error-feedback noise shaping with FIR coefficients.
//
// The error history is stored twice in a ring of length 2*order so the
// convolution reads one contiguous window without wrapping.
type FIRShaper struct {
	coeffs  []float64
	history []float64
	pos     int
}

// NewFIRShaper creates a FIR noise shaper with the given coefficients.
// A nil or empty slice creates a pass-through shaper.
func NewFIRShaper(coeffs []float64) *FIRShaper {
	c := append([]float64(nil), coeffs...)
	return &FIRShaper{
		coeffs:  c,
		history: make([]float64, 2*len(c)),
	}
}

// Shape subtracts the weighted past quantization errors from input.
func (s *FIRShaper) Shape(input float64) float64 {
	order := len(s.coeffs)
	if order == 0 {
		return input
	}

	// history[pos+order-1-i] holds the error from i+1 samples ago.
	window := s.history[s.pos : s.pos+order]
	for i, c := range s.coeffs {
		input -= c * window[order-1-i]
	}

	return input
}

// RecordError stores the quantization error of the current sample.
func (s *FIRShaper) RecordError(quantizationError float64) {
	order := len(s.coeffs)
	if order == 0 {
		return
	}

	s.pos++
	if s.pos == order {
		s.pos = 0
	}

	s.history[s.pos+order-1] = quantizationError
	if s.pos > 0 {
		s.history[s.pos-1] = quantizationError
	} else {
		s.history[2*order-1] = quantizationError
	}
}

// Order returns the number of feedback taps.
func (s *FIRShaper) Order() int { return len(s.coeffs) }

// Reset clears the error history.
func (s *FIRShaper) Reset() {
	for i := range s.history {
		s.history[i] = 0
	}
	s.pos = 0
}
