package dither

// Prime chain for the quadratic sequence, largest first.
var quadraticPrimes = [...]uint64{170003, 17011, 1709, 173, 17}

// quadraticStep scales the final residue (0..16) to roughly one LSB.
const quadraticStep = 0.0635

// Quadratic is the deterministic dither used by integer requantizers.
//
// Each draw squares an incrementing position and folds it through a
// descending chain of primes, squaring between reductions. The sign
// alternates on every draw. The sequence depends only on how many draws
// were taken since [Quadratic.Reset].
type Quadratic struct {
	position uint32
	flip     bool
}

// Reset rewinds the sequence to its first draw.
func (q *Quadratic) Reset() {
	q.position = 0
	q.flip = false
}

// Next returns the next dither offset in LSB units, in [-1.016, 1.016].
func (q *Quadratic) Next() float64 {
	q.position++

	hot := uint64(q.position) * uint64(q.position)
	for i, p := range quadraticPrimes {
		hot %= p
		if i < len(quadraticPrimes)-1 {
			hot *= hot
		}
	}

	v := float64(hot) * quadraticStep
	if q.flip {
		v = -v
	}

	q.flip = !q.flip

	return v
}

// Position returns the number of draws taken since the last reset.
func (q *Quadratic) Position() uint32 { return q.position }
