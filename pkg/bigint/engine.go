package bigint

import (
	"math"
	"math/cmplx"
	"sync"
)

// Engine multiplies and divides Ints. It memoizes the FFT root and
// bit-reversal tables per transform size; an Engine is safe for concurrent
// use.
type Engine struct {
	mu     sync.Mutex
	roots  [][]complex128
	bitRev map[int][]int
}

func NewEngine() *Engine {
	return &Engine{bitRev: make(map[int][]int)}
}

// tables returns the bit-reversal permutation for a transform of 2^bits
// points and the root levels 0..bits-1, where level t holds exp(iπj/2^t).
func (e *Engine) tables(bits int) ([]int, [][]complex128) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for len(e.roots) < bits {
		half := 1 << len(e.roots)
		level := make([]complex128, half)
		for j := range level {
			angle := math.Pi * float64(j) / float64(half)
			level[j] = complex(math.Cos(angle), math.Sin(angle))
		}
		e.roots = append(e.roots, level)
	}
	if e.bitRev == nil {
		e.bitRev = make(map[int][]int)
	}
	rev, ok := e.bitRev[bits]
	if !ok {
		n := 1 << bits
		rev = make([]int, n)
		for i := 1; i < n; i++ {
			rev[i] = (rev[i>>1] >> 1) | ((i & 1) << (bits - 1))
		}
		e.bitRev[bits] = rev
	}
	return rev, e.roots[:bits]
}

func transform(a []complex128, rev []int, roots [][]complex128, invert bool) {
	n := len(a)
	for i := 0; i < n; i++ {
		if i < rev[i] {
			a[i], a[rev[i]] = a[rev[i]], a[i]
		}
	}
	for t, mid := 0, 1; mid < n; t, mid = t+1, mid<<1 {
		level := roots[t]
		for i := 0; i < n; i += mid << 1 {
			for j := 0; j < mid; j++ {
				w := level[j]
				if invert {
					w = cmplx.Conj(w)
				}
				x := a[i+j]
				y := w * a[i+j+mid]
				a[i+j] = x + y
				a[i+j+mid] = x - y
			}
		}
	}
	if invert {
		scale := complex(1/float64(n), 0)
		for i := range a {
			a[i] *= scale
		}
	}
}

// Mul returns x * y. Both magnitudes share one complex transform: x sits
// in the real part and y in the imaginary part, so the product is half the
// imaginary part of the squared signal.
func (e *Engine) Mul(x, y Int) Int {
	if x.IsZero() || y.IsZero() {
		return Zero()
	}
	sign := 1
	if x.Sign() != y.Sign() {
		sign = -1
	}
	a, b := x.magnitude(), y.magnitude()
	width := len(a)
	if len(b) > width {
		width = len(b)
	}
	bits, n := 1, 2
	for n < 2*width-1 {
		bits++
		n <<= 1
	}
	rev, roots := e.tables(bits)

	signal := make([]complex128, n)
	for i := range signal {
		var re, im float64
		if i < len(a) {
			re = float64(a[i])
		}
		if i < len(b) {
			im = float64(b[i])
		}
		signal[i] = complex(re, im)
	}
	transform(signal, rev, roots, false)
	for i, c := range signal {
		signal[i] = c * c
	}
	transform(signal, rev, roots, true)

	terms := len(a) + len(b) - 1
	out := make([]int, 0, terms+2)
	var carry int64
	for i := 0; i < terms; i++ {
		v := int64(math.Round(imag(signal[i])/2)) + carry
		out = append(out, int(v%Base))
		carry = v / Base
	}
	for carry > 0 {
		out = append(out, int(carry%Base))
		carry /= Base
	}
	return newInt(sign, out)
}
