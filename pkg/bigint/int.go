package bigint

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Base is the radix of a single limb.
const Base = 1000

const limbDigits = 3

var (
	// ErrDivisionByZero is returned when the divisor is zero.
	ErrDivisionByZero = errors.New("integer division or modulo by zero")

	// ErrFloatRange reports an integer outside the float64 range.
	ErrFloatRange = errors.New("integer too large to convert to float")

	// ErrSyntax reports a malformed decimal string.
	ErrSyntax = errors.New("invalid decimal integer")
)

// Int is an immutable arbitrary-precision signed integer. The magnitude is
// stored as base-1000 limbs, least significant first. The zero value is 0.
type Int struct {
	sign  int
	limbs []int
}

var one = FromInt64(1)

// Zero returns the canonical zero.
func Zero() Int {
	return Int{sign: 1, limbs: []int{0}}
}

// One returns the canonical one.
func One() Int {
	return one
}

// FromInt64 converts a machine integer.
func FromInt64(v int64) Int {
	if v == 0 {
		return Zero()
	}
	sign := 1
	mag := uint64(v)
	if v < 0 {
		sign = -1
		mag = uint64(-(v + 1)) + 1
	}
	limbs := make([]int, 0, 7)
	for mag > 0 {
		limbs = append(limbs, int(mag%Base))
		mag /= Base
	}
	return Int{sign: sign, limbs: limbs}
}

// Parse reads an optionally signed decimal string. Leading zeros are
// accepted and dropped; "-0" parses as 0.
func Parse(s string) (Int, error) {
	digits := s
	sign := 1
	if strings.HasPrefix(digits, "-") {
		sign = -1
		digits = digits[1:]
	} else if strings.HasPrefix(digits, "+") {
		digits = digits[1:]
	}
	if digits == "" {
		return Int{}, ErrSyntax
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Int{}, ErrSyntax
		}
	}
	limbs := make([]int, 0, len(digits)/limbDigits+1)
	for end := len(digits); end > 0; end -= limbDigits {
		start := end - limbDigits
		if start < 0 {
			start = 0
		}
		chunk := 0
		for _, ch := range digits[start:end] {
			chunk = chunk*10 + int(ch-'0')
		}
		limbs = append(limbs, chunk)
	}
	return newInt(sign, limbs), nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Int {
	v, err := Parse(s)
	if err != nil {
		panic("bigint: " + err.Error() + ": " + strconv.Quote(s))
	}
	return v
}

// newInt canonicalizes: high zero limbs are stripped and zero is positive.
func newInt(sign int, limbs []int) Int {
	limbs = trim(limbs)
	if len(limbs) == 1 && limbs[0] == 0 {
		sign = 1
	}
	if sign >= 0 {
		sign = 1
	} else {
		sign = -1
	}
	return Int{sign: sign, limbs: limbs}
}

func trim(limbs []int) []int {
	n := len(limbs)
	for n > 1 && limbs[n-1] == 0 {
		n--
	}
	if n == 0 {
		return []int{0}
	}
	return limbs[:n]
}

func (x Int) magnitude() []int {
	if len(x.limbs) == 0 {
		return []int{0}
	}
	return x.limbs
}

// Len returns the number of limbs in the canonical magnitude.
func (x Int) Len() int {
	return len(x.magnitude())
}

// IsZero reports whether x is 0.
func (x Int) IsZero() bool {
	m := x.magnitude()
	return len(m) == 1 && m[0] == 0
}

// Sign returns -1, 0 or +1.
func (x Int) Sign() int {
	if x.IsZero() {
		return 0
	}
	return x.sign
}

// Neg returns -x. Negating zero yields zero.
func (x Int) Neg() Int {
	if x.IsZero() {
		return Zero()
	}
	return Int{sign: -x.sign, limbs: x.limbs}
}

// Abs returns |x|.
func (x Int) Abs() Int {
	if x.IsZero() {
		return Zero()
	}
	return Int{sign: 1, limbs: x.limbs}
}

// Cmp returns -1, 0 or +1 as x is less than, equal to or greater than y.
func (x Int) Cmp(y Int) int {
	xs, ys := x.Sign(), y.Sign()
	if xs != ys {
		if xs < ys {
			return -1
		}
		return 1
	}
	c := cmpMagnitude(x.magnitude(), y.magnitude())
	if xs < 0 {
		return -c
	}
	return c
}

// Equal reports whether x and y hold the same value.
func (x Int) Equal(y Int) bool {
	return x.Cmp(y) == 0
}

// Add returns x + y.
func (x Int) Add(y Int) Int {
	switch {
	case x.Sign() >= 0 && y.Sign() >= 0:
		return newInt(1, addMagnitude(x.magnitude(), y.magnitude()))
	case x.Sign() < 0 && y.Sign() < 0:
		return newInt(-1, addMagnitude(x.magnitude(), y.magnitude()))
	case y.Sign() < 0:
		return x.Sub(y.Neg())
	default:
		return y.Sub(x.Neg())
	}
}

// Sub returns x - y.
func (x Int) Sub(y Int) Int {
	switch {
	case x.Sign() < 0 && y.Sign() < 0:
		return y.Neg().Sub(x.Neg())
	case x.Sign() < 0:
		return x.Neg().Add(y).Neg()
	case y.Sign() < 0:
		return x.Add(y.Neg())
	}
	if cmpMagnitude(x.magnitude(), y.magnitude()) < 0 {
		return newInt(-1, subMagnitude(y.magnitude(), x.magnitude()))
	}
	return newInt(1, subMagnitude(x.magnitude(), y.magnitude()))
}

// ShiftLeft multiplies x by Base^k.
func (x Int) ShiftLeft(k int) Int {
	if k <= 0 || x.IsZero() {
		return x
	}
	mag := x.magnitude()
	limbs := make([]int, k+len(mag))
	copy(limbs[k:], mag)
	return newInt(x.sign, limbs)
}

// ShiftRight divides the magnitude of x by Base^k, truncating; the sign is
// kept unless the result is zero.
func (x Int) ShiftRight(k int) Int {
	if k <= 0 {
		return x
	}
	mag := x.magnitude()
	if k >= len(mag) {
		return Zero()
	}
	limbs := make([]int, len(mag)-k)
	copy(limbs, mag[k:])
	return newInt(x.sign, limbs)
}

// Int64 reports x as an int64 when it fits.
func (x Int) Int64() (int64, bool) {
	mag := x.magnitude()
	if len(mag) > 7 {
		return 0, false
	}
	var v uint64
	for i := len(mag) - 1; i >= 0; i-- {
		if v > (math.MaxUint64-uint64(mag[i]))/Base {
			return 0, false
		}
		v = v*Base + uint64(mag[i])
	}
	if x.Sign() < 0 {
		if v > 1<<63 {
			return 0, false
		}
		return -int64(v - 1) - 1, true
	}
	if v > 1<<63-1 {
		return 0, false
	}
	return int64(v), true
}

// Float64 converts x to the nearest float64.
func (x Int) Float64() (float64, error) {
	f, err := strconv.ParseFloat(x.String(), 64)
	if err != nil {
		return 0, ErrFloatRange
	}
	return f, nil
}

func (x Int) String() string {
	mag := x.magnitude()
	var b strings.Builder
	b.Grow(len(mag)*limbDigits + 1)
	if x.Sign() < 0 {
		b.WriteByte('-')
	}
	b.WriteString(strconv.Itoa(mag[len(mag)-1]))
	for i := len(mag) - 2; i >= 0; i-- {
		chunk := strconv.Itoa(mag[i])
		b.WriteString(strings.Repeat("0", limbDigits-len(chunk)))
		b.WriteString(chunk)
	}
	return b.String()
}

func cmpMagnitude(a, b []int) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func addMagnitude(a, b []int) []int {
	if len(a) < len(b) {
		a, b = b, a
	}
	out := make([]int, len(a)+1)
	carry := 0
	for i := range a {
		sum := a[i] + carry
		if i < len(b) {
			sum += b[i]
		}
		if sum >= Base {
			sum -= Base
			carry = 1
		} else {
			carry = 0
		}
		out[i] = sum
	}
	out[len(a)] = carry
	return out
}

// subMagnitude requires a >= b.
func subMagnitude(a, b []int) []int {
	out := make([]int, len(a))
	borrow := 0
	for i := range a {
		diff := a[i] - borrow
		if i < len(b) {
			diff -= b[i]
		}
		if diff < 0 {
			diff += Base
			borrow = 1
		} else {
			borrow = 0
		}
		out[i] = diff
	}
	return out
}
