package bigint

// Divisors and quotients up to this many limbs are handled by binary long
// division instead of the Newton reciprocal.
const bruteForceLimbs = 30

// Div returns the floor quotient of x / y.
func (e *Engine) Div(x, y Int) (Int, error) {
	if y.IsZero() {
		return Int{}, ErrDivisionByZero
	}
	return e.floorDiv(x, y), nil
}

// Mod returns x - Div(x, y)*y, which takes the sign of y.
func (e *Engine) Mod(x, y Int) (Int, error) {
	_, r, err := e.DivMod(x, y)
	return r, err
}

func (e *Engine) DivMod(x, y Int) (Int, Int, error) {
	if y.IsZero() {
		return Int{}, Int{}, ErrDivisionByZero
	}
	q := e.floorDiv(x, y)
	return q, x.Sub(e.Mul(q, y)), nil
}

func (e *Engine) floorDiv(x, y Int) Int {
	if x.IsZero() {
		return Zero()
	}
	ax, ay := x.Abs(), y.Abs()
	q := e.divMagnitude(ax, ay)
	if x.Sign() == y.Sign() {
		return q
	}
	if e.Mul(q, ay).Equal(ax) {
		return q.Neg()
	}
	return q.Add(one).Neg()
}

// divMagnitude returns floor(a / b) for a >= 0, b > 0.
func (e *Engine) divMagnitude(a, b Int) Int {
	if a.Cmp(b) < 0 {
		return Zero()
	}
	n, m := a.Len(), b.Len()
	if m <= bruteForceLimbs && n-m < bruteForceLimbs {
		return longDivide(a, b)
	}
	sa, sb := a, b
	if n > 2*m {
		sa, sb = a.ShiftLeft(n-2*m), b.ShiftLeft(n-2*m)
		n, m = sa.Len(), sb.Len()
	}
	inv := e.reciprocal(sb).ShiftRight(2*m - n)
	q := e.Mul(sa, inv).ShiftRight(n)
	return e.settle(q, a, b)
}

// reciprocal returns floor(Base^(2m) / b) where m is the limb count of b,
// refining a half-precision estimate with one Newton step.
func (e *Engine) reciprocal(b Int) Int {
	m := b.Len()
	if m <= bruteForceLimbs {
		return longDivide(one.ShiftLeft(2*m), b)
	}
	k := (m+1)/2 + 2
	prev := e.reciprocal(b.ShiftRight(m - k))
	x := prev.Add(prev).ShiftLeft(m - k).Sub(e.Mul(e.Mul(b, prev), prev).ShiftRight(2 * k))
	return e.settle(x, one.ShiftLeft(2*m), b)
}

// settle nudges an estimate q until q*b <= a < (q+1)*b.
func (e *Engine) settle(q, a, b Int) Int {
	if q.Sign() < 0 {
		q = Zero()
	}
	for q.Sign() > 0 && e.Mul(q, b).Cmp(a) > 0 {
		q = q.Sub(one)
	}
	for e.Mul(q.Add(one), b).Cmp(a) <= 0 {
		q = q.Add(one)
	}
	return q
}

// longDivide computes floor(a / b) for a >= 0, b > 0 by subtracting
// doublings of b from the top down.
func longDivide(a, b Int) Int {
	if a.Cmp(b) < 0 {
		return Zero()
	}
	var multiples, counts []Int
	for sum, count := b, one; sum.Cmp(a) <= 0; sum, count = sum.Add(sum), count.Add(count) {
		multiples = append(multiples, sum)
		counts = append(counts, count)
	}
	quotient, rest := Zero(), a
	for i := len(multiples) - 1; i >= 0; i-- {
		if multiples[i].Cmp(rest) <= 0 {
			rest = rest.Sub(multiples[i])
			quotient = quotient.Add(counts[i])
		}
	}
	return quotient
}
