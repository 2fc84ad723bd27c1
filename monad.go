// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sable

// Monad operations for continuations.
//
// Minimal definition: Return (unit) and Bind are necessary and sufficient.
// Then is a derived operation kept as an optimization to avoid an
// intermediate closure allocation.

// Bind sequences two continuations (monadic bind).
// It runs m, then passes the result to f to get a new continuation.
func Bind[R, A, B any](m Cont[R, A], f func(A) Cont[R, B]) Cont[R, B] {
	return func(k func(B) R) R {
		return m(func(a A) R {
			return f(a)(k)
		})
	}
}

// Then sequences two continuations, discarding the first result.
// This is more efficient than Bind when the second computation
// does not depend on the first result.
//
// Allocation note: Then avoids the closure capture of a transformation
// function that would occur with Bind(m, func(_ A) { return n }).
func Then[R, A, B any](m Cont[R, A], n Cont[R, B]) Cont[R, B] {
	return func(k func(B) R) R {
		return m(func(_ A) R {
			return n(k)
		})
	}
}
