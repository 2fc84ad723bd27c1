// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sable

// Cont represents a continuation-passing computation.
// Cont[R, A] computes a value of type A, with final result type R.
//
// The function receives a continuation k of type func(A) R, which represents
// "the rest of the computation". Applying k to a value of type A produces
// the final result of type R.
type Cont[R, A any] func(k func(A) R) R

// Return lifts a pure value into the continuation monad.
// The resulting computation immediately passes the value to its continuation.
func Return[R, A any](a A) Cont[R, A] {
	return func(k func(A) R) R {
		return k(a)
	}
}

// Resumed is the answer type every evaluator computation eventually
// produces. Unlike the general-purpose kont library this evaluator is
// built from, the language is dynamically typed and single-sorted — every
// computation's answer is a Value — so, unlike a library meant to host
// arbitrary R, A pairs, this evaluator fixes Resumed = Value once and
// uses it as the answer type throughout.
type Resumed = Value

// Eff is an effectful computation that produces a Value.
type Eff[A any] = Cont[Resumed, A]

// Pure lifts a value into an effectful computation with no effects.
func Pure[A any](a A) Eff[A] {
	return Return[Resumed](a)
}

// Continuation is the "rest of the computation" captured at a Send,
// Receive, or Throw call site: a plain function from a resuming Value to
// the final Value of the enclosing prompt. See §4.3 and control.go.
type Continuation = func(Value) Value

// Task is a runnable step with no further input required: either a
// freshly-submitted Parallel component, or a Continuation that has
// already had its resume value baked in by closure capture. The
// scheduler's running/ready queues, and StateReady's Ready field, hold
// Tasks (see channel.go, scheduler.go) — the resume value, if any, was
// fixed at the moment the party became ready, not at step time.
type Task = func() Value

// Kont is the continuation-passing representation of "evaluate to a
// Value", i.e. Eff specialized to A = Value. This is the type every
// `eval` function in eval.go returns.
type Kont = Eff[Value]
