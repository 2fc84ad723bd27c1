// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sable

// The two prompts from §4.3, realized as a "bubble-up" ADT in the
// dynamically-typed idiom described as the preferred strategy in §9:
// because Resumed = Value always, a computation that wants to abort past
// zero or more enclosing Binds simply never invokes the continuation it
// is handed. Every Bind frame between the abort point and the nearest
// pushPrompt call is, by construction, a function that only produces a
// result when its own inner computation calls back into it — so a
// non-invoking abort transparently "bubbles" outward through arbitrarily
// deep Bind nesting with no explicit bubble payload required. Which of
// the two prompts a given abort belongs to is determined entirely by
// which Value variant it produces (VException for pX, vHalted for pP)
// and which caller is positioned to recognize that variant: TryCatch
// installs pX (see evalTryCatch in eval.go), the scheduler installs pP
// once per Parallel component (see runScheduler in scheduler.go).

// pushPrompt runs m with no intervening continuation — establishing a
// fresh prompt boundary at this call site. Every Value it produces,
// whether a normal result or a captured abort, is available here as an
// ordinary Go value for the caller to classify.
func pushPrompt(m Kont) Value {
	return Run[Value](m)
}

// captureUpTo aborts the current computation: build receives the
// continuation k that represents "the rest of the computation from this
// point to the nearest pushPrompt", but unlike Bind's f, captureUpTo's
// caller decides whether to ever invoke k. Throw (eval.go) never does —
// the continuation is simply discarded, matching "the continuation k is
// never called" in §4.7. Send/SendP and Receive/ReceiveP (eval.go) stash
// k into the channel table instead of invoking it immediately, so the
// scheduler can invoke it later, exactly once, when the rendezvous
// completes.
func captureUpTo(build func(k Continuation) Value) Kont {
	return func(k Continuation) Value {
		return build(k)
	}
}

// lift injects a pure ChannelTable computation into the continuation
// monad without interacting with either prompt: it runs f for effect (on
// the shared, mutable *ChannelTable — see channel.go) and immediately
// resumes with whatever f returns, never capturing.
func lift(f func() Value) Kont {
	return Return[Value, Value](f())
}
