// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sable

import "math/big"

// Value is the tagged sum of every runtime value, both expressible
// (can result from user code: VUnit, VInt, VBool, VChan, VClosure,
// VInjection, VTuple, VException) and denotable-only (vResume, vHalted,
// vWaiting — internal scheduler/control-flow markers that must never
// reach Display; see ShowValue).
//
// The unexported isValue method is a closed-sum marker: only this
// package can implement it, so no type outside the package can be a
// Value.
type Value interface {
	isValue()
}

// VUnit is the sole value of unit type.
type VUnit struct{}

func (VUnit) isValue() {}

// VInt is an arbitrary-precision signed integer, satisfying the "i64 or
// bigger" requirement with room to spare.
type VInt struct {
	N *big.Int
}

func (VInt) isValue() {}

// NewInt wraps an int64 as a VInt.
func NewInt(n int64) VInt { return VInt{N: big.NewInt(n)} }

// NewIntFromBig wraps an already-parsed big.Int as a VInt, used by the
// lexer/parser's integer-literal tokens (see internal/syntax).
func NewIntFromBig(n *big.Int) VInt { return VInt{N: n} }

// VBool is a boolean.
type VBool struct {
	B bool
}

func (VBool) isValue() {}

// VChan is a handle to a rendezvous channel.
type VChan struct {
	ID ChannelId
}

func (VChan) isValue() {}

// VClosure is a first-class function value: a single-parameter lambda
// closed over its defining environment.
type VClosure struct {
	Param    Identifier
	Captured *Environment
	Body     Expr
}

func (VClosure) isValue() {}

// VInjection is an algebraic-data constructor application: a tag plus
// its (possibly empty) arguments. Nullary constructors such as `Nil` or
// `ExcClosed` are VInjection with a nil/empty Args slice (`true` and
// `false` are VBool, not injections).
type VInjection struct {
	Name Identifier
	Args []Value
}

func (VInjection) isValue() {}

// VTuple is a fixed-size heterogeneous tuple, used for literal tuples and
// for Parallel's result.
type VTuple struct {
	Elems []Value
}

func (VTuple) isValue() {}

// VException wraps a VInjection that propagated through Throw and was not
// caught before reaching the nearest exception prompt.
type VException struct {
	Inner Value
}

func (VException) isValue() {}

// vHalted signals, internally, that a task parked on a channel. It must
// never be returned from Obey or appear in a displayed value; reaching
// Display with one present is a fatal invariant violation (see
// ShowValue).
type vHalted struct {
	id ChannelId
}

func (vHalted) isValue() {}

// vWaiting is the scheduler's own marker for "already parked on this
// channel, re-check before running". Distinct from vHalted, which means
// "just blocked this step".
type vWaiting struct {
	id ChannelId
}

func (vWaiting) isValue() {}

// vResume wraps a pre-loaded continuation — the resume value is already
// fixed by closure capture — so the channel-state transition tables in
// §4.6 (Send/Receive) can hand "run this now, locally, no scheduler hop"
// back to their caller as an ordinary Value, exactly as the
// "Resume(Continuation)" variant in the value domain is specified to do.
// See Task in cont.go.
type vResume struct {
	k Task
}

func (vResume) isValue() {}

// Equal implements the equality relation defined in §3: only Int, Bool,
// Unit, and pairs of Exception (by inner value) compare; anything else is
// a malformed-program error.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case VInt:
		bv, ok := b.(VInt)
		if !ok {
			panic(fatalError{msg: "== applied to incomparable values"})
		}
		return av.N.Cmp(bv.N) == 0
	case VBool:
		bv, ok := b.(VBool)
		if !ok {
			panic(fatalError{msg: "== applied to incomparable values"})
		}
		return av.B == bv.B
	case VUnit:
		if _, ok := b.(VUnit); !ok {
			panic(fatalError{msg: "== applied to incomparable values"})
		}
		return true
	case VException:
		bv, ok := b.(VException)
		if !ok {
			panic(fatalError{msg: "== applied to incomparable values"})
		}
		return Equal(av.Inner, bv.Inner)
	default:
		panic(fatalError{msg: "== applied to incomparable values"})
	}
}

// floorDivMod implements division truncated toward negative infinity
// (the host's div/mod in the language this evaluator was distilled from),
// as opposed to big.Int's own Quo/Rem (truncate toward zero) or Div/Mod
// (Euclidean, remainder always non-negative).
func floorDivMod(a, b *big.Int) (q, r *big.Int) {
	q, r = new(big.Int), new(big.Int)
	q.QuoRem(a, b, r)
	if r.Sign() != 0 && (r.Sign() < 0) != (b.Sign() < 0) {
		q.Sub(q, big.NewInt(1))
		r.Add(r, b)
	}
	return q, r
}
