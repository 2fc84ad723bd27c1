// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sable_test

import (
	"testing"

	sable "github.com/sable-lang/sable"
)

func TestReturnRun(t *testing.T) {
	got := sable.Run(sable.Return[int](42))
	if got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestReturnRunString(t *testing.T) {
	got := sable.Run(sable.Return[string]("hello"))
	if got != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}

func TestBindSimple(t *testing.T) {
	m := sable.Return[int](10)
	n := sable.Bind(m, func(x int) sable.Cont[int, int] {
		return sable.Return[int](x * 2)
	})
	got := sable.Run(n)
	if got != 20 {
		t.Fatalf("got %d, want 20", got)
	}
}

func TestBindChain(t *testing.T) {
	m := sable.Return[int](5)
	n := sable.Bind(m, func(x int) sable.Cont[int, int] {
		return sable.Bind(sable.Return[int](x+1), func(y int) sable.Cont[int, int] {
			return sable.Return[int](y * 2)
		})
	})
	got := sable.Run(n)
	if got != 12 {
		t.Fatalf("got %d, want 12", got)
	}
}

func TestBindLeftIdentity(t *testing.T) {
	// Bind(Return(a), f) ≡ f(a)
	a := 7
	f := func(x int) sable.Cont[int, int] {
		return sable.Return[int](x * 3)
	}

	left := sable.Run(sable.Bind(sable.Return[int](a), f))
	right := sable.Run(f(a))

	if left != right {
		t.Fatalf("left identity failed: %d != %d", left, right)
	}
}

func TestBindRightIdentity(t *testing.T) {
	// Bind(m, Return) ≡ m
	m := sable.Return[int](42)

	left := sable.Run(sable.Bind(m, func(x int) sable.Cont[int, int] {
		return sable.Return[int](x)
	}))
	right := sable.Run(m)

	if left != right {
		t.Fatalf("right identity failed: %d != %d", left, right)
	}
}

func TestBindAssociativity(t *testing.T) {
	// Bind(Bind(m, f), g) ≡ Bind(m, func(x) Bind(f(x), g))
	m := sable.Return[int](2)
	f := func(x int) sable.Cont[int, int] {
		return sable.Return[int](x + 3)
	}
	g := func(x int) sable.Cont[int, int] {
		return sable.Return[int](x * 2)
	}

	left := sable.Run(sable.Bind(sable.Bind(m, f), g))
	right := sable.Run(sable.Bind(m, func(x int) sable.Cont[int, int] {
		return sable.Bind(f(x), g)
	}))

	if left != right {
		t.Fatalf("associativity failed: %d != %d", left, right)
	}
}

func TestPure(t *testing.T) {
	got := sable.Run(sable.Pure(sable.Value(sable.NewInt(42))))
	iv, ok := got.(sable.VInt)
	if !ok || iv.N.Int64() != 42 {
		t.Fatalf("got %v, want VInt(42)", got)
	}
}

func TestBindLeftIdentityWithStrings(t *testing.T) {
	a := "hello"
	f := func(s string) sable.Cont[string, string] {
		return sable.Return[string](s + " world")
	}

	left := sable.Run(sable.Bind(sable.Return[string](a), f))
	right := sable.Run(f(a))

	if left != right {
		t.Fatalf("Bind left identity (string) failed: %q != %q", left, right)
	}
}

func TestBindAssociativityWithTypeChange(t *testing.T) {
	m := sable.Return[string](42)
	f := func(x int) sable.Cont[string, string] {
		return sable.Return[string]("value")
	}
	g := func(s string) sable.Cont[string, string] {
		return sable.Return[string](s + "!")
	}

	left := sable.Run(sable.Bind(sable.Bind(m, f), g))
	right := sable.Run(sable.Bind(m, func(x int) sable.Cont[string, string] {
		return sable.Bind(f(x), g)
	}))

	if left != right {
		t.Fatalf("Bind associativity (type change) failed: %q != %q", left, right)
	}
}

// TestPushPromptPlainValue exercises the evaluator's own single-answer-type
// specialization of Run, via the Value domain directly: a pure value passed
// straight through with no channel or exception prompt involved.
func TestPushPromptPlainValue(t *testing.T) {
	got := sable.Run(sable.Pure(sable.Value(sable.VBool{B: true})))
	bv, ok := got.(sable.VBool)
	if !ok || !bv.B {
		t.Fatalf("got %v, want VBool(true)", got)
	}
}
