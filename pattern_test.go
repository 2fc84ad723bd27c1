// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sable

import "testing"

func TestMatchCasesVariableAlwaysMatches(t *testing.T) {
	cases := []Case{
		{Pattern: Variable{Name: "x"}, Body: Variable{Name: "x"}},
	}
	env, body, ok := matchCases(cases, NewInt(5), Empty)
	if !ok {
		t.Fatal("a bare variable pattern should always match")
	}
	if v := Find(env, "x"); !Equal(v, NewInt(5)) {
		t.Fatalf("got %v, want 5 bound to x", v)
	}
	if _, ok := body.(Variable); !ok {
		t.Fatal("expected the matched case's body back")
	}
}

func TestMatchCasesNumberLiteral(t *testing.T) {
	cases := []Case{
		{Pattern: Number{Value: NewInt(1)}, Body: Number{Value: NewInt(100)}},
		{Pattern: Variable{Name: "_"}, Body: Number{Value: NewInt(200)}},
	}
	_, body, ok := matchCases(cases, NewInt(2), Empty)
	if !ok {
		t.Fatal("expected the fallback variable case to match")
	}
	n := body.(Number)
	if !Equal(n.Value, NewInt(200)) {
		t.Fatalf("got %v, want 200 (fallback case)", n.Value)
	}
}

func TestMatchInjectorArityAndTag(t *testing.T) {
	pat := Injector{Name: "Cons", Args: []Expr{
		Variable{Name: "x"},
		Variable{Name: "xs"},
	}}
	v := VInjection{Name: "Cons", Args: []Value{NewInt(1), VInjection{Name: "Nil"}}}

	env, ok := matchPattern(pat, v, Empty)
	if !ok {
		t.Fatal("expected the injector pattern to match")
	}
	if got := Find(env, "x"); !Equal(got, NewInt(1)) {
		t.Fatalf("got %v, want 1 bound to x", got)
	}
}

func TestMatchInjectorWrongTagFails(t *testing.T) {
	pat := Injector{Name: "Cons", Args: []Expr{Variable{Name: "x"}, Variable{Name: "xs"}}}
	v := VInjection{Name: "Nil"}
	_, ok := matchPattern(pat, v, Empty)
	if ok {
		t.Fatal("a Nil value should not match a Cons pattern")
	}
}

func TestMatchInjectorWrongArityFails(t *testing.T) {
	pat := Injector{Name: "Cons", Args: []Expr{Variable{Name: "x"}}}
	v := VInjection{Name: "Cons", Args: []Value{NewInt(1), VInjection{Name: "Nil"}}}
	_, ok := matchPattern(pat, v, Empty)
	if ok {
		t.Fatal("arity mismatch should not match")
	}
}

func TestFlattenedApplySpinePattern(t *testing.T) {
	// Apply(Apply(Variable("Cons"), x), xs) flattens to an injector
	// pattern equivalent to Injector("Cons", [x, xs]) — see pattern.go.
	pat := Apply{
		Fn:  Apply{Fn: Variable{Name: "Cons"}, Arg: Variable{Name: "x"}},
		Arg: Variable{Name: "xs"},
	}
	v := VInjection{Name: "Cons", Args: []Value{NewInt(7), VInjection{Name: "Nil"}}}
	env, ok := matchPattern(pat, v, Empty)
	if !ok {
		t.Fatal("expected the flattened Apply-spine pattern to match")
	}
	got, ok := Find(env, "xs").(VInjection)
	if !ok || got.Name != "Nil" {
		t.Fatalf("got %v, want Nil bound to xs", got)
	}
}

func TestMatchCasesNoMatch(t *testing.T) {
	cases := []Case{
		{Pattern: Injector{Name: "Cons"}, Body: Number{}},
	}
	_, _, ok := matchCases(cases, VInjection{Name: "Nil"}, Empty)
	if ok {
		t.Fatal("expected no case to match")
	}
}
