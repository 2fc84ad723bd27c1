// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sable_test

import (
	"reflect"
	"testing"

	sable "github.com/sable-lang/sable"
)

func TestDefineFindShadowing(t *testing.T) {
	env := sable.Define(sable.Empty, "x", sable.NewInt(1))
	env = sable.Define(env, "x", sable.NewInt(2))

	got := sable.Find(env, "x")
	if !sable.Equal(got, sable.NewInt(2)) {
		t.Fatalf("got %v, want 2 (most recent binding)", got)
	}
}

func TestDefineDoesNotMutateParent(t *testing.T) {
	base := sable.Define(sable.Empty, "x", sable.NewInt(1))
	_ = sable.Define(base, "x", sable.NewInt(2))

	got := sable.Find(base, "x")
	if !sable.Equal(got, sable.NewInt(1)) {
		t.Fatalf("base environment mutated: got %v, want 1", got)
	}
}

func TestFindUndefinedIsFatal(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an undefined variable")
		}
	}()
	sable.Find(sable.Empty, "nope")
}

func TestMaybeFindMissing(t *testing.T) {
	_, ok := sable.MaybeFind(sable.Empty, "nope")
	if ok {
		t.Fatal("expected MaybeFind to report absence")
	}
}

func TestMaybeFindPresent(t *testing.T) {
	env := sable.Define(sable.Empty, "x", sable.NewInt(9))
	v, ok := sable.MaybeFind(env, "x")
	if !ok || !sable.Equal(v, sable.NewInt(9)) {
		t.Fatalf("got (%v, %v), want (9, true)", v, ok)
	}
}

func TestMakeEnv(t *testing.T) {
	env := sable.MakeEnv([]sable.Pair{
		{Name: "a", Value: sable.NewInt(1)},
		{Name: "b", Value: sable.NewInt(2)},
		{Name: "a", Value: sable.NewInt(3)}, // later shadows earlier
	})
	if v := sable.Find(env, "a"); !sable.Equal(v, sable.NewInt(3)) {
		t.Fatalf("got %v, want 3", v)
	}
	if v := sable.Find(env, "b"); !sable.Equal(v, sable.NewInt(2)) {
		t.Fatalf("got %v, want 2", v)
	}
}

func TestNamesMostRecentFirstDeduped(t *testing.T) {
	env := sable.MakeEnv([]sable.Pair{
		{Name: "a", Value: sable.NewInt(1)},
		{Name: "b", Value: sable.NewInt(2)},
		{Name: "a", Value: sable.NewInt(3)},
	})
	got := sable.Names(env)
	want := []sable.Identifier{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDefineRecSelfReference(t *testing.T) {
	// A recursive closure can look itself up through its captured environment.
	env := sable.DefineRec(sable.Empty, "loop", func(self *sable.Environment) sable.Value {
		return sable.VClosure{Param: "n", Captured: self, Body: sable.Variable{Name: "loop"}}
	})
	closure := sable.Find(env, "loop").(sable.VClosure)
	if _, ok := sable.MaybeFind(closure.Captured, "loop"); !ok {
		t.Fatal("closure's captured environment should see its own binding")
	}
}
