// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sable

import "testing"

func TestReversedPreservesAllEntriesInReverseOrder(t *testing.T) {
	in := []taskEntry{{idx: 0}, {idx: 1}, {idx: 2}}
	out := reversed(in)
	want := []int{2, 1, 0}
	for i, e := range out {
		if e.idx != want[i] {
			t.Fatalf("position %d: got idx %d, want %d", i, e.idx, want[i])
		}
	}
}

func TestReversedEmpty(t *testing.T) {
	if out := reversed(nil); len(out) != 0 {
		t.Fatalf("got %v, want empty", out)
	}
}

func TestRunSchedulerPreservesComponentOrder(t *testing.T) {
	components := []Expr{
		Number{Value: NewInt(10)},
		Number{Value: NewInt(20)},
		Number{Value: NewInt(30)},
	}
	ct := NewChannelTable()
	v := runScheduler(components, Empty, &evalCtx{ct: ct, protect: identityProtect})
	tup, ok := v.(VTuple)
	if !ok || len(tup.Elems) != 3 {
		t.Fatalf("got %v, want a 3-element Tuple", v)
	}
	for i, want := range []int64{10, 20, 30} {
		iv, ok := tup.Elems[i].(VInt)
		if !ok || iv.N.Int64() != want {
			t.Fatalf("element %d: got %v, want %d", i, tup.Elems[i], want)
		}
	}
}

func TestRunSchedulerRendezvousBetweenComponents(t *testing.T) {
	ct := NewChannelTable()
	chanID := ct.Fresh()
	ct.Update(chanID, StateEmpty{})
	chanVal := VChan{ID: chanID}

	env := Define(Empty, "c", chanVal)
	components := []Expr{
		Send{Chan: Variable{Name: "c"}, Value: Number{Value: NewInt(7)}},
		Receive{Chan: Variable{Name: "c"}},
	}

	v := runScheduler(components, env, &evalCtx{ct: ct, protect: identityProtect})
	tup, ok := v.(VTuple)
	if !ok || len(tup.Elems) != 2 {
		t.Fatalf("got %v, want a 2-element Tuple", v)
	}
	if _, ok := tup.Elems[0].(VUnit); !ok {
		t.Fatalf("sender's result: got %v, want unit", tup.Elems[0])
	}
	iv, ok := tup.Elems[1].(VInt)
	if !ok || iv.N.Int64() != 7 {
		t.Fatalf("receiver's result: got %v, want 7", tup.Elems[1])
	}
}
