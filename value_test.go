// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sable_test

import (
	"testing"

	sable "github.com/sable-lang/sable"
)

func TestEqualInt(t *testing.T) {
	if !sable.Equal(sable.NewInt(3), sable.NewInt(3)) {
		t.Fatal("3 should equal 3")
	}
	if sable.Equal(sable.NewInt(3), sable.NewInt(4)) {
		t.Fatal("3 should not equal 4")
	}
}

func TestEqualBoolUnit(t *testing.T) {
	if !sable.Equal(sable.VBool{B: true}, sable.VBool{B: true}) {
		t.Fatal("true should equal true")
	}
	if !sable.Equal(sable.VUnit{}, sable.VUnit{}) {
		t.Fatal("unit should equal unit")
	}
}

func TestEqualExceptionByInner(t *testing.T) {
	a := sable.VException{Inner: sable.NewInt(1)}
	b := sable.VException{Inner: sable.NewInt(1)}
	c := sable.VException{Inner: sable.NewInt(2)}
	if !sable.Equal(a, b) {
		t.Fatal("exceptions with equal inner values should compare equal")
	}
	if sable.Equal(a, c) {
		t.Fatal("exceptions with different inner values should not compare equal")
	}
}

func TestEqualIncomparableIsFatal(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic comparing incomparable values")
		}
	}()
	sable.Equal(sable.NewInt(1), sable.VBool{B: true})
}

func TestEqualInjectionIsFatal(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic: Injection is not in the equality relation")
		}
	}()
	sable.Equal(sable.VInjection{Name: "Nil"}, sable.VInjection{Name: "Nil"})
}

func TestNewIntFromBigAgreesWithNewInt(t *testing.T) {
	a := sable.NewInt(17)
	b := sable.NewIntFromBig(a.N)
	if !sable.Equal(a, b) {
		t.Fatal("NewIntFromBig should round-trip the same magnitude as NewInt")
	}
}
