// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sable

import (
	"fmt"
	"strings"
)

// ProgState is the pair threaded linearly through every Obey call: the
// current environment and the current channel table. There is no other
// mutable state; the evaluator is a pure state transformer over this
// tuple (§3).
type ProgState struct {
	Env *Environment
	Ct  *ChannelTable
}

// NewProgState returns the state a fresh REPL session starts from.
func NewProgState() ProgState {
	return ProgState{Env: InitialEnv(), Ct: NewChannelTable()}
}

// Obey runs one top-level phrase and returns its display string together
// with the state to carry into the next phrase. A fatal runtime error
// (§7) aborts the phrase and returns the state unchanged, matching "the
// REPL is expected to recover by discarding the current phrase's
// effects and prompting anew."
func Obey(phrase Phrase, state ProgState) (display string, next ProgState, err error) {
	defer recoverFatal(&err)
	next = state

	switch p := phrase.(type) {
	case Calculate:
		ct := state.Ct.Clone()
		v := runTopLevel(p.Expr, state.Env, ct)
		return ShowValue(v), ProgState{Env: state.Env, Ct: ct}, nil
	case DefinePhrase:
		ct := state.Ct.Clone()
		env := runElab(elab(p.Defn, state.Env, &evalCtx{ct: ct, protect: identityProtect}))
		return "Added definition: " + p.Defn.DefnName(), ProgState{Env: env, Ct: ct}, nil
	default:
		panic(fatalError{msg: "unknown phrase form"})
	}
}

// runElab drives a definition's elaboration to its resulting environment.
// Rec and Data only ever call Pure, but Val evaluates an arbitrary
// expression, which can capture (an uncaught throw, or a channel block
// outside Parallel). No prompt is installed here, so a capture that
// skips the stashing continuation has escaped every prompt and is a
// fatal error, and the phrase is discarded.
func runElab(m Eff[*Environment]) *Environment {
	var result *Environment
	done := false
	m(func(e *Environment) Value {
		result, done = e, true
		return VUnit{}
	})
	if !done {
		panic(fatalError{msg: "definition escaped every prompt"})
	}
	return result
}

// runTopLevel evaluates e under the outer pX (§2: "an outer exception
// prompt... established" once for the whole Calculate) with no pP
// installed — a bare channel operation outside every Parallel escaping
// every prompt is the "catastrophic failure" §4.3 warns about, so a
// vHalted surfacing here is a fatal error, not a value to display.
func runTopLevel(e Expr, env *Environment, ct *ChannelTable) Value {
	v := pushPrompt(Eval(e, env, ct))
	if _, ok := v.(vHalted); ok {
		panic(fatalError{msg: "channel operation blocked outside Parallel"})
	}
	return v
}

// ShowValue implements §6's display format table. Internal markers
// (Resume/Halted/Waiting) reaching here are a fatal invariant violation:
// they must have been fully resolved by eval/scheduler before any value
// escapes to the top level.
func ShowValue(v Value) string {
	switch vv := v.(type) {
	case VInt:
		return vv.N.String()
	case VBool:
		if vv.B {
			return "true"
		}
		return "false"
	case VUnit:
		return "unit"
	case VChan:
		return fmt.Sprintf("<handle %d>", vv.ID)
	case VClosure:
		return "<fundef>"
	case VException:
		return "<unhandled exception -> " + ShowValue(vv.Inner) + ">"
	case VTuple:
		parts := make([]string, len(vv.Elems))
		for i, e := range vv.Elems {
			parts[i] = ShowValue(e)
		}
		return "(" + strings.Join(parts, ",") + ")"
	case VInjection:
		if len(vv.Args) == 0 {
			return vv.Name
		}
		parts := make([]string, len(vv.Args))
		for i, a := range vv.Args {
			parts[i] = ShowValue(a)
		}
		return vv.Name + " " + strings.Join(parts, " ")
	case vHalted, vWaiting, vResume:
		panic(fatalError{msg: "internal marker value reached Display"})
	default:
		panic(fatalError{msg: "unknown value form in Display"})
	}
}
