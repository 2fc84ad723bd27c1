// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sable

import "math/big"

// eval is the big-step evaluator (§4.4-§4.7): eval(Expr, Env) -> Kont<Value>.
// Sub-expressions are evaluated left to right.
//
// evalCtx carries what eval needs besides the lexical environment: the
// shared channel table (the "state" that lift threads into the
// continuation monad) and protect, the composed reinstallation wrapper
// for every pX boundary (TryCatch) currently enclosing this point.
//
// Why protect exists: a capture built by captureUpTo never invokes the
// continuation it is handed, so a Bind chain's tail-call to an installer's
// k is simply skipped when a Throw or a channel block happens. That is
// exactly what lets the abort bubble past arbitrary Bind nesting in one
// step. It also means a TryCatch's own classification logic, which runs
// once synchronously around its body, is not automatically re-entered
// when a continuation captured *inside* that body is invoked later by the
// scheduler, long after TryCatch's own stack frame returned. protect
// closes that gap: every captureUpTo call site at a Send/Receive bakes
// the protect active at capture time into the continuation it stores in
// the channel table, so resuming it later re-applies every enclosing
// TryCatch's classification, exactly as "re-enters under a fresh p-prompt"
// in §4.3 requires. The task prompt pP needs no such trick: the scheduler
// itself is the single, always-active classifier for every task step, so
// it re-examines each resumed value uniformly without help.
type evalCtx struct {
	ct      *ChannelTable
	protect func(Value) Value
}

func identityProtect(v Value) Value { return v }

// Eval is the entry point used by obey.go: it evaluates e under a fresh
// (identity) pX protection chain, the state every top-level Calculate
// starts from. Parallel components are not started through Eval; the
// scheduler evaluates each one with the enclosing evalCtx, so they keep
// the protect chain of every TryCatch around the Parallel.
func Eval(e Expr, env *Environment, ct *ChannelTable) Kont {
	return eval(e, env, &evalCtx{ct: ct, protect: identityProtect})
}

func eval(e Expr, env *Environment, c *evalCtx) Kont {
	switch n := e.(type) {
	case Number:
		return Pure(Value(n.Value))
	case Variable:
		return Pure(Find(env, n.Name))
	case If:
		return Bind(eval(n.Cond, env, c), func(cv Value) Kont {
			bv, ok := cv.(VBool)
			if !ok {
				panic(fatalError{msg: "if requires a Bool condition"})
			}
			if bv.B {
				return eval(n.Then, env, c)
			}
			return eval(n.Else, env, c)
		})
	case Lambda:
		return Pure(Value(VClosure{Param: n.Param, Captured: env, Body: n.Body}))
	case Pipe:
		return Bind(eval(n.First, env, c), func(Value) Kont {
			return eval(n.Second, env, c)
		})
	case Let:
		return Bind[Value, *Environment, Value](elab(n.Defn, env, c), func(env2 *Environment) Kont {
			return eval(n.Body, env2, c)
		})
	case Apply:
		return Bind(eval(n.Fn, env, c), func(fv Value) Kont {
			closure, ok := fv.(VClosure)
			if !ok {
				panic(fatalError{msg: "applying a non-function value"})
			}
			return Bind(eval(n.Arg, env, c), func(av Value) Kont {
				return eval(closure.Body, Define(closure.Captured, closure.Param, av), c)
			})
		})
	case Injector:
		return Bind[Value, []Value, Value](evalArgs(n.Args, env, c), func(vs []Value) Kont {
			return Pure(Value(VInjection{Name: n.Name, Args: vs}))
		})
	case TupleLit:
		return Bind[Value, []Value, Value](evalArgs(n.Elems, env, c), func(vs []Value) Kont {
			return Pure(Value(VTuple{Elems: vs}))
		})
	case Match:
		return Bind(eval(n.Scrutinee, env, c), func(v Value) Kont {
			if newEnv, body, ok := matchCases(n.Cases, v, env); ok {
				return eval(body, newEnv, c)
			}
			return raiseException(excMatch())
		})
	case BinPrim:
		return evalBinPrim(n, env, c)
	case MonPrim:
		return evalMonPrim(n, env, c)
	case NewChan:
		return lift(func() Value {
			id := c.ct.Fresh()
			c.ct.Update(id, StateEmpty{})
			return VChan{ID: id}
		})
	case Close:
		return evalClose(n, env, c)
	case SendP:
		return evalSendP(n.Chan, n.Value, env, c)
	case Send:
		return evalSend(n.Chan, n.Value, env, c)
	case ReceiveP:
		return evalReceiveP(n.Chan, env, c)
	case Receive:
		return evalReceive(n.Chan, env, c)
	case Parallel:
		return evalParallel(n.Components, env, c)
	case TryCatch:
		return evalTryCatch(n.Body, n.Cases, env, c)
	case Throw:
		return evalThrow(n.Value, env, c)
	default:
		panic(fatalError{msg: "unknown expression form"})
	}
}

// evalArgs evaluates each argument left to right, threading results into
// a slice without relying on slice mutation across capture boundaries.
func evalArgs(args []Expr, env *Environment, c *evalCtx) Eff[[]Value] {
	if len(args) == 0 {
		return Pure[[]Value](nil)
	}
	return Bind(eval(args[0], env, c), func(v Value) Eff[[]Value] {
		return Bind(evalArgs(args[1:], env, c), func(rest []Value) Eff[[]Value] {
			return Pure(append([]Value{v}, rest...))
		})
	})
}

// elab is §4.5's definition elaborator: elab(Defn, Env) -> Kont<Env>.
func elab(d Defn, env *Environment, c *evalCtx) Eff[*Environment] {
	switch defn := d.(type) {
	case Val:
		return Bind[Value, Value, *Environment](eval(defn.Value, env, c), func(v Value) Eff[*Environment] {
			return Pure(Define(env, defn.Name, v))
		})
	case Rec:
		lam, ok := defn.Value.(Lambda)
		if !ok {
			panic(fatalError{msg: "rec requires a lambda right-hand side"})
		}
		return Pure(DefineRec(env, defn.Name, func(self *Environment) Value {
			return VClosure{Param: lam.Param, Captured: self, Body: lam.Body}
		}))
	case Data:
		result := env
		for _, ctor := range defn.Ctors {
			result = elabCtor(result, ctor)
		}
		return Pure(result)
	default:
		panic(fatalError{msg: "unknown definition form"})
	}
}

// elabCtor binds a single constructor: a nullary constructor binds its
// injection value directly; a positive-arity constructor binds the
// curried chain of VClosures built by makeConstructor.
func elabCtor(env *Environment, ctor CtorDefn) *Environment {
	if ctor.Arity == 0 {
		return Define(env, ctor.Name, VInjection{Name: ctor.Name})
	}
	return Define(env, ctor.Name, makeConstructor(ctor.Name, ctor.Arity))
}

// makeConstructor builds a curried native constructor function as a chain
// of VClosures whose bodies are synthetic Injector applications over a
// chain of fresh parameter names, so constructors compose with ordinary
// Apply exactly like user-defined lambdas.
func makeConstructor(name Identifier, arity int) Value {
	params := make([]Identifier, arity)
	for i := range params {
		params[i] = ctorParamName(name, i)
	}
	args := make([]Expr, arity)
	for i, p := range params {
		args[i] = Variable{Name: p}
	}
	body := Expr(Injector{Name: name, Args: args})
	for i := arity - 1; i >= 0; i-- {
		body = Lambda{Param: params[i], Body: body}
	}
	lam := body.(Lambda)
	return VClosure{Param: lam.Param, Captured: Empty, Body: lam.Body}
}

func ctorParamName(name Identifier, i int) Identifier {
	return "$" + name + "$arg" + string(rune('a'+i))
}

func evalBinPrim(n BinPrim, env *Environment, c *evalCtx) Kont {
	return Bind(eval(n.Left, env, c), func(lv Value) Kont {
		return Bind(eval(n.Right, env, c), func(rv Value) Kont {
			return Pure(applyBinOp(n.Op, lv, rv))
		})
	})
}

func applyBinOp(op BinOp, lv, rv Value) Value {
	if op == OpEqual {
		return VBool{B: Equal(lv, rv)}
	}
	if op == OpAnd || op == OpOr {
		lb, ok1 := lv.(VBool)
		rb, ok2 := rv.(VBool)
		if !ok1 || !ok2 {
			panic(fatalError{msg: "and/or require Bool operands"})
		}
		if op == OpAnd {
			return VBool{B: lb.B && rb.B}
		}
		return VBool{B: lb.B || rb.B}
	}
	li, ok1 := lv.(VInt)
	ri, ok2 := rv.(VInt)
	if !ok1 || !ok2 {
		panic(fatalError{msg: "arithmetic requires Int operands"})
	}
	switch op {
	case OpPlus:
		return VInt{N: new(big.Int).Add(li.N, ri.N)}
	case OpMinus:
		return VInt{N: new(big.Int).Sub(li.N, ri.N)}
	case OpTimes:
		return VInt{N: new(big.Int).Mul(li.N, ri.N)}
	case OpDiv:
		q, _ := floorDivMod(li.N, ri.N)
		return VInt{N: q}
	case OpMod:
		_, r := floorDivMod(li.N, ri.N)
		return VInt{N: r}
	default:
		panic(fatalError{msg: "unknown binary primitive"})
	}
}

func evalMonPrim(n MonPrim, env *Environment, c *evalCtx) Kont {
	return Bind(eval(n.Operand, env, c), func(v Value) Kont {
		switch n.Op {
		case OpNeg:
			iv, ok := v.(VInt)
			if !ok {
				panic(fatalError{msg: "neg requires an Int operand"})
			}
			return Pure(Value(VInt{N: new(big.Int).Neg(iv.N)}))
		default:
			panic(fatalError{msg: "unknown unary primitive"})
		}
	})
}

// evalClose implements §4.6's Close transition table.
func evalClose(n Close, env *Environment, c *evalCtx) Kont {
	return Bind(eval(n.Chan, env, c), func(cv Value) Kont {
		ch, ok := cv.(VChan)
		if !ok {
			panic(fatalError{msg: "close requires a channel handle"})
		}
		return lift(func() Value {
			switch s := c.ct.Contents(ch.ID).(type) {
			case StateEmpty:
				c.ct.Update(ch.ID, StateClosed{})
			case StateReady:
				c.ct.Update(ch.ID, StateReady{Ready: s.Ready, Successor: StateClosed{}})
			case StateWR:
				sender := s.Sender
				c.ct.Update(ch.ID, StateReady{
					Ready:     func() Value { return sender(VException{Inner: excClosed()}) },
					Successor: StateClosed{},
				})
			case StateWW:
				receiver := s.Receiver
				c.ct.Update(ch.ID, StateReady{
					Ready:     func() Value { return receiver(VException{Inner: excClosed()}) },
					Successor: StateClosed{},
				})
			case StateClosed:
				panic(fatalError{msg: "channel already closed"})
			}
			return VUnit{}
		})
	})
}

// sendTransition implements the SendP row of §4.6's table, returning
// either vHalted (must bubble to the scheduler) or vResume (resolvable
// locally, right here, with no scheduler hop).
func sendTransition(ct *ChannelTable, id ChannelId, v Value, rest Continuation) Value {
	switch s := ct.Contents(id).(type) {
	case StateEmpty:
		ct.Update(id, StateWR{Value: v, Sender: rest})
		return vHalted{id: id}
	case StateReady:
		ct.Update(id, StateReady{Ready: s.Ready, Successor: StateWR{Value: v, Sender: rest}})
		return vHalted{id: id}
	case StateWW:
		receiver := s.Receiver
		ct.Update(id, StateReady{Ready: func() Value { return receiver(v) }, Successor: StateEmpty{}})
		return vResume{k: func() Value { return rest(VUnit{}) }}
	case StateClosed:
		return vResume{k: func() Value { return rest(VException{Inner: excClosed()}) }}
	case StateWR:
		panic(fatalError{msg: "channel already has a parked sender"})
	default:
		panic(fatalError{msg: "malformed channel state"})
	}
}

// receiveTransition mirrors sendTransition for Receive/ReceiveP.
func receiveTransition(ct *ChannelTable, id ChannelId, rest Continuation) Value {
	switch s := ct.Contents(id).(type) {
	case StateEmpty:
		ct.Update(id, StateWW{Receiver: rest})
		return vHalted{id: id}
	case StateReady:
		ct.Update(id, StateReady{Ready: s.Ready, Successor: StateWW{Receiver: rest}})
		return vHalted{id: id}
	case StateWR:
		sender := s.Sender
		val := s.Value
		ct.Update(id, StateReady{Ready: func() Value { return sender(VUnit{}) }, Successor: StateEmpty{}})
		return vResume{k: func() Value { return rest(val) }}
	case StateClosed:
		return vResume{k: func() Value { return rest(VException{Inner: excClosed()}) }}
	case StateWW:
		panic(fatalError{msg: "channel already has a parked receiver"})
	default:
		panic(fatalError{msg: "malformed channel state"})
	}
}

func evalSendP(chanE, valE Expr, env *Environment, c *evalCtx) Kont {
	return Bind(eval(chanE, env, c), func(cv Value) Kont {
		ch, ok := cv.(VChan)
		if !ok {
			panic(fatalError{msg: "send requires a channel handle"})
		}
		return Bind(eval(valE, env, c), func(v Value) Kont {
			return captureUpTo(func(k Continuation) Value {
				stored := func(resume Value) Value { return c.protect(k(resume)) }
				res := sendTransition(c.ct, ch.ID, v, stored)
				if r, ok := res.(vResume); ok {
					return r.k()
				}
				return res
			})
		})
	})
}

func evalReceiveP(chanE Expr, env *Environment, c *evalCtx) Kont {
	return Bind(eval(chanE, env, c), func(cv Value) Kont {
		ch, ok := cv.(VChan)
		if !ok {
			panic(fatalError{msg: "receive requires a channel handle"})
		}
		return captureUpTo(func(k Continuation) Value {
			stored := func(resume Value) Value { return c.protect(k(resume)) }
			res := receiveTransition(c.ct, ch.ID, stored)
			if r, ok := res.(vResume); ok {
				return r.k()
			}
			return res
		})
	})
}

// evalSend/evalReceive wrap their P-primitives: a resulting Exception
// escapes to the nearest pX instead of becoming the expression's value.
func evalSend(chanE, valE Expr, env *Environment, c *evalCtx) Kont {
	return Bind(evalSendP(chanE, valE, env, c), func(v Value) Kont {
		if exc, ok := v.(VException); ok {
			return raiseExceptionValue(exc)
		}
		return Pure(v)
	})
}

func evalReceive(chanE Expr, env *Environment, c *evalCtx) Kont {
	return Bind(evalReceiveP(chanE, env, c), func(v Value) Kont {
		if exc, ok := v.(VException); ok {
			return raiseExceptionValue(exc)
		}
		return Pure(v)
	})
}

// raiseException builds Exception(inj) and captures up to the nearest pX.
func raiseException(inj VInjection) Kont {
	return raiseExceptionValue(VException{Inner: inj})
}

// raiseExceptionValue captures up to pX with an already-built Exception,
// used both for fresh throws and for re-propagating one already formed.
func raiseExceptionValue(exc VException) Kont {
	return captureUpTo(func(Continuation) Value { return exc })
}

func evalThrow(e Expr, env *Environment, c *evalCtx) Kont {
	return Bind(eval(e, env, c), func(v Value) Kont {
		inj, ok := v.(VInjection)
		if !ok {
			panic(fatalError{msg: "throw requires an injection value"})
		}
		return raiseExceptionValue(VException{Inner: inj})
	})
}

// evalTryCatch installs a pX prompt around body (§4.7). classify is the
// reinstallable boundary: every continuation captured inside body, when
// later resumed, passes its result back through classify via the protect
// chain installed in innerCtx (see evalCtx's doc comment above).
func evalTryCatch(body Expr, cases []Case, env *Environment, c *evalCtx) Kont {
	return func(k Continuation) Value {
		var classify func(Value) Value
		classify = func(v Value) Value {
			switch vv := v.(type) {
			case VException:
				if newEnv, caseBody, ok := matchCases(cases, vv.Inner, env); ok {
					return eval(caseBody, newEnv, c)(k)
				}
				return vv
			case vHalted:
				return vv
			default:
				return k(v)
			}
		}
		innerCtx := &evalCtx{ct: c.ct, protect: func(v Value) Value { return classify(c.protect(v)) }}
		return classify(pushPrompt(eval(body, env, innerCtx)))
	}
}
