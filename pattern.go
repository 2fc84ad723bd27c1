// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sable

// Pattern matching is shared between Match and TryCatch (§4.5, §4.6):
// both dispatch a scrutinee value against an ordered list of Cases and
// evaluate the first matching arm's body under the bindings it produced.
//
// Patterns are a syntactic subset of Expr (§6): Variable(x) always
// matches and binds x to the scrutinee; Number(n) matches only an equal
// VInt; an Apply spine is flattened left-to-right into an injector
// pattern name(p1,...,pn), matching a VInjection of the same tag and
// arity iff every sub-pattern matches positionally. Wildcards have no
// dedicated syntax — they are ordinary fresh variables whose binding the
// handler body happens not to reference.

// matchPattern attempts to match pat against v under env. On success it
// returns the extended environment and true; on failure it returns env
// unchanged and false.
func matchPattern(pat Expr, v Value, env *Environment) (*Environment, bool) {
	switch p := pat.(type) {
	case Variable:
		return Define(env, p.Name, v), true
	case Number:
		iv, ok := v.(VInt)
		if !ok {
			return env, false
		}
		return env, iv.N.Cmp(p.Value.N) == 0
	case Apply:
		name, args, ok := flattenInjectorPattern(p)
		if !ok {
			panic(fatalError{msg: "malformed pattern"})
		}
		return matchInjector(name, args, v, env)
	case Injector:
		return matchInjector(p.Name, p.Args, v, env)
	default:
		panic(fatalError{msg: "malformed pattern"})
	}
}

// flattenInjectorPattern flattens a left-nested Apply spine, such as
// Apply(Apply(Variable("Cons"), x), xs), into its injector-pattern form
// ("Cons", [x, xs]).
func flattenInjectorPattern(a Apply) (Identifier, []Expr, bool) {
	var args []Expr
	var head Expr = a
	for {
		app, ok := head.(Apply)
		if !ok {
			break
		}
		args = append([]Expr{app.Arg}, args...)
		head = app.Fn
	}
	v, ok := head.(Variable)
	if !ok {
		return "", nil, false
	}
	return v.Name, args, true
}

func matchInjector(name Identifier, argPats []Expr, v Value, env *Environment) (*Environment, bool) {
	inj, ok := v.(VInjection)
	if !ok || inj.Name != name || len(inj.Args) != len(argPats) {
		return env, false
	}
	extended := env
	for i, sub := range argPats {
		var matched bool
		extended, matched = matchPattern(sub, inj.Args[i], extended)
		if !matched {
			return env, false
		}
	}
	return extended, true
}

// matchCases tries each case against v in order, returning the extended
// environment and matching case's body on the first success. ok is false
// if no case matched.
func matchCases(cases []Case, v Value, env *Environment) (newEnv *Environment, body Expr, ok bool) {
	for _, c := range cases {
		if extended, matched := matchPattern(c.Pattern, v, env); matched {
			return extended, c.Body, true
		}
	}
	return env, nil, false
}
