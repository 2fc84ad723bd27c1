// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sable

// Environment is an immutable, lexically-nested name→value mapping,
// represented as a persistent linked list of frames (one binding per
// frame): "define" never mutates an existing node, it prepends a new
// one, so an old *Environment handle keeps observing its original
// bindings after a child scope shadows a name.
//
// The zero value (nil *Environment) is the empty environment.
type Environment struct {
	name   Identifier
	value  Value
	parent *Environment
}

// Empty is the environment with no bindings.
var Empty *Environment

// Define returns a new environment with name bound to v, shadowing any
// existing binding of name without affecting env.
func Define(env *Environment, name Identifier, v Value) *Environment {
	return &Environment{name: name, value: v, parent: env}
}

// DefineRec builds a self-referential binding: it allocates the frame
// first, asks build to produce the bound value with a handle to that very
// frame (so a closure can capture an environment that includes itself),
// then populates the frame. This is the "build the cell, create the
// closure, populate the cell" strategy from the recursive-environments
// design note.
func DefineRec(env *Environment, name Identifier, build func(self *Environment) Value) *Environment {
	node := &Environment{name: name, parent: env}
	node.value = build(node)
	return node
}

// Find looks up name, walking from the most recently defined binding
// outward. An absent name is a fatal runtime error: undefined variables
// are a malformed-program error, not a catchable language exception.
func Find(env *Environment, name Identifier) Value {
	if v, ok := MaybeFind(env, name); ok {
		return v
	}
	panic(fatalError{msg: "undefined variable: " + name})
}

// MaybeFind looks up name without panicking on failure.
func MaybeFind(env *Environment, name Identifier) (Value, bool) {
	for n := env; n != nil; n = n.parent {
		if n.name == name {
			return n.value, true
		}
	}
	return nil, false
}

// Pair is a single name/value binding, used by MakeEnv.
type Pair struct {
	Name  Identifier
	Value Value
}

// MakeEnv folds a list of bindings into a fresh environment, left to
// right, so later pairs shadow earlier ones with the same name.
func MakeEnv(pairs []Pair) *Environment {
	env := Empty
	for _, p := range pairs {
		env = Define(env, p.Name, p.Value)
	}
	return env
}

// Names returns every name currently visible in env, most-recently-bound
// first, each name listed exactly once.
func Names(env *Environment) []Identifier {
	seen := make(map[Identifier]bool)
	var names []Identifier
	for n := env; n != nil; n = n.parent {
		if seen[n.name] {
			continue
		}
		seen[n.name] = true
		names = append(names, n.name)
	}
	return names
}
