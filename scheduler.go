// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sable

// The scheduler (§4.8) round-robins a bounded set of tasks, one per
// Parallel component, over synchronous channel rendezvous. It is the
// single always-active classifier for the task prompt pP: every task
// step, whether a component's first run or a later resume, passes
// through the same running/ready bookkeeping below, so pP needs no
// per-capture reinstallation trick the way pX does in eval.go.

// taskEntry pairs a runnable step with the original Parallel component
// index it belongs to, so the final Tuple preserves component order
// regardless of completion order.
type taskEntry struct {
	idx int
	run Task
}

// evalParallel evaluates each component under its own fresh pP prompt and
// hands the resulting tasks to runScheduler.
func evalParallel(components []Expr, env *Environment, c *evalCtx) Kont {
	return func(k Continuation) Value {
		return k(runScheduler(components, env, c))
	}
}

// runScheduler drives components to completion, returning a Tuple of
// their results in original order. A component parked on a channel with
// no peer ever arriving, and no other task able to make progress, is a
// deadlock (§9 open question): this implementation resolves it by
// completing every still-parked component with Exception(ExcInvalid)
// rather than livelocking forever, once one full pass over the waiting
// set produces zero rendezvous.
func runScheduler(components []Expr, env *Environment, c *evalCtx) Value {
	n := len(components)
	results := make([]Value, n)

	running := make([]taskEntry, n)
	for i, comp := range components {
		i, comp := i, comp
		running[i] = taskEntry{idx: i, run: func() Value {
			return pushPrompt(eval(comp, env, c))
		}}
	}

	var ready []taskEntry
	waiting := 0
	progressed := true

	for len(running) > 0 || waiting > 0 {
		if len(running) == 0 {
			if !progressed {
				for _, entry := range ready {
					results[entry.idx] = VException{Inner: excInvalid()}
				}
				ready = nil
				waiting = 0
				break
			}
			running = reversed(ready)
			ready = nil
			progressed = false
			continue
		}

		entry := running[0]
		running = running[1:]

		switch v := entry.run().(type) {
		case vHalted:
			id := v.id
			ready = append(ready, taskEntry{idx: entry.idx, run: func() Value { return vWaiting{id: id} }})
			waiting++
		case vWaiting:
			switch s := c.ct.Contents(v.id).(type) {
			case StateReady:
				c.ct.Update(v.id, s.Successor)
				running = append([]taskEntry{{idx: entry.idx, run: s.Ready}}, running...)
				waiting--
				progressed = true
			default:
				id := v.id
				ready = append(ready, taskEntry{idx: entry.idx, run: func() Value { return vWaiting{id: id} }})
			}
		default:
			results[entry.idx] = v
		}
	}

	return VTuple{Elems: results}
}

func reversed(entries []taskEntry) []taskEntry {
	out := make([]taskEntry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out
}
