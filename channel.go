// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sable

// ChannelId is an opaque, densely-allocated, monotonically-increasing
// channel identifier. Ids are never reused.
type ChannelId int

// ChannelState is the state of one rendezvous channel: Empty, WR
// (a parked sender), WW (a parked receiver), Ready (one side just
// completed and a successor may remain parked), or Closed.
//
// A channel is never simultaneously WR and WW — the evaluator only ever
// constructs one of them at a time (see Send/Receive in eval.go) — and
// Ready.Successor is never itself a Ready (no nested Ready), matching the
// invariants in §8.
type ChannelState interface {
	isChannelState()
}

// StateEmpty: no sender, no receiver parked.
type StateEmpty struct{}

func (StateEmpty) isChannelState() {}

// StateWR: a sender is parked with its payload and its resume
// continuation.
type StateWR struct {
	Value  Value
	Sender Continuation
}

func (StateWR) isChannelState() {}

// StateWW: a receiver is parked with its resume continuation.
type StateWW struct {
	Receiver Continuation
}

func (StateWW) isChannelState() {}

// StateReady: one end has just completed; Ready is the next runnable
// continuation for that peer, and Successor preserves whatever party (if
// any) remains parked underneath, so rendezvous and closure stack
// deterministically and FIFO per channel.
type StateReady struct {
	Ready     Task
	Successor ChannelState
}

func (StateReady) isChannelState() {}

// StateClosed: the channel is sealed; no new parking is permitted.
type StateClosed struct{}

func (StateClosed) isChannelState() {}

// ChannelTable is the allocation table and state map for every channel
// live in a ProgState. Allocation is monotonic via fresh; a freshly
// allocated id carries no state until NewChan's evaluation installs
// StateEmpty (see eval.go), matching §4.2's two-step fresh-then-update
// protocol.
type ChannelTable struct {
	states []ChannelState
}

// NewChannelTable returns an empty table.
func NewChannelTable() *ChannelTable {
	return &ChannelTable{}
}

// Fresh allocates a new channel id, advancing the table's counter. No
// state is associated with the id until a subsequent Update.
func (t *ChannelTable) Fresh() ChannelId {
	t.states = append(t.states, nil)
	return ChannelId(len(t.states) - 1)
}

// Contents returns the current state of id.
func (t *ChannelTable) Contents(id ChannelId) ChannelState {
	return t.states[id]
}

// Update overwrites the state of id.
func (t *ChannelTable) Update(id ChannelId, s ChannelState) {
	t.states[id] = s
}

// Clone returns a shallow copy of the table, used by ProgState threading
// in obey.go so that a discarded phrase (one that hit a fatal runtime
// error) never mutates the state visible to the next REPL turn.
func (t *ChannelTable) Clone() *ChannelTable {
	clone := &ChannelTable{states: make([]ChannelState, len(t.states))}
	copy(clone.states, t.states)
	return clone
}
