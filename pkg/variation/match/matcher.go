// Package match resolves a unit's performance-event stream into sound
// variation activations. One Matcher exists per synth unit; it owns a
// cursor per activation sequence in the current catalog and the stack
// that makes momentary variations revert to their predecessor.
//
// ProcessEvent runs inline with real-time event delivery: it is
// synchronous, branch-bounded by the catalog size and the fixed maximum
// sequence length, and does not allocate. Catalog swaps and the
// disable-key-switches flag cross in from the control context through
// SetCatalog and SetDisabled.
package match

import (
	"sync/atomic"

	"github.com/justyntemme/soundvariation/pkg/midi"
	"github.com/justyntemme/soundvariation/pkg/variation"
)

// TransitionFunc is invoked after every committed activation or
// termination with the new active identifier. It runs on the real-time
// path and must hand off without blocking.
type TransitionFunc func(active variation.VariationID)

type eventKind uint8

const (
	kindNoteOn eventKind = iota
	kindNoteOff
	kindController
	kindProgram
)

// frame records what to restore when the momentary variation activated on
// top of it terminates.
type frame struct {
	restore variation.VariationID
	release variation.Pitch // note-off pitch that pops this frame, NoTriggerPitch if none
}

// Matcher tracks activation state for one synth unit.
type Matcher struct {
	vars    []*variation.Data
	cursors []uint8
	stack   []frame

	active   atomic.Int32
	disabled atomic.Bool

	onTransition TransitionFunc
}

// New creates a matcher with no catalog. onTransition may be nil.
func New(onTransition TransitionFunc) *Matcher {
	m := &Matcher{onTransition: onTransition}
	m.active.Store(int32(variation.NoVariation))
	return m
}

// SetCatalog installs the variations of a freshly published catalog.
// Control context only. Live state (active variation, cursors, momentary
// stack) is cleared unless the new catalog's identifiers and sequences
// are provably unchanged, in which case performance state survives the
// swap.
func (m *Matcher) SetCatalog(c *variation.Catalog) {
	if c == nil {
		m.vars = nil
		m.cursors = nil
		m.stack = nil
		m.active.Store(int32(variation.NoVariation))
		return
	}

	vars := c.Variations()
	if m.sameShape(vars) {
		m.vars = vars
		return
	}

	m.vars = vars
	m.cursors = make([]uint8, len(vars))
	m.stack = make([]frame, 0, len(vars)+8)
	m.active.Store(int32(c.DefaultVariation()))
}

func (m *Matcher) sameShape(vars []*variation.Data) bool {
	if len(vars) != len(m.vars) {
		return false
	}
	for i := range vars {
		if vars[i].ID != m.vars[i].ID ||
			vars[i].Flags != m.vars[i].Flags ||
			!vars[i].Sequence.Equal(&m.vars[i].Sequence) {
			return false
		}
	}
	return len(vars) > 0 || m.cursors != nil
}

// Active returns the currently active variation, NoVariation if none.
// Safe from any context.
func (m *Matcher) Active() variation.VariationID {
	return variation.VariationID(m.active.Load())
}

// SetDisabled switches key-switch disable mode. While disabled, sequence
// scanning still consumes events but never yields an activation; explicit
// requests are unaffected.
func (m *Matcher) SetDisabled(disabled bool) {
	m.disabled.Store(disabled)
}

func (m *Matcher) Disabled() bool {
	return m.disabled.Load()
}

// Reset clears cursors and the momentary stack and reverts to no active
// variation. Real-time context.
func (m *Matcher) Reset() {
	for i := range m.cursors {
		m.cursors[i] = 0
	}
	m.stack = m.stack[:0]
	m.active.Store(int32(variation.NoVariation))
}

// ProcessEvent advances every sequence cursor against one performance
// event and commits the resulting activation, if any. Note-off events
// additionally terminate the momentary variation they triggered. Events
// the protocol does not match on (pitch bend and the like) pass through
// untouched.
func (m *Matcher) ProcessEvent(ev midi.Event) {
	switch e := ev.(type) {
	case midi.NoteOnEvent:
		m.step(kindNoteOn, variation.Pitch(e.NoteNumber), 0, 0)
	case midi.NoteOffEvent:
		m.releaseNote(variation.Pitch(e.NoteNumber))
		m.step(kindNoteOff, variation.Pitch(e.NoteNumber), 0, 0)
	case midi.ControlChangeEvent:
		m.step(kindController, 0, variation.CCNumber(e.Controller), variation.CCValue(e.Value))
	case midi.ProgramChangeEvent:
		m.step(kindProgram, 0, 0, variation.CCValue(e.Program))
	}
}

// step runs one scan round. The first sequence (in catalog registration
// order) to reach full length on this event wins; this tie-break is the
// documented policy when several variations share a completing event.
func (m *Matcher) step(kind eventKind, pitch variation.Pitch, number variation.CCNumber, value variation.CCValue) {
	matched := -1
	for i, v := range m.vars {
		seq := &v.Sequence
		n := seq.Len()
		if n == 0 {
			continue
		}

		k := int(m.cursors[i])
		item := seq.At(k)
		switch {
		case compatible(item, kind, pitch, number, value):
			k++
		case k == 0 && !sameFamily(item.Type, kind):
			// The event cannot belong to this sequence at all; leave the
			// cursor untouched.
			continue
		default:
			// Mismatch resets the cursor. The resetting event is re-tested
			// against the first item so an overlapping prefix re-arms.
			k = 0
			if compatible(seq.At(0), kind, pitch, number, value) {
				k = 1
			}
		}

		if k >= n {
			m.cursors[i] = 0
			if matched < 0 {
				matched = i
			}
		} else {
			m.cursors[i] = uint8(k)
		}
	}

	if matched >= 0 && !m.disabled.Load() {
		m.activate(matched)
	}
}

func compatible(item variation.SequenceItem, kind eventKind, pitch variation.Pitch, number variation.CCNumber, value variation.CCValue) bool {
	switch item.Type {
	case variation.ItemNote, variation.ItemNoteOn:
		// Velocity is never matched; the note-off of an ItemNote is
		// handled by the momentary lifecycle, not by the cursor.
		return kind == kindNoteOn && item.Pitch == pitch
	case variation.ItemNoteOff:
		return kind == kindNoteOff && item.Pitch == pitch
	case variation.ItemController:
		return kind == kindController && item.Number == number && item.Value == value
	case variation.ItemProgramChange:
		return kind == kindProgram && item.Value == value
	default:
		return false
	}
}

func sameFamily(t variation.ItemType, kind eventKind) bool {
	switch kind {
	case kindNoteOn, kindNoteOff:
		return t.IsNote()
	case kindController:
		return t == variation.ItemController
	case kindProgram:
		return t == variation.ItemProgramChange
	default:
		return false
	}
}

// activate commits the variation at index i as if its sequence just
// completed. Momentary variations push the predecessor; a non-momentary
// activation becomes the new restore base and clears the stack.
func (m *Matcher) activate(i int) {
	v := m.vars[i]
	prev := m.Active()

	if v.Flags.Has(variation.FlagMomentary) {
		m.stack = append(m.stack, frame{
			restore: prev,
			release: releasePitch(&v.Sequence),
		})
	} else {
		m.stack = m.stack[:0]
	}

	m.resetCursors()
	m.commit(v.ID)
}

// releasePitch finds the note whose off event ends a momentary variation:
// the last with-length note item of its sequence.
func releasePitch(seq *variation.Sequence) variation.Pitch {
	for i := seq.Len() - 1; i >= 0; i-- {
		if item := seq.At(i); item.Type == variation.ItemNote {
			return item.Pitch
		}
	}
	return variation.NoTriggerPitch
}

// releaseNote pops the momentary stack when the triggering note of the
// active momentary variation is released.
func (m *Matcher) releaseNote(pitch variation.Pitch) {
	if len(m.stack) == 0 {
		return
	}
	top := m.stack[len(m.stack)-1]
	if top.release != pitch {
		return
	}
	m.stack = m.stack[:len(m.stack)-1]
	m.commit(top.restore)
}

// Activate handles an explicit activation request, bypassing sequence
// scanning and the disable mode. Reports false for an identifier the
// catalog does not contain.
func (m *Matcher) Activate(id variation.VariationID) bool {
	i := m.indexOf(id)
	if i < 0 {
		return false
	}
	m.activate(i)
	return true
}

// Terminate handles an explicit termination request for a momentary
// variation. Terminating anything other than the currently active
// momentary variation is a no-op.
func (m *Matcher) Terminate(id variation.VariationID) bool {
	if m.Active() != id || len(m.stack) == 0 {
		return false
	}
	top := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	m.commit(top.restore)
	return true
}

func (m *Matcher) indexOf(id variation.VariationID) int {
	for i, v := range m.vars {
		if v.ID == id {
			return i
		}
	}
	return -1
}

func (m *Matcher) resetCursors() {
	for i := range m.cursors {
		m.cursors[i] = 0
	}
}

// commit stores the new active variation and reports the transition once.
// Identical consecutive transitions are reported as-is; deduplication is
// the receiver's concern.
func (m *Matcher) commit(id variation.VariationID) {
	m.active.Store(int32(id))
	if m.onTransition != nil {
		m.onTransition(id)
	}
}
