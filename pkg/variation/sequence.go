package variation

import (
	"fmt"
)

// ItemType discriminates the kinds of activation sequence items. Values
// match the wire protocol.
type ItemType int32

const (
	// ItemNote is a note with length: the host sends note-on followed by
	// note-off. The note-off either is ignored by the instrument or
	// terminates a momentary variation.
	ItemNote ItemType = 0

	// ItemNoteOn is a single note-on.
	ItemNoteOn ItemType = 1

	// ItemNoteOff is a single note-off.
	ItemNoteOff ItemType = 2

	// ItemController is a control change with a specific value.
	ItemController ItemType = 3

	// ItemProgramChange is a program change.
	ItemProgramChange ItemType = 4
)

func (t ItemType) String() string {
	switch t {
	case ItemNote:
		return "Note"
	case ItemNoteOn:
		return "NoteOn"
	case ItemNoteOff:
		return "NoteOff"
	case ItemController:
		return "Controller"
	case ItemProgramChange:
		return "ProgramChange"
	default:
		return fmt.Sprintf("ItemType(%d)", int32(t))
	}
}

// IsNote reports whether the item kind carries a pitch.
func (t ItemType) IsNote() bool {
	return t == ItemNote || t == ItemNoteOn || t == ItemNoteOff
}

// SequenceItem is one step of an activation sequence. The populated fields
// depend on Type: note kinds use Pitch and Velocity, ItemController uses
// Number and Value, ItemProgramChange uses Value.
type SequenceItem struct {
	Type     ItemType
	Pitch    Pitch
	Velocity float32 // informational, never matched
	Number   CCNumber
	Value    CCValue
}

func (i SequenceItem) String() string {
	switch i.Type {
	case ItemController:
		return fmt.Sprintf("%s{cc:%d, val:%d}", i.Type, i.Number, i.Value)
	case ItemProgramChange:
		return fmt.Sprintf("%s{prog:%d}", i.Type, i.Value)
	default:
		return fmt.Sprintf("%s{pitch:%d}", i.Type, i.Pitch)
	}
}

// MaxSequenceItems bounds the length of an activation sequence.
const MaxSequenceItems = 8

// Sequence is the ordered list of events that activates a variation, in
// the order the events must arrive. Most sequences hold a single item, a
// plain key switch. Appends past MaxSequenceItems are silently dropped.
type Sequence struct {
	items [MaxSequenceItems]SequenceItem
	count int
}

func (s *Sequence) Len() int {
	return s.count
}

func (s *Sequence) At(i int) SequenceItem {
	return s.items[i]
}

func (s *Sequence) Clear() {
	s.count = 0
}

// Items returns a copy of the populated items.
func (s *Sequence) Items() []SequenceItem {
	out := make([]SequenceItem, s.count)
	copy(out, s.items[:s.count])
	return out
}

func (s *Sequence) add(item SequenceItem) *Sequence {
	if s.count < MaxSequenceItems {
		s.items[s.count] = item
		s.count++
	}
	return s
}

// AddNote appends a note-with-length item.
func (s *Sequence) AddNote(pitch Pitch, velocity float32) *Sequence {
	return s.add(SequenceItem{Type: ItemNote, Pitch: pitch, Velocity: velocity})
}

// AddNoteOn appends a single note-on item.
func (s *Sequence) AddNoteOn(pitch Pitch) *Sequence {
	return s.add(SequenceItem{Type: ItemNoteOn, Pitch: pitch, Velocity: 1})
}

// AddNoteOff appends a single note-off item.
func (s *Sequence) AddNoteOff(pitch Pitch) *Sequence {
	return s.add(SequenceItem{Type: ItemNoteOff, Pitch: pitch})
}

// AddController appends a control-change item.
func (s *Sequence) AddController(number CCNumber, value CCValue) *Sequence {
	return s.add(SequenceItem{Type: ItemController, Number: number, Value: value})
}

// AddProgramChange appends a program-change item.
func (s *Sequence) AddProgramChange(value CCValue) *Sequence {
	return s.add(SequenceItem{Type: ItemProgramChange, Value: value})
}

// Equal reports whether both sequences hold the same items in the same
// order. Velocity participates: it is part of what the host replays.
func (s *Sequence) Equal(other *Sequence) bool {
	if s.count != other.count {
		return false
	}
	for i := 0; i < s.count; i++ {
		if s.items[i] != other.items[i] {
			return false
		}
	}
	return true
}
