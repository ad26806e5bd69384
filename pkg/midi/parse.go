package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"
)

// Parse decodes a raw wire MIDI message into a performance event. A note-on
// with velocity zero is folded into a note-off, so both encodings of a
// release take the same path through the activation engine. Messages the
// engine has no use for (aftertouch, sysex, realtime) return ok=false.
func Parse(raw []byte, sampleOffset int32) (Event, bool) {
	msg := gomidi.Message(raw)

	var (
		channel, key, velocity uint8
		controller, value      uint8
		program                uint8
		rel                    int16
		abs                    uint16
	)

	switch {
	case msg.GetNoteStart(&channel, &key, &velocity):
		return NoteOnEvent{
			BaseEvent:  BaseEvent{EventChannel: channel, Offset: sampleOffset},
			NoteNumber: key,
			Velocity:   velocity,
		}, true

	case msg.GetNoteEnd(&channel, &key):
		return NoteOffEvent{
			BaseEvent:  BaseEvent{EventChannel: channel, Offset: sampleOffset},
			NoteNumber: key,
		}, true

	case msg.GetControlChange(&channel, &controller, &value):
		return ControlChangeEvent{
			BaseEvent:  BaseEvent{EventChannel: channel, Offset: sampleOffset},
			Controller: controller,
			Value:      value,
		}, true

	case msg.GetProgramChange(&channel, &program):
		return ProgramChangeEvent{
			BaseEvent: BaseEvent{EventChannel: channel, Offset: sampleOffset},
			Program:   program,
		}, true

	case msg.GetPitchBend(&channel, &rel, &abs):
		return PitchBendEvent{
			BaseEvent: BaseEvent{EventChannel: channel, Offset: sampleOffset},
			Value:     rel,
		}, true
	}

	return nil, false
}
