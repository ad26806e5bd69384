// Package router demultiplexes inbound host traffic, wire activation
// events on either transport as well as plain performance events, into
// the per-unit matchers. Both transports decode at this boundary into one
// canonical ActivationRequest; the matcher never sees a wire format.
package router

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/justyntemme/soundvariation/pkg/variation"
)

// Transport A type tags ('VE' / 'VT').
const (
	ExtendedActivate  uint16 = 0x5645
	ExtendedTerminate uint16 = 0x5654
)

// Transport B type tags ('PSVE' / 'PSVT').
const (
	VendorActivate  int32 = 0x50535645
	VendorTerminate int32 = 0x50535654
)

// Encoded sizes of the two wire records.
const (
	ExtendedEventSize = 28
	VendorEventSize   = 24
)

// UnitID addresses one synth unit: the event bus plus the channel inside
// that bus.
type UnitID struct {
	Bus     int32
	Channel int16
}

func (u UnitID) String() string {
	return fmt.Sprintf("unit{bus:%d, ch:%d}", u.Bus, u.Channel)
}

// ActivationRequest is the canonical form every explicit activation or
// termination decodes to, regardless of transport.
type ActivationRequest struct {
	Unit      UnitID
	Variation variation.VariationID
	Terminate bool
}

// ExtendedEvent is the extended event record (transport A). The field
// order and little-endian layout are fixed by the wire protocol.
type ExtendedEvent struct {
	BusIndex     int32
	SampleOffset int32
	PPQPosition  float64
	Flags        uint16
	Type         uint16
	Channel      int32
	VariationID  int32
}

// NewExtendedEvent builds an activation or termination event for a unit.
func NewExtendedEvent(unit UnitID, id variation.VariationID, terminate bool) ExtendedEvent {
	typeTag := ExtendedActivate
	if terminate {
		typeTag = ExtendedTerminate
	}
	return ExtendedEvent{
		BusIndex:    unit.Bus,
		Type:        typeTag,
		Channel:     int32(unit.Channel),
		VariationID: int32(id),
	}
}

// Request converts the record to its canonical form. ok is false for an
// unknown type tag; such records are dropped, never fatal.
func (e *ExtendedEvent) Request() (ActivationRequest, bool) {
	if e.Type != ExtendedActivate && e.Type != ExtendedTerminate {
		return ActivationRequest{}, false
	}
	return ActivationRequest{
		Unit:      UnitID{Bus: e.BusIndex, Channel: int16(e.Channel)},
		Variation: variation.VariationID(e.VariationID),
		Terminate: e.Type == ExtendedTerminate,
	}, true
}

// Encode writes the 28-byte wire form.
func (e *ExtendedEvent) Encode(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, e)
}

// DecodeExtended reads the 28-byte wire form.
func DecodeExtended(r io.Reader) (ExtendedEvent, error) {
	var e ExtendedEvent
	if err := binary.Read(r, binary.LittleEndian, &e); err != nil {
		return ExtendedEvent{}, err
	}
	return e, nil
}

// VendorEvent is the legacy vendor dispatch record (transport B). It
// carries no bus index; the legacy transport always addresses bus 0.
type VendorEvent struct {
	Type        int32
	ByteSize    int32
	FrameOffset int32
	Flags       int32
	Channel     int32
	VariationID int32
}

// vendorByteSize is the record size minus the leading type and byteSize
// fields, as the legacy protocol counts it.
const vendorByteSize = VendorEventSize - 8

// NewVendorEvent builds an activation or termination event for a channel
// on bus 0.
func NewVendorEvent(channel int16, id variation.VariationID, terminate bool) VendorEvent {
	typeTag := VendorActivate
	if terminate {
		typeTag = VendorTerminate
	}
	return VendorEvent{
		Type:        typeTag,
		ByteSize:    vendorByteSize,
		Channel:     int32(channel),
		VariationID: int32(id),
	}
}

// Request converts the record to its canonical form. ok is false for an
// unknown type tag.
func (e *VendorEvent) Request() (ActivationRequest, bool) {
	if e.Type != VendorActivate && e.Type != VendorTerminate {
		return ActivationRequest{}, false
	}
	return ActivationRequest{
		Unit:      UnitID{Bus: 0, Channel: int16(e.Channel)},
		Variation: variation.VariationID(e.VariationID),
		Terminate: e.Type == VendorTerminate,
	}, true
}

// Encode writes the 24-byte wire form.
func (e *VendorEvent) Encode(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, e)
}

// DecodeVendor reads the 24-byte wire form.
func DecodeVendor(r io.Reader) (VendorEvent, error) {
	var e VendorEvent
	if err := binary.Read(r, binary.LittleEndian, &e); err != nil {
		return VendorEvent{}, err
	}
	return e, nil
}
