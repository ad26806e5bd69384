package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/soundvariation/pkg/midi"
	"github.com/justyntemme/soundvariation/pkg/variation"
	"github.com/justyntemme/soundvariation/pkg/variation/match"
)

func testCatalog(t *testing.T) *variation.Catalog {
	t.Helper()

	sustain := variation.NewData(1, "Sustain")
	sustain.Sequence.AddNoteOn(24)
	sustain.Flags = variation.FlagDefault

	marcato := variation.NewData(2, "Marcato")
	marcato.Sequence.AddNote(26, 1)
	marcato.Flags = variation.FlagMomentary

	return variation.NewBuilder().
		AddVariation(sustain).
		AddVariation(marcato).
		MustBuild()
}

func registeredUnit(t *testing.T, r *Router, unit UnitID) *match.Matcher {
	t.Helper()
	m := match.New(nil)
	m.SetCatalog(testCatalog(t))
	r.Register(unit, m)
	return m
}

func TestDispatch(t *testing.T) {
	t.Run("ActivateAndTerminate", func(t *testing.T) {
		r := New()
		unit := UnitID{Bus: 0, Channel: 3}
		m := registeredUnit(t, r, unit)

		require.True(t, r.Dispatch(ActivationRequest{Unit: unit, Variation: 2}))
		assert.Equal(t, variation.VariationID(2), m.Active())

		require.True(t, r.Dispatch(ActivationRequest{Unit: unit, Variation: 2, Terminate: true}))
		assert.Equal(t, variation.VariationID(1), m.Active())
	})

	t.Run("UnknownUnitDroppedSilently", func(t *testing.T) {
		r := New()
		registeredUnit(t, r, UnitID{Bus: 0, Channel: 0})

		assert.False(t, r.Dispatch(ActivationRequest{
			Unit:      UnitID{Bus: 5, Channel: 0},
			Variation: 1,
		}))
	})

	t.Run("UnregisterStopsRouting", func(t *testing.T) {
		r := New()
		unit := UnitID{Bus: 0, Channel: 0}
		registeredUnit(t, r, unit)
		r.Unregister(unit)

		assert.False(t, r.Dispatch(ActivationRequest{Unit: unit, Variation: 1}))
	})
}

// The two transports must be indistinguishable downstream: the same
// request through either leaves the unit in the same state.
func TestTransportEquivalence(t *testing.T) {
	run := func(t *testing.T, send func(r *Router, id variation.VariationID, terminate bool) bool) {
		r := New()
		m := registeredUnit(t, r, UnitID{Bus: 0, Channel: 3})

		require.True(t, send(r, 2, false))
		assert.Equal(t, variation.VariationID(2), m.Active())
		require.True(t, send(r, 2, true))
		assert.Equal(t, variation.VariationID(1), m.Active())
	}

	t.Run("Extended", func(t *testing.T) {
		run(t, func(r *Router, id variation.VariationID, terminate bool) bool {
			return r.RouteExtended(NewExtendedEvent(UnitID{Bus: 0, Channel: 3}, id, terminate))
		})
	})

	t.Run("Vendor", func(t *testing.T) {
		run(t, func(r *Router, id variation.VariationID, terminate bool) bool {
			return r.RouteVendor(NewVendorEvent(3, id, terminate))
		})
	})

	t.Run("UnknownTagsRejected", func(t *testing.T) {
		r := New()
		registeredUnit(t, r, UnitID{Bus: 0, Channel: 3})

		assert.False(t, r.RouteExtended(ExtendedEvent{Type: 0xBEEF, Channel: 3, VariationID: 1}))
		assert.False(t, r.RouteVendor(VendorEvent{Type: 42, Channel: 3, VariationID: 1}))
	})
}

func TestRouteEvent(t *testing.T) {
	r := New()
	unit := UnitID{Bus: 0, Channel: 3}
	m := registeredUnit(t, r, unit)

	require.True(t, r.RouteEvent(unit, midi.NoteOnEvent{NoteNumber: 24, Velocity: 100}))
	assert.Equal(t, variation.VariationID(1), m.Active())

	assert.False(t, r.RouteEvent(UnitID{Bus: 9}, midi.NoteOnEvent{NoteNumber: 24}))
}

func TestFlush(t *testing.T) {
	r := New()
	unit := UnitID{Bus: 0, Channel: 0}
	m := registeredUnit(t, r, unit)

	// Queue insertion order is scrambled; the flush must still deliver in
	// ascending sample order, so the momentary release lands last.
	q := midi.NewEventQueue()
	q.Add(midi.NoteOffEvent{BaseEvent: midi.BaseEvent{Offset: 300}, NoteNumber: 26})
	q.Add(midi.NoteOnEvent{BaseEvent: midi.BaseEvent{Offset: 100}, NoteNumber: 26, Velocity: 96})
	q.Add(midi.NoteOnEvent{BaseEvent: midi.BaseEvent{Offset: 200}, NoteNumber: 60, Velocity: 96})

	require.True(t, r.Flush(unit, q, 0, 512))
	assert.Equal(t, variation.VariationID(1), m.Active(),
		"marcato must have been entered and left within the block")

	assert.False(t, r.Flush(UnitID{Bus: 9}, q, 0, 512))
}
