package router

import (
	"sync"

	"github.com/justyntemme/soundvariation/pkg/midi"
	"github.com/justyntemme/soundvariation/pkg/variation/match"
)

// Router maps synth units to their matchers and routes decoded traffic.
// Registration happens on the control context; routing runs on the
// real-time path and takes only the registry read lock for the lookup.
//
// Traffic addressed to an unregistered unit is dropped silently: the
// routing methods report false and nothing else happens.
type Router struct {
	mu    sync.RWMutex
	units map[UnitID]*match.Matcher
}

func New() *Router {
	return &Router{
		units: make(map[UnitID]*match.Matcher),
	}
}

// Register binds a matcher to a unit, replacing any previous binding.
func (r *Router) Register(unit UnitID, m *match.Matcher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.units[unit] = m
}

// Unregister removes a unit binding.
func (r *Router) Unregister(unit UnitID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.units, unit)
}

// Matcher looks up the matcher bound to a unit.
func (r *Router) Matcher(unit UnitID) (*match.Matcher, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.units[unit]
	return m, ok
}

// Dispatch applies a canonical activation request to the addressed unit.
// This is the single path both transports funnel into, which is what
// keeps their outcomes identical.
func (r *Router) Dispatch(req ActivationRequest) bool {
	m, ok := r.Matcher(req.Unit)
	if !ok {
		return false
	}
	if req.Terminate {
		m.Terminate(req.Variation)
	} else {
		m.Activate(req.Variation)
	}
	return true
}

// RouteExtended decodes and dispatches a transport A record.
func (r *Router) RouteExtended(e ExtendedEvent) bool {
	req, ok := e.Request()
	if !ok {
		return false
	}
	return r.Dispatch(req)
}

// RouteVendor decodes and dispatches a transport B record.
func (r *Router) RouteVendor(e VendorEvent) bool {
	req, ok := e.Request()
	if !ok {
		return false
	}
	return r.Dispatch(req)
}

// RouteEvent feeds one performance event to the addressed unit's matcher.
func (r *Router) RouteEvent(unit UnitID, ev midi.Event) bool {
	m, ok := r.Matcher(unit)
	if !ok {
		return false
	}
	m.ProcessEvent(ev)
	return true
}

// Flush drains the queued events of one block range into the unit's
// matcher in ascending sample order.
func (r *Router) Flush(unit UnitID, q *midi.EventQueue, startSample, endSample int32) bool {
	m, ok := r.Matcher(unit)
	if !ok {
		return false
	}
	for _, ev := range q.GetEventsInRange(startSample, endSample) {
		m.ProcessEvent(ev)
	}
	return true
}
