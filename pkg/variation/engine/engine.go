// Package engine assembles the sound-variation subsystem of an
// instrument: a catalog store and matcher per synth unit, the event
// router in front of them and the observer hub behind them. It is the
// surface a plug-in wrapper exposes to the host.
package engine

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/justyntemme/soundvariation/pkg/midi"
	"github.com/justyntemme/soundvariation/pkg/variation"
	"github.com/justyntemme/soundvariation/pkg/variation/match"
	"github.com/justyntemme/soundvariation/pkg/variation/observer"
	"github.com/justyntemme/soundvariation/pkg/variation/router"
)

// Unit bundles the per-unit state: the published catalog snapshot and the
// live activation matcher.
type Unit struct {
	ID      router.UnitID
	Store   *variation.Store
	Matcher *match.Matcher
}

// Engine owns the units of one plug-in instance.
type Engine struct {
	mu     sync.RWMutex
	units  map[router.UnitID]*Unit
	router *router.Router
	hub    *observer.Hub

	disabled atomic.Bool
	preset   atomic.Pointer[variation.PresetInfo]

	logger *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the control-context logger. The default is a no-op
// logger; nothing ever logs on the real-time path.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithNotificationBuffer sizes the observer hub's queue.
func WithNotificationBuffer(n int) Option {
	return func(e *Engine) {
		e.hub = observer.NewHub(n)
	}
}

// New creates an engine and starts its notification delivery goroutine.
func New(opts ...Option) *Engine {
	e := &Engine{
		units:  make(map[router.UnitID]*Unit),
		router: router.New(),
		hub:    observer.NewHub(0),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.hub.Start()
	return e
}

// Close stops notification delivery. The owner must have cleared the
// observer if the receiver is going away.
func (e *Engine) Close() {
	e.hub.Close()
}

// RegisterUnit creates (or returns) the unit addressed by bus and
// channel. New units inherit the current key-switch disable mode.
func (e *Engine) RegisterUnit(bus int32, channel int16) *Unit {
	id := router.UnitID{Bus: bus, Channel: channel}

	e.mu.Lock()
	defer e.mu.Unlock()

	if u, ok := e.units[id]; ok {
		return u
	}

	m := match.New(func(variation.VariationID) {
		e.hub.Notify(observer.ActiveVariationChanged)
	})
	m.SetDisabled(e.disabled.Load())

	u := &Unit{
		ID:      id,
		Store:   variation.NewStore(),
		Matcher: m,
	}
	e.units[id] = u
	e.router.Register(id, m)
	e.logger.Info("unit registered", zap.Int32("bus", bus), zap.Int16("channel", channel))
	return u
}

// UnregisterUnit tears a unit down; its traffic is dropped afterwards.
func (e *Engine) UnregisterUnit(bus int32, channel int16) {
	id := router.UnitID{Bus: bus, Channel: channel}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.units[id]; !ok {
		return
	}
	delete(e.units, id)
	e.router.Unregister(id)
	e.logger.Info("unit unregistered", zap.Int32("bus", bus), zap.Int16("channel", channel))
}

// Unit looks up a registered unit.
func (e *Engine) Unit(bus int32, channel int16) (*Unit, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	u, ok := e.units[router.UnitID{Bus: bus, Channel: channel}]
	return u, ok
}

// Publish installs a freshly built catalog on a unit and notifies the
// observer. reason is PresetChanged for a newly loaded preset or
// VariationListModified for an edit of the loaded one. Publishing to an
// unknown unit returns ResultFalse.
func (e *Engine) Publish(bus int32, channel int16, c *variation.Catalog, reason observer.ChangeMessage) variation.Result {
	u, ok := e.Unit(bus, channel)
	if !ok {
		return variation.ResultFalse
	}

	u.Store.Publish(c)
	u.Matcher.SetCatalog(c)

	info := c.PresetInfo()
	e.preset.Store(&info)

	e.hub.Notify(reason)
	e.logger.Info("catalog published",
		zap.Int32("bus", bus),
		zap.Int16("channel", channel),
		zap.String("preset", info.Name),
		zap.Int("variations", c.Len()),
		zap.Stringer("reason", reason))
	return variation.ResultOK
}

// Catalog returns the current snapshot of a unit.
func (e *Engine) Catalog(bus int32, channel int16) (*variation.Catalog, variation.Result) {
	u, ok := e.Unit(bus, channel)
	if !ok {
		return nil, variation.ResultFalse
	}
	c := u.Store.Current()
	if c == nil {
		return nil, variation.ResultFalse
	}
	return c, variation.ResultOK
}

// ActiveVariation returns the active identifier of a unit, NoVariation if
// nothing is active.
func (e *Engine) ActiveVariation(bus int32, channel int16) (variation.VariationID, variation.Result) {
	u, ok := e.Unit(bus, channel)
	if !ok {
		return variation.NoVariation, variation.ResultFalse
	}
	return u.Matcher.Active(), variation.ResultOK
}

// PresetInfo returns the preset info of the most recently published
// catalog, the zero value before the first publication.
func (e *Engine) PresetInfo() variation.PresetInfo {
	if info := e.preset.Load(); info != nil {
		return *info
	}
	return variation.PresetInfo{}
}

// SetObserver registers the host observer; the last call wins and nil
// clears it. The reference is weak: clear it before destroying the
// receiver.
func (e *Engine) SetObserver(o observer.Observer) {
	e.hub.SetObserver(o)
}

// IsActivationEventSupported reports that the engine handles explicit
// activation events on both transports.
func (e *Engine) IsActivationEventSupported() bool {
	return true
}

// IsDisableKeySwitchesSupported reports that the engine supports the
// key-switch disable mode.
func (e *Engine) IsDisableKeySwitchesSupported() bool {
	return true
}

// DisableKeySwitches switches the mode that ignores activation-sequence
// matches and honors only explicit activation events. Applies to every
// registered unit and to units registered later.
func (e *Engine) DisableKeySwitches(state bool) variation.Result {
	e.disabled.Store(state)

	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, u := range e.units {
		u.Matcher.SetDisabled(state)
	}
	e.logger.Info("key switches disabled mode", zap.Bool("state", state))
	return variation.ResultOK
}

// AreKeySwitchesDisabled reports whether the disable mode is active.
func (e *Engine) AreKeySwitchesDisabled() bool {
	return e.disabled.Load()
}

// Router exposes the event ingress for plug-in wrappers that feed wire
// records directly.
func (e *Engine) Router() *router.Router {
	return e.router
}

// RouteEvent feeds a performance event to the addressed unit.
func (e *Engine) RouteEvent(bus int32, channel int16, ev midi.Event) bool {
	return e.router.RouteEvent(router.UnitID{Bus: bus, Channel: channel}, ev)
}

// RouteExtended dispatches a transport A activation record.
func (e *Engine) RouteExtended(ev router.ExtendedEvent) bool {
	return e.router.RouteExtended(ev)
}

// RouteVendor dispatches a transport B activation record.
func (e *Engine) RouteVendor(ev router.VendorEvent) bool {
	return e.router.RouteVendor(ev)
}
