// Package observer fans change notifications out to the host. Delivery
// happens on a dedicated control goroutine, never inside real-time event
// processing, and strictly after the state change being reported has
// been committed.
package observer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// ChangeMessage classifies what changed. Values match the wire protocol.
type ChangeMessage int32

const (
	// PresetChanged: a new sound preset was loaded. The receiver must
	// re-query the full catalog and discard cached variation data.
	PresetChanged ChangeMessage = 0

	// VariationListModified: the loaded preset's variation list was
	// edited. The receiver re-reads the full catalog; no diff is sent.
	VariationListModified ChangeMessage = 1

	// ActiveVariationChanged: the receiver re-reads the active
	// identifier.
	ActiveVariationChanged ChangeMessage = 2
)

func (m ChangeMessage) String() string {
	switch m {
	case PresetChanged:
		return "PresetChanged"
	case VariationListModified:
		return "VariationListModified"
	case ActiveVariationChanged:
		return "ActiveVariationChanged"
	default:
		return fmt.Sprintf("ChangeMessage(%d)", int32(m))
	}
}

// Observer is implemented by the host. The hub holds it weakly: no
// ownership is transferred, and the owner must clear it with
// SetObserver(nil) before destroying the receiver.
type Observer interface {
	OnSoundVariationsChanged(msg ChangeMessage)
}

// Hub delivers notifications to at most one registered observer. Notify
// is safe from the real-time path: it enqueues without blocking and the
// worker goroutine does the observer call.
type Hub struct {
	mu       sync.RWMutex
	observer Observer

	ch      chan ChangeMessage
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
	dropped atomic.Uint64
}

// NewHub creates a hub with a fixed notification buffer.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 32
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		ch:     make(chan ChangeMessage, buffer),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins the delivery goroutine. Safe to call multiple times.
func (h *Hub) Start() {
	if h.started {
		return
	}
	h.started = true
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		for {
			select {
			case <-h.ctx.Done():
				// drain outstanding notifications best-effort
				drainUntil := time.After(10 * time.Millisecond)
				for {
					select {
					case msg := <-h.ch:
						h.deliver(msg)
					case <-drainUntil:
						return
					default:
						return
					}
				}
			case msg := <-h.ch:
				h.deliver(msg)
			}
		}
	}()
}

// Close stops the delivery goroutine and waits for it to finish.
func (h *Hub) Close() {
	if h == nil {
		return
	}
	h.cancel()
	h.wg.Wait()
}

// SetObserver registers the host observer. The last call wins; nil
// clears the registration.
func (h *Hub) SetObserver(o Observer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.observer = o
}

// Notify enqueues a change notification. Never blocks; when the buffer is
// full the notification is counted as dropped. Because every category
// means "re-read the relevant state", a dropped notification is recovered
// by the next one of the same category.
func (h *Hub) Notify(msg ChangeMessage) {
	select {
	case h.ch <- msg:
	default:
		h.dropped.Add(1)
	}
}

// Dropped returns how many notifications were discarded on a full buffer.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

func (h *Hub) deliver(msg ChangeMessage) {
	h.mu.RLock()
	o := h.observer
	h.mu.RUnlock()
	if o != nil {
		o.OnSoundVariationsChanged(msg)
	}
}
