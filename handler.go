package udsscan

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
)

// handler routes frames read from the adapter to the subscribers waiting for
// their identifier. A probe holds at most one subscriber at a time, so a flat
// set is scanned per frame.
type handler struct {
	adapter Adapter
	debug   atomic.Bool

	mu   sync.RWMutex
	subs map[*Subscriber]struct{}

	stop     chan struct{}
	stopOnce sync.Once
}

func newHandler(adapter Adapter) *handler {
	return &handler{
		adapter: adapter,
		subs:    make(map[*Subscriber]struct{}),
		stop:    make(chan struct{}),
	}
}

func (h *handler) add(sub *Subscriber) {
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
}

// remove closes the subscriber channel under the write lock, dispatch cannot
// be sending on it at that point
func (h *handler) remove(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub]; !ok {
		return
	}
	delete(h.subs, sub)
	close(sub.responseChan)
}

func (h *handler) run(ctx context.Context) {
	frames := h.adapter.Recv()
	events := h.adapter.Event()
	for {
		select {
		case <-h.stop:
			return
		case <-ctx.Done():
			return
		case evt := <-events:
			log.Println(evt.String())
		case frame, ok := <-frames:
			if !ok {
				log.Println("adapter stopped delivering frames")
				return
			}
			if h.debug.Load() {
				log.Println(frame.ColorString())
			}
			h.dispatch(frame)
		}
	}
}

func (h *handler) dispatch(frame *CANFrame) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs {
		if !sub.matches(frame.Identifier) {
			continue
		}
		select {
		case sub.responseChan <- frame:
		default:
			log.Printf("subscriber full, dropped 0x%03X", frame.Identifier)
		}
	}
}

func (h *handler) Close() {
	h.stopOnce.Do(func() {
		close(h.stop)
	})
}
