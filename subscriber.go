package udsscan

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Subscriber receives incoming frames matching its identifiers, or every frame
// when created without identifiers.
type Subscriber struct {
	h            *handler
	identifiers  map[uint32]struct{}
	responseChan chan *CANFrame
	closeOnce    sync.Once
}

func (s *Subscriber) Close() {
	s.closeOnce.Do(func() {
		s.h.remove(s)
	})
}

// matches reports whether a frame with identifier id is wanted
func (s *Subscriber) matches(id uint32) bool {
	if len(s.identifiers) == 0 {
		return true
	}
	_, ok := s.identifiers[id]
	return ok
}

// Wait returns the first matching frame. It gives up with a *TimeoutError once
// timeout has passed, or with the context error if ctx ends first.
func (s *Subscriber) Wait(ctx context.Context, timeout time.Duration) (*CANFrame, error) {
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("wait aborted: %w", ctx.Err())
	case <-t.C:
		return nil, &TimeoutError{Timeout: timeout, Frames: s.ids()}
	case frame, ok := <-s.responseChan:
		if !ok {
			return nil, ErrResponseChannelClosed
		}
		return frame, nil
	}
}

func (s *Subscriber) ids() []uint32 {
	out := make([]uint32, 0, len(s.identifiers))
	for id := range s.identifiers {
		out = append(out, id)
	}
	return out
}
