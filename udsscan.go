package udsscan

import (
	"context"
	"fmt"
	"log"
)

// Client is the bus handle handed to probes. It owns an opened adapter and
// fans incoming frames out to subscribers.
type Client struct {
	adapter Adapter
	h       *handler
}

// New opens the adapter and starts dispatching its frames. A failure here means
// the interface is unusable and nothing should be probed.
func New(ctx context.Context, adapter Adapter) (*Client, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}
	if err := adapter.Open(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", adapter.Name(), err)
	}
	c := &Client{
		adapter: adapter,
		h:       newHandler(adapter),
	}
	go c.h.run(ctx)
	return c, nil
}

// SetDebug enables logging of every transmitted and received frame
func (c *Client) SetDebug(debug bool) {
	c.h.debug.Store(debug)
}

// Err returns fatal adapter errors
func (c *Client) Err() <-chan error {
	return c.adapter.Err()
}

func (c *Client) Close() error {
	c.h.Close()
	return c.adapter.Close()
}

// Transmit sends a standard 11bit frame
func (c *Client) Transmit(ctx context.Context, identifier uint32, data []byte) error {
	frame := NewFrame(identifier, data, Outgoing)
	if c.h.debug.Load() {
		log.Println(frame.ColorString())
	}
	return c.adapter.Send(ctx, frame)
}

// Subscribe registers interest in the given identifiers, or in all frames when none are given.
// The caller must Close the subscriber.
func (c *Client) Subscribe(identifiers ...uint32) *Subscriber {
	sub := &Subscriber{
		h:            c.h,
		identifiers:  make(map[uint32]struct{}, len(identifiers)),
		responseChan: make(chan *CANFrame, 10),
	}
	for _, id := range identifiers {
		sub.identifiers[id] = struct{}{}
	}
	c.h.add(sub)
	return sub
}
