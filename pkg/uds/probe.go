package uds

import (
	"context"
	"errors"
	"time"

	"github.com/udsscan/udsscan"
)

// Bus is what a probe needs from the CAN client
type Bus interface {
	Transmit(ctx context.Context, identifier uint32, data []byte) error
	Subscribe(identifiers ...uint32) *udsscan.Subscriber
}

type ProbeConfig struct {
	TxID    uint32
	RxID    uint32
	Padding byte
	Timeout time.Duration
}

// DefaultProbeConfig is the physical tester/ECU pair with a 2 second response window
func DefaultProbeConfig() ProbeConfig {
	return ProbeConfig{
		TxID:    TesterID,
		RxID:    ECUID,
		Padding: DefaultPadding,
		Timeout: 2 * time.Second,
	}
}

// Prober runs one request/response cycle at a time. It keeps no state between probes.
type Prober struct {
	bus Bus
	cfg ProbeConfig
}

func NewProber(bus Bus, cfg ProbeConfig) *Prober {
	return &Prober{
		bus: bus,
		cfg: cfg,
	}
}

func (p *Prober) Config() ProbeConfig {
	return p.cfg
}

// WithIdentifiers returns a prober for another request/response identifier pair
func (p *Prober) WithIdentifiers(txID, rxID uint32) *Prober {
	cfg := p.cfg
	cfg.TxID = txID
	cfg.RxID = rxID
	return &Prober{bus: p.bus, cfg: cfg}
}

// Probe encodes req, sends it and classifies the first frame from RxID.
//
// A request that does not fit a frame returns its *EncodingError before any
// bus I/O. A refused transmit returns a *TransmitError. Silence until the
// timeout is a NoResponse outcome, not an error. Only a cancelled ctx
// interrupts the wait.
func (p *Prober) Probe(ctx context.Context, req Request) (Outcome, error) {
	frame, err := Encode(req, p.cfg.Padding)
	if err != nil {
		return Outcome{Kind: NoResponse}, err
	}

	// subscribe before sending so a fast ECU cannot answer into the void
	sub := p.bus.Subscribe(p.cfg.RxID)
	defer sub.Close()

	if err := p.bus.Transmit(ctx, p.cfg.TxID, frame[:]); err != nil {
		return Outcome{Kind: NoResponse}, &TransmitError{Identifier: p.cfg.TxID, Err: err}
	}

	resp, err := sub.Wait(ctx, p.cfg.Timeout)
	if err != nil {
		var timeout *udsscan.TimeoutError
		if errors.As(err, &timeout) {
			return Classify(req, nil, true), nil
		}
		return Outcome{Kind: NoResponse}, err
	}
	return Classify(req, resp, false), nil
}
