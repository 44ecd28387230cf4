package udsscan

import (
	"context"
	"sync"
)

func init() {
	if err := RegisterAdapter(&AdapterInfo{
		Name:               "Virtual",
		Description:        "In-process simulated ECU at 0x7E0/0x7E8",
		RequiresSerialPort: false,
		New: func(cfg *AdapterConfig) (Adapter, error) {
			return NewVirtual(cfg, SimulatedECU(0x7E0, 0x7E8)), nil
		},
	}); err != nil {
		panic(err)
	}
}

// Responder answers a transmitted frame. A nil return means nobody answered.
type Responder func(*CANFrame) *CANFrame

// Virtual loops transmitted frames through a Responder instead of a bus
type Virtual struct {
	*BaseAdapter
	responder Responder

	mu      sync.Mutex
	sendErr error
	sent    []*CANFrame
}

func NewVirtual(cfg *AdapterConfig, responder Responder) *Virtual {
	if cfg == nil {
		cfg = &AdapterConfig{}
	}
	return &Virtual{
		BaseAdapter: NewBaseAdapter("Virtual", cfg),
		responder:   responder,
	}
}

func (v *Virtual) Open(ctx context.Context) error {
	if v.Closed() {
		return ErrAdapterClosed
	}
	return nil
}

func (v *Virtual) Close() error {
	v.BaseAdapter.Close()
	return nil
}

// SetSendError makes every following Send fail with err, nil restores normal operation
func (v *Virtual) SetSendError(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sendErr = err
}

// Sent returns every frame accepted by Send
func (v *Virtual) Sent() []*CANFrame {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]*CANFrame, len(v.sent))
	copy(out, v.sent)
	return out
}

func (v *Virtual) Send(ctx context.Context, frame *CANFrame) error {
	if v.Closed() {
		return ErrAdapterClosed
	}
	v.mu.Lock()
	if v.sendErr != nil {
		err := v.sendErr
		v.mu.Unlock()
		return err
	}
	v.sent = append(v.sent, frame)
	v.mu.Unlock()

	if v.responder == nil {
		return nil
	}
	if resp := v.responder(frame); resp != nil {
		resp.FrameType = Incoming
		v.deliver(resp)
	}
	return nil
}

// SimulatedECU answers single frame UDS requests sent to txID on rxID. It
// supports a handful of services and rejects the rest with NRC 0x11.
func SimulatedECU(txID, rxID uint32) Responder {
	reply := func(data ...byte) *CANFrame {
		payload := make([]byte, 8)
		for i := range payload {
			payload[i] = 0xAA
		}
		payload[0] = byte(len(data))
		copy(payload[1:], data)
		return NewFrame(rxID, payload, Incoming)
	}
	return func(f *CANFrame) *CANFrame {
		if f.Identifier != txID || len(f.Data) < 2 {
			return nil
		}
		pci := int(f.Data[0])
		if pci < 1 || pci > 7 || pci >= len(f.Data) {
			return nil
		}
		req := f.Data[1 : 1+pci]
		sid := req[0]
		var sub byte
		if len(req) > 1 {
			sub = req[1]
		}
		switch sid {
		case 0x10:
			switch sub {
			case 0x01, 0x02, 0x03:
				return reply(0x50, sub, 0x00, 0x32, 0x01, 0xF4)
			}
			return reply(0x7F, sid, 0x12)
		case 0x11:
			return reply(0x51, sub)
		case 0x19:
			return reply(0x59, sub, 0xFF)
		case 0x22:
			if len(req) < 3 {
				return reply(0x7F, sid, 0x13)
			}
			if req[1] == 0xF1 && req[2] == 0x90 {
				return reply(0x62, 0xF1, 0x90, 'U', 'D', 'S')
			}
			return reply(0x7F, sid, 0x31)
		case 0x27:
			if sub%2 == 1 {
				return reply(0x67, sub, 0x12, 0x34)
			}
			return reply(0x7F, sid, 0x33)
		case 0x3E:
			return reply(0x7E, sub)
		case 0x31:
			return reply(0x7F, sid, 0x22)
		}
		return reply(0x7F, sid, 0x11)
	}
}
