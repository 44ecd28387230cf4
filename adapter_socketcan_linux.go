package udsscan

import (
	"context"
	"errors"
	"fmt"
	"net"
	"runtime"

	"go.einride.tech/can"
	"go.einride.tech/can/pkg/candevice"
	"go.einride.tech/can/pkg/socketcan"
)

func init() {
	if err := RegisterAdapter(&AdapterInfo{
		Name:               "SocketCAN",
		Description:        "Linux kernel CAN interface (can0, vcan0, ...)",
		RequiresSerialPort: false,
		New:                NewSocketCAN,
	}); err != nil {
		panic(err)
	}
}

type SocketCAN struct {
	*BaseAdapter
	d    *candevice.Device
	conn net.Conn
	tx   *socketcan.Transmitter
	rx   *socketcan.Receiver
}

func NewSocketCAN(cfg *AdapterConfig) (Adapter, error) {
	return &SocketCAN{
		BaseAdapter: NewBaseAdapter("SocketCAN", cfg),
	}, nil
}

// Open checks that the interface exists and is up before dialing it. When a
// CAN rate is configured the link is (re)configured and brought up first.
func (a *SocketCAN) Open(ctx context.Context) error {
	if a.cfg.Port == "" {
		return fmt.Errorf("%w: no interface name given", ErrInterfaceNotFound)
	}
	if _, err := net.InterfaceByName(a.cfg.Port); err != nil {
		return fmt.Errorf("%w: %s", ErrInterfaceNotFound, a.cfg.Port)
	}

	d, err := candevice.New(a.cfg.Port)
	if err != nil {
		return fmt.Errorf("failed to open device %s: %w", a.cfg.Port, err)
	}
	a.d = d

	if a.cfg.CANRate > 0 {
		if err := a.bringUp(); err != nil {
			return err
		}
	}

	up, err := d.IsUp()
	if err != nil {
		return fmt.Errorf("failed to read link state of %s: %w", a.cfg.Port, err)
	}
	if !up {
		return fmt.Errorf("%w: %s", ErrInterfaceDown, a.cfg.Port)
	}

	conn, err := socketcan.DialContext(ctx, "can", a.cfg.Port)
	if err != nil {
		return fmt.Errorf("failed to dial %s: %w", a.cfg.Port, err)
	}
	a.conn = conn
	a.tx = socketcan.NewTransmitter(conn)
	a.rx = socketcan.NewReceiver(conn)

	go a.recvManager()
	return nil
}

func (a *SocketCAN) bringUp() error {
	up, err := a.d.IsUp()
	if err != nil {
		return err
	}
	if up {
		if err := a.d.SetDown(); err != nil {
			return fmt.Errorf("failed to set %s down: %w", a.cfg.Port, err)
		}
	}
	if err := a.d.SetBitrate(uint32(a.cfg.CANRate * 1000)); err != nil {
		return fmt.Errorf("failed to set bitrate on %s: %w", a.cfg.Port, err)
	}
	if err := a.d.SetUp(); err != nil {
		return fmt.Errorf("failed to set %s up: %w", a.cfg.Port, err)
	}
	a.message(fmt.Sprintf("%s up at %.0f kbit/s", a.cfg.Port, a.cfg.CANRate))
	return nil
}

func (a *SocketCAN) Close() error {
	a.BaseAdapter.Close()
	if a.conn != nil {
		return a.conn.Close()
	}
	return nil
}

func (a *SocketCAN) Send(ctx context.Context, f *CANFrame) error {
	if a.Closed() {
		return ErrAdapterClosed
	}
	if f.DLC() > 8 {
		return fmt.Errorf("frame 0x%03X too long: %d bytes", f.Identifier, f.DLC())
	}
	frame := can.Frame{
		ID:         f.Identifier,
		Length:     uint8(f.DLC()),
		IsExtended: f.Extended,
	}
	copy(frame.Data[:], f.Data)
	if err := a.tx.TransmitFrame(ctx, frame); err != nil {
		return fmt.Errorf("send error: %w", err)
	}
	return nil
}

func (a *SocketCAN) recvManager() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	for a.rx.Receive() {
		if a.rx.HasErrorFrame() {
			a.Warn(fmt.Sprintf("error frame: %v", a.rx.ErrorFrame()))
			continue
		}
		f := a.rx.Frame()
		frame := NewFrame(f.ID, f.Data[:f.Length], Incoming)
		frame.Extended = f.IsExtended
		a.deliver(frame)
	}
	if err := a.rx.Err(); err != nil && !a.Closed() && !errors.Is(err, net.ErrClosed) {
		a.Fatal(fmt.Errorf("receive error: %w", err))
	}
}
