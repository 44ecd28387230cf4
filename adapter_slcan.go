package udsscan

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

func init() {
	if err := RegisterAdapter(&AdapterInfo{
		Name:               "SLCan",
		Description:        "Lawicel/CANable serial line CAN adapter",
		RequiresSerialPort: true,
		New:                NewSLCan,
	}); err != nil {
		panic(err)
	}
}

var slcanRates = map[float64]string{
	10:   "S0",
	20:   "S1",
	50:   "S2",
	100:  "S3",
	125:  "S4",
	250:  "S5",
	500:  "S6",
	800:  "S7",
	1000: "S8",
}

type SLCan struct {
	*BaseAdapter
	port serial.Port
	mu   sync.Mutex
}

func NewSLCan(cfg *AdapterConfig) (Adapter, error) {
	if cfg.PortBaudrate == 0 {
		cfg.PortBaudrate = 115200
	}
	return &SLCan{
		BaseAdapter: NewBaseAdapter("SLCan", cfg),
	}, nil
}

func (sl *SLCan) Open(ctx context.Context) error {
	rate := sl.cfg.CANRate
	if rate == 0 {
		rate = 500
	}
	rateCmd, ok := slcanRates[rate]
	if !ok {
		return fmt.Errorf("unsupported CAN rate: %g kbit/s", rate)
	}

	mode := &serial.Mode{
		BaudRate: sl.cfg.PortBaudrate,
		Parity:   serial.NoParity,
		DataBits: 8,
		StopBits: serial.OneStopBit,
	}
	if err := setLatencyTimer(sl.cfg.Port, 1); err != nil {
		sl.Debug(err.Error())
	}
	p, err := serial.Open(sl.cfg.Port, mode)
	if err != nil {
		return fmt.Errorf("%w: failed to open com port %q: %v", ErrInterfaceNotFound, sl.cfg.Port, err)
	}
	if err := p.SetReadTimeout(3 * time.Millisecond); err != nil {
		p.Close()
		return err
	}
	sl.port = p

	p.ResetOutputBuffer()
	p.ResetInputBuffer()

	// close any open channel before configuring it, then ask for the status flags
	for _, cmd := range []string{"C", rateCmd, "O", "F"} {
		if err := sl.writeCommand(cmd); err != nil {
			p.Close()
			return fmt.Errorf("%w: %v", ErrInterfaceDown, err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	go sl.recvManager(ctx)
	return nil
}

func (sl *SLCan) Close() error {
	sl.BaseAdapter.Close()
	if sl.port == nil {
		return nil
	}
	sl.writeCommand("C")
	time.Sleep(10 * time.Millisecond)
	return sl.port.Close()
}

func (sl *SLCan) writeCommand(cmd string) error {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	if sl.cfg.Debug {
		sl.message(">> " + cmd)
	}
	_, err := sl.port.Write([]byte(cmd + "\r"))
	return err
}

func (sl *SLCan) Send(ctx context.Context, frame *CANFrame) error {
	if sl.Closed() {
		return ErrAdapterClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if frame.DLC() > 8 {
		return fmt.Errorf("frame 0x%03X too long: %d bytes", frame.Identifier, frame.DLC())
	}
	buf := encodeSLCanFrame(frame)

	sl.mu.Lock()
	defer sl.mu.Unlock()
	if _, err := sl.port.Write(buf); err != nil {
		return fmt.Errorf("failed to write to com port: %w", err)
	}
	return nil
}

// encodeSLCanFrame encodes an 11 bit frame as t<id:3><dlc:1><data>\r
func encodeSLCanFrame(frame *CANFrame) []byte {
	buf := make([]byte, 0, 5+frame.DLC()*2+1)
	buf = append(buf, 't')
	id := frame.Identifier & 0x7FF
	buf = append(buf, nybbleToHex(byte(id>>8)&0xF), nybbleToHex(byte(id>>4)&0xF), nybbleToHex(byte(id)&0xF))
	buf = append(buf, nybbleToHex(byte(frame.DLC())))
	for _, b := range frame.Data {
		buf = append(buf, nybbleToHex(b>>4), nybbleToHex(b&0xF))
	}
	return append(buf, '\r')
}

// helper converts a 0..15 value to its ASCII hex nibble
func nybbleToHex(n byte) byte {
	if n < 10 {
		return '0' + n
	}
	return 'A' + (n - 10)
}

func (sl *SLCan) recvManager(ctx context.Context) {
	buf := make([]byte, 0, 64)
	readBuf := make([]byte, 32)
	for ctx.Err() == nil && !sl.Closed() {
		n, err := sl.port.Read(readBuf)
		if err != nil {
			if !sl.Closed() {
				sl.Fatal(fmt.Errorf("failed to read com port: %w", err))
			}
			return
		}
		if n == 0 {
			continue
		}
		buf = sl.parse(buf, readBuf[:n])
	}
}

// parse processes the read data and returns any remaining partial data.
func (sl *SLCan) parse(buf, readBuf []byte) []byte {
	for _, b := range readBuf {
		switch b {
		case '\r':
			if len(buf) == 0 {
				continue
			}
			switch buf[0] {
			case 't':
				f, err := decodeSLCanFrame(buf)
				if err != nil {
					sl.Warn(fmt.Sprintf("%v: %q", err, buf))
				} else {
					sl.deliver(f)
				}
			case 'F':
				if err := checkStatus(buf); err != nil {
					sl.message(err.Error())
				} else if sl.cfg.Debug {
					sl.message("adapter status ok")
				}
			case 'z', 'Z':
				// transmit acknowledgements
			default:
				sl.Debug("unhandled << " + string(buf))
			}
			buf = buf[:0]
		case 0x07:
			sl.message("adapter rejected command")
			buf = buf[:0]
		default:
			buf = append(buf, b)
		}
	}
	return buf
}

// Lawicel status flags, bit 4 is unused
var slcanStatusBits = []struct {
	mask byte
	text string
}{
	{0x01, "CAN receive FIFO queue full"},
	{0x02, "CAN transmit FIFO queue full"},
	{0x04, "error warning (EI)"},
	{0x08, "data overrun (DOI)"},
	{0x20, "error passive (EPI)"},
	{0x40, "arbitration lost (ALI)"},
	{0x80, "bus error (BEI)"},
}

// checkStatus decodes an Fxx status reply
func checkStatus(buf []byte) error {
	if len(buf) < 3 {
		return fmt.Errorf("short status reply %q", buf)
	}
	b, err := strconv.ParseUint(string(buf[1:3]), 16, 8)
	if err != nil {
		return fmt.Errorf("invalid status reply %q", buf)
	}
	var flags []string
	for _, bit := range slcanStatusBits {
		if byte(b)&bit.mask != 0 {
			flags = append(flags, bit.text)
		}
	}
	if len(flags) == 0 {
		return nil
	}
	return fmt.Errorf("adapter status: %s", strings.Join(flags, ", "))
}

var errShortSLCanFrame = errors.New("short slcan frame")

func decodeSLCanFrame(buff []byte) (*CANFrame, error) {
	if len(buff) < 5 {
		return nil, errShortSLCanFrame
	}
	id, err := strconv.ParseUint(string(buff[1:4]), 16, 32)
	if err != nil {
		return nil, fmt.Errorf("failed to decode identifier: %v", err)
	}
	dataLen, err := strconv.ParseUint(string(buff[4]), 16, 8)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data length: %v", err)
	}
	if dataLen > 8 {
		return nil, fmt.Errorf("invalid data length: %d", dataLen)
	}
	if len(buff) < 5+int(dataLen)*2 {
		return nil, errShortSLCanFrame
	}
	data, err := hex.DecodeString(string(buff[5 : 5+(dataLen*2)]))
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame body: %v", err)
	}
	return NewFrame(uint32(id), data, Incoming), nil
}

// FindSerialPorts lists serial ports that could host an slcan adapter, USB ones first.
func FindSerialPorts() ([]string, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, err
	}
	var usb, other []string
	for _, port := range ports {
		if port.IsUSB {
			usb = append(usb, port.Name)
		} else {
			other = append(other, port.Name)
		}
	}
	return append(usb, other...), nil
}
