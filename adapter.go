package udsscan

import (
	"context"
	"fmt"
	"log"
	"net"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// Adapter is a CAN interface backend. Send is synchronous so a rejected frame
// is reported to the caller that transmitted it.
type Adapter interface {
	Name() string
	Open(context.Context) error
	Close() error
	Send(context.Context, *CANFrame) error
	Recv() <-chan *CANFrame
	Err() <-chan error
	Event() <-chan Event
}

type AdapterInfo struct {
	Name               string
	Description        string
	RequiresSerialPort bool
	New                func(*AdapterConfig) (Adapter, error)
}

func (a *AdapterInfo) String() string {
	return fmt.Sprintf("%s | %s, requires serial port: %v", a.Name, a.Description, a.RequiresSerialPort)
}

type AdapterConfig struct {
	Debug        bool
	Port         string  // network interface for socketcan, serial device for slcan
	PortBaudrate int     // serial speed, slcan only
	CANRate      float64 // kbit/s, 0 leaves the interface bitrate untouched
	CANFilter    []uint32
	OnMessage    func(string)
}

var adapterMap = make(map[string]*AdapterInfo)

func NewAdapter(adapterName string, cfg *AdapterConfig) (Adapter, error) {
	if cfg.OnMessage == nil {
		cfg.OnMessage = func(msg string) {
			_, file, no, ok := runtime.Caller(1)
			if ok {
				log.Printf("%s#%d %v", filepath.Base(file), no, msg)
			} else {
				log.Println(msg)
			}
		}
	}
	if adapter, found := adapterMap[strings.ToLower(adapterName)]; found {
		return adapter.New(cfg)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownAdapter, adapterName)
}

func RegisterAdapter(adapter *AdapterInfo) error {
	name := strings.ToLower(adapter.Name)
	if _, found := adapterMap[name]; !found {
		adapterMap[name] = adapter
		return nil
	}
	return fmt.Errorf("adapter %s already registered", adapter.Name)
}

func ListAdapterNames() []string {
	var out []string
	for _, adapter := range adapterMap {
		out = append(out, adapter.Name)
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i]) < strings.ToLower(out[j]) })
	return out
}

func ListAdapters() []AdapterInfo {
	var out []AdapterInfo
	for _, adapter := range adapterMap {
		out = append(out, *adapter)
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out
}

// FindCANInterfaces lists network interfaces that look like CAN links (can0, vcan0, slcan0 ...)
func FindCANInterfaces() (dev []string) {
	iFaces, _ := net.Interfaces()
	for _, i := range iFaces {
		if strings.Contains(i.Name, "can") {
			dev = append(dev, i.Name)
		}
	}
	return
}
