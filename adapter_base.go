package udsscan

import (
	"fmt"
	"log"
	"path/filepath"
	"runtime"
	"sync"
)

type EventType int

const (
	EventTypeError EventType = iota
	EventTypeWarning
	EventTypeInfo
	EventTypeDebug
)

func (et EventType) String() string {
	switch et {
	case EventTypeError:
		return "ERROR"
	case EventTypeWarning:
		return "WARN"
	case EventTypeInfo:
		return "INFO"
	case EventTypeDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// Event is a non fatal adapter notification
type Event struct {
	Type    EventType
	Details string
}

func (e Event) String() string {
	return fmt.Sprintf("[%s] %s", e.Type, e.Details)
}

// BaseAdapter carries the channels and close/error plumbing shared by all adapters
type BaseAdapter struct {
	name     string
	cfg      *AdapterConfig
	recvChan chan *CANFrame

	errOnce sync.Once
	errChan chan error

	evtChan chan Event

	closeOnce sync.Once
	closeChan chan struct{}
}

func NewBaseAdapter(name string, cfg *AdapterConfig) *BaseAdapter {
	return &BaseAdapter{
		name:      name,
		cfg:       cfg,
		recvChan:  make(chan *CANFrame, 1024),
		errChan:   make(chan error, 1),
		evtChan:   make(chan Event, 100),
		closeChan: make(chan struct{}),
	}
}

// Name returns the adapter name.
func (base *BaseAdapter) Name() string {
	return base.name
}

// Return the receive channel for the adapter
func (base *BaseAdapter) Recv() <-chan *CANFrame {
	return base.recvChan
}

// Return the error channel for the adapter
func (base *BaseAdapter) Err() <-chan error {
	return base.errChan
}

func (base *BaseAdapter) Event() <-chan Event {
	return base.evtChan
}

func (base *BaseAdapter) Closed() bool {
	select {
	case <-base.closeChan:
		return true
	default:
		return false
	}
}

func (base *BaseAdapter) Close() {
	base.closeOnce.Do(func() {
		close(base.closeChan)
	})
}

// Fatal reports that communication is broken and cannot continue. Only the first call is kept.
func (base *BaseAdapter) Fatal(err error) {
	base.errOnce.Do(func() {
		select {
		case base.errChan <- err:
		default:
			_, file, no, ok := runtime.Caller(1)
			if ok {
				log.Printf("%s:%d error channel full: %v", filepath.Base(file), no, err)
			} else {
				log.Printf("error channel full: %v", err)
			}
		}
	})
}

// deliver hands an incoming frame to the client, dropping it if nobody keeps up.
func (base *BaseAdapter) deliver(frame *CANFrame) {
	if len(base.cfg.CANFilter) > 0 && !matchesFilter(frame.Identifier, base.cfg.CANFilter) {
		return
	}
	select {
	case base.recvChan <- frame:
	default:
		base.Error(ErrDroppedFrame)
	}
}

func matchesFilter(id uint32, filter []uint32) bool {
	for _, f := range filter {
		if f == id {
			return true
		}
	}
	return false
}

func (base *BaseAdapter) sendEvent(eventType EventType, details string) {
	select {
	case base.evtChan <- Event{Type: eventType, Details: details}:
	default:
		_, file, no, ok := runtime.Caller(2)
		if ok {
			log.Printf("%s#%d event channel full: %s", filepath.Base(file), no, details)
		} else {
			log.Printf("event channel full: %s", details)
		}
	}
}

// message passes adapter chatter to AdapterConfig.OnMessage
func (base *BaseAdapter) message(msg string) {
	if base.cfg.OnMessage != nil {
		base.cfg.OnMessage(msg)
		return
	}
	log.Println(msg)
}

// Send an error event
func (base *BaseAdapter) Error(err error) {
	base.sendEvent(EventTypeError, err.Error())
}

// Send a warning event
func (base *BaseAdapter) Warn(warn string) {
	base.sendEvent(EventTypeWarning, warn)
}

// Send an info event
func (base *BaseAdapter) Info(info string) {
	base.sendEvent(EventTypeInfo, info)
}

// Send a debug event, only when the adapter runs in debug mode
func (base *BaseAdapter) Debug(debug string) {
	if !base.cfg.Debug {
		return
	}
	base.sendEvent(EventTypeDebug, debug)
}
