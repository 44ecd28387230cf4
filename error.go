package udsscan

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNilAdapter            = errors.New("adapter is nil")
	ErrUnknownAdapter        = errors.New("unknown adapter")
	ErrAdapterClosed         = errors.New("adapter is closed")
	ErrDroppedFrame          = errors.New("adapter incoming channel full")
	ErrResponseChannelClosed = errors.New("response channel closed")
	ErrInterfaceNotFound     = errors.New("CAN interface not found")
	ErrInterfaceDown         = errors.New("CAN interface is down")
)

// TimeoutError is returned when no frame from the watched identifiers arrived in time
type TimeoutError struct {
	Timeout time.Duration
	Frames  []uint32
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout (%dms) waiting for frame 0x%03X", e.Timeout.Milliseconds(), e.Frames)
}
