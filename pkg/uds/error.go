package uds

import (
	"errors"
	"fmt"
)

var ErrTruncated = errors.New("truncated response")

// EncodingError means a request does not fit in a single frame
type EncodingError struct {
	ServiceID byte
	Length    int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("request for service 0x%02X is %d bytes, max %d", e.ServiceID, e.Length, MaxRequestLength)
}

// TransmitError is returned when the bus refused a request frame
type TransmitError struct {
	Identifier uint32
	Err        error
}

func (e *TransmitError) Error() string {
	return fmt.Sprintf("transmit on 0x%03X failed: %v", e.Identifier, e.Err)
}

func (e *TransmitError) Unwrap() error {
	return e.Err
}
