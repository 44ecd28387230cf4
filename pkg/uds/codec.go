package uds

import (
	"fmt"
	"strings"
)

// Request is a single frame service request. SubFunction is nil for services
// sent without one.
type Request struct {
	ServiceID   byte
	SubFunction *byte
	Parameters  []byte
}

// Sub returns a pointer to b, for Request.SubFunction literals
func Sub(b byte) *byte {
	return &b
}

// Len is the number of bytes following the PCI length byte
func (r Request) Len() int {
	n := 1 + len(r.Parameters)
	if r.SubFunction != nil {
		n++
	}
	return n
}

// Bytes returns the unpadded request: sid, sub-function if any, parameters
func (r Request) Bytes() []byte {
	out := make([]byte, 0, r.Len())
	out = append(out, r.ServiceID)
	if r.SubFunction != nil {
		out = append(out, *r.SubFunction)
	}
	return append(out, r.Parameters...)
}

func (r Request) String() string {
	var out strings.Builder
	out.WriteString(ServiceName(r.ServiceID))
	if r.SubFunction != nil {
		fmt.Fprintf(&out, " sub=0x%02X", *r.SubFunction)
	}
	if len(r.Parameters) > 0 {
		fmt.Fprintf(&out, " params=% X", r.Parameters)
	}
	return out.String()
}

// EncodedFrame is a request as it goes on the wire
type EncodedFrame [FrameSize]byte

func (f EncodedFrame) String() string {
	return fmt.Sprintf("% X", f[:])
}

// Encode lays out [length][sid][sub?][params...] and pads the rest with padding.
func Encode(req Request, padding byte) (EncodedFrame, error) {
	var f EncodedFrame
	n := req.Len()
	if n > MaxRequestLength {
		return f, &EncodingError{ServiceID: req.ServiceID, Length: n}
	}
	f[0] = byte(n)
	copy(f[1:], req.Bytes())
	for i := 1 + n; i < FrameSize; i++ {
		f[i] = padding
	}
	return f, nil
}

// ParseRequest recovers the request encoded in f. Whether the second byte is a
// sub-function cannot be told from the wire, so the caller says so.
func ParseRequest(f EncodedFrame, hasSubFunction bool) (Request, error) {
	n := int(f[0])
	if n < 1 || n > MaxRequestLength {
		return Request{}, fmt.Errorf("invalid length byte 0x%02X", f[0])
	}
	body := f[1 : 1+n]
	req := Request{ServiceID: body[0]}
	body = body[1:]
	if hasSubFunction {
		if len(body) == 0 {
			return Request{}, fmt.Errorf("%w: missing sub-function", ErrTruncated)
		}
		req.SubFunction = Sub(body[0])
		body = body[1:]
	}
	req.Parameters = append([]byte{}, body...)
	return req, nil
}

// Response holds the fields of a captured answer. RequestedServiceID and NRC
// are only set for negative responses.
type Response struct {
	PCI                byte
	ServiceID          byte
	RequestedServiceID byte
	NRC                byte
}

func (r Response) Negative() bool {
	return r.ServiceID == NegativeResponse
}

// Decode parses a captured payload. Negative responses need four bytes, everything else two.
func Decode(payload []byte) (Response, error) {
	if len(payload) < 2 {
		return Response{}, fmt.Errorf("%w: need 2 bytes, got %d", ErrTruncated, len(payload))
	}
	resp := Response{
		PCI:       payload[0],
		ServiceID: payload[1],
	}
	if resp.Negative() {
		if len(payload) < 4 {
			return Response{}, fmt.Errorf("%w: negative response needs 4 bytes, got %d", ErrTruncated, len(payload))
		}
		resp.RequestedServiceID = payload[2]
		resp.NRC = payload[3]
	}
	return resp, nil
}
