package uds

import (
	"fmt"

	"github.com/udsscan/udsscan"
)

type OutcomeKind int

const (
	NoResponse OutcomeKind = iota
	Positive
	Negative
	Unexpected
)

func (k OutcomeKind) String() string {
	switch k {
	case NoResponse:
		return "no response"
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	case Unexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// Outcome is the classified result of one probe.
//
// ServiceID is the request service for Positive, the service echoed back in
// the negative response for Negative and the observed response service for
// Unexpected. NRC and Reason are only set for Negative.
type Outcome struct {
	Kind      OutcomeKind
	ServiceID byte
	NRC       byte
	Reason    string
	Frame     *udsscan.CANFrame
}

// Responded reports whether anything usable came back
func (o Outcome) Responded() bool {
	return o.Kind != NoResponse
}

func (o Outcome) String() string {
	switch o.Kind {
	case Positive:
		return fmt.Sprintf("positive response to %s", ServiceName(o.ServiceID))
	case Negative:
		return fmt.Sprintf("negative response to %s: 0x%02X %s", ServiceName(o.ServiceID), o.NRC, o.Reason)
	case Unexpected:
		return fmt.Sprintf("unexpected response service 0x%02X", o.ServiceID)
	default:
		return o.Kind.String()
	}
}

// Classify turns a captured frame into an Outcome. Frames that arrive after the
// deadline, are missing or do not decode all count as no response.
func Classify(req Request, resp *udsscan.CANFrame, timedOut bool) Outcome {
	if timedOut || resp == nil {
		return Outcome{Kind: NoResponse}
	}
	decoded, err := Decode(resp.Data)
	if err != nil {
		return Outcome{Kind: NoResponse}
	}
	if decoded.Negative() {
		return Outcome{
			Kind:      Negative,
			ServiceID: decoded.RequestedServiceID,
			NRC:       decoded.NRC,
			Reason:    DescribeNRC(decoded.NRC),
			Frame:     resp,
		}
	}
	if decoded.ServiceID == req.ServiceID+PositiveResponseOffset {
		return Outcome{Kind: Positive, ServiceID: req.ServiceID, Frame: resp}
	}
	return Outcome{Kind: Unexpected, ServiceID: decoded.ServiceID, Frame: resp}
}
