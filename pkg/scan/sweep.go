package scan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/udsscan/udsscan/pkg/uds"
)

const (
	MaxIdentifier    uint32 = 0x7FF
	ResponseOffset   uint32 = 8
	ProgressInterval uint32 = 100
)

// SweepRequest is sent to every candidate identifier: 02 10 01 + padding
var SweepRequest = uds.Request{
	ServiceID:   uds.ServiceDiagnosticSessionControl,
	SubFunction: uds.Sub(0x01),
}

type SweepConfig struct {
	Timeout time.Duration
	Padding byte
	// First and Last bound the request identifiers, both inclusive
	First uint32
	Last  uint32
}

// DefaultSweepConfig covers the whole 11 bit space with a 100ms response window
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		Timeout: 100 * time.Millisecond,
		Padding: 0x00,
		First:   0,
		Last:    MaxIdentifier,
	}
}

type SweepReport struct {
	Tested         int
	Found          int
	TransmitErrors int
	Records        []Record
}

// Sweeper probes every (id, id+8) pair of the 11 bit identifier space
type Sweeper struct {
	bus  uds.Bus
	cfg  SweepConfig
	sink Sink

	// OnProgress is called for every ProgressInterval'th identifier
	OnProgress func(id uint32, report *SweepReport)
	// OnHit is called for every responding pair
	OnHit func(rec Record, outcome uds.Outcome)
	// OnTransmitError is called when a probe frame could not be sent
	OnTransmitError func(id uint32, err error)
}

// NewSweeper creates a sweeper, sink may be nil
func NewSweeper(bus uds.Bus, cfg SweepConfig, sink Sink) *Sweeper {
	return &Sweeper{
		bus:  bus,
		cfg:  cfg,
		sink: sink,
	}
}

// Run sweeps request identifiers First..Last. Pairs whose response identifier
// would leave the 11 bit space are skipped. On cancellation the partial report
// is returned together with the context error.
func (s *Sweeper) Run(ctx context.Context) (*SweepReport, error) {
	base := uds.NewProber(s.bus, uds.ProbeConfig{
		Padding: s.cfg.Padding,
		Timeout: s.cfg.Timeout,
	})
	report := &SweepReport{}
	if s.cfg.First > s.cfg.Last {
		return report, fmt.Errorf("invalid identifier range 0x%03X-0x%03X", s.cfg.First, s.cfg.Last)
	}
	for id := s.cfg.First; id <= s.cfg.Last && id <= MaxIdentifier; id++ {
		if id%ProgressInterval == 0 && s.OnProgress != nil {
			s.OnProgress(id, report)
		}
		rx := id + ResponseOffset
		if rx > MaxIdentifier {
			continue
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}

		outcome, err := base.WithIdentifiers(id, rx).Probe(ctx, SweepRequest)
		if err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			var txErr *uds.TransmitError
			if !errors.As(err, &txErr) {
				return report, err
			}
			report.Tested++
			report.TransmitErrors++
			if s.OnTransmitError != nil {
				s.OnTransmitError(id, err)
			}
			continue
		}
		report.Tested++
		if !outcome.Responded() {
			continue
		}

		rec := Record{
			RequestID:  id,
			ResponseID: rx,
			Data:       append([]byte{}, outcome.Frame.Data...),
		}
		report.Found++
		report.Records = append(report.Records, rec)
		if s.OnHit != nil {
			s.OnHit(rec, outcome)
		}
		if s.sink != nil {
			if err := s.sink.Append(rec); err != nil {
				return report, fmt.Errorf("write record: %w", err)
			}
		}
	}
	return report, nil
}

// PairCount is the number of pairs a full sweep tests
func PairCount() int {
	return int(MaxIdentifier - ResponseOffset + 1)
}
