package scan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udsscan/udsscan"
	"github.com/udsscan/udsscan/pkg/uds"
)

type fakeProber struct {
	calls   []uds.Request
	outcome func(i int, req uds.Request) (uds.Outcome, error)
}

func (f *fakeProber) Probe(ctx context.Context, req uds.Request) (uds.Outcome, error) {
	i := len(f.calls)
	f.calls = append(f.calls, req)
	return f.outcome(i, req)
}

func testCatalog() Catalog {
	return Catalog{
		entry("session", uds.ServiceDiagnosticSessionControl, uds.Sub(0x01)),
		entry("reset", uds.ServiceECUReset, uds.Sub(0x01)),
		entry("seed", uds.ServiceSecurityAccess, uds.Sub(0x01)),
		entry("vin", uds.ServiceReadDataByIdentifier, nil, 0xF1, 0x90),
	}
}

func TestServiceScannerCounts(t *testing.T) {
	p := &fakeProber{outcome: func(i int, req uds.Request) (uds.Outcome, error) {
		switch i {
		case 0:
			return uds.Outcome{Kind: uds.Positive, ServiceID: req.ServiceID}, nil
		case 1:
			return uds.Outcome{Kind: uds.Negative, ServiceID: req.ServiceID, NRC: 0x11}, nil
		case 2:
			return uds.Outcome{Kind: uds.NoResponse}, nil
		default:
			return uds.Outcome{Kind: uds.Unexpected, ServiceID: 0x51}, nil
		}
	}}
	var seen []int
	s := NewServiceScanner(p, testCatalog())
	s.OnResult = func(i int, res Result) { seen = append(seen, i) }

	report, err := s.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Results, 4)
	assert.Equal(t, []int{0, 1, 2, 3}, seen)
	assert.Equal(t, 3, report.Responded)
	assert.Equal(t, 1, report.Count(uds.Positive))
	assert.Equal(t, 1, report.Count(uds.Negative))
	assert.Equal(t, 1, report.Count(uds.NoResponse))
	assert.Equal(t, 1, report.Count(uds.Unexpected))
	assert.Equal(t, 0, report.Failed())

	for i, e := range testCatalog() {
		assert.Equal(t, e.Request.Bytes(), p.calls[i].Bytes(), "entries are probed in order")
	}
}

func TestServiceScannerContinuesAfterError(t *testing.T) {
	p := &fakeProber{outcome: func(i int, req uds.Request) (uds.Outcome, error) {
		if i == 1 {
			return uds.Outcome{Kind: uds.NoResponse}, &uds.TransmitError{Identifier: 0x7E0, Err: errors.New("bus off")}
		}
		return uds.Outcome{Kind: uds.Positive, ServiceID: req.ServiceID}, nil
	}}
	report, err := NewServiceScanner(p, testCatalog()).Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, p.calls, 4)
	assert.Equal(t, 1, report.Failed())
	assert.Equal(t, 3, report.Responded)
	assert.Error(t, report.Results[1].Err)
}

func TestServiceScannerCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := &fakeProber{outcome: func(i int, req uds.Request) (uds.Outcome, error) {
		if i == 1 {
			cancel()
		}
		return uds.Outcome{Kind: uds.Positive, ServiceID: req.ServiceID}, nil
	}}
	report, err := NewServiceScanner(p, testCatalog()).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, report.Results, 2, "results gathered before cancel are kept")
	assert.Len(t, p.calls, 2)
}

func TestServiceScannerVirtualECU(t *testing.T) {
	dev := udsscan.NewVirtual(nil, udsscan.SimulatedECU(uds.TesterID, uds.ECUID))
	c, err := udsscan.New(context.Background(), dev)
	require.NoError(t, err)
	defer c.Close()

	cfg := uds.DefaultProbeConfig()
	cfg.Timeout = 500 * time.Millisecond
	catalog := Catalog{
		entry("session", uds.ServiceDiagnosticSessionControl, uds.Sub(0x03)),
		entry("vin", uds.ServiceReadDataByIdentifier, nil, 0xF1, 0x90),
		entry("part number", uds.ServiceReadDataByIdentifier, nil, 0xF1, 0x87),
		entry("routine", uds.ServiceRoutineControl, uds.Sub(0x01), 0x02, 0x03),
		entry("io control", uds.ServiceInputOutputControlByIdentifier, nil, 0xF0, 0x00, 0x00),
	}
	report, err := NewServiceScanner(uds.NewProber(c, cfg), catalog).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Results, 5)

	assert.Equal(t, uds.Positive, report.Results[0].Outcome.Kind)
	assert.Equal(t, uds.Positive, report.Results[1].Outcome.Kind)
	assert.Equal(t, uds.NRCRequestOutOfRange, report.Results[2].Outcome.NRC)
	assert.Equal(t, uds.NRCConditionsNotCorrect, report.Results[3].Outcome.NRC)
	assert.Equal(t, uds.NRCServiceNotSupported, report.Results[4].Outcome.NRC)
	assert.Equal(t, 5, report.Responded)
	assert.Len(t, dev.Sent(), 5)
}
