// Package scan drives UDS probes over a service catalog or across the 11 bit
// identifier space.
package scan

import (
	"context"

	"github.com/udsscan/udsscan/pkg/uds"
)

// Prober is satisfied by *uds.Prober
type Prober interface {
	Probe(ctx context.Context, req uds.Request) (uds.Outcome, error)
}

// Result is the outcome of one catalog entry. Err is set when the entry could
// not be encoded or transmitted, Outcome is then NoResponse.
type Result struct {
	Entry   Entry
	Outcome uds.Outcome
	Err     error
}

type ServiceReport struct {
	Results   []Result
	Responded int
}

// Count returns how many results have the given outcome kind
func (r *ServiceReport) Count(kind uds.OutcomeKind) int {
	var n int
	for _, res := range r.Results {
		if res.Err == nil && res.Outcome.Kind == kind {
			n++
		}
	}
	return n
}

// Failed returns how many entries errored before a response could be awaited
func (r *ServiceReport) Failed() int {
	var n int
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

type ServiceScanner struct {
	prober  Prober
	catalog Catalog

	// OnResult is called after every entry, e.g. for live output
	OnResult func(index int, res Result)
}

func NewServiceScanner(prober Prober, catalog Catalog) *ServiceScanner {
	return &ServiceScanner{
		prober:  prober,
		catalog: catalog,
	}
}

// Run probes every catalog entry once, in order. Per entry failures are
// recorded and the scan moves on. If ctx is cancelled the report gathered so
// far is returned together with the context error.
func (s *ServiceScanner) Run(ctx context.Context) (*ServiceReport, error) {
	report := &ServiceReport{
		Results: make([]Result, 0, len(s.catalog)),
	}
	for i, e := range s.catalog {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		outcome, err := s.prober.Probe(ctx, e.Request)
		if err != nil && ctx.Err() != nil {
			return report, ctx.Err()
		}
		res := Result{Entry: e, Outcome: outcome, Err: err}
		report.Results = append(report.Results, res)
		if res.Err == nil && outcome.Responded() {
			report.Responded++
		}
		if s.OnResult != nil {
			s.OnResult(i, res)
		}
	}
	return report, nil
}
