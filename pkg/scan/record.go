package scan

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is a responding identifier pair found by a sweep
type Record struct {
	RequestID  uint32
	ResponseID uint32
	Data       []byte
}

func (r Record) Hex() string {
	parts := make([]string, len(r.Data))
	for i, b := range r.Data {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, " ")
}

func (r Record) String() string {
	return fmt.Sprintf("0x%03X -> 0x%03X: %s", r.RequestID, r.ResponseID, r.Hex())
}

// Sink stores records as they are found
type Sink interface {
	Append(Record) error
}

var csvHeader = []string{"Request_ID", "Response_ID", "Response_Data"}

// CSVSink writes one row per record and flushes after each so an aborted
// sweep keeps what it found.
type CSVSink struct {
	w      *csv.Writer
	closer io.Closer
}

// NewCSVSink writes the header row to w
func NewCSVSink(w io.Writer) (*CSVSink, error) {
	s := &CSVSink{w: csv.NewWriter(w)}
	if err := s.write(csvHeader); err != nil {
		return nil, err
	}
	return s, nil
}

// CreateCSVSink truncates or creates path
func CreateCSVSink(path string) (*CSVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create results file: %w", err)
	}
	s, err := NewCSVSink(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	s.closer = f
	return s, nil
}

func (s *CSVSink) Append(r Record) error {
	return s.write([]string{
		fmt.Sprintf("0x%03X", r.RequestID),
		fmt.Sprintf("0x%03X", r.ResponseID),
		r.Hex(),
	})
}

func (s *CSVSink) write(row []string) error {
	if err := s.w.Write(row); err != nil {
		return err
	}
	s.w.Flush()
	return s.w.Error()
}

func (s *CSVSink) Close() error {
	s.w.Flush()
	if s.closer != nil {
		return s.closer.Close()
	}
	return s.w.Error()
}
