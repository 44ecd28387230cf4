package scan

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVSink(t *testing.T) {
	var buf bytes.Buffer
	sink, err := NewCSVSink(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Request_ID,Response_ID,Response_Data\n", buf.String(), "header is written up front")

	require.NoError(t, sink.Append(Record{RequestID: 0x7E0, ResponseID: 0x7E8, Data: []byte{0x06, 0x50, 0x01, 0x00, 0x32, 0x01, 0xF4, 0xAA}}))
	require.NoError(t, sink.Append(Record{RequestID: 0x00, ResponseID: 0x08, Data: []byte{0x03, 0x7F, 0x10, 0x11}}))
	require.NoError(t, sink.Close())

	want := "Request_ID,Response_ID,Response_Data\n" +
		"0x7E0,0x7E8,06 50 01 00 32 01 F4 AA\n" +
		"0x000,0x008,03 7F 10 11\n"
	assert.Equal(t, want, buf.String())
}

func TestCreateCSVSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	sink, err := CreateCSVSink(path)
	require.NoError(t, err)
	require.NoError(t, sink.Append(Record{RequestID: 0x700, ResponseID: 0x708, Data: []byte{0x02, 0x50, 0x01}}))

	// rows are on disk before Close
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "0x700,0x708,02 50 01")
	require.NoError(t, sink.Close())
}

func TestCreateCSVSinkBadPath(t *testing.T) {
	_, err := CreateCSVSink(filepath.Join(t.TempDir(), "missing", "results.csv"))
	assert.Error(t, err)
}

func TestRecordString(t *testing.T) {
	r := Record{RequestID: 0x7E0, ResponseID: 0x7E8, Data: []byte{0x02, 0x50}}
	assert.Equal(t, "0x7E0 -> 0x7E8: 02 50", r.String())
}
