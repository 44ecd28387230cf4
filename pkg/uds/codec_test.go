package uds

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		padding byte
		want    EncodedFrame
	}{
		{
			name:    "session control default",
			req:     Request{ServiceID: 0x10, SubFunction: Sub(0x01)},
			padding: DefaultPadding,
			want:    EncodedFrame{0x02, 0x10, 0x01, 0x55, 0x55, 0x55, 0x55, 0x55},
		},
		{
			name:    "read VIN",
			req:     Request{ServiceID: 0x22, Parameters: []byte{0xF1, 0x90}},
			padding: DefaultPadding,
			want:    EncodedFrame{0x03, 0x22, 0xF1, 0x90, 0x55, 0x55, 0x55, 0x55},
		},
		{
			name:    "sweep request zero padded",
			req:     Request{ServiceID: 0x10, SubFunction: Sub(0x01)},
			padding: 0x00,
			want:    EncodedFrame{0x02, 0x10, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name:    "service only",
			req:     Request{ServiceID: 0x37},
			padding: 0xCC,
			want:    EncodedFrame{0x01, 0x37, 0xCC, 0xCC, 0xCC, 0xCC, 0xCC, 0xCC},
		},
		{
			name:    "full frame",
			req:     Request{ServiceID: 0x19, SubFunction: Sub(0x18), Parameters: []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x00}},
			padding: DefaultPadding,
			want:    EncodedFrame{0x07, 0x19, 0x18, 0xFF, 0xFF, 0xFF, 0xFF, 0x00},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.req, tt.padding)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, byte(tt.req.Len()), got[0])
		})
	}
}

func TestEncodeTooLong(t *testing.T) {
	req := Request{ServiceID: 0x2E, Parameters: []byte{1, 2, 3, 4, 5, 6, 7}}
	_, err := Encode(req, DefaultPadding)
	require.Error(t, err)

	var encErr *EncodingError
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, byte(0x2E), encErr.ServiceID)
	assert.Equal(t, 8, encErr.Length)
}

func TestEncodeParseRoundTrip(t *testing.T) {
	reqs := []struct {
		req    Request
		hasSub bool
	}{
		{Request{ServiceID: 0x10, SubFunction: Sub(0x03)}, true},
		{Request{ServiceID: 0x22, Parameters: []byte{0xF1, 0x86}}, false},
		{Request{ServiceID: 0x31, SubFunction: Sub(0x01), Parameters: []byte{0x02, 0x03}}, true},
	}
	for _, tt := range reqs {
		t.Run(tt.req.String(), func(t *testing.T) {
			f, err := Encode(tt.req, DefaultPadding)
			require.NoError(t, err)
			got, err := ParseRequest(f, tt.hasSub)
			require.NoError(t, err)
			assert.Equal(t, tt.req.Bytes(), got.Bytes())
			assert.Equal(t, tt.req.SubFunction != nil, got.SubFunction != nil)
		})
	}
}

func TestParseRequestInvalid(t *testing.T) {
	_, err := ParseRequest(EncodedFrame{0x00, 0x10}, false)
	assert.Error(t, err)

	_, err = ParseRequest(EncodedFrame{0x08, 0x10}, false)
	assert.Error(t, err)

	_, err = ParseRequest(EncodedFrame{0x01, 0x10, 0x55}, true)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDecode(t *testing.T) {
	resp, err := Decode([]byte{0x02, 0x50, 0x01})
	require.NoError(t, err)
	assert.False(t, resp.Negative())
	assert.Equal(t, byte(0x50), resp.ServiceID)

	resp, err = Decode([]byte{0x03, 0x7F, 0x27, 0x35, 0xAA, 0xAA, 0xAA, 0xAA})
	require.NoError(t, err)
	assert.True(t, resp.Negative())
	assert.Equal(t, byte(0x27), resp.RequestedServiceID)
	assert.Equal(t, byte(0x35), resp.NRC)
}

func TestDecodeTruncated(t *testing.T) {
	for _, payload := range [][]byte{nil, {0x02}, {0x03, 0x7F}, {0x03, 0x7F, 0x10}} {
		_, err := Decode(payload)
		assert.ErrorIs(t, err, ErrTruncated, "% X", payload)
	}
}

func TestServiceName(t *testing.T) {
	assert.Equal(t, "DiagnosticSessionControl", ServiceName(0x10))
	assert.Equal(t, "0xBA", ServiceName(0xBA))
}
