package udsscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSLCanFrame(t *testing.T) {
	f := NewFrame(0x7E0, []byte{0x02, 0x10, 0x01, 0x55, 0x55, 0x55, 0x55, 0x55}, Outgoing)
	assert.Equal(t, "t7E080210015555555555\r", string(encodeSLCanFrame(f)))
	assert.Equal(t, "t0080\r", string(encodeSLCanFrame(NewFrame(0x008, nil, Outgoing))))
}

func TestDecodeSLCanFrame(t *testing.T) {
	f, err := decodeSLCanFrame([]byte("t7E88065001003201F4AA"))
	require.NoError(t, err)
	assert.Equal(t, uint32(0x7E8), f.Identifier)
	assert.Equal(t, []byte{0x06, 0x50, 0x01, 0x00, 0x32, 0x01, 0xF4, 0xAA}, f.Data)
	assert.Equal(t, Incoming, f.FrameType)
}

func TestDecodeSLCanFrameInvalid(t *testing.T) {
	tests := map[string]string{
		"empty":        "",
		"short header": "t7E8",
		"short body":   "t7E83065",
		"identifier":   "tXYZ1AA",
		"length":       "t7E8X",
		"too long":     "t7E89000000000000000000",
		"body":         "t7E81ZZ",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			f, err := decodeSLCanFrame([]byte(in))
			assert.Error(t, err)
			assert.Nil(t, f)
		})
	}
	_, err := decodeSLCanFrame([]byte("t7E83065"))
	assert.ErrorIs(t, err, errShortSLCanFrame)
}

func TestSLCanParse(t *testing.T) {
	var messages []string
	sl := &SLCan{BaseAdapter: NewBaseAdapter("SLCan", &AdapterConfig{
		OnMessage: func(msg string) { messages = append(messages, msg) },
	})}

	rest := sl.parse(nil, []byte("z\rt7E8302500"))
	assert.Equal(t, "t7E8302500", string(rest), "partial frames are kept")
	rest = sl.parse(rest, []byte("1\r"))
	assert.Empty(t, rest)

	f := <-sl.Recv()
	assert.Equal(t, uint32(0x7E8), f.Identifier)
	assert.Equal(t, []byte{0x02, 0x50, 0x01}, f.Data)
	assert.Empty(t, messages)

	sl.parse(nil, []byte("F80\r"))
	sl.parse(nil, []byte("F00\r"))
	sl.parse(nil, []byte{0x07})
	assert.Equal(t, []string{
		"adapter status: bus error (BEI)",
		"adapter rejected command",
	}, messages)
}

func TestSLCanParseDebugStatus(t *testing.T) {
	var messages []string
	sl := &SLCan{BaseAdapter: NewBaseAdapter("SLCan", &AdapterConfig{
		Debug:     true,
		OnMessage: func(msg string) { messages = append(messages, msg) },
	})}
	sl.parse(nil, []byte("F00\r"))
	assert.Equal(t, []string{"adapter status ok"}, messages)
}

func TestCheckStatus(t *testing.T) {
	assert.NoError(t, checkStatus([]byte("F00")))
	assert.NoError(t, checkStatus([]byte("F10")), "unused bit")

	err := checkStatus([]byte("F81"))
	require.Error(t, err)
	assert.Equal(t, "adapter status: CAN receive FIFO queue full, bus error (BEI)", err.Error())

	assert.Error(t, checkStatus([]byte("F")))
	assert.Error(t, checkStatus([]byte("FZZ")))
}
