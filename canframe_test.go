package udsscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFrameCopiesData(t *testing.T) {
	data := []byte{0x02, 0x10, 0x01}
	f := NewFrame(0x7E0, data, Outgoing)
	data[0] = 0xFF
	assert.Equal(t, byte(0x02), f.Data[0])
	assert.Equal(t, 3, f.DLC())
}

func TestFrameString(t *testing.T) {
	f := NewFrame(0x7E8, []byte{0x06, 0x62, 0xF1, 0x90, 'U', 'D', 'S'}, Incoming)
	assert.Equal(t, "06 62 F1 90 55 44 53", f.Hex())
	assert.Equal(t, "<i> || 0x7E8 || 7 || 06 62 F1 90 55 44 53    || .b..UDS", f.String())
	assert.Equal(t, "<o>", Outgoing.String())
	assert.Equal(t, "", NewFrame(0x1, nil, Incoming).Hex())
}
