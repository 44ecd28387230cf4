package uds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribeNRC(t *testing.T) {
	tests := map[byte]string{
		0x11: "Service not supported",
		0x13: "Incorrect message length or invalid format",
		0x33: "Security access denied",
		0x78: "Response pending",
		0x99: "Unknown NRC: 0x99",
		0x00: "Unknown NRC: 0x00",
	}
	for code, want := range tests {
		assert.Equal(t, want, DescribeNRC(code))
	}
}

func TestNRCTableComplete(t *testing.T) {
	for code, name := range nrcNames {
		assert.NotEmpty(t, name, "0x%02X", code)
		assert.NotContains(t, DescribeNRC(code), "Unknown")
	}
}
