package scan

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udsscan/udsscan/pkg/uds"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	require.NoError(t, c.Validate())
	require.NotEmpty(t, c)

	assert.Equal(t, uds.ServiceDiagnosticSessionControl, c[0].Request.ServiceID)
	assert.Equal(t, byte(0x01), *c[0].Request.SubFunction)

	services := make(map[byte]bool)
	for _, e := range c {
		assert.NotEmpty(t, e.Label)
		services[e.Request.ServiceID] = true
	}
	for _, sid := range []byte{
		0x10, 0x11, 0x14, 0x19, 0x22, 0x23, 0x24, 0x27, 0x28, 0x2A, 0x2C, 0x2E, 0x2F,
		0x31, 0x34, 0x35, 0x36, 0x37, 0x3D, 0x3E, 0x83, 0x84, 0x85, 0x86, 0x87,
	} {
		assert.True(t, services[sid], "catalog probes %s", uds.ServiceName(sid))
	}
}

func TestCatalogValidate(t *testing.T) {
	c := Catalog{entry("too long", 0x2E, nil, 1, 2, 3, 4, 5, 6, 7)}
	var encErr *uds.EncodingError
	assert.ErrorAs(t, c.Validate(), &encErr)
}

func TestParseCatalog(t *testing.T) {
	const doc = `
entries:
  - label: "extended session"
    service: 0x10
    sub_function: 0x03
  - label: "vin"
    service: 0x22
    parameters: [0xF1, 0x90]
  - service: 0x37
`
	c, err := ParseCatalog(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, c, 3)

	assert.Equal(t, "extended session", c[0].Label)
	assert.Equal(t, []byte{0x10, 0x03}, c[0].Request.Bytes())
	assert.Nil(t, c[1].Request.SubFunction)
	assert.Equal(t, []byte{0x22, 0xF1, 0x90}, c[1].Request.Bytes())
	assert.Equal(t, "RequestTransferExit", c[2].Label, "label defaults to the request")
}

func TestParseCatalogErrors(t *testing.T) {
	tests := map[string]string{
		"empty":         "entries: []",
		"service range": "entries:\n  - service: 256\n",
		"sub range":     "entries:\n  - service: 0x10\n    sub_function: -1\n",
		"param range":   "entries:\n  - service: 0x22\n    parameters: [0x1F1]\n",
		"too long":      "entries:\n  - service: 0x2E\n    parameters: [1, 2, 3, 4, 5, 6, 7]\n",
		"not yaml":      "entries: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCatalog(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestCatalogDumpParse(t *testing.T) {
	want := DefaultCatalog()
	var buf bytes.Buffer
	require.NoError(t, want.Dump(&buf))

	got, err := ParseCatalog(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Label, got[i].Label)
		assert.Equal(t, want[i].Request.Bytes(), got[i].Request.Bytes())
		assert.Equal(t, want[i].Request.SubFunction != nil, got[i].Request.SubFunction != nil)
	}
}
