package scan

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udsscan/udsscan/pkg/uds"
)

// catalogFile is the YAML form of a catalog:
//
//	entries:
//	  - label: "Diagnostic Session Control: extended"
//	    service: 0x10
//	    sub_function: 0x03
//	  - label: "Read Data By Identifier: VIN"
//	    service: 0x22
//	    parameters: [0xF1, 0x90]
type catalogFile struct {
	Entries []catalogFileEntry `yaml:"entries"`
}

type catalogFileEntry struct {
	Label       string `yaml:"label"`
	Service     int    `yaml:"service"`
	SubFunction *int   `yaml:"sub_function,omitempty"`
	Parameters  []int  `yaml:"parameters,omitempty"`
}

// LoadCatalog reads a YAML catalog from path
func LoadCatalog(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	c, err := ParseCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func ParseCatalog(r io.Reader) (Catalog, error) {
	var cf catalogFile
	if err := yaml.NewDecoder(r).Decode(&cf); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(cf.Entries) == 0 {
		return nil, fmt.Errorf("catalog has no entries")
	}
	out := make(Catalog, 0, len(cf.Entries))
	for i, e := range cf.Entries {
		sid, err := toByte(e.Service)
		if err != nil {
			return nil, fmt.Errorf("entry %d service: %w", i, err)
		}
		req := uds.Request{ServiceID: sid}
		if e.SubFunction != nil {
			sub, err := toByte(*e.SubFunction)
			if err != nil {
				return nil, fmt.Errorf("entry %d sub_function: %w", i, err)
			}
			req.SubFunction = uds.Sub(sub)
		}
		for j, p := range e.Parameters {
			b, err := toByte(p)
			if err != nil {
				return nil, fmt.Errorf("entry %d parameter %d: %w", i, j, err)
			}
			req.Parameters = append(req.Parameters, b)
		}
		label := e.Label
		if label == "" {
			label = req.String()
		}
		out = append(out, Entry{Label: label, Request: req})
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// Dump writes c in the format understood by ParseCatalog
func (c Catalog) Dump(w io.Writer) error {
	cf := catalogFile{Entries: make([]catalogFileEntry, 0, len(c))}
	for _, e := range c {
		fe := catalogFileEntry{
			Label:   e.Label,
			Service: int(e.Request.ServiceID),
		}
		if e.Request.SubFunction != nil {
			sub := int(*e.Request.SubFunction)
			fe.SubFunction = &sub
		}
		for _, p := range e.Request.Parameters {
			fe.Parameters = append(fe.Parameters, int(p))
		}
		cf.Entries = append(cf.Entries, fe)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&cf); err != nil {
		return err
	}
	return enc.Close()
}

func toByte(v int) (byte, error) {
	if v < 0 || v > 0xFF {
		return 0, fmt.Errorf("value %d out of byte range", v)
	}
	return byte(v), nil
}
