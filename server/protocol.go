package server

import (
	"bytes"
	"fmt"
	"strings"

	"magcal-go/calib"
	"magcal-go/samples"
)

// A sample datagram is plain text: one "x,y,z" record per line. Blank lines
// and '#' comments are ignored.

// DecodeDatagram parses every record in data. Each record that fails to parse
// adds one error, naming its line, to errs; it does not stop the rest.
func DecodeDatagram(data []byte) (out []calib.Sample, errs []error) {
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s, err := samples.ParseLine(line)
		if err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i+1, err))
			continue
		}
		out = append(out, s)
	}
	return out, errs
}

// EncodeDatagram renders samples in the datagram layout.
func EncodeDatagram(s []calib.Sample) []byte {
	var b bytes.Buffer
	for _, v := range s {
		fmt.Fprintf(&b, "%g,%g,%g\n", v.X, v.Y, v.Z)
	}
	return b.Bytes()
}
