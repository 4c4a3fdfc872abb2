package samples

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"magcal-go/calib"
)

// ErrMalformed is wrapped by every parse failure.
var ErrMalformed = errors.New("samples: malformed record")

// Parser loads a sample file: comma-separated x,y,z triples, one per line.
// Blank lines and lines starting with '#' are skipped.
type Parser struct {
	Path    string
	Samples []calib.Sample
}

func NewParser(path string) *Parser {
	return &Parser{Path: path}
}

func (p *Parser) Parse() error {
	f, err := os.Open(p.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return fmt.Errorf("%s: %w", p.Path, err)
	}
	p.Samples = s
	return nil
}

// Read parses every record from r.
func Read(r io.Reader) ([]calib.Sample, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var out []calib.Sample
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%v: %w", err, ErrMalformed)
		}
		line, _ := cr.FieldPos(0)
		s, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, s)
	}
}

// ParseLine parses a single "x,y,z" record.
func ParseLine(line string) (calib.Sample, error) {
	return parseRecord(strings.Split(strings.TrimSpace(line), ","))
}

func parseRecord(rec []string) (calib.Sample, error) {
	if len(rec) != 3 {
		return calib.Sample{}, fmt.Errorf("%d fields, want 3: %w", len(rec), ErrMalformed)
	}
	var v [3]float64
	for i, field := range rec {
		f, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return calib.Sample{}, fmt.Errorf("field %d %q: %w", i+1, field, ErrMalformed)
		}
		v[i] = f
	}
	return calib.Sample{X: v[0], Y: v[1], Z: v[2]}, nil
}
