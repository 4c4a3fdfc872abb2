package calib

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is a calibration profile. Command-line flags override it.
type Config struct {
	// Field is the target magnitude in raw units. When zero it is derived
	// from TotalNT and the sensor gain, falling back to DefaultField.
	Field   float64 `yaml:"field"`
	TotalNT float64 `yaml:"total_nt"`
	Gain    float64 `yaml:"gain"`
	RangeGa float64 `yaml:"range_ga"`

	Input       string `yaml:"input"`
	Output      string `yaml:"output"`
	Lang        string `yaml:"lang"`
	Chart       string `yaml:"chart"`
	Projections string `yaml:"projections"`
}

// DefaultConfig reads mag_out.txt and writes out.txt.
func DefaultConfig() Config {
	return Config{
		Input:  "mag_out.txt",
		Output: "out.txt",
		Lang:   "c",
	}
}

// LoadConfig reads a YAML profile on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	cfg, err := ParseConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes a YAML profile on top of DefaultConfig.
func ParseConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, err
	}
	return cfg, nil
}

// TargetField resolves the field magnitude the profile asks for.
func (c Config) TargetField() (float64, error) {
	if c.Field != 0 {
		return c.Field, checkField(c.Field)
	}
	if c.TotalNT == 0 {
		return DefaultField, nil
	}
	gain := c.Gain
	if gain == 0 {
		g, err := GainForRange(c.RangeGa)
		if err != nil {
			return 0, err
		}
		gain = g
	}
	return FieldFromTotal(c.TotalNT, gain)
}
