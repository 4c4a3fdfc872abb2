// Package snippet renders calibration coefficients as source declarations
// that can be pasted into firmware.
package snippet

import (
	"bytes"
	"fmt"
	"sort"

	"magcal-go/calib"
)

var axes = [3]string{"x", "y", "z"}

var formatters = map[string]func(calib.Transform) []byte{
	"c":  formatC,
	"go": formatGo,
}

// Languages lists the supported target languages.
func Languages() []string {
	out := make([]string, 0, len(formatters))
	for k := range formatters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Format renders t for the named language.
func Format(lang string, t calib.Transform) ([]byte, error) {
	f, ok := formatters[lang]
	if !ok {
		return nil, fmt.Errorf("snippet: unknown language %q (have %v)", lang, Languages())
	}
	return f(t), nil
}

// formatC keeps the historical names: soft_iron_bias_<r><c> holds
// SoftIron[c][r], i.e. the matrix is emitted column by column.
func formatC(t calib.Transform) []byte {
	var b bytes.Buffer
	for i, a := range axes {
		fmt.Fprintf(&b, "float hard_iron_bias_%s = %.9g;\n", a, t.Offset[i])
	}
	for c, ac := range axes {
		b.WriteByte('\n')
		for r, ar := range axes {
			fmt.Fprintf(&b, "double soft_iron_bias_%s%s = %.9g;\n", ac, ar, t.SoftIron[r][c])
		}
	}
	return b.Bytes()
}

func formatGo(t calib.Transform) []byte {
	var b bytes.Buffer
	b.WriteString("var (\n")
	fmt.Fprintf(&b, "\tHardIronBias = [3]float64{%.9g, %.9g, %.9g}\n", t.Offset[0], t.Offset[1], t.Offset[2])
	b.WriteString("\tSoftIron     = [3][3]float64{\n")
	for _, row := range t.SoftIron {
		fmt.Fprintf(&b, "\t\t{%.9g, %.9g, %.9g},\n", row[0], row[1], row[2])
	}
	b.WriteString("\t}\n)\n")
	return b.Bytes()
}
