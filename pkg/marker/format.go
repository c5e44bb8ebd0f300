package marker

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/matzehuels/waferlabel/pkg/errors"
)

// DefaultSerialFormat zero-pads serial numbers to three digits.
const DefaultSerialFormat = "AGK%03d"

// verbRegex matches one printf directive: flags, width, precision and verb.
var verbRegex = regexp.MustCompile(`%[-+# 0]*[0-9]*(?:\.[0-9]*)?([a-zA-Z%])`)

// Formatter renders serial numbers with a printf-style format holding
// exactly one integer verb (d, x, X, o or b).
type Formatter struct {
	format string
}

// NewFormatter validates format and returns a Formatter for it.
// Literal percent signs are written as %%.
func NewFormatter(format string) (Formatter, error) {
	if format == "" {
		return Formatter{}, errors.New(errors.ErrCodeInvalidFormat, "serial format cannot be empty")
	}
	verbs := 0
	for _, m := range verbRegex.FindAllStringSubmatch(format, -1) {
		switch m[1] {
		case "%":
			continue
		case "d", "x", "X", "o", "b":
			verbs++
		default:
			return Formatter{}, errors.New(errors.ErrCodeInvalidFormat,
				"serial format %q uses %%%s; only integer verbs are allowed", format, m[1])
		}
	}
	if verbs != 1 {
		return Formatter{}, errors.New(errors.ErrCodeInvalidFormat,
			"serial format %q must contain exactly one integer verb, found %d", format, verbs)
	}
	if stripped := verbRegex.ReplaceAllString(format, ""); strings.Contains(stripped, "%") {
		return Formatter{}, errors.New(errors.ErrCodeInvalidFormat, "serial format %q has a dangling %%", format)
	}
	return Formatter{format: format}, nil
}

// Format renders n, e.g. 1 -> "AGK001" for "AGK%03d".
func (f Formatter) Format(n int) string {
	return fmt.Sprintf(f.format, n)
}

// String returns the underlying format.
func (f Formatter) String() string { return f.format }
