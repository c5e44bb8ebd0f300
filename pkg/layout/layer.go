package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/waferlabel/pkg/errors"
)

// LayerInfo identifies a drawing layer by GDS layer and datatype numbers.
type LayerInfo struct {
	Layer    int
	Datatype int
}

// Layer is shorthand for LayerInfo{Layer: layer, Datatype: datatype}.
func Layer(layer, datatype int) LayerInfo {
	return LayerInfo{Layer: layer, Datatype: datatype}
}

// String formats the layer as "layer/datatype".
func (l LayerInfo) String() string {
	return fmt.Sprintf("%d/%d", l.Layer, l.Datatype)
}

// Validate rejects negative layer or datatype numbers.
func (l LayerInfo) Validate() error {
	if l.Layer < 0 || l.Datatype < 0 {
		return errors.New(errors.ErrCodeInvalidLayer, "layer numbers must not be negative: %s", l)
	}
	return nil
}

// ParseLayer parses "layer/datatype" or a bare "layer" (datatype 0).
func ParseLayer(s string) (LayerInfo, error) {
	ls, ds, hasDatatype := strings.Cut(strings.TrimSpace(s), "/")
	layer, err := strconv.Atoi(strings.TrimSpace(ls))
	if err != nil {
		return LayerInfo{}, errors.New(errors.ErrCodeInvalidLayer, "invalid layer %q", s)
	}
	datatype := 0
	if hasDatatype {
		datatype, err = strconv.Atoi(strings.TrimSpace(ds))
		if err != nil {
			return LayerInfo{}, errors.New(errors.ErrCodeInvalidLayer, "invalid datatype in layer %q", s)
		}
	}
	l := LayerInfo{Layer: layer, Datatype: datatype}
	if err := l.Validate(); err != nil {
		return LayerInfo{}, err
	}
	return l, nil
}

// MarshalText implements encoding.TextMarshaler so layers read as "1/0" in
// job and design files.
func (l LayerInfo) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *LayerInfo) UnmarshalText(text []byte) error {
	parsed, err := ParseLayer(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
