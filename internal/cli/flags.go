package cli

import (
	"github.com/matzehuels/waferlabel/pkg/layout"
	"github.com/matzehuels/waferlabel/pkg/units"
)

// vecFlag is a pflag.Value for "x,y" distances in real-world units.
type vecFlag struct{ v *units.Vec }

func (f vecFlag) String() string {
	if f.v == nil {
		return ""
	}
	return f.v.String()
}

func (f vecFlag) Set(s string) error {
	v, err := units.ParseVec(s)
	if err != nil {
		return err
	}
	*f.v = v
	return nil
}

func (vecFlag) Type() string { return "x,y" }

// layerFlag is a pflag.Value for "layer/datatype".
type layerFlag struct{ l *layout.LayerInfo }

func (f layerFlag) String() string {
	if f.l == nil {
		return ""
	}
	return f.l.String()
}

func (f layerFlag) Set(s string) error { return f.l.UnmarshalText([]byte(s)) }

func (layerFlag) Type() string { return "layer/datatype" }

// pair converts v to the array form used in job files.
func pair(v units.Vec) [2]float64 { return [2]float64{v.X, v.Y} }
