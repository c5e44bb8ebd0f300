package layout

import (
	"fmt"
	"math"

	"github.com/matzehuels/waferlabel/pkg/errors"
)

// Label cell identity as understood by the host's cell library.
const (
	LabelCellKind    = "TEXT"
	LabelCellLibrary = "Basic"
)

// LabelStyle fully determines a drawable label cell. It is comparable and
// serves as the host's cache key: equal styles share one cell.
type LabelStyle struct {
	Layer         LayerInfo `json:"layer"`
	Magnification float64   `json:"mag"`
	Text          string    `json:"text"`
}

// Validate checks the style before any cell is requested.
func (s LabelStyle) Validate() error {
	if err := s.Layer.Validate(); err != nil {
		return err
	}
	if math.IsNaN(s.Magnification) || math.IsInf(s.Magnification, 0) || s.Magnification <= 0 {
		return errors.New(errors.ErrCodeInvalidSpec, "magnification must be positive, got %v", s.Magnification)
	}
	return errors.ValidateLabelText(s.Text)
}

// String formats the style for logs, e.g. `"AGK001" 1/0 x600`.
func (s LabelStyle) String() string {
	return fmt.Sprintf("%q %s x%g", s.Text, s.Layer, s.Magnification)
}
