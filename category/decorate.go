package category

import (
	"github.com/HyungjinO/k-novel-dashboard/engine"
	domainerrors "github.com/HyungjinO/k-novel-dashboard/internal/errors"
)

// Decorate maps every valid cell of col to "{icon} {label}". Codes outside the
// vocabulary come through unchanged and null cells stay null. The input column
// is not modified.
func Decorate(col engine.Column, d Dimension) (engine.Column, error) {
	if !d.Valid() {
		return nil, domainerrors.UnknownDimension(d.Name())
	}
	vocab := registry[d]
	out := make(engine.Column, len(col))
	for i, cell := range col {
		if !cell.Valid {
			continue
		}
		if e, ok := vocab[cell.Value]; ok {
			out[i] = engine.Text(e.Display())
		} else {
			out[i] = cell
		}
	}
	return out, nil
}

// DecorateName is Decorate keyed by a dimension name ("전개", "plot" or
// "primary_plot").
func DecorateName(col engine.Column, name string) (engine.Column, error) {
	d, err := ParseDimension(name)
	if err != nil {
		return nil, err
	}
	return Decorate(col, d)
}
