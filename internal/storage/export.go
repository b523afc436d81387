package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/projshift/internal/projection"
	"github.com/san-kum/projshift/internal/sim"
)

type ExportFrame struct {
	Index    int           `json:"index"`
	Time     float64       `json:"time"`
	Fraction float64       `json:"fraction"`
	Eased    float64       `json:"eased"`
	Final    bool          `json:"final,omitempty"`
	Matrix   [4][4]float64 `json:"matrix"`
}

type ExportData struct {
	RunMetadata
	Frames []ExportFrame `json:"frames"`
}

// ExportJSON writes metadata and every frame, matrices row-major.
func ExportJSON(w io.Writer, meta RunMetadata, frames []sim.Frame) error {
	data := ExportData{
		RunMetadata: meta,
		Frames:      make([]ExportFrame, len(frames)),
	}

	for i, f := range frames {
		data.Frames[i] = ExportFrame{
			Index:    f.Index,
			Time:     f.Time,
			Fraction: f.Fraction,
			Eased:    f.Eased,
			Final:    f.Final,
			Matrix:   projection.Rows(f.Matrix),
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
