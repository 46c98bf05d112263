package driver

import (
	"encoding/json"
	"io"

	"hdlgraph/internal/observ"
)

// TimingPayload is the --timings JSON record for one file.
type TimingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// Timings collects the per-file payloads of a batch.
func Timings(results []FileResult) []TimingPayload {
	out := make([]TimingPayload, 0, len(results))
	for i := range results {
		r := &results[i]
		out = append(out, TimingPayload{
			Kind:    "file",
			Path:    r.Name,
			TotalMS: r.Timing.TotalMS,
			Phases:  r.Timing.Phases,
		})
	}
	return out
}

// WriteTimingsJSON writes one JSON object per line.
func WriteTimingsJSON(w io.Writer, results []FileResult) error {
	enc := json.NewEncoder(w)
	for _, p := range Timings(results) {
		if err := enc.Encode(p); err != nil {
			return err
		}
	}
	return nil
}
