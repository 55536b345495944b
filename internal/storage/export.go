package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/cartbob/internal/dynamo"
	"github.com/san-kum/cartbob/internal/sim"
)

// Header is the states.csv column layout.
func Header() []string {
	header := []string{"time"}
	header = append(header, dynamo.SnapshotFields...)
	return append(header, inputFields...)
}

// WriteCSV writes one row per snapshot. Row i>0 carries the input that
// produced it.
func WriteCSV(w io.Writer, result *sim.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return err
	}

	for i, snap := range result.Snapshots {
		row := []string{formatFloat(snap.Time)}
		for _, v := range snap.Values() {
			row = append(row, formatFloat(v))
		}

		var in sim.Input
		if i > 0 && i-1 < len(result.Inputs) {
			in = result.Inputs[i-1]
		}
		row = append(row, formatBool(in.Left), formatBool(in.Right), formatBool(in.Boost))

		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

type ExportData struct {
	Run     *RunMetadata       `json:"run,omitempty"`
	Fields  []string           `json:"fields"`
	Times   []float64          `json:"times"`
	States  [][]float64        `json:"states"`
	Inputs  []sim.Input        `json:"inputs"`
	Metrics map[string]float64 `json:"metrics"`
	Steps   int                `json:"steps"`
}

// ExportJSON writes the whole run as one indented JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, result *sim.Result) error {
	data := ExportData{
		Run:     meta,
		Fields:  dynamo.SnapshotFields,
		Times:   result.Times(),
		States:  make([][]float64, len(result.Snapshots)),
		Inputs:  result.Inputs,
		Metrics: result.Metrics,
		Steps:   result.Steps,
	}
	for i, s := range result.Snapshots {
		data.States[i] = s.Values()
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
