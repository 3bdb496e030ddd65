package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/motion/internal/config"
	"github.com/san-kum/motion/internal/dynamo"
)

type ExportData struct {
	Scenario   string             `json:"scenario"`
	Integrator string             `json:"integrator"`
	Dims       int                `json:"dims"`
	Frame      float64            `json:"frame"`
	Duration   float64            `json:"duration"`
	Frames     int                `json:"frames"`
	Times      []float64          `json:"times"`
	Values     [][]float64        `json:"values"`
	Velocities [][]float64        `json:"velocities"`
	Events     []dynamo.Event     `json:"events"`
	Metrics    map[string]float64 `json:"metrics"`
}

func ExportJSON(path string, cfg *config.Config, result *dynamo.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, cfg, result)
}

func WriteJSON(w io.Writer, cfg *config.Config, result *dynamo.Result) error {
	data := ExportData{
		Scenario:   cfg.Name,
		Integrator: cfg.Integrator,
		Dims:       cfg.Dims,
		Frame:      cfg.Frame,
		Duration:   cfg.Duration,
		Frames:     len(result.Times),
		Times:      result.Times,
		Values:     result.Values,
		Velocities: result.Velocities,
		Events:     result.Events,
		Metrics:    result.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
