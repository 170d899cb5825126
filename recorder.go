package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// Record is one row of a sweep.
type Record struct {
	Index      int     `csv:"index"`
	MassFlow   float64 `csv:"m_dot"`          // kg/s
	ZoneLoad   float64 `csv:"q_zone"`         // W
	InletTemp  float64 `csv:"inlet_temp"`     // degree C
	WaterTemp  float64 `csv:"water_temp"`     // degree C
	HPOutlet   float64 `csv:"hp_outlet_temp"` // degree C
	OutletTemp float64 `csv:"outlet_temp"`    // degree C
	Approach   float64 `csv:"approach_temp"`  // K
	Reynolds   float64 `csv:"reynolds"`       // -
	RInside    float64 `csv:"r_inside_conv"`  // K/W
	ROutside   float64 `csv:"r_outside_conv"` // K/W
	UA         float64 `csv:"ua"`             // W/K
	CoilDuty   float64 `csv:"q_coil"`         // W
	Iterations int     `csv:"iterations"`
}

// Recorder collects the rows of a sweep. Each point owns its slot, so
// workers may record concurrently without locking.
type Recorder struct {
	name    string
	records []*Record
}

func NewRecorder(name string, n int) *Recorder {
	r := &Recorder{name: name, records: make([]*Record, n)}
	for i := range r.records {
		r.records[i] = &Record{Index: i}
	}
	return r
}

func (r *Recorder) Len() int { return len(r.records) }

func (r *Recorder) At(i int) *Record { return r.records[i] }

func (r *Recorder) Records() []*Record { return r.records }

// Column extracts one value per row.
func (r *Recorder) Column(f func(*Record) float64) []float64 {
	col := make([]float64, len(r.records))
	for i, rec := range r.records {
		col[i] = f(rec)
	}
	return col
}

// Summary logs the range of a column.
func (r *Recorder) Summary(field string, f func(*Record) float64) {
	col := r.Column(f)
	if len(col) == 0 {
		return
	}
	log.WithFields(log.Fields{
		"sweep": r.name,
		"field": field,
		"min":   floats.Min(col),
		"max":   floats.Max(col),
	}).Info("sweep summary")
}

// Export writes the rows to <dir>/<name>.csv and returns the path.
func (r *Recorder) Export(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, r.name+".csv")

	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := gocsv.MarshalFile(&r.records, file); err != nil {
		file.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	log.WithField("path", path).Info("save sweep results")
	return path, nil
}
