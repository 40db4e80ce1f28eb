package storage

import (
	"encoding/json"
	"io"
	"math"
	"strconv"
)

type ExportData struct {
	Run       RunMetadata    `json:"run"`
	Radius    Values         `json:"radius"`
	Snapshots map[int]Values `json:"snapshots"`
	Final     Values         `json:"final"`
}

// Values encodes NaN and ±Inf as null so diverged runs still export.
type Values []float64

func (v Values) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	buf := []byte{'['}
	for i, x := range v {
		if i > 0 {
			buf = append(buf, ',')
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			buf = append(buf, "null"...)
			continue
		}
		buf = strconv.AppendFloat(buf, x, 'g', -1, 64)
	}
	return append(buf, ']'), nil
}

func NewExportData(meta *RunMetadata, p *Profiles) *ExportData {
	data := &ExportData{
		Run:       *meta,
		Radius:    Values(p.Radius),
		Snapshots: make(map[int]Values, len(p.Hours)),
		Final:     Values(p.Final),
	}
	for i, h := range p.Hours {
		data.Snapshots[h] = Values(p.Columns[i])
	}
	return data
}

func ExportJSON(w io.Writer, meta *RunMetadata, p *Profiles) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewExportData(meta, p))
}
