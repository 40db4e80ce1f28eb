package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/drysim/internal/radial"
)

// Profiles is the tabular content of profiles.csv: the node radii, one
// column per captured hour, and the field at the end of the run.
type Profiles struct {
	Radius  radial.Grid
	Hours   []int
	Columns []radial.Field
	Final   radial.Field
}

// Snapshots re-keys the stored columns by hour.
func (p *Profiles) Snapshots() radial.Snapshots {
	snaps := make(radial.Snapshots, len(p.Hours))
	for i, h := range p.Hours {
		snaps[h] = p.Columns[i]
	}
	return snaps
}

func hourColumn(h int) string { return fmt.Sprintf("h%d", h) }

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func writeProfiles(path string, p *Profiles) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(file)

	header := []string{"radius"}
	for _, h := range p.Hours {
		header = append(header, hourColumn(h))
	}
	header = append(header, "final")
	if err := w.Write(header); err != nil {
		return err
	}

	for i, r := range p.Radius {
		row := []string{formatFloat(r)}
		for _, col := range p.Columns {
			row = append(row, formatFloat(col[i]))
		}
		row = append(row, formatFloat(p.Final[i]))
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// LoadProfiles reads profiles.csv of a stored run.
func (s *Store) LoadProfiles(runID string) (*Profiles, error) {
	path, err := s.runFile(runID, profilesFile)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("run %s: empty %s", runID, profilesFile)
	}

	header := records[0]
	if len(header) < 2 || header[0] != "radius" || header[len(header)-1] != "final" {
		return nil, fmt.Errorf("run %s: unexpected header %v", runID, header)
	}

	p := &Profiles{}
	for _, name := range header[1 : len(header)-1] {
		h, err := strconv.Atoi(strings.TrimPrefix(name, "h"))
		if err != nil {
			return nil, fmt.Errorf("run %s: bad column %q", runID, name)
		}
		p.Hours = append(p.Hours, h)
		p.Columns = append(p.Columns, make(radial.Field, 0, len(records)-1))
	}

	for line, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, cell := range record {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("run %s: line %d: %w", runID, line+2, err)
			}
			vals[j] = v
		}
		p.Radius = append(p.Radius, vals[0])
		for j := range p.Columns {
			p.Columns[j] = append(p.Columns[j], vals[j+1])
		}
		p.Final = append(p.Final, vals[len(vals)-1])
	}

	return p, nil
}

// ExportCSV copies a run's profiles.csv to path.
func (s *Store) ExportCSV(runID, path string) error {
	src, err := s.runFile(runID, profilesFile)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return err
	}
	return os.WriteFile(path, data, 0644)
}
