package config

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/physlab/internal/dynamo"
)

// ParseError reports a value that is not a number.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: cannot parse %q as a number", e.Field, e.Value)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseFloat reads a number typed by hand. Surrounding space is ignored and a
// comma is accepted as the decimal separator.
func ParseFloat(field, s string) (float64, error) {
	v := strings.TrimSpace(s)
	if strings.Contains(v, ",") && !strings.Contains(v, ".") {
		v = strings.Replace(v, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, &ParseError{Field: field, Value: s, Err: err}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &ParseError{Field: field, Value: s, Err: errNotFinite}
	}
	return f, nil
}

var errNotFinite = errors.New("not a finite number")

var bodyColumns = []string{"mass", "radius", "x", "y", "z", "vx", "vy", "vz"}

// ParseBodyTable reads bodies from a CSV table with a header row naming the
// columns mass, radius, x, y, z, vx, vy, vz and optionally color, in any
// order. A header containing ';' switches the delimiter so that decimal
// commas can be used.
func ParseBodyTable(r io.Reader) ([]BodyConfig, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := string(data)

	cr := csv.NewReader(strings.NewReader(text))
	if header, _, _ := strings.Cut(text, "\n"); strings.Contains(header, ";") {
		cr.Comma = ';'
	}
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range bodyColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q: %w", col, dynamo.ErrDimensionMismatch)
		}
	}

	var bodies []BodyConfig
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if errors.Is(err, csv.ErrFieldCount) {
			return nil, fmt.Errorf("row %d: %w", row, dynamo.ErrDimensionMismatch)
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		vals := make([]float64, len(bodyColumns))
		for k, col := range bodyColumns {
			v, err := ParseFloat(fmt.Sprintf("row %d %s", row, col), rec[index[col]])
			if err != nil {
				return nil, err
			}
			vals[k] = v
		}
		b := BodyConfig{
			Mass:     vals[0],
			Radius:   vals[1],
			Position: [3]float64{vals[2], vals[3], vals[4]},
			Velocity: [3]float64{vals[5], vals[6], vals[7]},
		}
		if i, ok := index["color"]; ok {
			b.Color = strings.TrimSpace(rec[i])
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}
