// Package dataset loads the read-only business dataset and derives the summary
// metrics and correlation matrix shown on the dashboard.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/nfrund/salesdash/internal/domain"
	"github.com/spf13/afero"
	"gonum.org/v1/gonum/mat"
)

// Column names the dashboard depends on.
const (
	ColSales       = "Sales"
	ColCustomers   = "Customers"
	ColAdvertising = "Advertising"
	ColDiscount    = "Discount"
)

// Dataset is a parsed CSV table. Cells are kept verbatim for the preview; columns
// whose non-empty cells all parse as numbers are also available as float64 slices,
// with empty cells represented as NaN.
type Dataset struct {
	Columns []string
	Rows    [][]string

	numeric      map[string][]float64
	numericOrder []string
}

// Load reads and parses the CSV file at path.
func Load(fs afero.Fs, path string) (*Dataset, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrDataset, path, err)
	}
	defer f.Close()

	ds, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Parse reads a CSV table with a header row.
func Parse(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", domain.ErrDataset)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataset, err)
	}

	ds := &Dataset{Columns: make([]string, len(head))}
	for i, h := range head {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		ds.Columns[i] = h
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrDataset, err)
		}
		ds.Rows = append(ds.Rows, rec)
	}

	ds.indexNumeric()
	return ds, nil
}

func (d *Dataset) indexNumeric() {
	d.numeric = make(map[string][]float64, len(d.Columns))
	for j, name := range d.Columns {
		values := make([]float64, len(d.Rows))
		seen := false
		numeric := true
		for i, row := range d.Rows {
			cell := strings.TrimSpace(row[j])
			if cell == "" {
				values[i] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				numeric = false
				break
			}
			values[i] = v
			seen = true
		}
		if numeric && seen {
			d.numeric[name] = values
			d.numericOrder = append(d.numericOrder, name)
		}
	}
}

// Len returns the number of data rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// NumericColumns lists the numeric columns in file order.
func (d *Dataset) NumericColumns() []string {
	return d.numericOrder
}

// Column returns the values of a numeric column. A missing or non-numeric
// column is a domain.ErrDataset.
func (d *Dataset) Column(name string) ([]float64, error) {
	values, ok := d.numeric[name]
	if ok {
		return values, nil
	}
	for _, c := range d.Columns {
		if c == name {
			return nil, fmt.Errorf("%w: column %q is not numeric", domain.ErrDataset, name)
		}
	}
	return nil, fmt.Errorf("%w: missing column %q", domain.ErrDataset, name)
}

// Matrix returns the named numeric columns as a rows×len(names) matrix.
func (d *Dataset) Matrix(names ...string) (*mat.Dense, error) {
	if d.Len() == 0 {
		return nil, fmt.Errorf("%w: no rows", domain.ErrDataset)
	}
	m := mat.NewDense(d.Len(), len(names), nil)
	for j, name := range names {
		values, err := d.Column(name)
		if err != nil {
			return nil, err
		}
		m.SetCol(j, values)
	}
	return m, nil
}
