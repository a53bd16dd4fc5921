package dataset

import (
	"fmt"
	"math"

	"github.com/nfrund/salesdash/internal/domain"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Summary holds the three headline metrics of the dashboard.
type Summary struct {
	AverageSales   float64
	MaxSales       float64
	TotalCustomers float64
}

// Summary computes mean and max of Sales and the sum of Customers, skipping
// missing cells.
func (d *Dataset) Summary() (Summary, error) {
	sales, err := d.Column(ColSales)
	if err != nil {
		return Summary{}, err
	}
	customers, err := d.Column(ColCustomers)
	if err != nil {
		return Summary{}, err
	}

	sales = present(sales)
	if len(sales) == 0 {
		return Summary{}, fmt.Errorf("%w: column %q has no values", domain.ErrDataset, ColSales)
	}

	return Summary{
		AverageSales:   stat.Mean(sales, nil),
		MaxSales:       floats.Max(sales),
		TotalCustomers: floats.Sum(present(customers)),
	}, nil
}

// Correlation is a Pearson correlation matrix over the numeric columns.
type Correlation struct {
	Labels []string
	Values *mat.SymDense
}

// At returns the coefficient between columns i and j.
func (c Correlation) At(i, j int) float64 {
	return c.Values.At(i, j)
}

// Correlation computes Pearson coefficients over every numeric column. Each
// pair uses the rows where both columns have a value; pairs with fewer than two
// such rows, or with a constant column, are NaN.
func (d *Dataset) Correlation() (Correlation, error) {
	labels := d.NumericColumns()
	if len(labels) == 0 {
		return Correlation{}, fmt.Errorf("%w: no numeric columns", domain.ErrDataset)
	}

	corr := mat.NewSymDense(len(labels), nil)
	for i, a := range labels {
		for j := i; j < len(labels); j++ {
			corr.SetSym(i, j, pearson(d.numeric[a], d.numeric[labels[j]]))
		}
	}
	return Correlation{Labels: labels, Values: corr}, nil
}

// pearson correlates x and y over the indices where neither is missing.
func pearson(x, y []float64) float64 {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}

func present(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
