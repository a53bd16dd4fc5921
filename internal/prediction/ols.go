// Package prediction fits an ordinary least squares model on the business dataset
// and evaluates it at a slider-supplied feature triple.
package prediction

import (
	"fmt"
	"math"

	"github.com/nfrund/salesdash/internal/domain"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Model is a fitted linear model y = Intercept + Σ Coefficients[j]·x[j].
type Model struct {
	Intercept    float64
	Coefficients []float64
	// Rank is the numerical rank of the centred design matrix. A rank below
	// len(Coefficients) means the columns were collinear and the minimum-norm
	// solution was chosen.
	Rank     int
	RSquared float64
}

// Fit estimates an OLS model with intercept from the rows of x and the response y.
//
// The columns and the response are centred, the centred system is solved by SVD
// with singular values below max(n, p)·ε·σmax treated as zero, and the intercept is
// recovered from the means. For rank-deficient x this yields the minimum-norm
// coefficient vector. Fewer than p+1 rows, non-finite values or a failed
// factorization are reported as domain.ErrFit.
func Fit(x mat.Matrix, y []float64) (*Model, error) {
	n, p := x.Dims()
	if len(y) != n {
		return nil, fmt.Errorf("%w: %d rows but %d responses", domain.ErrFit, n, len(y))
	}
	if p == 0 {
		return nil, fmt.Errorf("%w: no features", domain.ErrFit)
	}
	if n < p+1 {
		return nil, fmt.Errorf("%w: need at least %d rows for %d features, have %d", domain.ErrFit, p+1, p, n)
	}
	if hasNonFinite(y) {
		return nil, fmt.Errorf("%w: response contains missing or non-finite values", domain.ErrFit)
	}

	means := make([]float64, p)
	xc := mat.NewDense(n, p, nil)
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		mat.Col(col, j, x)
		if hasNonFinite(col) {
			return nil, fmt.Errorf("%w: feature %d contains missing or non-finite values", domain.ErrFit, j)
		}
		means[j] = stat.Mean(col, nil)
		for i := range col {
			xc.Set(i, j, col[i]-means[j])
		}
	}

	yMean := stat.Mean(y, nil)
	yc := mat.NewVecDense(n, nil)
	for i, v := range y {
		yc.SetVec(i, v-yMean)
	}

	var svd mat.SVD
	if ok := svd.Factorize(xc, mat.SVDThin); !ok {
		return nil, fmt.Errorf("%w: singular value decomposition did not converge", domain.ErrFit)
	}

	rcond := float64(max(n, p)) * epsilon
	rank := svd.Rank(rcond)

	coef := make([]float64, p)
	if rank > 0 {
		var beta mat.VecDense
		svd.SolveVecTo(&beta, yc, rank)
		for j := range coef {
			coef[j] = beta.AtVec(j)
		}
	}

	m := &Model{
		Intercept:    yMean - floats.Dot(means, coef),
		Coefficients: coef,
		Rank:         rank,
	}
	m.RSquared = m.rSquared(x, y, yMean)
	return m, nil
}

// epsilon is the float64 machine epsilon.
const epsilon = 2.220446049250313e-16

// Predict evaluates the model at features.
func (m *Model) Predict(features []float64) (float64, error) {
	if len(features) != len(m.Coefficients) {
		return 0, fmt.Errorf("model has %d coefficients, got %d features", len(m.Coefficients), len(features))
	}
	return m.Intercept + floats.Dot(m.Coefficients, features), nil
}

func (m *Model) rSquared(x mat.Matrix, y []float64, yMean float64) float64 {
	n, p := x.Dims()
	row := make([]float64, p)
	var ssRes, ssTot float64
	for i := 0; i < n; i++ {
		mat.Row(row, i, x)
		fitted := m.Intercept + floats.Dot(m.Coefficients, row)
		ssRes += (y[i] - fitted) * (y[i] - fitted)
		ssTot += (y[i] - yMean) * (y[i] - yMean)
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}

func hasNonFinite(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}
