package prediction

import (
	"math"
	"testing"

	"github.com/nfrund/salesdash/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// exactRows satisfy y = 3 + 2a + 0.5c - 1.5d with no noise.
var exactRows = [][]float64{
	{10, 60, 4},
	{20, 80, 6},
	{15, 120, 2},
	{40, 90, 12},
	{35, 200, 18},
	{5, 150, 9},
}

func exactSystem() (*mat.Dense, []float64) {
	x := mat.NewDense(len(exactRows), 3, nil)
	y := make([]float64, len(exactRows))
	for i, r := range exactRows {
		x.SetRow(i, r)
		y[i] = 3 + 2*r[0] + 0.5*r[1] - 1.5*r[2]
	}
	return x, y
}

func TestFit_RecoversExactCoefficients(t *testing.T) {
	x, y := exactSystem()

	m, err := Fit(x, y)
	require.NoError(t, err)

	assert.InDelta(t, 3.0, m.Intercept, 1e-9)
	require.Len(t, m.Coefficients, 3)
	assert.InDelta(t, 2.0, m.Coefficients[0], 1e-9)
	assert.InDelta(t, 0.5, m.Coefficients[1], 1e-9)
	assert.InDelta(t, -1.5, m.Coefficients[2], 1e-9)
	assert.Equal(t, 3, m.Rank)
	assert.InDelta(t, 1.0, m.RSquared, 1e-12)

	got, err := m.Predict([]float64{20, 100, 8})
	require.NoError(t, err)
	assert.InDelta(t, 3+40+50-12.0, got, 1e-9)
}

func TestFit_IsDeterministic(t *testing.T) {
	x, y := exactSystem()

	first, err := Fit(x, y)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Fit(x, y)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestFit_InsufficientRows(t *testing.T) {
	x := mat.NewDense(3, 3, []float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 10,
	})
	_, err := Fit(x, []float64{1, 2, 3})
	assert.ErrorIs(t, err, domain.ErrFit)
}

func TestFit_MissingValues(t *testing.T) {
	x, y := exactSystem()

	withNaN := mat.DenseCopyOf(x)
	withNaN.Set(2, 1, math.NaN())
	_, err := Fit(withNaN, y)
	assert.ErrorIs(t, err, domain.ErrFit)

	badY := append([]float64(nil), y...)
	badY[0] = math.Inf(1)
	_, err = Fit(x, badY)
	assert.ErrorIs(t, err, domain.ErrFit)
}

func TestFit_ShapeMismatch(t *testing.T) {
	x, y := exactSystem()
	_, err := Fit(x, y[:3])
	assert.ErrorIs(t, err, domain.ErrFit)
}

func TestFit_CollinearUsesMinimumNorm(t *testing.T) {
	// Second column is twice the first; y equals the first column.
	x := mat.NewDense(4, 2, []float64{
		1, 2,
		2, 4,
		3, 6,
		4, 8,
	})
	y := []float64{1, 2, 3, 4}

	m, err := Fit(x, y)
	require.NoError(t, err)

	assert.Equal(t, 1, m.Rank)
	// b1 + 2·b2 = 1 with minimal ‖b‖ gives (1/5, 2/5).
	assert.InDelta(t, 0.2, m.Coefficients[0], 1e-9)
	assert.InDelta(t, 0.4, m.Coefficients[1], 1e-9)
	assert.InDelta(t, 0.0, m.Intercept, 1e-9)

	got, err := m.Predict([]float64{10, 20})
	require.NoError(t, err)
	assert.InDelta(t, 10.0, got, 1e-9)
}

func TestFit_ConstantFeatures(t *testing.T) {
	x := mat.NewDense(3, 1, []float64{5, 5, 5})
	y := []float64{1, 2, 6}

	m, err := Fit(x, y)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Rank)
	assert.Equal(t, 0.0, m.Coefficients[0])
	assert.InDelta(t, 3.0, m.Intercept, 1e-12)
	assert.Equal(t, 0.0, m.RSquared)
}

func TestPredict_WrongArity(t *testing.T) {
	x, y := exactSystem()
	m, err := Fit(x, y)
	require.NoError(t, err)

	_, err = m.Predict([]float64{1, 2})
	assert.Error(t, err)
}
