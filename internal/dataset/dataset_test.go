package dataset

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nfrund/salesdash/internal/domain"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `Sales,Customers,Advertising,Discount,Region
100,50,10,5,north
200,60,20,4,south
300,70,30,3,east
400,80,40,2,west
`

func mustParse(t *testing.T, content string) *Dataset {
	t.Helper()
	ds, err := Parse(strings.NewReader(content))
	require.NoError(t, err)
	return ds
}

func TestParse(t *testing.T) {
	ds := mustParse(t, sample)

	assert.Equal(t, []string{"Sales", "Customers", "Advertising", "Discount", "Region"}, ds.Columns)
	assert.Equal(t, 4, ds.Len())
	assert.Equal(t, []string{"Sales", "Customers", "Advertising", "Discount"}, ds.NumericColumns())

	sales, err := ds.Column(ColSales)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 200, 300, 400}, sales)
}

func TestParse_BOMAndMissingCells(t *testing.T) {
	ds := mustParse(t, "\ufeffSales, Customers\n10,\n20,5\n")

	assert.Equal(t, "Sales", ds.Columns[0])
	customers, err := ds.Column("Customers")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(customers[0]))
	assert.Equal(t, 5.0, customers[1])
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrDataset)

	_, err = Parse(strings.NewReader("Sales,Customers\n1,2,3\n"))
	assert.ErrorIs(t, err, domain.ErrDataset)
}

func TestColumn_Errors(t *testing.T) {
	ds := mustParse(t, sample)

	_, err := ds.Column("Profit")
	assert.ErrorIs(t, err, domain.ErrDataset)
	assert.ErrorContains(t, err, "missing column")

	_, err = ds.Column("Region")
	assert.ErrorIs(t, err, domain.ErrDataset)
	assert.ErrorContains(t, err, "not numeric")
}

func TestMatrix(t *testing.T) {
	ds := mustParse(t, sample)

	m, err := ds.Matrix(ColAdvertising, ColDiscount)
	require.NoError(t, err)
	r, c := m.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 30.0, m.At(2, 0))
	assert.Equal(t, 3.0, m.At(2, 1))

	empty := mustParse(t, "Sales\n")
	_, err = empty.Matrix(ColSales)
	assert.ErrorIs(t, err, domain.ErrDataset)
}

func TestSummary(t *testing.T) {
	ds := mustParse(t, sample)

	s, err := ds.Summary()
	require.NoError(t, err)
	assert.InDelta(t, 250.0, s.AverageSales, 1e-12)
	assert.Equal(t, 400.0, s.MaxSales)
	assert.Equal(t, 260.0, s.TotalCustomers)

	_, err = mustParse(t, "Sales\n1\n").Summary()
	assert.ErrorIs(t, err, domain.ErrDataset)
}

func TestCorrelation(t *testing.T) {
	ds := mustParse(t, sample)

	corr, err := ds.Correlation()
	require.NoError(t, err)
	require.Equal(t, ds.NumericColumns(), corr.Labels)

	n := len(corr.Labels)
	for i := 0; i < n; i++ {
		assert.InDelta(t, 1.0, corr.At(i, i), 1e-12)
		for j := 0; j < n; j++ {
			assert.InDelta(t, corr.At(i, j), corr.At(j, i), 1e-12)
		}
	}
	// Sales rises with Advertising and falls with Discount in the sample.
	assert.InDelta(t, 1.0, corr.At(0, 2), 1e-12)
	assert.InDelta(t, -1.0, corr.At(0, 3), 1e-12)
}

func TestCorrelation_PairwiseComplete(t *testing.T) {
	ds := mustParse(t, "A,B,C\n1,2,\n2,,\n3,6,9\n4,8,\n")

	corr, err := ds.Correlation()
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C"}, corr.Labels)

	// A and B share three complete rows even though C is mostly empty.
	assert.InDelta(t, 1.0, corr.At(0, 1), 1e-12)
	assert.True(t, math.IsNaN(corr.At(0, 2)), "one shared row is not enough")
	assert.True(t, math.IsNaN(corr.At(2, 2)))
	assert.InDelta(t, 1.0, corr.At(0, 0), 1e-12)
}

func TestCorrelation_SingleRow(t *testing.T) {
	corr, err := mustParse(t, "A,B\n1,2\n").Correlation()
	require.NoError(t, err)
	assert.True(t, math.IsNaN(corr.At(0, 1)))
	assert.True(t, math.IsNaN(corr.At(0, 0)))
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "data/business.csv", []byte(sample), 0o644))

	ds, err := Load(fs, "data/business.csv")
	require.NoError(t, err)
	assert.Equal(t, 4, ds.Len())

	_, err = Load(fs, "data/missing.csv")
	assert.ErrorIs(t, err, domain.ErrDataset)
}

type countingSource struct {
	calls int
	err   error
}

func (s *countingSource) Load(ctx context.Context) (*Dataset, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return Parse(strings.NewReader(sample))
}

func TestCache(t *testing.T) {
	src := &countingSource{}
	cache := NewCache(src)
	ctx := context.Background()

	first, err := cache.Load(ctx)
	require.NoError(t, err)
	second, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, src.calls)

	cache.Invalidate()
	assert.Equal(t, uint64(1), cache.Version())

	third, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, src.calls)
}

func TestCache_DoesNotCacheFailures(t *testing.T) {
	src := &countingSource{err: domain.ErrDataset}
	cache := NewCache(src)

	_, err := cache.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrDataset)

	src.err = nil
	_, err = cache.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestCache_WatchInvalidatesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "business.csv")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	cache := NewCache(NewFileSource(afero.NewOsFs(), path))
	_, err := cache.Load(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cache.Watch(ctx, path) }()

	// Keep touching the file until the watcher is registered and reacts.
	assert.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(sample), 0o644)
		return cache.Version() > 0
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}
