package prediction

import (
	"context"
	"fmt"

	"github.com/nfrund/salesdash/internal/dataset"
)

// Features are the regressors, in the order Input.Vector returns them.
var Features = []string{dataset.ColAdvertising, dataset.ColCustomers, dataset.ColDiscount}

// Response is the predicted column.
const Response = dataset.ColSales

// Input is the slider-controlled feature triple. The bounds in the validate tags
// are those of the UI controls; the pipeline itself does not enforce them.
type Input struct {
	Advertising float64 `query:"advertising" form:"advertising" validate:"gte=5,lte=50"`
	Customers   int     `query:"customers"   form:"customers"   validate:"gte=50,lte=210"`
	Discount    float64 `query:"discount"    form:"discount"    validate:"gte=2,lte=20"`
}

// DefaultInput returns the initial slider positions.
func DefaultInput() Input {
	return Input{Advertising: 20, Customers: 100, Discount: 8}
}

// Vector returns the input in Features order.
func (in Input) Vector() []float64 {
	return []float64{in.Advertising, float64(in.Customers), in.Discount}
}

// Result is a single forecast together with the model that produced it.
type Result struct {
	Input Input
	Value float64
	Model *Model
	// Rows is the number of training rows.
	Rows int
}

// Pipeline loads the dataset from its source and refits the model on every call.
type Pipeline struct {
	src dataset.Source
}

// NewPipeline creates a Pipeline reading from src.
func NewPipeline(src dataset.Source) *Pipeline {
	return &Pipeline{src: src}
}

// Predict fits Sales ~ Advertising + Customers + Discount on the whole dataset
// and evaluates the fit at in. Dataset problems surface as domain.ErrDataset,
// training problems as domain.ErrFit.
func (p *Pipeline) Predict(ctx context.Context, in Input) (Result, error) {
	ds, err := p.src.Load(ctx)
	if err != nil {
		return Result{}, err
	}
	return PredictFrom(ds, in)
}

// PredictFrom runs the fit on an already loaded dataset.
func PredictFrom(ds *dataset.Dataset, in Input) (Result, error) {
	x, err := ds.Matrix(Features...)
	if err != nil {
		return Result{}, err
	}
	y, err := ds.Column(Response)
	if err != nil {
		return Result{}, err
	}

	model, err := Fit(x, y)
	if err != nil {
		return Result{}, err
	}

	value, err := model.Predict(in.Vector())
	if err != nil {
		return Result{}, fmt.Errorf("evaluate model: %w", err)
	}
	return Result{Input: in, Value: value, Model: model, Rows: ds.Len()}, nil
}
