package dashboard

import (
	"github.com/nfrund/salesdash/internal/dataset"
	"github.com/nfrund/salesdash/internal/prediction"
)

// PredictionData is the View Model of the prediction panel. Exactly one of
// Result and Err is meaningful.
type PredictionData struct {
	Input    prediction.Input
	Result   prediction.Result
	Err      error
	Currency string
}

// PageData is the View Model of the dashboard page.
type PageData struct {
	Username    string
	Summary     dataset.Summary
	Columns     []string
	Rows        [][]string
	Correlation dataset.Correlation
	Prediction  PredictionData
}
