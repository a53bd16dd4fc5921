package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/salesdash/internal/dataset"
	"github.com/nfrund/salesdash/internal/domain"
	"github.com/nfrund/salesdash/internal/gate"
	"github.com/nfrund/salesdash/internal/metrics"
	"github.com/nfrund/salesdash/internal/middleware"
	"github.com/nfrund/salesdash/internal/prediction"
	"github.com/nfrund/salesdash/internal/rendering"
	"github.com/nfrund/salesdash/internal/report"
	"github.com/nfrund/salesdash/internal/view/dto/dashboard"
	"github.com/nfrund/salesdash/web/src/templates/pages"
)

// DashboardHandler serves the analytics page, its live prediction fragment and
// the PDF report download.
type DashboardHandler struct {
	source   dataset.Source
	pipeline *prediction.Pipeline
	emitter  *report.Emitter
	renderer rendering.Renderer
	metrics  *metrics.Metrics
	currency string
}

// DashboardDependencies holds the collaborators of a DashboardHandler.
type DashboardDependencies struct {
	Source   dataset.Source
	Pipeline *prediction.Pipeline
	Emitter  *report.Emitter
	Renderer rendering.Renderer
	Metrics  *metrics.Metrics
	// Currency prefixes the prediction on the page.
	Currency string
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(deps DashboardDependencies) *DashboardHandler {
	return &DashboardHandler{
		source:   deps.Source,
		pipeline: deps.Pipeline,
		emitter:  deps.Emitter,
		renderer: deps.Renderer,
		metrics:  deps.Metrics,
		currency: deps.Currency,
	}
}

// DashboardGet renders the full page. A dataset that cannot be loaded aborts
// the view; a model that cannot be fitted only disables the prediction panel.
func (h *DashboardHandler) DashboardGet(c echo.Context) error {
	ctx := c.Request().Context()
	in, err := bindInput(c)
	if err != nil {
		return err
	}

	ds, err := h.source.Load(ctx)
	if err != nil {
		return err
	}
	summary, err := ds.Summary()
	if err != nil {
		return err
	}
	corr, err := ds.Correlation()
	if err != nil {
		return err
	}

	panel, err := h.predict(c, in)
	if err != nil {
		return err
	}

	data := dashboard.PageData{
		Username:    gate.FromContext(ctx).Username,
		Summary:     summary,
		Columns:     ds.Columns,
		Rows:        ds.Rows,
		Correlation: corr,
		Prediction:  panel,
	}
	return renderPage(c, h.renderer, string(gate.ViewDashboard), pages.Dashboard(data))
}

// PredictionGet returns only the prediction panel for the slider values in the
// query. Out-of-range values are shown in the panel rather than failing the
// request, so htmx swaps them in.
func (h *DashboardHandler) PredictionGet(c echo.Context) error {
	in, err := bindInput(c)
	var panel dashboard.PredictionData
	switch {
	case errors.Is(err, domain.ErrValidation):
		panel = dashboard.PredictionData{Input: in, Err: err, Currency: h.currency}
	case err != nil:
		return err
	default:
		panel, err = h.predict(c, in)
		if err != nil {
			return err
		}
	}
	return h.renderer.RenderPage(c, http.StatusOK, pages.PredictionPanel(panel))
}

// ReportGet runs the prediction for the query's slider values, writes the PDF
// report to its fixed path and streams it back as an attachment.
func (h *DashboardHandler) ReportGet(c echo.Context) error {
	ctx := c.Request().Context()
	in, err := bindInput(c)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := h.pipeline.Predict(ctx, in)
	h.metrics.Prediction(start, err)
	if err != nil {
		return err
	}

	data, err := h.emitter.Publish(ctx, res.Value)
	h.metrics.Report(err)
	if err != nil {
		return err
	}
	middleware.FromContext(ctx).Info("Report emitted", "path", h.emitter.Path(), "prediction", res.Value)
	return attachment(c, filepath.Base(h.emitter.Path()), "application/pdf", data)
}

// predict runs the pipeline and folds fit failures into the panel. Any other
// error is returned.
func (h *DashboardHandler) predict(c echo.Context, in prediction.Input) (dashboard.PredictionData, error) {
	start := time.Now()
	res, err := h.pipeline.Predict(c.Request().Context(), in)
	h.metrics.Prediction(start, err)

	panel := dashboard.PredictionData{Input: in, Result: res, Currency: h.currency}
	if errors.Is(err, domain.ErrFit) {
		middleware.FromContext(c.Request().Context()).Warn("Prediction unavailable", "error", err)
		panel.Err = err
		return panel, nil
	}
	return panel, err
}

// bindInput reads the slider triple from the query, starting from the default
// positions so missing parameters keep them.
func bindInput(c echo.Context) (prediction.Input, error) {
	in := prediction.DefaultInput()
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &in); err != nil {
		return prediction.DefaultInput(), fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := c.Validate(&in); err != nil {
		return in, err
	}
	return in, nil
}
