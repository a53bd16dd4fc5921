package pages

import (
	"fmt"
	"strconv"

	"github.com/nfrund/salesdash/internal/view/dto/dashboard"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

// Slider bounds of the prediction inputs.
const (
	AdvertisingMin, AdvertisingMax = 5, 50
	CustomersMin, CustomersMax     = 50, 210
	DiscountMin, DiscountMax       = 2, 20
)

// Dashboard renders the analytics page.
func Dashboard(data dashboard.PageData) g.Node {
	return h.Div(h.Class("dashboard"),
		h.H1(g.Text("📊 Data-Driven Business Insights")),
		h.H3(g.Textf("Welcome, %s", data.Username)),

		h.Div(h.Class("metrics"),
			metric("Average Sales", FormatAverage(data.Summary.AverageSales)),
			metric("Maximum Sales", FormatMetric(data.Summary.MaxSales)),
			metric("Total Customers", FormatMetric(data.Summary.TotalCustomers)),
		),

		h.Section(h.Class("card"),
			h.H2(g.Text("📄 Dataset Preview")),
			h.Div(h.Class("scroll"), Preview(data.Columns, data.Rows)),
		),

		h.Section(h.Class("card"),
			h.H2(g.Text("🔥 Correlation Heatmap")),
			Heatmap(data.Correlation),
		),

		h.Section(h.Class("card"),
			h.H2(g.Text("🤖 Sales Prediction")),
			PredictionForm(data.Prediction),
			PredictionPanel(data.Prediction),
		),
	)
}

func metric(label, value string) g.Node {
	return h.Div(h.Class("metric"),
		h.Div(h.Class("metric-label"), g.Text(label)),
		h.Div(h.Class("metric-value"), g.Text(value)),
	)
}

// Preview renders the full dataset as a table.
func Preview(columns []string, rows [][]string) g.Node {
	return h.Table(h.Class("preview"),
		h.THead(h.Tr(g.Map(columns, func(col string) g.Node { return h.Th(g.Text(col)) }))),
		h.TBody(g.Map(rows, func(row []string) g.Node {
			return h.Tr(g.Map(row, func(cell string) g.Node { return h.Td(g.Text(cell)) }))
		})),
	)
}

// PredictionForm renders the three sliders. Moving a slider refreshes the
// prediction panel through htmx; submitting downloads the PDF report.
func PredictionForm(data dashboard.PredictionData) g.Node {
	in := data.Input
	return h.Form(h.ID("prediction-form"), h.Method("get"), h.Action("/dashboard/report"),
		hx.Get("/dashboard/prediction"),
		hx.Trigger("input delay:150ms"),
		hx.Target("#prediction"),
		hx.Swap("outerHTML"),
		slider("advertising", "Advertising Spend", AdvertisingMin, AdvertisingMax, formatFloat(in.Advertising)),
		slider("customers", "Customers", CustomersMin, CustomersMax, strconv.Itoa(in.Customers)),
		slider("discount", "Discount (%)", DiscountMin, DiscountMax, formatFloat(in.Discount)),
		h.Button(h.Type("submit"), g.Text("📄 Download PDF report")),
	)
}

func slider(name, label string, min, max int, value string) g.Node {
	return h.Div(h.Class("slider"),
		h.Label(h.For(name), g.Text(label), g.Text(": "), h.Span(h.ID(name+"-value"), g.Text(value))),
		h.Input(
			h.Type("range"), h.ID(name), h.Name(name),
			h.Min(strconv.Itoa(min)), h.Max(strconv.Itoa(max)), h.Step("1"),
			h.Value(value),
			g.Attr("oninput", fmt.Sprintf("document.getElementById('%s-value').textContent = this.value", name)),
		),
	)
}

// PredictionPanel renders the forecast, or why it is unavailable. It is also
// the htmx fragment returned while the sliders move.
func PredictionPanel(data dashboard.PredictionData) g.Node {
	if data.Err != nil {
		return h.Div(h.ID("prediction"), h.Class("alert error"),
			g.Textf("Prediction unavailable: %v", data.Err),
		)
	}
	res := data.Result
	return h.Div(h.ID("prediction"),
		h.Div(h.Class("alert success"),
			g.Text("💰 Predicted Sales Value: "+FormatCurrency(data.Currency, res.Value)),
		),
		g.If(res.Model != nil, h.P(h.Class("muted"),
			g.Textf("Linear regression refit on %d rows, R² = %.3f", res.Rows, rSquared(data)),
		)),
	)
}

func rSquared(data dashboard.PredictionData) float64 {
	if data.Result.Model == nil {
		return 0
	}
	return data.Result.Model.RSquared
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
