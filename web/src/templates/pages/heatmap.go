package pages

import (
	"fmt"
	"math"

	"github.com/nfrund/salesdash/internal/dataset"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Anchor colours of a diverging blue-white-red scale for -1, 0 and +1.
var (
	coolRGB    = [3]float64{59, 76, 192}
	neutralRGB = [3]float64{221, 221, 221}
	warmRGB    = [3]float64{180, 4, 38}
)

// HeatColor maps a correlation coefficient to a CSS colour. NaN is grey.
func HeatColor(r float64) string {
	if math.IsNaN(r) {
		return "rgb(160, 160, 160)"
	}
	r = math.Max(-1, math.Min(1, r))
	from, to, t := neutralRGB, warmRGB, r
	if r < 0 {
		from, to, t = neutralRGB, coolRGB, -r
	}
	var rgb [3]int
	for i := range rgb {
		rgb[i] = int(math.Round(from[i] + (to[i]-from[i])*t))
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb[0], rgb[1], rgb[2])
}

// Heatmap renders an annotated correlation matrix.
func Heatmap(corr dataset.Correlation) g.Node {
	n := len(corr.Labels)
	rows := make([]g.Node, 0, n)
	for i := 0; i < n; i++ {
		cells := []g.Node{h.Th(g.Attr("scope", "row"), g.Text(corr.Labels[i]))}
		for j := 0; j < n; j++ {
			v := corr.At(i, j)
			cells = append(cells, h.Td(
				h.Class("heat"),
				h.Style("background-color: "+HeatColor(v)+"; color: "+textColor(v)),
				h.Title(fmt.Sprintf("%s / %s", corr.Labels[i], corr.Labels[j])),
				g.Text(annotate(v)),
			))
		}
		rows = append(rows, h.Tr(cells...))
	}

	return h.Table(h.Class("heatmap"),
		h.THead(h.Tr(
			h.Th(),
			g.Map(corr.Labels, func(l string) g.Node { return h.Th(g.Attr("scope", "col"), g.Text(l)) }),
		)),
		h.TBody(rows...),
	)
}

func annotate(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return fmt.Sprintf("%.2f", v)
}

func textColor(v float64) string {
	if !math.IsNaN(v) && math.Abs(v) > 0.6 {
		return "#fff"
	}
	return "#222"
}
