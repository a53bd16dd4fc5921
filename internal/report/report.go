// Package report renders the one-page prediction report as a PDF.
package report

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/nfrund/salesdash/internal/domain"
	"github.com/spf13/afero"
)

const (
	Title       = "Business Analytics Prediction Report"
	Attribution = "Generated using Go & Machine Learning"

	fontFamily = "Helvetica"
	fontSize   = 14
	leftMargin = 100
)

// Baselines of the three lines, in points from the bottom of an A4 page.
var baselines = [3]float64{800, 760, 720}

// Emitter writes the report to a fixed path, replacing the previous one.
type Emitter struct {
	fs       afero.Fs
	path     string
	currency string
	now      func() time.Time
}

// NewEmitter creates an Emitter writing to path on fs. currency prefixes the
// predicted value; it must be representable in the PDF core fonts (cp1252).
func NewEmitter(fs afero.Fs, path, currency string) *Emitter {
	return &Emitter{fs: fs, path: path, currency: currency, now: time.Now}
}

// Path returns the fixed output location.
func (e *Emitter) Path() string {
	return e.path
}

// Render produces the PDF bytes for prediction without writing them anywhere.
func (e *Emitter) Render(prediction float64) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	// Keep the content stream readable so the values can be found in the file.
	pdf.SetCompression(false)
	pdf.SetCreationDate(e.now())
	pdf.SetTitle(Title, false)
	pdf.SetCreator("salesdash", false)
	pdf.AddPage()
	pdf.SetFont(fontFamily, "", fontSize)

	_, pageHeight := pdf.GetPageSize()
	for i, line := range Lines(e.currency, prediction) {
		pdf.Text(leftMargin, pageHeight-baselines[i], line)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

// Emit renders the report and writes it to the fixed path, overwriting any
// previous report. Write failures are reported as domain.ErrIO.
func (e *Emitter) Emit(ctx context.Context, prediction float64) (string, error) {
	if _, err := e.Publish(ctx, prediction); err != nil {
		return "", err
	}
	return e.path, nil
}

// Publish is Emit that also returns the written bytes, for streaming the
// report back to a browser.
func (e *Emitter) Publish(ctx context.Context, prediction float64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := e.Render(prediction)
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(e.path); dir != "." {
		if err := e.fs.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: create %s: %v", domain.ErrIO, dir, err)
		}
	}
	if err := afero.WriteFile(e.fs, e.path, data, 0o644); err != nil {
		return nil, fmt.Errorf("%w: write %s: %v", domain.ErrIO, e.path, err)
	}
	return data, nil
}

// Lines returns the three text lines of the report.
func Lines(currency string, prediction float64) [3]string {
	value := fmt.Sprintf("%.2f", prediction)
	if currency != "" {
		value = currency + " " + value
	}
	return [3]string{
		Title,
		"Predicted Sales Value: " + value,
		Attribution,
	}
}
