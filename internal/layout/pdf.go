package layout

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// PDFCanvas renders canvas operations into a PDF document via fpdf.
// fpdf measures y downward from the top edge, so every call converts from
// the engine's bottom-up coordinates.
type PDFCanvas struct {
	pdf *fpdf.Fpdf
}

// NewPDFCanvas creates a US Letter portrait canvas with the first page
// already open. Automatic page breaking is disabled: pagination is the
// layout engine's job.
func NewPDFCanvas() *PDFCanvas {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.AddPage()
	return &PDFCanvas{pdf: pdf}
}

func (p *PDFCanvas) SetFont(f Font) {
	p.pdf.SetFont(f.Family, f.Style, f.Size)
}

func (p *PDFCanvas) SetLineWidth(w float64) {
	p.pdf.SetLineWidth(w)
}

func (p *PDFCanvas) DrawString(x, y float64, s string) {
	p.pdf.Text(x, pageHeight-y, s)
}

func (p *PDFCanvas) DrawCentered(x, y float64, s string) {
	p.pdf.Text(x-p.pdf.GetStringWidth(s)/2, pageHeight-y, s)
}

func (p *PDFCanvas) DrawRightAligned(x, y float64, s string) {
	p.pdf.Text(x-p.pdf.GetStringWidth(s), pageHeight-y, s)
}

func (p *PDFCanvas) Line(x1, y1, x2, y2 float64) {
	p.pdf.Line(x1, pageHeight-y1, x2, pageHeight-y2)
}

func (p *PDFCanvas) Rect(x, y, w, h float64) {
	p.pdf.Rect(x, pageHeight-y-h, w, h, "D")
}

func (p *PDFCanvas) NewPage() {
	p.pdf.AddPage()
}

// Bytes closes the document and returns the rendered PDF.
func (p *PDFCanvas) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering PDF: %w", err)
	}
	return buf.Bytes(), nil
}
