package layout

// Font selects a typeface for subsequent text operations. Family and
// Style follow the PDF core font conventions ("Helvetica", "B", "I").
type Font struct {
	Family string
	Style  string
	Size   float64
}

var (
	fontTitle       = Font{Family: "Helvetica", Style: "B", Size: 16}
	fontSection     = Font{Family: "Helvetica", Style: "B", Size: 12}
	fontNormal      = Font{Family: "Helvetica", Size: 11}
	fontSmall       = Font{Family: "Helvetica", Size: 9}
	fontTableHeader = Font{Family: "Helvetica", Style: "B", Size: 10}
	fontFooter      = Font{Family: "Helvetica", Style: "I", Size: 9}
)

// Canvas is the drawing surface the layout engine writes to. Coordinates
// are PDF points with the origin at the bottom-left of a US Letter page;
// y grows upward. The engine owns all layout decisions, so a Canvas only
// needs dumb placement primitives. The production implementation renders
// a PDF; tests inject a Recorder.
type Canvas interface {
	SetFont(f Font)
	SetLineWidth(w float64)
	DrawString(x, y float64, s string)
	DrawCentered(x, y float64, s string)
	DrawRightAligned(x, y float64, s string)
	Line(x1, y1, x2, y2 float64)
	// Rect strokes a rectangle with (x, y) at its bottom-left corner.
	Rect(x, y, w, h float64)
	NewPage()
	Bytes() ([]byte, error)
}
