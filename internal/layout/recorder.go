package layout

import "strings"

// Op is a single recorded canvas operation.
type Op struct {
	Kind string // "text", "center", "right", "line", "rect"
	X, Y float64
	Text string
	Font Font
}

// Recorder is a Canvas that captures operations per page instead of
// rendering them. It lets layout tests assert on what was drawn where
// without a real drawing surface.
type Recorder struct {
	pages [][]Op
	font  Font
}

// NewRecorder creates a Recorder with one open page.
func NewRecorder() *Recorder {
	return &Recorder{pages: make([][]Op, 1)}
}

func (r *Recorder) record(op Op) {
	op.Font = r.font
	last := len(r.pages) - 1
	r.pages[last] = append(r.pages[last], op)
}

func (r *Recorder) SetFont(f Font)       { r.font = f }
func (r *Recorder) SetLineWidth(float64) {}

func (r *Recorder) DrawString(x, y float64, s string) {
	r.record(Op{Kind: "text", X: x, Y: y, Text: s})
}

func (r *Recorder) DrawCentered(x, y float64, s string) {
	r.record(Op{Kind: "center", X: x, Y: y, Text: s})
}

func (r *Recorder) DrawRightAligned(x, y float64, s string) {
	r.record(Op{Kind: "right", X: x, Y: y, Text: s})
}

func (r *Recorder) Line(x1, y1, x2, y2 float64) {
	r.record(Op{Kind: "line", X: x1, Y: y1})
}

func (r *Recorder) Rect(x, y, w, h float64) {
	r.record(Op{Kind: "rect", X: x, Y: y})
}

func (r *Recorder) NewPage() {
	r.pages = append(r.pages, nil)
}

func (r *Recorder) Bytes() ([]byte, error) { return nil, nil }

// PageCount returns the number of pages drawn so far.
func (r *Recorder) PageCount() int { return len(r.pages) }

// Page returns the ops recorded on page i (0-based).
func (r *Recorder) Page(i int) []Op { return r.pages[i] }

// PageText returns every text string drawn on page i, in draw order.
func (r *Recorder) PageText(i int) []string {
	var out []string
	for _, op := range r.pages[i] {
		if op.Kind == "text" || op.Kind == "center" || op.Kind == "right" {
			out = append(out, op.Text)
		}
	}
	return out
}

// PageContains reports whether any text on page i contains substr.
func (r *Recorder) PageContains(i int, substr string) bool {
	for _, s := range r.PageText(i) {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
