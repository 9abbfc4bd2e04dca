package layout

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mynx-softwares/billgen/internal/model"
)

// Page geometry in points (US Letter portrait).
const (
	pageWidth    = 612.0
	pageHeight   = 792.0
	marginLeft   = 50.0
	marginRight  = 50.0
	bottomMargin = 80.0 // reserved for the footer
	topY         = pageHeight - 60
)

// Character budgets for the width-approximate word wrapping. These count
// raw characters, not glyph widths.
const (
	descCharBudget = 35
	icdCharBudget  = 75
)

var tableHeaders = []string{"Sr.", "Date", "Code", "Description", "Modifier", "Units", "Charge"}

// tableColX holds the fixed x-offset of each services-table column.
var tableColX = []float64{
	marginLeft,
	marginLeft + 30,
	marginLeft + 85,
	marginLeft + 130,
	marginLeft + 380,
	marginLeft + 440,
	marginLeft + 485,
}

// Engine lays out billing statements onto a Canvas. Drawing operations
// take the vertical cursor in and return the advanced cursor out, so the
// pagination state machine is explicit and testable.
type Engine struct {
	// Location is the facility address printed on every statement.
	Location string
	// Now supplies the footer timestamp; tests pin it.
	Now func() time.Time
}

// NewEngine creates an Engine for the given facility location.
func NewEngine(location string) *Engine {
	return &Engine{Location: location, Now: time.Now}
}

// RenderStatement draws the merged multi-page statement: a summary page
// with the grand total, then one section per service date in sorted
// order. Table overflow inserts continuation pages; diagnosis codes stay
// scoped to their own date's pages.
func (e *Engine) RenderStatement(c Canvas, bill model.PatientBill) {
	page := 1
	y := topY
	y = e.drawTitle(c, y, "PATIENT BILLING STATEMENT")
	y = e.drawPatientInfo(c, y, bill)
	e.drawSummaryBox(c, y, bill)
	e.drawFooter(c, page)

	for _, g := range bill.Groups {
		c.NewPage()
		page++
		y = topY

		c.SetFont(fontTitle)
		c.DrawCentered(pageWidth/2, y, "SERVICE DATE: "+g.Date)
		y -= 50

		y = e.drawProviderInfo(c, y, g.ProviderLabel)
		y, page, _ = e.drawServicesTable(c, y, page, g)
		y = e.drawICDSection(c, y, g.Date, g.ICDCodes)
		e.drawFooter(c, page)
	}
}

// RenderDateStatement draws one self-contained statement for a single
// service date (the per-date archive variant). The page counter starts at
// 1 for every date.
func (e *Engine) RenderDateStatement(c Canvas, bill model.PatientBill, g model.DateGroup) {
	page := 1
	y := topY
	y = e.drawTitle(c, y, "PATIENT BILLING STATEMENT")
	y = e.drawPatientInfo(c, y, bill)
	y = e.drawProviderInfo(c, y, g.ProviderLabel)
	y, page, _ = e.drawServicesTable(c, y, page, g)
	y = e.drawICDSection(c, y, g.Date, g.ICDCodes)
	e.drawFooter(c, page)
}

func (e *Engine) drawTitle(c Canvas, y float64, title string) float64 {
	c.SetFont(fontTitle)
	c.DrawCentered(pageWidth/2, y, title)
	return y - 40
}

func (e *Engine) drawPatientInfo(c Canvas, y float64, bill model.PatientBill) float64 {
	name := bill.PatientName
	if name == "" {
		name = "N/A"
	}
	pid := bill.PatientID
	if pid == "" {
		pid = "N/A"
	}

	c.SetFont(fontSection)
	c.DrawString(marginLeft, y, "PATIENT INFORMATION")
	y -= 20
	c.SetFont(fontNormal)
	c.DrawString(marginLeft, y, fmt.Sprintf("Name: %s    Patient ID: #%s", name, pid))
	y -= 18
	c.DrawString(marginLeft, y, "Address: "+bill.Address)
	return y - 30
}

func (e *Engine) drawSummaryBox(c Canvas, y float64, bill model.PatientBill) float64 {
	c.SetFont(fontSection)
	c.DrawString(marginLeft, y, "BILLING SUMMARY")
	y -= 25

	const boxWidth, boxHeight = 400.0, 80.0
	c.SetLineWidth(1)
	c.Rect(marginLeft, y-boxHeight, boxWidth, boxHeight)

	c.SetFont(fontNormal)
	y -= 20
	c.DrawString(marginLeft+15, y, fmt.Sprintf("Total Service Dates: %d", bill.DateCount()))
	y -= 20
	c.DrawString(marginLeft+15, y, "Total Amount Due:")

	c.SetFont(fontTitle)
	c.DrawString(marginLeft+200, y, formatUSD(bill.GrandTotal))

	y -= 25
	c.SetFont(fontSmall)
	c.DrawString(marginLeft+15, y, "Detailed billing information for each service date follows on subsequent pages.")
	return y - 40
}

func (e *Engine) drawProviderInfo(c Canvas, y float64, provider string) float64 {
	c.SetFont(fontSection)
	c.DrawString(marginLeft, y, "PROVIDER INFORMATION")
	y -= 20
	c.SetFont(fontNormal)
	c.DrawString(marginLeft, y, "Provider: "+provider)
	y -= 18
	c.DrawString(marginLeft, y, "Location: "+e.Location)
	return y - 30
}

// drawServicesTable draws the charge rows for one date group, breaking to
// continuation pages when a row's estimated footprint would cross into
// the reserved bottom region. Returns the advanced cursor, the current
// page number, and the group subtotal.
func (e *Engine) drawServicesTable(c Canvas, y float64, page int, g model.DateGroup) (float64, int, decimal.Decimal) {
	heading := "SERVICES & CHARGES - " + g.Date

	c.SetFont(fontSection)
	c.DrawString(marginLeft, y, heading)
	y -= 25
	y = e.drawTableHeaders(c, y)

	subtotal := decimal.Zero
	c.SetFont(fontSmall)
	for i, rec := range g.Records {
		amount := rec.ChargeAmount()
		subtotal = subtotal.Add(amount)

		desc := strings.ToUpper(strings.TrimSpace(rec.CodeDesc))
		descLines := wrapWords(desc, descCharBudget)

		// Estimated footprint: 12pt per description line plus padding
		// for the subtotal and diagnosis block that must still fit.
		est := float64(12*len(descLines) + 80)
		if y-est < bottomMargin+60 {
			e.drawFooter(c, page)
			c.NewPage()
			page++
			y = topY

			c.SetFont(fontSection)
			c.DrawString(marginLeft, y, heading+" (continued)")
			y -= 25
			y = e.drawTableHeaders(c, y)
			c.SetFont(fontSmall)
		}

		cells := []string{
			strconv.Itoa(i + 1),
			rec.DateOfService,
			rec.Code,
			descLines[0],
			rec.CodeModifier1,
			rec.Units(),
			formatUSD(amount),
		}
		for j, cell := range cells {
			c.DrawString(tableColX[j], y, cell)
		}
		for _, line := range descLines[1:] {
			y -= 12
			c.DrawString(tableColX[3], y, line)
		}
		y -= 18
	}

	y -= 10
	c.SetLineWidth(0.5)
	c.Line(marginLeft, y, pageWidth-marginRight, y)
	y -= 15

	c.SetFont(fontTableHeader)
	chargeColX := tableColX[6]
	c.DrawRightAligned(chargeColX-10, y, "SUBTOTAL:")
	c.DrawString(chargeColX, y, formatUSD(subtotal))

	return y - 25, page, subtotal
}

func (e *Engine) drawTableHeaders(c Canvas, y float64) float64 {
	c.SetFont(fontTableHeader)
	for i, h := range tableHeaders {
		c.DrawString(tableColX[i], y, h)
	}
	y -= 15
	c.SetLineWidth(0.5)
	c.Line(marginLeft, y, pageWidth-marginRight, y)
	return y - 10
}

// drawICDSection draws the wrapped diagnosis-code list for one service
// date. When the remaining vertical space is below the minimum the whole
// section is silently skipped and the cursor returned unchanged.
func (e *Engine) drawICDSection(c Canvas, y float64, date string, codes []string) float64 {
	const minSpace = 60.0
	if y < bottomMargin+minSpace {
		return y
	}

	c.SetFont(fontSection)
	c.DrawString(marginLeft, y, "DIAGNOSIS CODES (ICD) - "+date+":")
	y -= 20

	text := "N/A"
	if len(codes) > 0 {
		text = strings.Join(codes, ", ")
	}

	c.SetFont(fontSmall)
	if len(text) <= icdCharBudget {
		c.DrawString(marginLeft, y, text)
		y -= 15
		return y - 15
	}

	cur := ""
	truncated := false
	for _, code := range strings.Split(text, ", ") {
		test := code
		if cur != "" {
			test = cur + ", " + code
		}
		if len(test) <= icdCharBudget {
			cur = test
			continue
		}
		if cur != "" {
			c.DrawString(marginLeft, y, cur)
			y -= 15
			if y < bottomMargin+20 {
				truncated = true
				break
			}
		}
		cur = code
	}
	if cur != "" && !truncated && y >= bottomMargin+20 {
		c.DrawString(marginLeft, y, cur)
		y -= 15
	}
	return y - 15
}

// drawFooter stamps the render timestamp and page number at a fixed
// position, independent of the cursor.
func (e *Engine) drawFooter(c Canvas, page int) {
	ts := e.Now().Format("January 02, 2006 at 03:04 PM")
	c.SetFont(fontFooter)
	c.DrawString(marginLeft, 30, "Generated on "+ts)
	c.DrawRightAligned(pageWidth-marginRight, 30, fmt.Sprintf("Page %d", page))
}

// wrapWords greedily packs words into lines of at most budget characters.
// A single word longer than the budget gets its own line.
func wrapWords(s string, budget int) []string {
	if len(s) <= budget {
		return []string{s}
	}
	var lines []string
	cur := ""
	for _, w := range strings.Fields(s) {
		test := w
		if cur != "" {
			test = cur + " " + w
		}
		if len(test) <= budget {
			cur = test
			continue
		}
		if cur != "" {
			lines = append(lines, cur)
		}
		cur = w
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

// formatUSD renders an amount like $1,234.50 with thousands separators.
func formatUSD(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	intPart, frac := s[:len(s)-3], s[len(s)-3:]

	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	return "$" + sign + b.String() + frac
}
