package layout

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mynx-softwares/billgen/internal/billing"
	"github.com/mynx-softwares/billgen/internal/model"
)

func testEngine() *Engine {
	e := NewEngine("9741 Preston Road Frisco, TX 75033-2793, (972) 335-2004")
	e.Now = func() time.Time {
		return time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	}
	return e
}

func charge(date, desc, amount string) model.ChargeRecord {
	return model.ChargeRecord{
		PatientID:     "P1",
		PatientName:   "Jane Doe",
		DateOfService: date,
		Code:          "99213",
		CodeDesc:      desc,
		Charges:       amount,
	}
}

func TestRenderStatementSummaryPage(t *testing.T) {
	bill := billing.Aggregate([]model.ChargeRecord{
		charge("2024-01-05", "Office visit", "100.00"),
		charge("2024-01-05", "Lab panel", "50.25"),
	})

	rec := NewRecorder()
	testEngine().RenderStatement(rec, bill)

	// Summary page plus one page per service date.
	require.Equal(t, 2, rec.PageCount())

	assert.True(t, rec.PageContains(0, "PATIENT BILLING STATEMENT"))
	assert.True(t, rec.PageContains(0, "Name: Jane Doe    Patient ID: #P1"))
	assert.True(t, rec.PageContains(0, "BILLING SUMMARY"))
	assert.True(t, rec.PageContains(0, "Total Service Dates: 1"))
	assert.True(t, rec.PageContains(0, "$150.25"))
	assert.True(t, rec.PageContains(0, "Generated on June 01, 2025 at 09:30 AM"))
	assert.True(t, rec.PageContains(0, "Page 1"))

	// No charge rows on the summary page.
	assert.False(t, rec.PageContains(0, "SERVICES & CHARGES"))

	assert.True(t, rec.PageContains(1, "SERVICE DATE: 2024-01-05"))
	assert.True(t, rec.PageContains(1, "SERVICES & CHARGES - 2024-01-05"))
	assert.True(t, rec.PageContains(1, "OFFICE VISIT"), "descriptions render uppercased")
	assert.True(t, rec.PageContains(1, "SUBTOTAL:"))
	assert.True(t, rec.PageContains(1, "Page 2"))
}

func TestRenderStatementICDScopedPerDatePage(t *testing.T) {
	r1 := charge("2024-01-05", "Office visit", "10.00")
	r1.DiagnosisDxs = "E11.9"
	r2 := charge("2024-01-06", "Follow up", "20.00")
	r2.DiagnosisDxs = "Z00.00"
	bill := billing.Aggregate([]model.ChargeRecord{r1, r2})

	rec := NewRecorder()
	testEngine().RenderStatement(rec, bill)
	require.Equal(t, 3, rec.PageCount())

	assert.True(t, rec.PageContains(1, "E11.9"))
	assert.False(t, rec.PageContains(1, "Z00.00"), "date B codes must not leak onto date A's page")
	assert.True(t, rec.PageContains(2, "Z00.00"))
	assert.False(t, rec.PageContains(2, "E11.9"))
}

func TestRenderStatementProviderAndLocation(t *testing.T) {
	r := charge("2024-01-05", "Office visit", "10.00")
	r.RenderingFirst = "Ann"
	r.RenderingLast = "Smith"
	bill := billing.Aggregate([]model.ChargeRecord{r})

	rec := NewRecorder()
	e := testEngine()
	e.RenderStatement(rec, bill)

	assert.True(t, rec.PageContains(1, "Provider: Dr. Ann Smith"))
	assert.True(t, rec.PageContains(1, "Location: "+e.Location))
}

func TestServicesTableOverflowPagination(t *testing.T) {
	// 25 single-line rows cannot fit above the reserved bottom region of
	// one page; the table must continue onto a second page with redrawn
	// headers and still produce the full subtotal.
	var records []model.ChargeRecord
	for i := 0; i < 25; i++ {
		records = append(records, charge("2024-01-05", fmt.Sprintf("Procedure %d", i), "10.00"))
	}
	bill := billing.Aggregate(records)

	rec := NewRecorder()
	testEngine().RenderStatement(rec, bill)

	// Summary page, first table page, continuation page.
	require.Equal(t, 3, rec.PageCount())
	assert.True(t, rec.PageContains(2, "SERVICES & CHARGES - 2024-01-05 (continued)"))
	assert.True(t, rec.PageContains(2, "Description"), "column headers redrawn on continuation page")
	assert.True(t, rec.PageContains(2, "SUBTOTAL:"))
	assert.True(t, rec.PageContains(2, "$250.00"))
	assert.True(t, rec.PageContains(1, "Page 2"))
	assert.True(t, rec.PageContains(2, "Page 3"))
}

func TestDrawServicesTableSubtotalMatchesAggregate(t *testing.T) {
	var records []model.ChargeRecord
	for i := 0; i < 40; i++ {
		records = append(records, charge("2024-01-05", "A very long procedure description that wraps across multiple table lines", "3.33"))
	}
	bill := billing.Aggregate(records)
	require.Len(t, bill.Groups, 1)

	rec := NewRecorder()
	_, _, subtotal := testEngine().drawServicesTable(rec, topY, 1, bill.Groups[0])
	assert.True(t, subtotal.Equal(bill.Groups[0].Subtotal),
		"table subtotal %s != aggregate subtotal %s regardless of page span", subtotal, bill.Groups[0].Subtotal)
	assert.Greater(t, rec.PageCount(), 1)
}

func TestRowDefaults(t *testing.T) {
	r := charge("2024-01-05", "Office visit", "not-a-number")
	bill := billing.Aggregate([]model.ChargeRecord{r})

	rec := NewRecorder()
	testEngine().RenderStatement(rec, bill)

	assert.True(t, rec.PageContains(1, "$0.00"), "bad charge coerces to zero")
	// Missing charge_units renders as "1".
	found := false
	for _, s := range rec.PageText(1) {
		if s == "1" {
			found = true
		}
	}
	assert.True(t, found, "units column defaults to 1")
}

func TestDrawICDSectionSkippedWhenLowSpace(t *testing.T) {
	rec := NewRecorder()
	e := testEngine()

	y := e.drawICDSection(rec, bottomMargin+59, "2024-01-05", []string{"E11.9"})
	assert.Equal(t, bottomMargin+59, y, "cursor unchanged when section is skipped")
	assert.Empty(t, rec.Page(0), "nothing drawn when space is insufficient")
}

func TestDrawICDSectionWrapsLongLists(t *testing.T) {
	var codes []string
	for i := 0; i < 30; i++ {
		codes = append(codes, fmt.Sprintf("E%02d.%d", i, i%10))
	}

	rec := NewRecorder()
	e := testEngine()
	e.drawICDSection(rec, topY, "2024-01-05", codes)

	texts := rec.PageText(0)
	require.NotEmpty(t, texts)
	assert.Contains(t, texts[0], "DIAGNOSIS CODES (ICD) - 2024-01-05:")
	// Wrapped body lines stay within the character budget.
	for _, s := range texts[1:] {
		assert.LessOrEqual(t, len(s), icdCharBudget)
	}
}

func TestDrawICDSectionEmptyList(t *testing.T) {
	rec := NewRecorder()
	testEngine().drawICDSection(rec, topY, "2024-01-05", nil)
	assert.True(t, rec.PageContains(0, "N/A"))
}

func TestRenderDateStatementStandalone(t *testing.T) {
	r := charge("2024-01-05", "Office visit", "42.00")
	bill := billing.Aggregate([]model.ChargeRecord{r})

	rec := NewRecorder()
	testEngine().RenderDateStatement(rec, bill, bill.Groups[0])

	require.Equal(t, 1, rec.PageCount())
	assert.True(t, rec.PageContains(0, "PATIENT BILLING STATEMENT"))
	assert.True(t, rec.PageContains(0, "SERVICES & CHARGES - 2024-01-05"))
	assert.True(t, rec.PageContains(0, "$42.00"))
	assert.True(t, rec.PageContains(0, "Page 1"))
}

func TestWrapWords(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		budget int
		want   []string
	}{
		{"fits", "SHORT TEXT", 35, []string{"SHORT TEXT"}},
		{"empty", "", 35, []string{""}},
		{"wraps greedily", "AAAA BBBB CCCC DDDD", 9, []string{"AAAA BBBB", "CCCC DDDD"}},
		{"long word own line", "AAAAAAAAAAAA BB", 10, []string{"AAAAAAAAAAAA", "BB"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapWords(tt.in, tt.budget))
		})
	}
}

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"150.25", "$150.25"},
		{"1234.5", "$1,234.50"},
		{"1000000", "$1,000,000.00"},
		{"-1234.5", "$-1,234.50"},
	}
	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, formatUSD(d), "input %s", tt.in)
	}
}
