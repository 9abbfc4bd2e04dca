package billing

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mynx-softwares/billgen/internal/model"
)

// Aggregate groups charge records by service date and derives the values
// a statement needs: per-date subtotals, the grand total, diagnosis codes
// scoped to each date, and a provider label per date group.
//
// Group keys sort lexicographically as raw strings. Date tokens that are
// not in a sortable ISO form will therefore paginate out of chronological
// order; callers get the literal ledger ordering semantics.
func Aggregate(records []model.ChargeRecord) model.PatientBill {
	byDate := make(map[string][]model.ChargeRecord)
	for _, rec := range records {
		date := rec.DateOfService
		if date == "" {
			date = model.UnknownDate
		}
		byDate[date] = append(byDate[date], rec)
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	bill := model.PatientBill{GrandTotal: decimal.Zero}
	if len(records) > 0 {
		first := records[0]
		bill.PatientID = first.PatientID
		bill.PatientName = first.PatientName
		bill.Address = first.Address()
	}

	for _, date := range dates {
		group := byDate[date]
		subtotal := decimal.Zero
		for _, rec := range group {
			subtotal = subtotal.Add(rec.ChargeAmount())
		}
		bill.Groups = append(bill.Groups, model.DateGroup{
			Date:          date,
			Records:       group,
			Subtotal:      subtotal,
			ICDCodes:      diagnosisCodes(group),
			ProviderLabel: providerLabel(group),
		})
		bill.GrandTotal = bill.GrandTotal.Add(subtotal)
	}
	return bill
}

// diagnosisCodes extracts the deduplicated, sorted ICD codes from a date
// group. The raw diagnosis_dxs string may carry several codes separated
// by commas and/or whitespace.
func diagnosisCodes(group []model.ChargeRecord) []string {
	seen := make(map[string]bool)
	for _, rec := range group {
		raw := strings.TrimSpace(rec.DiagnosisDxs)
		if raw == "" {
			continue
		}
		for _, tok := range strings.Fields(strings.ReplaceAll(raw, ",", " ")) {
			seen[tok] = true
		}
	}
	if len(seen) == 0 {
		return nil
	}
	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// providerLabel collects the distinct rendering providers across a date
// group, sorted and comma-joined. "N/A" when no record names a provider.
func providerLabel(group []model.ChargeRecord) string {
	seen := make(map[string]bool)
	for _, rec := range group {
		first := strings.TrimSpace(rec.RenderingFirst)
		last := strings.TrimSpace(rec.RenderingLast)
		switch {
		case first != "" && last != "":
			seen["Dr. "+first+" "+last] = true
		case first != "":
			seen["Dr. "+first] = true
		case last != "":
			seen["Dr. "+last] = true
		}
	}
	if len(seen) == 0 {
		return "N/A"
	}
	providers := make([]string, 0, len(seen))
	for p := range seen {
		providers = append(providers, p)
	}
	sort.Strings(providers)
	return strings.Join(providers, ", ")
}
