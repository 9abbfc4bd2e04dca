package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ChargeRecord is one billable service line from the financials ledger.
// Every field is optional at the storage level; a column absent from the
// ledger header leaves the field empty.
type ChargeRecord struct {
	PatientID       string
	PatientName     string
	PatientAddress1 string
	PatientCity     string
	PatientState    string
	PatientZip      string
	DateOfService   string // opaque date token, never parsed
	RenderingFirst  string
	RenderingLast   string
	Code            string
	CodeDesc        string
	CodeModifier1   string
	ChargeUnits     string
	Charges         string
	DiagnosisDxs    string // raw ICD token string, comma/space separated
}

// ChargeAmount parses the Charges field. Unparseable or missing amounts
// coerce to zero rather than erroring.
func (r ChargeRecord) ChargeAmount() decimal.Decimal {
	s := strings.TrimSpace(r.Charges)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Units returns the charge units, defaulting to "1" when empty.
func (r ChargeRecord) Units() string {
	if strings.TrimSpace(r.ChargeUnits) == "" {
		return "1"
	}
	return r.ChargeUnits
}

// Address joins the non-empty address parts with commas.
func (r ChargeRecord) Address() string {
	parts := []string{
		strings.TrimSpace(r.PatientAddress1),
		strings.TrimSpace(r.PatientCity),
		strings.TrimSpace(r.PatientState),
		strings.TrimSpace(r.PatientZip),
	}
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
