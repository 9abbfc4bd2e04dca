package model

import "github.com/shopspring/decimal"

// UnknownDate is the grouping key for records with no date_of_service.
const UnknownDate = "Unknown_Date"

// DateGroup holds every charge for one service date, plus values derived
// from those charges.
type DateGroup struct {
	Date          string
	Records       []ChargeRecord
	Subtotal      decimal.Decimal
	ICDCodes      []string // deduplicated, sorted
	ProviderLabel string   // "Dr. First Last, Dr. Other" or "N/A"
}

// PatientBill is the per-request aggregate for one patient: charge groups
// ordered by service date string, with a grand total across all groups.
type PatientBill struct {
	PatientID   string
	PatientName string
	Address     string
	Groups      []DateGroup
	GrandTotal  decimal.Decimal
}

// DateCount returns the number of distinct service dates on the bill.
func (b PatientBill) DateCount() int {
	return len(b.Groups)
}
