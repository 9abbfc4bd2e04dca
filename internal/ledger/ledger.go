package ledger

import (
	"bufio"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mynx-softwares/billgen/internal/model"
)

// Store reads charge records from a pipe-delimited financials ledger.
// The ledger is treated as immutable, already-correct input: every lookup
// re-scans the file, and a missing or unreadable file degrades to "no
// records" rather than failing the request.
type Store struct {
	path string
	log  zerolog.Logger
}

// NewStore creates a Store over the ledger file at path.
func NewStore(path string, log zerolog.Logger) *Store {
	return &Store{path: path, log: log}
}

// Path returns the configured ledger file path.
func (s *Store) Path() string { return s.path }

// FindRecords scans the ledger and returns every record whose patient_id
// matches patientID case-insensitively. The first line names the columns;
// data lines whose column count differs from the header are skipped.
// Returns an empty slice when the ledger is absent or unreadable.
func (s *Store) FindRecords(patientID string) []model.ChargeRecord {
	f, err := os.Open(s.path)
	if err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("ledger unavailable, treating as empty")
		return nil
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			s.log.Warn().Err(err).Str("path", s.path).Msg("reading ledger header")
		}
		return nil
	}
	header := splitRow(sc.Text())

	var records []model.ChargeRecord
	for sc.Scan() {
		cols := splitRow(sc.Text())
		if len(cols) != len(header) {
			continue
		}
		rec := makeRecord(header, cols)
		if strings.EqualFold(rec.PatientID, patientID) {
			records = append(records, rec)
		}
	}
	if err := sc.Err(); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("reading ledger, returning partial result")
	}
	return records
}

func splitRow(line string) []string {
	return strings.Split(strings.TrimRight(line, "\r\n"), "|")
}

// makeRecord maps header columns onto a ChargeRecord positionally.
// Header names are matched case-insensitively; unknown columns are
// ignored and missing columns leave fields empty.
func makeRecord(header, cols []string) model.ChargeRecord {
	var rec model.ChargeRecord
	for i, name := range header {
		v := cols[i]
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "patient_id":
			rec.PatientID = v
		case "patient_name":
			rec.PatientName = v
		case "patient_address1":
			rec.PatientAddress1 = v
		case "patient_city":
			rec.PatientCity = v
		case "patient_state":
			rec.PatientState = v
		case "patient_zip":
			rec.PatientZip = v
		case "date_of_service":
			rec.DateOfService = v
		case "rendering_first_name":
			rec.RenderingFirst = v
		case "rendering_last_name":
			rec.RenderingLast = v
		case "code":
			rec.Code = v
		case "code_desc":
			rec.CodeDesc = v
		case "code_modifier_1":
			rec.CodeModifier1 = v
		case "charge_units", "chargeunits":
			rec.ChargeUnits = v
		case "charges":
			rec.Charges = v
		case "diagnosis_dxs":
			rec.DiagnosisDxs = v
		}
	}
	return rec
}
