package statement

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mynx-softwares/billgen/internal/billing"
	"github.com/mynx-softwares/billgen/internal/layout"
	"github.com/mynx-softwares/billgen/internal/ledger"
)

// ErrNoRecords signals that the ledger holds no rows for the requested
// patient. Callers map it to a not-found response instead of a server
// error.
var ErrNoRecords = errors.New("no records found")

// Artifact is a finished, downloadable document.
type Artifact struct {
	Data        []byte
	Filename    string
	ContentType string
}

// Generator orchestrates the reader, aggregator and layout engine into
// finished statement artifacts. It holds no per-request state.
type Generator struct {
	store  *ledger.Store
	engine *layout.Engine
	log    zerolog.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(store *ledger.Store, engine *layout.Engine, log zerolog.Logger) *Generator {
	return &Generator{store: store, engine: engine, log: log}
}

// Build produces the merged multi-page statement PDF for one patient.
// Returns ErrNoRecords when the ledger has no matching rows.
func (g *Generator) Build(patientID string) (Artifact, error) {
	records := g.store.FindRecords(patientID)
	if len(records) == 0 {
		return Artifact{}, fmt.Errorf("patient %s: %w", patientID, ErrNoRecords)
	}

	bill := billing.Aggregate(records)
	g.log.Debug().
		Str("patient_id", patientID).
		Int("records", len(records)).
		Int("service_dates", bill.DateCount()).
		Str("grand_total", bill.GrandTotal.StringFixed(2)).
		Msg("aggregated patient charges")

	canvas := layout.NewPDFCanvas()
	g.engine.RenderStatement(canvas, bill)
	data, err := canvas.Bytes()
	if err != nil {
		return Artifact{}, fmt.Errorf("building statement for %s: %w", patientID, err)
	}

	return Artifact{
		Data:        data,
		Filename:    SafeName(patientID) + "_bill.pdf",
		ContentType: "application/pdf",
	}, nil
}

// BuildArchive produces one standalone statement per service date,
// packaged as a zip with one entry per date.
func (g *Generator) BuildArchive(patientID string) (Artifact, error) {
	records := g.store.FindRecords(patientID)
	if len(records) == 0 {
		return Artifact{}, fmt.Errorf("patient %s: %w", patientID, ErrNoRecords)
	}

	bill := billing.Aggregate(records)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, group := range bill.Groups {
		canvas := layout.NewPDFCanvas()
		g.engine.RenderDateStatement(canvas, bill, group)
		data, err := canvas.Bytes()
		if err != nil {
			return Artifact{}, fmt.Errorf("building statement for %s on %s: %w", patientID, group.Date, err)
		}

		name := fmt.Sprintf("%s_%s_bill.pdf", SafeName(patientID), SafeName(group.Date))
		w, err := zw.Create(name)
		if err != nil {
			return Artifact{}, fmt.Errorf("adding %s to archive: %w", name, err)
		}
		if _, err := w.Write(data); err != nil {
			return Artifact{}, fmt.Errorf("writing %s to archive: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return Artifact{}, fmt.Errorf("finalizing archive for %s: %w", patientID, err)
	}

	return Artifact{
		Data:        buf.Bytes(),
		Filename:    SafeName(patientID) + "_bills.zip",
		ContentType: "application/zip",
	}, nil
}

// SafeName makes a token filesystem-safe: spaces become underscores,
// slashes become hyphens.
func SafeName(s string) string {
	r := strings.NewReplacer(" ", "_", "/", "-", "\\", "-")
	return r.Replace(s)
}
