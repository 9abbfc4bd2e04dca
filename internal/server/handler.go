package server

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mynx-softwares/billgen/internal/ledger"
	"github.com/mynx-softwares/billgen/internal/statement"
)

// patientIDPattern is the accepted shape of a patient identifier at the
// boundary. The core matches identifiers case-insensitively against the
// ledger; shape validation happens only here.
var patientIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,20}$`)

// Handler serves the billing statement routes.
type Handler struct {
	gen   *statement.Generator
	store *ledger.Store
}

// NewHandler creates a Handler.
func NewHandler(gen *statement.Generator, store *ledger.Store) *Handler {
	return &Handler{gen: gen, store: store}
}

// RegisterRoutes attaches all routes to the server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", serveIndex)
	e.GET("/health", h.HealthCheck)
	e.GET("/patient-pdf", h.PatientPDF)
	e.GET("/patient-pdfs.zip", h.PatientPDFArchive)
}

// HealthCheck reports whether the ledger file currently exists on disk.
// A missing ledger is degraded, not an error status: requests still
// succeed with empty results.
func (h *Handler) HealthCheck(c echo.Context) error {
	health := h.store.Health()
	return c.JSON(http.StatusOK, map[string]any{
		"status":           health.Status,
		"data_file_exists": health.DataFileExists,
		"data_file_path":   health.DataFilePath,
		"timestamp":        time.Now().Format(time.RFC3339),
	})
}

// PatientPDF returns the merged multi-page statement for one patient.
func (h *Handler) PatientPDF(c echo.Context) error {
	return h.serveArtifact(c, h.gen.Build, "Error generating bill")
}

// PatientPDFArchive returns a zip of per-service-date statements.
func (h *Handler) PatientPDFArchive(c echo.Context) error {
	return h.serveArtifact(c, h.gen.BuildArchive, "Error generating bills")
}

func (h *Handler) serveArtifact(c echo.Context, build func(string) (statement.Artifact, error), errPrefix string) error {
	patientID := strings.TrimSpace(c.QueryParam("patient_id"))
	if patientID == "" {
		return c.String(http.StatusBadRequest, "Patient ID is required.")
	}
	if !patientIDPattern.MatchString(patientID) {
		return c.String(http.StatusBadRequest, "Patient ID contains invalid characters.")
	}

	art, err := build(patientID)
	if errors.Is(err, statement.ErrNoRecords) {
		return c.String(http.StatusNotFound, fmt.Sprintf("No records found for patient ID: %s", patientID))
	}
	if err != nil {
		return c.String(http.StatusInternalServerError, fmt.Sprintf("%s: %s", errPrefix, err))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", art.Filename))
	return c.Blob(http.StatusOK, art.ContentType, art.Data)
}
