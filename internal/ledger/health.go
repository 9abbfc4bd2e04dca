package ledger

import "os"

// Health statuses reported by the probe.
const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
)

// Health describes whether the ledger file is currently readable.
type Health struct {
	Status         string `json:"status"`
	DataFileExists bool   `json:"data_file_exists"`
	DataFilePath   string `json:"data_file_path"`
}

// Health probes the ledger file on disk. A missing file is degraded, not
// fatal: requests still succeed with empty results.
func (s *Store) Health() Health {
	_, err := os.Stat(s.path)
	exists := err == nil
	status := StatusHealthy
	if !exists {
		status = StatusDegraded
	}
	return Health{
		Status:         status,
		DataFileExists: exists,
		DataFilePath:   s.path,
	}
}
