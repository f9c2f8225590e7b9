package cli

import (
	"os"
	"path/filepath"

	"github.com/rosterhq/roster/internal/audit"
	"github.com/rosterhq/roster/internal/store"
)

// dataDir holds the --data-dir persistent flag value (set on root command).
var dataDir string

// resolveDataDir returns the data directory from --data-dir flag,
// ROSTER_DATA_DIR env var, or ~/.roster as fallback.
func resolveDataDir() string {
	if dataDir != "" {
		return dataDir
	}
	if envDir := os.Getenv("ROSTER_DATA_DIR"); envDir != "" {
		return envDir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".roster")
}

// openStore opens the SQLite store under the resolved data directory.
func openStore() (*store.Store, error) {
	return store.Open(resolveDataDir())
}

// openAuditLog opens the CSV audit log next to the database.
func openAuditLog() (*audit.Logger, error) {
	dir := resolveDataDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return audit.NewLogger(filepath.Join(dir, "audit.csv"))
}
