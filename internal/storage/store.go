package storage

import (
	"fmt"

	"github.com/Veraticus/tech-concierge/internal/common"
	"github.com/Veraticus/tech-concierge/internal/service"
)

// Supported storage backends.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open returns the session store for backend. The SQLite backend is
// opened at path but not migrated.
func Open(backend, path string) (service.SessionStore, error) {
	switch backend {
	case BackendSQLite, "":
		return NewSQLiteStorage(path)
	case BackendMemory:
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q", common.ErrInvalidConfig, backend)
	}
}
