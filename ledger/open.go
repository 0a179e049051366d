package ledger

import (
	"fmt"
	"path/filepath"
)

// Backend names accepted by Open.
const (
	BackendBolt    = "bolt"
	BackendLevel   = "leveldb"
	BackendMemory  = "memory"
	boltFileName   = "ledger.db"
	levelDirectory = "ledger.ldb"
)

// Open opens the named backend under dataDir.
func Open(backend, dataDir string) (Store, error) {
	switch backend {
	case BackendBolt, "":
		return OpenBoltStore(filepath.Join(dataDir, boltFileName))
	case BackendLevel:
		return OpenLevelStore(filepath.Join(dataDir, levelDirectory))
	case BackendMemory:
		return NewMemStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
