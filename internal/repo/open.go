package repo

import "fmt"

const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendValkey = "valkey"
	BackendSQLite = "sqlite"
)

// Options selects and configures a BlobStore backend.
type Options struct {
	Backend        string
	DataDir        string
	SQLitePath     string
	ValkeyAddr     string
	ValkeyPassword string
	ValkeyDB       int
}

// Open builds the BlobStore named by opts.Backend.
func Open(opts Options) (BlobStore, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile, "":
		return NewFileStore(opts.DataDir)
	case BackendValkey:
		return NewValkeyStore(opts.ValkeyAddr, opts.ValkeyPassword, opts.ValkeyDB)
	case BackendSQLite:
		return NewSQLiteStore(opts.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
