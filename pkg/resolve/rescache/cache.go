// Package rescache persists cross-file declaration-resolution results
// so repeated runs over a large module graph skip re-walking import
// and re-export chains the resolver has already followed once (spec
// §5: a type checker is lazily constructed per source file and cached
// for that file's lifetime — this extends the same idea to a durable,
// cross-run cache keyed by absolute module path).
package rescache

import (
	"database/sql"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	_ "modernc.org/sqlite"
)

// Record is the memoized outcome of one cross-file resolution: enough
// to re-fetch the live declaration from the in-memory module graph
// without re-walking re-export chains, not a serialized copy of the
// declaration itself (declarations belong to the host AST, which this
// cache never owns).
type Record struct {
	ModulePath string
	DeclName   string
}

// Cache is a sqlite-backed store of (fromModule, refName) -> Record.
type Cache struct {
	db *sql.DB
}

// Open opens (creating if absent) the cache database at path and
// ensures its schema exists.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("rescache: open %s: %w", path, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS resolutions (
		from_module TEXT NOT NULL,
		ref_name    TEXT NOT NULL,
		record      BLOB NOT NULL,
		PRIMARY KEY (from_module, ref_name)
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("rescache: migrate: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying database handle.
func (c *Cache) Close() error { return c.db.Close() }

// Get returns the cached Record for (fromModule, refName), if any.
func (c *Cache) Get(fromModule, refName string) (Record, bool, error) {
	var blob []byte
	err := c.db.QueryRow(
		`SELECT record FROM resolutions WHERE from_module = ? AND ref_name = ?`,
		fromModule, refName,
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("rescache: get: %w", err)
	}
	var rec Record
	if err := cbor.Unmarshal(blob, &rec); err != nil {
		return Record{}, false, fmt.Errorf("rescache: decode: %w", err)
	}
	return rec, true, nil
}

// Put stores (or replaces) the Record for (fromModule, refName).
func (c *Cache) Put(fromModule, refName string, rec Record) error {
	blob, err := cbor.Marshal(rec)
	if err != nil {
		return fmt.Errorf("rescache: encode: %w", err)
	}
	_, err = c.db.Exec(
		`INSERT INTO resolutions (from_module, ref_name, record) VALUES (?, ?, ?)
		 ON CONFLICT(from_module, ref_name) DO UPDATE SET record = excluded.record`,
		fromModule, refName, blob,
	)
	if err != nil {
		return fmt.Errorf("rescache: put: %w", err)
	}
	return nil
}
