package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"
)

// DB is the one live handle to the embedded database. It is constructed
// explicitly with Open and handed to everything that needs it; there is no
// package-level singleton.
type DB struct {
	Pool *sql.DB

	lock *flock.Flock
}

type Options struct {
	// Path of the sqlite file. Its directory must exist.
	Path string

	// ResetOnInit discards any prior database file before opening, for
	// single-session deployments that rebuild from empty on every start.
	// Persistent deployments and tests that reopen leave it false.
	ResetOnInit bool
}

// Open opens (and migrates) the database at opts.Path. A sidecar lock file
// guards against a second engine instance touching the same data dir; the
// whole system assumes a single operator session.
//
// Any failure here is ErrUnavailable: the application has no degraded mode.
func Open(opts Options) (*DB, error) {
	lock := flock.New(opts.Path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("%w: lock %s: %v", ErrUnavailable, lock.Path(), err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s is held by another instance", ErrUnavailable, lock.Path())
	}

	if opts.ResetOnInit {
		if err := os.Remove(opts.Path); err != nil && !os.IsNotExist(err) {
			_ = lock.Unlock()
			return nil, fmt.Errorf("%w: reset %s: %v", ErrUnavailable, opts.Path, err)
		}
		// WAL sidecars from a previous run would resurrect old pages.
		_ = os.Remove(opts.Path + "-wal")
		_ = os.Remove(opts.Path + "-shm")
	}

	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", opts.Path)

	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("%w: open: %v", ErrUnavailable, err)
	}

	pool.SetMaxOpenConns(1) // sqlite wants a single writer
	pool.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("%w: ping: %v", ErrUnavailable, err)
	}

	d := &DB{Pool: pool, lock: lock}
	if err := d.migrate(); err != nil {
		_ = pool.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("%w: migrate: %v", ErrUnavailable, err)
	}
	return d, nil
}

func (d *DB) Close() error {
	if d == nil || d.Pool == nil {
		return nil
	}
	err := d.Pool.Close()
	if d.lock != nil {
		_ = d.lock.Unlock()
	}
	return err
}

// DefaultPath returns the database path inside dataDir.
func DefaultPath(dataDir string) string {
	return filepath.Join(dataDir, "hrs.db")
}
