package db

import (
	"database/sql"
	"fmt"
	"runtime"
	"time"

	"github.com/jamesedwarddillard-zz/blogful/internal/config"
)

// DualPool splits reads from writes. SQLite allows many concurrent
// readers but a single writer, so the write pool is capped at one
// connection to avoid SQLITE_BUSY under contention. Read connections
// scale with the host since page-cache hits are CPU bound.
type DualPool struct {
	Read  *sql.DB
	Write *sql.DB
}

func NewDualPool(driver, dsn string) (*DualPool, error) {
	readDB, err := open(driver, dsn, runtime.NumCPU()*2, runtime.NumCPU())
	if err != nil {
		return nil, fmt.Errorf("failed to open read pool: %w", err)
	}

	writeDB, err := open(driver, dsn, 1, 1)
	if err != nil {
		readDB.Close()
		return nil, fmt.Errorf("failed to open write pool: %w", err)
	}

	pool := &DualPool{Read: readDB, Write: writeDB}

	sqliteCfg := config.GetSQLiteConfig()
	if err := sqliteCfg.ApplyPragmas(readDB); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to apply read pragmas: %w", err)
	}
	if err := sqliteCfg.ApplyPragmas(writeDB); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to apply write pragmas: %w", err)
	}

	return pool, nil
}

func open(driver, dsn string, maxOpen, maxIdle int) (*sql.DB, error) {
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	conn.SetMaxOpenConns(maxOpen)
	conn.SetMaxIdleConns(maxIdle)
	conn.SetConnMaxIdleTime(5 * time.Minute)
	conn.SetConnMaxLifetime(time.Hour)
	return conn, nil
}

func (p *DualPool) Close() error {
	var errs []error
	if p.Read != nil {
		if err := p.Read.Close(); err != nil {
			errs = append(errs, fmt.Errorf("read pool close: %w", err))
		}
	}
	if p.Write != nil {
		if err := p.Write.Close(); err != nil {
			errs = append(errs, fmt.Errorf("write pool close: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing pools: %v", errs)
	}
	return nil
}

// Queries returns a handle bound to the read pool. Mutations go through
// transactions on Write instead.
func (p *DualPool) Queries() *Queries {
	return New(p.Read)
}
