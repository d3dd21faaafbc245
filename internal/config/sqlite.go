package config

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// SQLiteConfig holds the per-connection tuning applied to every pool.
// Journaling is always WAL and temp tables always live in memory; the
// remaining knobs are environment overridable.
type SQLiteConfig struct {
	CacheSizeKB int    // negative = KB, positive = pages
	SyncLevel   string // "OFF", "NORMAL", "FULL", "EXTRA"
}

func GetSQLiteConfig() SQLiteConfig {
	cfg := SQLiteConfig{
		CacheSizeKB: defaultCacheKB(),
		SyncLevel:   "NORMAL",
	}

	if v, ok := os.LookupEnv("SQLITE_CACHE_SIZE"); ok {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.CacheSizeKB = i
		}
	}

	if v, ok := os.LookupEnv("SQLITE_SYNC_LEVEL"); ok {
		v = strings.ToUpper(v)
		switch v {
		case "OFF", "NORMAL", "FULL", "EXTRA":
			cfg.SyncLevel = v
		}
	}

	return cfg
}

// defaultCacheKB sizes the page cache at 2% of system RAM, clamped to
// the 8MB..256MB range. Unknown RAM falls back to 16MB.
func defaultCacheKB() int {
	ramMB := detectRAMMB()
	if ramMB <= 0 {
		return -16 * 1024
	}
	cacheMB := min(max(ramMB/50, 8), 256)
	return -cacheMB * 1024
}

func detectRAMMB() int {
	if v, ok := os.LookupEnv("SYSTEM_RAM_MB"); ok {
		if mb, err := strconv.Atoi(v); err == nil && mb > 0 {
			return mb
		}
	}

	data, err := os.ReadFile("/proc/meminfo")
	if err != nil {
		return 0
	}
	for line := range strings.SplitSeq(string(data), "\n") {
		if !strings.HasPrefix(line, "MemTotal:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0
		}
		if kb, err := strconv.ParseInt(fields[1], 10, 64); err == nil {
			return int(kb / 1024)
		}
	}
	return 0
}

func (c SQLiteConfig) ApplyPragmas(db *sql.DB) error {
	pragmas := []struct {
		name  string
		value string
	}{
		{"journal_mode", "WAL"},
		{"wal_autocheckpoint", "1000"},
		{"synchronous", c.SyncLevel},
		{"temp_store", "MEMORY"},
		{"cache_size", strconv.Itoa(c.CacheSizeKB)},
		{"mmap_size", "268435456"},
	}

	for _, p := range pragmas {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA %s = %s", p.name, p.value)); err != nil {
			return fmt.Errorf("failed to set PRAGMA %s: %w", p.name, err)
		}
	}

	return nil
}
