package migrations

import "embed"

// FS holds every .sql migration file, applied in alphabetical order.
//
//go:embed *.sql
var FS embed.FS
