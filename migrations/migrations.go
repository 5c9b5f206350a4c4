// Package migrations embeds the workout schema migrations so the binaries
// carry their own schema and need no migrations directory on disk.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
