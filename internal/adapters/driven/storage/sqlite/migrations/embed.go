// Package migrations embeds the registry schema migrations.
// Files are named NNN_description.up.sql / NNN_description.down.sql.
package migrations

import "embed"

// FS holds every migration script.
//
//go:embed *.sql
var FS embed.FS
