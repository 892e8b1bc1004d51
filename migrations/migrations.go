// Package migrations embeds the SQL schema migrations.
// Files follow golang-migrate naming: NNNNNN_name.up.sql / NNNNNN_name.down.sql.
package migrations

import "embed"

// FS holds every migration file.
//
//go:embed *.sql
var FS embed.FS
