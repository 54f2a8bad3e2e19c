// Package migrations embeds the SQL schema migrations.
package migrations

import "embed"

// FS holds the *.up.sql / *.down.sql files, read by golang-migrate's iofs source.
//
//go:embed *.sql
var FS embed.FS
