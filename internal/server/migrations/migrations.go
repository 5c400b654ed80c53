// Package migrations embeds the SQL migrations applied with goose when the
// server runs against Postgres.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
