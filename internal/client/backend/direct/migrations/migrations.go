// Package migrations embeds the goose migrations of the self-hosted notes
// database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
