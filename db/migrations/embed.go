// Package migrations contains embedded SQL migration files for the local
// mirror schema.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
