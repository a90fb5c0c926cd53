// Package migrations embeds the postgres schema for the documents backend.
package migrations

import "embed"

//go:embed sql/*.sql
var FS embed.FS

const Dir = "sql"
