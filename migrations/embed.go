// Package migrations embeds the SQL schema files so the server and the
// backup tool run standalone without external migration directories.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql mysql/*.sql
var FS embed.FS
