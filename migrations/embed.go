// Package migrations embeds the versioned SQL schema so binaries can migrate without a checkout.
package migrations

import "embed"

// FS holds every NNNNNN_name.up.sql / .down.sql pair
//
//go:embed *.sql
var FS embed.FS
