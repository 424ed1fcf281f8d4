package migrations

import "embed"

// PostgresFS embeds the saved-charts schema.
//
//go:embed postgres/*.sql
var PostgresFS embed.FS

// ClickhouseFS embeds the panchanga_days schema.
//
//go:embed clickhouse/*.sql
var ClickhouseFS embed.FS
