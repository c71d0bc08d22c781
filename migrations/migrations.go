// Package migrations содержит SQL-миграции схемы для каждого поддерживаемого диалекта.
package migrations

import "embed"

// FS - каталоги postgres/ и sqlite/ с миграциями goose
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
