// Package assets embeds the default word lists and the SQL migrations.
package assets

import "embed"

// Words holds the default lists: one word per line, '#' starts a comment line.
//
//go:embed answers.txt allowed.txt
var Words embed.FS

// Migrations holds the SQLite schema scripts, applied in lexical order.
//
//go:embed migrations/*.sql
var Migrations embed.FS

const (
	AnswersFile = "answers.txt"
	AllowedFile = "allowed.txt"
)
