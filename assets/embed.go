// assets/embed.go
//
// Embedded fallback data:
//   - answers.txt / allowed.txt: default word lists used when no files are configured.
//   - migrations/*.sql: schema for the SQLite stats store.

package assets

import (
	"embed"
	"io/fs"
)

//go:embed allowed.txt answers.txt migrations/*.sql
var FS embed.FS

const (
	answersFile = "answers.txt"
	allowedFile = "allowed.txt"
)

// Answers opens the embedded target list.
func Answers() (fs.File, error) { return FS.Open(answersFile) }

// Allowed opens the embedded guess list.
func Allowed() (fs.File, error) { return FS.Open(allowedFile) }

// Migrations returns the embedded migration directory.
func Migrations() (fs.FS, error) { return fs.Sub(FS, "migrations") }
