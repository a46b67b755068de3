// Package web embeds the server-rendered templates so the binary and the
// tests see the same files regardless of working directory.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates
var templatesFS embed.FS

func Templates() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}
