// Package web embeds the page templates and static assets.
package web

import (
	"embed"
	"io/fs"
	"log"
)

//go:embed static templates
var content embed.FS

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(content, dir)
	if err != nil {
		log.Fatalf("failed to create %s sub-filesystem: %v", dir, err)
	}
	return sub
}

// StaticFS returns the stylesheet, page script and placeholder image.
func StaticFS() fs.FS { return mustSub("static") }

// TemplatesFS returns the layout and page templates.
func TemplatesFS() fs.FS { return mustSub("templates") }
