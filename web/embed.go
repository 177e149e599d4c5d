// Package web embeds the demo dashboard page served from the Go binary.
//
// Usage in the API server:
//
//	import "github.com/huntiq/lightcharts/web"
//	fs := web.DistFS()  // returns io/fs.FS rooted at static/
package web

import (
	"embed"
	"io/fs"
	"log"
)

//go:embed all:static
var dist embed.FS

// DistFS returns a filesystem rooted at the embedded static/ directory.
// This is ready to use with http.FileServerFS or http.FS.
func DistFS() fs.FS {
	sub, err := fs.Sub(dist, "static")
	if err != nil {
		log.Fatalf("web.DistFS: %v", err)
	}
	return sub
}
