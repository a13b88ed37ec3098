// Package assets embeds the static files served by the demo server.
package assets

import "embed"

// WebFS holds the HTML templates for the palette page.
//
// NOTE: go:embed patterns must not use ".." and must be relative to this file.
//
//go:embed web/*.html
var WebFS embed.FS
