// Package views embeds the storefront's HTML templates.
package views

import "embed"

// FS holds layout.html and one file per page.
//
//go:embed *.html
var FS embed.FS
