// Package view holds the server-rendered pages. The *_templ.go files are
// generated from the .templ sources with `templ generate`.
package view
